package selfupdate

import (
	"fmt"
	"strings"
)

// Release says where builds are published and how their archives are
// named. Archives follow the goreleaser layout:
// <binary>_<OS>_<arch>.tar.gz, or .zip on Windows, next to a
// checksums.txt.
type Release struct {
	Owner  string
	Repo   string
	Binary string // executable inside the archive, without ".exe"
}

// DefaultRelease is the official blockmath release channel.
var DefaultRelease = Release{Owner: "abhisek", Repo: "blockmath", Binary: "blockmath"}

// ParseRepo turns "owner/name" into a Release with the default binary
// name, for installs that track a fork.
func ParseRepo(s string) (Release, error) {
	owner, repo, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return Release{}, fmt.Errorf("repository %q is not of the form owner/name", s)
	}
	return Release{Owner: owner, Repo: repo, Binary: DefaultRelease.Binary}, nil
}

func (r Release) String() string {
	return r.Owner + "/" + r.Repo
}

func (r Release) validate() error {
	if r.Owner == "" || r.Repo == "" || r.Binary == "" {
		return fmt.Errorf("incomplete release %+v", r)
	}
	return nil
}

type platform struct {
	name string
	ext  string
	// universal builds ship one archive for every architecture.
	universal bool
}

var platforms = map[string]platform{
	"darwin":  {name: "Darwin", ext: ".tar.gz", universal: true},
	"linux":   {name: "Linux", ext: ".tar.gz"},
	"windows": {name: "Windows", ext: ".zip"},
}

var archNames = map[string]string{
	"amd64": "x86_64",
	"arm64": "arm64",
	"386":   "i386",
}

// Asset returns the archive name for a platform, for example
// blockmath_Linux_x86_64.tar.gz.
func (r Release) Asset(goos, goarch string) (string, error) {
	p, ok := platforms[goos]
	if !ok {
		return "", fmt.Errorf("unsupported operating system: %s", goos)
	}
	arch := "all"
	if !p.universal {
		if arch, ok = archNames[goarch]; !ok {
			return "", fmt.Errorf("unsupported architecture: %s", goarch)
		}
	}
	return fmt.Sprintf("%s_%s_%s%s", r.Binary, p.name, arch, p.ext), nil
}

// Executable returns the file to pull out of asset.
func (r Release) Executable(asset string) string {
	if strings.HasSuffix(asset, ".zip") {
		return r.Binary + ".exe"
	}
	return r.Binary
}

func (r Release) latestURL(apiBase string) string {
	return fmt.Sprintf("%s/repos/%s/%s/releases/latest", strings.TrimRight(apiBase, "/"), r.Owner, r.Repo)
}

func (r Release) downloadURL(base, tag, file string) string {
	return fmt.Sprintf("%s/%s/%s/releases/download/%s/%s", strings.TrimRight(base, "/"), r.Owner, r.Repo, tag, file)
}
