package selfupdate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// releaseFixture serves one published release of rel: the latest-tag
// endpoint, the platform archive and checksums.txt. A non-empty sum
// overrides the archive's real checksum.
type releaseFixture struct {
	rel     Release
	tag     string
	sum     string
	binary  []byte
	missing bool // archive returns 404

	mu   sync.Mutex
	hits []string
}

func (f *releaseFixture) requested() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.hits...)
}

func (f *releaseFixture) serve(t *testing.T) *httptest.Server {
	t.Helper()
	asset, err := f.rel.Asset(runtime.GOOS, runtime.GOARCH)
	require.NoError(t, err)

	var archive []byte
	if strings.HasSuffix(asset, ".zip") {
		archive = buildZip(t, f.rel.Executable(asset), f.binary)
	} else {
		archive = buildTarGz(t, f.rel.Executable(asset), f.binary)
	}
	sum := f.sum
	if sum == "" {
		h := sha256.Sum256(archive)
		sum = hex.EncodeToString(h[:])
	}

	base := fmt.Sprintf("/%s/%s/releases/download/%s/", f.rel.Owner, f.rel.Repo, f.tag)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.hits = append(f.hits, r.URL.Path)
		f.mu.Unlock()
		switch r.URL.Path {
		case fmt.Sprintf("/repos/%s/%s/releases/latest", f.rel.Owner, f.rel.Repo):
			_, _ = fmt.Fprintf(w, `{"tag_name":%q,"html_url":"https://example.com/%s"}`, f.tag, f.tag)
		case base + asset:
			if f.missing {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = w.Write(archive)
		case base + "checksums.txt":
			_, _ = fmt.Fprintf(w, "%s  %s\n", sum, asset)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func installedBinary(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blockmath")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o755))
	return path
}

func fixtureChecker(server *httptest.Server, execPath string, opts ...Option) *Checker {
	opts = append([]Option{
		WithBaseURL(server.URL),
		WithDownloadBaseURL(server.URL),
		withExecPath(func() (string, error) { return execPath, nil }),
	}, opts...)
	return NewChecker(opts...)
}

func TestUpdate(t *testing.T) {
	fx := &releaseFixture{rel: DefaultRelease, tag: "v2.0.0", binary: []byte("new-blockmath")}
	server := fx.serve(t)
	execPath := installedBinary(t)

	var stages []Stage
	err := fixtureChecker(server, execPath).Update(context.Background(),
		&UpdateInput{CurrentVersion: "v1.0.0"},
		func(p UpdateProgress) { stages = append(stages, p.Stage) })
	require.NoError(t, err)

	got, err := os.ReadFile(execPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("new-blockmath"), got)
	assert.Equal(t, []Stage{StageCheck, StageDownload, StageVerify, StageExtract, StageApply, StageDone}, stages)
}

func TestUpdate_PinnedVersionSkipsCheck(t *testing.T) {
	fx := &releaseFixture{rel: DefaultRelease, tag: "v1.5.0", binary: []byte("pinned")}
	server := fx.serve(t)
	execPath := installedBinary(t)

	var stages []Stage
	err := fixtureChecker(server, execPath).Update(context.Background(),
		&UpdateInput{CurrentVersion: "v2.0.0", TargetVersion: "v1.5.0"},
		func(p UpdateProgress) { stages = append(stages, p.Stage) })
	require.NoError(t, err)

	assert.NotContains(t, stages, StageCheck)
	for _, hit := range fx.requested() {
		assert.NotContains(t, hit, "/releases/latest")
	}
	got, err := os.ReadFile(execPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("pinned"), got)
}

func TestUpdate_PinnedCurrentVersion(t *testing.T) {
	err := NewChecker().Update(context.Background(),
		&UpdateInput{CurrentVersion: "v1.0.0", TargetVersion: "v1.0.0"}, nil)
	assert.ErrorIs(t, err, ErrAlreadyLatest)
}

func TestUpdate_ForkRelease(t *testing.T) {
	fork := Release{Owner: "kid", Repo: "fork", Binary: "mathfork"}
	fx := &releaseFixture{rel: fork, tag: "v3.0.0", binary: []byte("fork build")}
	server := fx.serve(t)
	execPath := installedBinary(t)

	err := fixtureChecker(server, execPath, WithRelease(fork)).Update(context.Background(),
		&UpdateInput{CurrentVersion: "v1.0.0"}, nil)
	require.NoError(t, err)

	got, err := os.ReadFile(execPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("fork build"), got)
	assert.Contains(t, fx.requested(), "/repos/kid/fork/releases/latest")
}

func TestUpdate_Errors(t *testing.T) {
	t.Run("dev build", func(t *testing.T) {
		err := NewChecker().Update(context.Background(), &UpdateInput{CurrentVersion: "(devel)"}, nil)
		assert.ErrorIs(t, err, ErrDevBuild)
	})

	t.Run("incomplete release", func(t *testing.T) {
		err := NewChecker(WithRelease(Release{Owner: "kid"})).Update(context.Background(),
			&UpdateInput{CurrentVersion: "v1.0.0"}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "incomplete release")
	})

	t.Run("already latest", func(t *testing.T) {
		fx := &releaseFixture{rel: DefaultRelease, tag: "v1.0.0", binary: []byte("same")}
		server := fx.serve(t)
		err := fixtureChecker(server, installedBinary(t)).Update(context.Background(),
			&UpdateInput{CurrentVersion: "v1.0.0"}, nil)
		assert.ErrorIs(t, err, ErrAlreadyLatest)
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		fx := &releaseFixture{rel: DefaultRelease, tag: "v2.0.0", binary: []byte("tampered"), sum: strings.Repeat("0", 64)}
		server := fx.serve(t)
		execPath := installedBinary(t)

		err := fixtureChecker(server, execPath).Update(context.Background(),
			&UpdateInput{CurrentVersion: "v1.0.0"}, nil)
		assert.ErrorIs(t, err, ErrChecksum)

		got, readErr := os.ReadFile(execPath)
		require.NoError(t, readErr)
		assert.Equal(t, []byte("old"), got, "binary must be untouched")
	})

	t.Run("download failure", func(t *testing.T) {
		fx := &releaseFixture{rel: DefaultRelease, tag: "v2.0.0", binary: []byte("x"), missing: true}
		server := fx.serve(t)
		err := fixtureChecker(server, installedBinary(t)).Update(context.Background(),
			&UpdateInput{CurrentVersion: "v1.0.0"}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "download archive")
	})
}
