package queue

import "fmt"

// Default tunables.
const (
	DefaultFreshThreshold    = 2
	DefaultMissedThreshold   = 3
	DefaultMinReinsertOffset = 2
	DefaultMaxReinsertOffset = 6
)

// Config holds the mastery thresholds and the spaced-repetition window.
// Zero-valued fields fall back to the defaults above.
type Config struct {
	// FreshThreshold is the correct streak needed to master a problem
	// that was never missed.
	FreshThreshold int `json:"fresh_threshold"`

	// MissedThreshold is the correct streak needed once a problem has been
	// missed. It never drops back to FreshThreshold.
	MissedThreshold int `json:"missed_threshold"`

	// MinReinsertOffset and MaxReinsertOffset bound (inclusive) how far
	// ahead of the front a missed problem is reinserted.
	MinReinsertOffset int `json:"min_reinsert_offset"`
	MaxReinsertOffset int `json:"max_reinsert_offset"`
}

// DefaultConfig returns the standard tunables.
func DefaultConfig() Config {
	return Config{
		FreshThreshold:    DefaultFreshThreshold,
		MissedThreshold:   DefaultMissedThreshold,
		MinReinsertOffset: DefaultMinReinsertOffset,
		MaxReinsertOffset: DefaultMaxReinsertOffset,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.FreshThreshold == 0 {
		c.FreshThreshold = d.FreshThreshold
	}
	if c.MissedThreshold == 0 {
		c.MissedThreshold = d.MissedThreshold
	}
	if c.MinReinsertOffset == 0 {
		c.MinReinsertOffset = d.MinReinsertOffset
	}
	if c.MaxReinsertOffset == 0 {
		c.MaxReinsertOffset = d.MaxReinsertOffset
	}
	return c
}

// Validate checks the config after defaults are applied.
func (c Config) Validate() error {
	c = c.withDefaults()
	switch {
	case c.FreshThreshold < 1:
		return fmt.Errorf("%w: fresh threshold %d must be at least 1", ErrInvalidConfig, c.FreshThreshold)
	case c.MissedThreshold < c.FreshThreshold:
		return fmt.Errorf("%w: missed threshold %d is below fresh threshold %d",
			ErrInvalidConfig, c.MissedThreshold, c.FreshThreshold)
	case c.MinReinsertOffset < 1:
		return fmt.Errorf("%w: min reinsert offset %d must be at least 1", ErrInvalidConfig, c.MinReinsertOffset)
	case c.MaxReinsertOffset < c.MinReinsertOffset:
		return fmt.Errorf("%w: reinsert offsets [%d, %d] are inverted",
			ErrInvalidConfig, c.MinReinsertOffset, c.MaxReinsertOffset)
	}
	return nil
}
