package config

import (
	"errors"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/leapstack-labs/ktsmell/internal/cli/output"
)

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	var errs []error

	if !output.ValidMode(c.OutputFormat) {
		errs = append(errs, fmt.Errorf("unknown output format %q (expected one of %v)", c.OutputFormat, output.Modes))
	}
	if c.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency))
	}
	for _, pattern := range append(append([]string{}, c.Include...), c.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, fmt.Errorf("invalid glob %q: %w", pattern, doublestar.ErrBadPattern))
		}
	}

	return errors.Join(errs...)
}
