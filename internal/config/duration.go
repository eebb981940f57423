// SPDX-License-Identifier: EPL-2.0

package config

import (
	"fmt"
	"time"
)

// PreviewHold parses Denoise.PreviewHold.
func (c *Config) PreviewHold() (time.Duration, error) {
	d, err := time.ParseDuration(c.Denoise.PreviewHold)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHold, c.Denoise.PreviewHold)
	}
	return d, nil
}
