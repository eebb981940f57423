// SPDX-License-Identifier: EPL-2.0

package denoise

import "errors"

var (
	ErrEmptySignal       = errors.New("signal is empty")
	ErrEmptyNoiseProfile = errors.New("noise profile is empty")
	ErrInvalidStrength   = errors.New("strength must be between 0 and 1")
	ErrInvalidFrameSize  = errors.New("frame size must be a power of two and a multiple of the hop")
)
