// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// PCMScale is the magnitude of full scale for signed PCM of bitDepth bits.
func PCMScale(bitDepth int) float64 {
	if bitDepth <= 0 {
		bitDepth = 16
	}
	return float64(int64(1) << (bitDepth - 1))
}

// IntToFloat normalizes a signed PCM sample to [-1, 1).
func IntToFloat(v, bitDepth int) float64 {
	return float64(v) / PCMScale(bitDepth)
}

// FloatToInt is the inverse of IntToFloat. Values are rounded and clamped to
// the representable range, so FloatToInt(IntToFloat(v, b), b) == v.
func FloatToInt(x float64, bitDepth int) int {
	scale := PCMScale(bitDepth)
	v := math.Round(x * scale)

	if v > scale-1 {
		v = scale - 1
	} else if v < -scale {
		v = -scale
	}

	return int(v)
}
