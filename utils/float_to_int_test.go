// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{"zero", 0.0, 0},
		{"max positive", 1.0, math.MaxInt16},
		{"max negative", -1.0, -math.MaxInt16},
		{"half positive", 0.5, 16383},
		{"half negative", -0.5, -16383},
		{"small positive", 0.001, 32},
		{"clamp over max", 1.5, math.MaxInt16},
		{"clamp under min", -1.5, -math.MaxInt16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float32ToInt16(tt.input); got != tt.want {
				t.Errorf("Float32ToInt16(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFloat32ToInt16Monotonic(t *testing.T) {
	t.Parallel()

	prev := Float32ToInt16(-1)
	for x := float32(-1); x <= 1; x += 0.001 {
		cur := Float32ToInt16(x)
		if cur < prev {
			t.Fatalf("Float32ToInt16(%v) = %d < previous %d", x, cur, prev)
		}
		prev = cur
	}
}
