package core

import (
	"math"
	"testing"
)

func TestSafeDiv(t *testing.T) {
	tests := []struct {
		name string
		num  float64
		den  float64
		want float64
	}{
		{"normal division", 10, 4, 2.5},
		{"zero denominator clamps to zero", 42, 0, 0},
		{"zero numerator", 0, 7, 0},
		{"negative values", -6, 3, -2},
		{"nan result clamps to zero", math.NaN(), 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeDiv(tt.num, tt.den)
			if got != tt.want {
				t.Errorf("SafeDiv(%v, %v) = %v, want %v", tt.num, tt.den, got, tt.want)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{2.344, 2.34},
		{2.346, 2.35},
		{57.6999, 57.7},
		{-1.536, -1.54},
		{0, 0},
	}

	for _, tt := range tests {
		got := Round2(tt.in)
		if got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
