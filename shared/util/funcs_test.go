package util

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestLerp(t *testing.T) {
	tests := []struct {
		start, end, amount, want float32
	}{
		{0, 10, 0, 0},
		{0, 10, 1, 10},
		{0, 10, 0.5, 5},
		{5, 5, 0.3, 5},
		{10, 0, 0.25, 7.5},
	}
	for _, tt := range tests {
		if got := Lerp(tt.start, tt.end, tt.amount); got != tt.want {
			t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tt.start, tt.end, tt.amount, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float32
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.min, tt.max); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestDistSq(t *testing.T) {
	tests := []struct {
		v1, v2 mgl32.Vec3
		want   float32
	}{
		{mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 0}, 0},
		{mgl32.Vec3{0, 0, 0}, mgl32.Vec3{3, 4, 0}, 25},
		{mgl32.Vec3{1, 1, 1}, mgl32.Vec3{2, 2, 2}, 3},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{1, 0, 0}, 4},
	}
	for _, tt := range tests {
		if got := DistSq(tt.v1, tt.v2); got != tt.want {
			t.Errorf("DistSq(%v, %v) = %v, want %v", tt.v1, tt.v2, got, tt.want)
		}
	}
}
