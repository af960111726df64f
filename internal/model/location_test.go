package model

import (
	"testing"
)

func TestNewLocation(t *testing.T) {
	tests := []struct {
		name string
		x    float32
		y    float32
		z    float32
		want Location
	}{
		{
			name: "zero values",
			want: Location{},
		},
		{
			name: "positive coordinates",
			x:    100.5,
			y:    200,
			z:    300.25,
			want: Location{X: 100.5, Y: 200, Z: 300.25},
		},
		{
			name: "negative coordinates",
			x:    -100,
			y:    -200,
			z:    -300,
			want: Location{X: -100, Y: -200, Z: -300},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewLocation(tt.x, tt.y, tt.z)
			if got != tt.want {
				t.Errorf("NewLocation() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLocation_WithOffset(t *testing.T) {
	original := NewLocation(100, 200, 300)

	got := original.WithOffset(0, 0, 475)
	want := Location{X: 100, Y: 200, Z: 775}
	if got != want {
		t.Errorf("WithOffset() = %+v, want %+v", got, want)
	}

	if original.Z != 300 {
		t.Errorf("original mutated: Z = %v, want 300", original.Z)
	}
}

func TestLocation_DistanceSquared(t *testing.T) {
	tests := []struct {
		name string
		a, b Location
		want float64
	}{
		{"same point", NewLocation(1, 2, 3), NewLocation(1, 2, 3), 0},
		{"axis x", NewLocation(0, 0, 0), NewLocation(3, 0, 0), 9},
		{"3-4-5", NewLocation(0, 0, 0), NewLocation(3, 4, 0), 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.DistanceSquared(tt.b); got != tt.want {
				t.Errorf("DistanceSquared() = %v, want %v", got, tt.want)
			}
		})
	}

	if got := NewLocation(0, 0, 0).Distance(NewLocation(3, 4, 0)); got != 5 {
		t.Errorf("Distance() = %v, want 5", got)
	}
}

func TestLocation_WithinTolerance(t *testing.T) {
	base := NewLocation(-360, 672.5, 22)

	tests := []struct {
		name  string
		other Location
		eps   float32
		want  bool
	}{
		{"identical", base, 0.5, true},
		{"inside on every axis", NewLocation(-360.25, 672.25, 22.25), 0.5, true},
		{"one axis outside", NewLocation(-360, 673.25, 22), 0.5, false},
		{"edge is exclusive", NewLocation(-359, 672.5, 22), 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.WithinTolerance(tt.other, tt.eps); got != tt.want {
				t.Errorf("WithinTolerance(%+v, %v) = %v, want %v", tt.other, tt.eps, got, tt.want)
			}
		})
	}
}
