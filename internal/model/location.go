package model

import "math"

// Location представляет координаты в игровом мире.
// Value type, передаётся по значению (immutable).
// Y — высота (DirectX), карта зоны использует X и Z.
type Location struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
	Z float32 `json:"z" yaml:"z"`
}

// NewLocation создаёт Location с указанными координатами.
func NewLocation(x, y, z float32) Location {
	return Location{X: x, Y: y, Z: z}
}

// IsZero reports whether all axes are zero.
func (l Location) IsZero() bool {
	return l.X == 0 && l.Y == 0 && l.Z == 0
}

// WithOffset возвращает новый Location, сдвинутый на dx/dy/dz (immutable pattern).
func (l Location) WithOffset(dx, dy, dz float32) Location {
	l.X += dx
	l.Y += dy
	l.Z += dz
	return l
}

// DistanceSquared возвращает квадрат расстояния до другой точки (без sqrt для производительности).
func (l Location) DistanceSquared(other Location) float64 {
	dx := float64(l.X - other.X)
	dy := float64(l.Y - other.Y)
	dz := float64(l.Z - other.Z)
	return dx*dx + dy*dy + dz*dz
}

// Distance возвращает евклидово расстояние до другой точки.
func (l Location) Distance(other Location) float64 {
	return math.Sqrt(l.DistanceSquared(other))
}

// WithinTolerance reports whether every axis differs from other by less than eps.
func (l Location) WithinTolerance(other Location, eps float32) bool {
	return absf(l.X-other.X) < eps &&
		absf(l.Y-other.Y) < eps &&
		absf(l.Z-other.Z) < eps
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
