package rng

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Noise is a seeded coherent noise field.
//
// Wraps a normalized OpenSimplex generator so Eval results land in [0, 1).
// The field is smooth and continuous: nearby coordinates produce nearby
// values, which is what the particle steering and fragment drift rely on.
type Noise struct {
	field opensimplex.Noise
}

// NewNoise creates a noise field seeded from the session seed.
func NewNoise(seed uint32) *Noise {
	return &Noise{field: opensimplex.NewNormalized(int64(seed))}
}

// Eval samples the field at a 3D coordinate. Result is in [0, 1).
func (n *Noise) Eval(x, y, z float64) float64 {
	return n.field.Eval3(x, y, z)
}
