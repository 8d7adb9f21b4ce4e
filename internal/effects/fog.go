package effects

import (
	"time"

	"github.com/ojrac/opensimplex-go"
)

// FogLayers is the number of independent mist bands.
const FogLayers = 3

// Each layer drifts at its own speed and scale so the bands never line up.
var fogLayers = [FogLayers]struct {
	scale float64 // noise units per surface width
	drift float64 // noise units per second
	base  float64 // density floor
}{
	{scale: 1.5, drift: 0.05, base: 0.15},
	{scale: 2.5, drift: -0.08, base: 0.10},
	{scale: 4.0, drift: 0.12, base: 0.05},
}

// Fog samples slowly drifting mist density.
type Fog struct {
	noise opensimplex.Noise
}

// NewFog creates a fog field from a noise seed.
func NewFog(seed int64) *Fog {
	return &Fog{noise: opensimplex.NewNormalized(seed)}
}

// Density returns the mist density of layer at horizontal position x
// (0..1 across the surface) after t. The result is in [0, 1].
func (f *Fog) Density(layer int, x float64, t time.Duration) float64 {
	if layer < 0 || layer >= FogLayers {
		return 0
	}
	l := fogLayers[layer]
	n := f.noise.Eval2(x*l.scale+t.Seconds()*l.drift, float64(layer)*10)
	d := l.base + (1-l.base)*n
	if d < 0 {
		return 0
	}
	if d > 1 {
		return 1
	}
	return d
}
