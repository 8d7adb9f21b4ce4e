package effects

import (
	"testing"
	"time"
)

func TestFogDensityBounds(t *testing.T) {
	f := NewFog(7)
	for layer := 0; layer < FogLayers; layer++ {
		for i := 0; i <= 50; i++ {
			x := float64(i) / 50
			for _, at := range []time.Duration{0, time.Second, 90 * time.Second} {
				d := f.Density(layer, x, at)
				if d < 0 || d > 1 {
					t.Fatalf("layer %d x=%v t=%v: density %v out of [0,1]", layer, x, at, d)
				}
			}
		}
	}
}

func TestFogUnknownLayer(t *testing.T) {
	f := NewFog(1)
	if d := f.Density(-1, 0.5, 0); d != 0 {
		t.Errorf("negative layer density = %v", d)
	}
	if d := f.Density(FogLayers, 0.5, 0); d != 0 {
		t.Errorf("out of range layer density = %v", d)
	}
}

func TestFogDrifts(t *testing.T) {
	f := NewFog(3)
	same := true
	for i := 0; i < 10; i++ {
		x := float64(i) / 10
		if f.Density(0, x, 0) != f.Density(0, x, 20*time.Second) {
			same = false
			break
		}
	}
	if same {
		t.Fatal("fog did not move over time")
	}
}
