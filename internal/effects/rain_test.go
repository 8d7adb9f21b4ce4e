package effects

import (
	"math/rand"
	"reflect"
	"testing"
	"time"
)

// fixedRandom returns the same value for every draw.
type fixedRandom float64

func (f fixedRandom) Float64() float64 { return float64(f) }

func TestGenerateRainCountAndBounds(t *testing.T) {
	drops := GenerateRain(DropCount, rand.New(rand.NewSource(1)))
	if len(drops) != DropCount {
		t.Fatalf("expected %d drops, got %d", DropCount, len(drops))
	}
	for i, d := range drops {
		if d.Left < 0 || d.Left >= 100 {
			t.Errorf("drop %d: left %v out of [0,100)", i, d.Left)
		}
		if d.Delay < 0 || d.Delay >= 2*time.Second {
			t.Errorf("drop %d: delay %v out of [0,2s)", i, d.Delay)
		}
		if d.Duration < 500*time.Millisecond || d.Duration >= time.Second {
			t.Errorf("drop %d: duration %v out of [0.5s,1s)", i, d.Duration)
		}
		if d.Opacity < 0.1 || d.Opacity >= 0.4 {
			t.Errorf("drop %d: opacity %v out of [0.1,0.4)", i, d.Opacity)
		}
	}
}

func TestGenerateRainExtremes(t *testing.T) {
	low := GenerateRain(1, fixedRandom(0))[0]
	if low.Left != 0 || low.Delay != 0 || low.Duration != 500*time.Millisecond || low.Opacity != 0.1 {
		t.Errorf("unexpected low drop %+v", low)
	}

	high := GenerateRain(1, fixedRandom(0.9999999999))[0]
	if high.Left >= 100 || high.Delay >= 2*time.Second || high.Duration >= time.Second || high.Opacity >= 0.4 {
		t.Errorf("high drop escaped bounds: %+v", high)
	}
}

func TestGenerateRainIndependentRuns(t *testing.T) {
	a := GenerateRain(DropCount, rand.New(rand.NewSource(time.Now().UnixNano())))
	b := GenerateRain(DropCount, rand.New(rand.NewSource(time.Now().UnixNano()+1)))
	if reflect.DeepEqual(a, b) {
		t.Fatal("two independent generations produced identical rain")
	}
}

func TestGenerateRainDeterministicWithSeed(t *testing.T) {
	a := GenerateRain(10, rand.New(rand.NewSource(42)))
	b := GenerateRain(10, rand.New(rand.NewSource(42)))
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed produced different rain")
	}
}

func TestGenerateRainEmpty(t *testing.T) {
	if drops := GenerateRain(0, fixedRandom(0.5)); drops != nil {
		t.Fatalf("expected nil, got %v", drops)
	}
}

func TestRainDropFall(t *testing.T) {
	d := RainDrop{Delay: time.Second, Duration: 500 * time.Millisecond}

	tests := []struct {
		at       time.Duration
		progress float64
		started  bool
	}{
		{0, 0, false},
		{999 * time.Millisecond, 0, false},
		{time.Second, 0, true},
		{1250 * time.Millisecond, 0.5, true},
		{1750 * time.Millisecond, 0.5, true},
	}
	for _, tt := range tests {
		p, ok := d.Fall(tt.at)
		if ok != tt.started || p != tt.progress {
			t.Errorf("Fall(%v) = %v,%v; want %v,%v", tt.at, p, ok, tt.progress, tt.started)
		}
	}
}

func TestRainDropCSS(t *testing.T) {
	d := RainDrop{Left: 42.5, Delay: 1500 * time.Millisecond, Duration: 750 * time.Millisecond}
	if got := d.LeftCSS(); got != "42.5%" {
		t.Errorf("LeftCSS = %q", got)
	}
	if got := d.DelayCSS(); got != "1.5s" {
		t.Errorf("DelayCSS = %q", got)
	}
	if got := d.DurationCSS(); got != "0.75s" {
		t.Errorf("DurationCSS = %q", got)
	}
}
