package sound

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// levelTap wraps the master mix and keeps a ring of recent per-block RMS
// levels so the UI can draw a meter of what is actually audible.
type levelTap struct {
	Source    beep.Streamer
	levels    []float64
	nextIndex int
	mu        sync.RWMutex
}

func newLevelTap(src beep.Streamer, ringSize int) *levelTap {
	return &levelTap{
		Source: src,
		levels: make([]float64, ringSize),
	}
}

func (t *levelTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		var sumSquares float64
		for i := 0; i < n; i++ {
			mono := (samples[i][0] + samples[i][1]) * 0.5
			sumSquares += mono * mono
		}
		rms := math.Sqrt(sumSquares / float64(n))

		t.mu.Lock()
		t.levels[t.nextIndex] = rms
		t.nextIndex++
		if t.nextIndex >= len(t.levels) {
			t.nextIndex = 0
		}
		t.mu.Unlock()
	}
	return n, ok
}

func (t *levelTap) Err() error { return t.Source.Err() }

// snapshot returns up to the last n levels, oldest first.
func (t *levelTap) snapshot(n int) []float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if n > len(t.levels) {
		n = len(t.levels)
	}
	out := make([]float64, n)
	idx := t.nextIndex - 1
	for i := n - 1; i >= 0; i-- {
		if idx < 0 {
			idx = len(t.levels) - 1
		}
		out[i] = t.levels[idx]
		idx--
	}
	return out
}
