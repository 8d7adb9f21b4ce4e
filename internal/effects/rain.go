package effects

import (
	"fmt"
	"math"
	"time"
)

// DropCount is the number of rain drops rendered on the page.
const DropCount = 100

const (
	maxDelay    = 2 * time.Second
	minDuration = 500 * time.Millisecond
	durationVar = 500 * time.Millisecond
	minOpacity  = 0.1
	opacityVar  = 0.3
)

// Random is the source of uniform values in [0, 1). *rand.Rand satisfies it.
type Random interface {
	Float64() float64
}

// RainDrop describes one decorative falling streak.
type RainDrop struct {
	Left     float64 // horizontal position, percent of the surface width
	Delay    time.Duration
	Duration time.Duration
	Opacity  float64
}

// GenerateRain draws n independent drops from rng.
func GenerateRain(n int, rng Random) []RainDrop {
	if n <= 0 {
		return nil
	}
	drops := make([]RainDrop, n)
	for i := range drops {
		drops[i] = RainDrop{
			Left:     rng.Float64() * 100,
			Delay:    scale(maxDelay, rng.Float64()),
			Duration: minDuration + scale(durationVar, rng.Float64()),
			Opacity:  minOpacity + rng.Float64()*opacityVar,
		}
	}
	return drops
}

// scale returns d*f truncated to whole nanoseconds, so f < 1 keeps the
// result strictly below d.
func scale(d time.Duration, f float64) time.Duration {
	return time.Duration(math.Floor(float64(d) * f))
}

// Fall returns how far the drop has fallen (0 top, 1 bottom) after t has
// elapsed since the rain started. started is false until the drop's delay
// has passed.
func (d RainDrop) Fall(t time.Duration) (progress float64, started bool) {
	if t < d.Delay || d.Duration <= 0 {
		return 0, false
	}
	into := (t - d.Delay) % d.Duration
	return float64(into) / float64(d.Duration), true
}

func (d RainDrop) LeftCSS() string     { return fmt.Sprintf("%g%%", d.Left) }
func (d RainDrop) DelayCSS() string    { return fmt.Sprintf("%gs", d.Delay.Seconds()) }
func (d RainDrop) DurationCSS() string { return fmt.Sprintf("%gs", d.Duration.Seconds()) }
