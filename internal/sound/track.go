package sound

import (
	"math"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
)

// Track plays one decoded asset through the engine's mix, either looping
// or as a one-shot. Streamer state is only touched under speaker.Lock.
type Track struct {
	engine *Engine
	src    string
	loop   bool

	seeker beep.StreamSeeker
	ctrl   *beep.Ctrl
	volume *effects.Volume
	gate   *gate // non-nil while attached to the mix
	level  float64
}

// gate lets a paused track leave the mixer instead of streaming silence
// forever.
type gate struct {
	s      beep.Streamer
	closed bool
}

func (g *gate) Stream(samples [][2]float64) (int, bool) {
	if g.closed {
		return 0, false
	}
	return g.s.Stream(samples)
}

func (g *gate) Err() error { return g.s.Err() }

// NewTrack creates an unloaded track for src.
func (e *Engine) NewTrack(src string, loop bool) *Track {
	return &Track{engine: e, src: src, loop: loop, level: 1}
}

// Load binds the track to its preloaded buffer.
func (t *Track) Load() error {
	buf := t.engine.buffer(t.src)
	if buf == nil {
		return ErrNotLoaded
	}

	speaker.Lock()
	defer speaker.Unlock()

	t.seeker = buf.Streamer(0, buf.Len())
	var s beep.Streamer = t.seeker
	if t.loop {
		s = beep.Loop(-1, t.seeker)
	}
	t.ctrl = &beep.Ctrl{Streamer: s, Paused: true}
	t.volume = &effects.Volume{Streamer: t.ctrl, Base: 2}
	t.applyLevel()
	return nil
}

// Play starts or resumes playback.
func (t *Track) Play() error {
	if t.ctrl == nil {
		return ErrNotLoaded
	}
	if !t.engine.Ready() {
		return ErrNoDevice
	}

	speaker.Lock()
	defer speaker.Unlock()

	t.ctrl.Paused = false
	if t.gate == nil {
		g := &gate{s: t.volume}
		t.gate = g
		t.engine.mixer.Add(beep.Seq(g, beep.Callback(func() {
			// runs inside the speaker lock once the one-shot drains or the gate closes
			if t.gate == g {
				t.gate = nil
			}
		})))
	}
	return nil
}

// Pause holds the track at its current position and detaches it from
// the mix.
func (t *Track) Pause() {
	if t.ctrl == nil {
		return
	}
	speaker.Lock()
	defer speaker.Unlock()

	t.ctrl.Paused = true
	if t.gate != nil {
		t.gate.closed = true
		t.gate = nil
	}
}

// SetVolume sets a linear gain in [0, 1].
func (t *Track) SetVolume(v float64) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	speaker.Lock()
	t.level = v
	t.applyLevel()
	speaker.Unlock()
}

// Rewind moves playback back to the start of the asset.
func (t *Track) Rewind() error {
	if t.seeker == nil {
		return ErrNotLoaded
	}
	speaker.Lock()
	defer speaker.Unlock()
	return t.seeker.Seek(0)
}

// Playing reports whether the track is attached and unpaused.
func (t *Track) Playing() bool {
	if t.ctrl == nil {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return t.gate != nil && !t.ctrl.Paused
}

// Position returns the playback position in samples.
func (t *Track) Position() int {
	if t.seeker == nil {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	return t.seeker.Position()
}

func (t *Track) applyLevel() {
	if t.volume == nil {
		return
	}
	t.volume.Silent = t.level == 0
	if t.level > 0 {
		t.volume.Volume = math.Log2(t.level)
	}
}
