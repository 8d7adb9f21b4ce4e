package ambience

import (
	"io"
	"log"
	"time"
)

const (
	DefaultTickInterval     = 3000 * time.Millisecond
	DefaultStrikeThreshold  = 0.7
	DefaultFlashDuration    = 100 * time.Millisecond
	DefaultSecondFlashDelay = 200 * time.Millisecond
	DefaultRainVolume       = 0.3
	DefaultThunderVolume    = 0.5
)

// Track is the audio capability the controller drives.
type Track interface {
	Load() error
	Play() error
	Pause()
	SetVolume(v float64)
	Rewind() error
}

// Random is the source of uniform values in [0, 1).
type Random interface {
	Float64() float64
}

// State is a snapshot of the controller's flags.
type State struct {
	Muted           bool
	LightningActive bool
}

// Options configures a Controller. Scheduler, Random, NewRain and
// NewThunder are required; zero timings and volumes take the defaults.
type Options struct {
	Scheduler  Scheduler
	Random     Random
	NewRain    func() Track
	NewThunder func() Track
	Logger     *log.Logger

	Muted bool

	TickInterval     time.Duration
	StrikeThreshold  float64
	FlashDuration    time.Duration
	SecondFlashDelay time.Duration
	RainVolume       float64
	ThunderVolume    float64

	// OnChange is called after every flag change, on the scheduler's goroutine.
	OnChange func(State)
}

// Controller owns the mute and lightning flags, the rain loop, the thunder
// one-shot and the recurring lightning tick.
type Controller struct {
	opts   Options
	logger *log.Logger

	muted     bool
	lightning bool
	mounted   bool

	rain    Track
	thunder Track

	stopTick   Cancel
	generation uint64
	nextID     uint64
	pending    map[uint64]Cancel
}

// New creates an unmounted controller.
func New(opts Options) *Controller {
	if opts.Scheduler == nil || opts.Random == nil || opts.NewRain == nil || opts.NewThunder == nil {
		panic("ambience: scheduler, random source and track factories are required")
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.StrikeThreshold == 0 {
		opts.StrikeThreshold = DefaultStrikeThreshold
	}
	if opts.FlashDuration <= 0 {
		opts.FlashDuration = DefaultFlashDuration
	}
	if opts.SecondFlashDelay <= 0 {
		opts.SecondFlashDelay = DefaultSecondFlashDelay
	}
	if opts.RainVolume == 0 {
		opts.RainVolume = DefaultRainVolume
	}
	if opts.ThunderVolume == 0 {
		opts.ThunderVolume = DefaultThunderVolume
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Controller{
		opts:    opts,
		logger:  logger,
		muted:   opts.Muted,
		pending: make(map[uint64]Cancel),
	}
}

func (c *Controller) Muted() bool           { return c.muted }
func (c *Controller) LightningActive() bool { return c.lightning }
func (c *Controller) Mounted() bool         { return c.mounted }

func (c *Controller) State() State {
	return State{Muted: c.muted, LightningActive: c.lightning}
}

// Mount runs the initial setup. Mounting twice is a no-op.
func (c *Controller) Mount() {
	if c.mounted {
		return
	}
	c.mounted = true
	c.setup()
}

// Unmount cancels the tick and any pending flashes and pauses both tracks.
func (c *Controller) Unmount() {
	if !c.mounted {
		return
	}
	c.teardown()
	c.mounted = false
}

// SetMuted changes the mute flag. A mounted controller tears down and
// re-runs setup so the tracks follow the new flag.
func (c *Controller) SetMuted(muted bool) {
	if c.muted == muted {
		return
	}
	if !c.mounted {
		c.muted = muted
		c.notify()
		return
	}
	c.teardown()
	c.muted = muted
	c.notify()
	c.setup()
}

// ToggleMute flips the mute flag and returns the new value.
func (c *Controller) ToggleMute() bool {
	c.SetMuted(!c.muted)
	return c.muted
}

func (c *Controller) setup() {
	c.generation++

	c.rain = c.opts.NewRain()
	c.thunder = c.opts.NewThunder()
	if err := c.rain.Load(); err != nil {
		c.logger.Printf("ambience: rain load failed: %v", err)
	}
	if err := c.thunder.Load(); err != nil {
		c.logger.Printf("ambience: thunder load failed: %v", err)
	}
	c.rain.SetVolume(c.opts.RainVolume)
	c.thunder.SetVolume(c.opts.ThunderVolume)

	if !c.muted {
		if err := c.rain.Play(); err != nil {
			c.logger.Printf("ambience: rain playback prevented: %v", err)
		}
	}

	c.stopTick = c.opts.Scheduler.Every(c.opts.TickInterval, c.Tick)
}

func (c *Controller) teardown() {
	c.generation++
	if c.stopTick != nil {
		c.stopTick()
		c.stopTick = nil
	}
	for id, cancel := range c.pending {
		cancel()
		delete(c.pending, id)
	}
	// the revert callbacks were cancelled with the flash still lit
	c.setLightning(false)
	if c.rain != nil {
		c.rain.Pause()
	}
	if c.thunder != nil {
		c.thunder.Pause()
	}
}

// Tick is one firing of the lightning timer: a strike happens only when
// the random draw exceeds the threshold.
func (c *Controller) Tick() {
	if c.opts.Random.Float64() <= c.opts.StrikeThreshold {
		return
	}
	c.Strike()
}

// Strike lights a double flash and, unless muted, restarts the thunder.
// Overlapping strikes are not merged.
func (c *Controller) Strike() {
	c.setLightning(true)
	if !c.muted && c.thunder != nil {
		if err := c.thunder.Rewind(); err != nil {
			c.logger.Printf("ambience: thunder rewind failed: %v", err)
		}
		if err := c.thunder.Play(); err != nil {
			c.logger.Printf("ambience: thunder playback failed: %v", err)
		}
	}

	flash := c.opts.FlashDuration
	c.after(flash, func() { c.setLightning(false) })
	c.after(c.opts.SecondFlashDelay, func() {
		c.setLightning(true)
		c.after(flash, func() { c.setLightning(false) })
	})
}

// after schedules fn for the current setup generation only.
func (c *Controller) after(d time.Duration, fn func()) {
	gen := c.generation
	c.nextID++
	id := c.nextID
	c.pending[id] = c.opts.Scheduler.After(d, func() {
		delete(c.pending, id)
		if gen != c.generation {
			return
		}
		fn()
	})
}

func (c *Controller) setLightning(on bool) {
	if c.lightning == on {
		return
	}
	c.lightning = on
	c.notify()
}

func (c *Controller) notify() {
	if c.opts.OnChange != nil {
		c.opts.OnChange(c.State())
	}
}
