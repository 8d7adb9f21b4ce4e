package game

import (
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/storm-invite/internal/ambience"
	"github.com/iburimskiy/storm-invite/internal/config"
	"github.com/iburimskiy/storm-invite/internal/effects"
	"github.com/iburimskiy/storm-invite/internal/invite"
)

// Options wires the game to the controller and the effect sources.
type Options struct {
	Event      invite.Event
	Controller *ambience.Controller
	Clock      *ambience.Clock
	Random     effects.Random
	Fog        *effects.Fog
	Levels     func(n int) []float64 // optional mix levels for the meter
	Logger     *log.Logger
	Now        func() time.Time
}

type game struct {
	opts   Options
	logger *log.Logger

	// effects
	sky     *ebiten.Image
	drops   []effects.RainDrop
	mounted bool
	last    time.Time
	elapsed time.Duration
	levels  []float64

	// buttons
	buttons []*button
	pressed *button

	// external links
	prompting bool
	linkDone  chan error
	openLink  func(url, prompt string) error

	// input edge detection
	prevKey map[ebiten.Key]bool

	lastErr error
}

// New builds the ebiten game. Rain is not generated until the first Update.
func New(opts Options) ebiten.Game {
	return newGame(opts)
}

func newGame(opts Options) *game {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	g := &game{
		opts:     opts,
		logger:   logger,
		levels:   make([]float64, config.LevelBars),
		linkDone: make(chan error, 1),
		openLink: confirmAndOpen,
		prevKey:  map[ebiten.Key]bool{},
	}
	g.buttons = []*button{
		{
			x: config.ButtonX, y: config.ButtonY, w: config.ButtonWidth, h: config.ButtonHeight,
			label:  func() string { return invite.MuteLabel(g.opts.Controller.Muted()) },
			action: g.toggleMute,
		},
		{
			x: rsvpX, y: linksY, w: config.LinkWidth, h: config.LinkHeight,
			label:  func() string { return "RSVP Now" },
			action: g.openRSVP,
		},
		{
			x: rsvpX + config.LinkWidth + 16, y: linksY, w: config.LinkWidth, h: config.LinkHeight,
			label:  func() string { return "View on Maps" },
			action: g.openMap,
		},
	}
	return g
}

// mount is the first client-side render: rain is generated here and
// nowhere else, and the ambience starts.
func (g *game) mount(now time.Time) {
	g.drops = effects.GenerateRain(effects.DropCount, g.opts.Random)
	g.opts.Controller.Mount()
	g.last = now
	g.mounted = true
}

// advance mounts on the first frame and moves effect time forward by the
// wall time since the previous frame, capped so a stalled window does not
// replay a burst of lightning ticks.
func (g *game) advance(now time.Time) {
	if !g.mounted {
		g.mount(now)
	}
	step := now.Sub(g.last)
	if step < 0 {
		step = 0
	} else if step > config.MaxFrameStep {
		step = config.MaxFrameStep
	}
	g.last = now
	g.elapsed += step
	g.opts.Clock.Advance(step)
}

func (g *game) Update() error {
	g.advance(g.opts.Now())

	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	// Button interactions
	mouseX, mouseY := ebiten.CursorPosition()
	for _, b := range g.buttons {
		b.hovered = b.contains(mouseX, mouseY)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.pressed = g.buttonAt(mouseX, mouseY)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.pressed != nil && g.pressed.contains(mouseX, mouseY) {
			g.pressed.action()
		}
		g.pressed = nil
	}

	if justPressed(ebiten.KeyM) {
		g.toggleMute()
	}
	if justPressed(ebiten.KeyR) {
		g.openRSVP()
	}
	if justPressed(ebiten.KeyG) {
		g.openMap()
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		g.opts.Controller.Unmount()
		return ebiten.Termination
	}

	g.pollLinks()
	g.updateLevels()
	return nil
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

func (g *game) toggleMute() {
	muted := g.opts.Controller.ToggleMute()
	g.logger.Printf("game: muted=%v", muted)
}

func (g *game) openRSVP() {
	g.startLink(g.opts.Event.RSVPURL, "Open the RSVP form in your browser?")
}

func (g *game) openMap() {
	g.startLink(g.opts.Event.MapURL, "Open the venue in Google Maps?")
}

// startLink runs the confirmation dialog off the game goroutine; the
// result is collected by pollLinks.
func (g *game) startLink(url, prompt string) {
	if g.prompting || url == "" {
		return
	}
	g.prompting = true
	go func() {
		g.linkDone <- g.openLink(url, prompt)
	}()
}

func (g *game) pollLinks() {
	select {
	case err := <-g.linkDone:
		g.prompting = false
		g.lastErr = err
		if err != nil {
			g.logger.Printf("game: open link: %v", err)
		}
	default:
	}
}

func (g *game) updateLevels() {
	if g.opts.Levels == nil {
		return
	}
	samples := g.opts.Levels(len(g.levels))
	for i := range g.levels {
		if i >= len(samples) {
			break
		}
		// lift quiet levels for the meter
		mag := clamp01(samples[i] * 4)
		g.levels[i] = config.SmoothingFactor*g.levels[i] + (1-config.SmoothingFactor)*mag
	}
}

type button struct {
	x, y, w, h int
	label      func() string
	action     func()
	hovered    bool
}

func (b *button) contains(x, y int) bool {
	return x >= b.x && x <= b.x+b.w && y >= b.y && y <= b.y+b.h
}

func (g *game) buttonAt(x, y int) *button {
	for _, b := range g.buttons {
		if b.contains(x, y) {
			return b
		}
	}
	return nil
}
