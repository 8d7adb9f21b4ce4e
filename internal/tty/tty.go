package tty

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/storm-invite/internal/ambience"
	"github.com/iburimskiy/storm-invite/internal/effects"
	"github.com/iburimskiy/storm-invite/internal/invite"
)

// FrameInterval is the terminal redraw period.
const FrameInterval = 50 * time.Millisecond

var (
	styleSky   = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorSilver)
	styleFlash = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
	styleTitle = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.NewRGBColor(255, 127, 110)).Bold(true)
	styleMist  = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorGray)
)

// Surface draws the invitation into a tcell screen.
type Surface struct {
	screen tcell.Screen
	event  invite.Event
	ctrl   *ambience.Controller
	clock  *ambience.Clock
	rng    effects.Random
	fog    *effects.Fog

	drops   []effects.RainDrop
	elapsed time.Duration
}

// NewSurface prepares a surface; nothing is generated until Mount.
func NewSurface(screen tcell.Screen, ev invite.Event, ctrl *ambience.Controller, clock *ambience.Clock, rng effects.Random, fog *effects.Fog) *Surface {
	return &Surface{screen: screen, event: ev, ctrl: ctrl, clock: clock, rng: rng, fog: fog}
}

// Mount generates the rain and starts the ambience.
func (s *Surface) Mount() {
	s.drops = effects.GenerateRain(effects.DropCount, s.rng)
	s.ctrl.Mount()
}

// Step advances effect time and the controller's clock.
func (s *Surface) Step(d time.Duration) {
	s.elapsed += d
	s.clock.Advance(d)
}

// HandleKey applies a key press and reports whether the surface should close.
func (s *Surface) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 'm', 'M':
			s.ctrl.ToggleMute()
		}
	}
	return false
}

// Draw renders one frame and shows it.
func (s *Surface) Draw() {
	w, h := s.screen.Size()
	base := styleSky
	if s.ctrl.LightningActive() {
		base = styleFlash
	}
	s.screen.SetStyle(base)
	s.screen.Clear()

	if s.fog != nil && !s.ctrl.LightningActive() {
		for x := 0; x < w; x++ {
			d := s.fog.Density(0, float64(x)/float64(max(w, 1)), s.elapsed)
			if d > 0.6 {
				s.screen.SetContent(x, h-2, '░', nil, styleMist)
			}
		}
	}

	for _, d := range s.drops {
		progress, started := d.Fall(s.elapsed)
		if !started {
			continue
		}
		x := int(d.Left / 100 * float64(w))
		y := int(progress * float64(h))
		r := '|'
		if d.Opacity < 0.2 {
			r = '\''
		}
		s.screen.SetContent(x, y, r, nil, base)
	}

	title := base
	if !s.ctrl.LightningActive() {
		title = styleTitle
	}
	row := 1
	row = s.print(2, row, s.event.Title, title)
	row = s.print(2, row, s.event.Tagline, base) + 1
	for _, c := range s.event.Details {
		row = s.print(2, row, c.Title+": "+joinLines(c.Lines), base)
	}
	row++
	for _, c := range s.event.Highlights {
		row = s.print(2, row, "* "+c.Title+" - "+joinLines(c.Lines), base)
	}
	row++
	row = s.print(2, row, "RSVP: "+s.event.RSVPURL, base)
	s.print(2, row, s.event.RSVPBy, base)

	status := fmt.Sprintf("[m] %s  [q] quit", invite.MuteLabel(s.ctrl.Muted()))
	s.print(max(w-len(status)-2, 0), h-1, status, title)

	s.screen.Show()
}

func (s *Surface) print(x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		s.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return y + 1
}

func joinLines(lines []string) string {
	return strings.Join(lines, ", ")
}

// Run drives the surface until ctx is done or the user quits. Key events
// are read on their own goroutine; everything else happens on this one.
func (s *Surface) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	s.Mount()
	defer s.ctrl.Unmount()

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()
	last := time.Now()
	s.Draw()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if s.HandleKey(ev) {
					return nil
				}
				s.Draw()
			case *tcell.EventResize:
				s.screen.Sync()
			}
		case now := <-ticker.C:
			s.Step(now.Sub(last))
			last = now
			s.Draw()
		}
	}
}
