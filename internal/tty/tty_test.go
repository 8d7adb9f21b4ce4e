package tty

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/storm-invite/internal/ambience"
	"github.com/iburimskiy/storm-invite/internal/effects"
	"github.com/iburimskiy/storm-invite/internal/invite"
)

type silentTrack struct{}

func (silentTrack) Load() error       { return nil }
func (silentTrack) Play() error       { return nil }
func (silentTrack) Pause()            {}
func (silentTrack) SetVolume(float64) {}
func (silentTrack) Rewind() error     { return nil }

type constRandom float64

func (c constRandom) Float64() float64 { return float64(c) }

func newTestSurface(t *testing.T, draw float64) (*Surface, tcell.SimulationScreen, *ambience.Controller) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(100, 30)

	clock := ambience.NewClock()
	ctrl := ambience.New(ambience.Options{
		Scheduler:  clock,
		Random:     constRandom(draw),
		NewRain:    func() ambience.Track { return silentTrack{} },
		NewThunder: func() ambience.Track { return silentTrack{} },
	})
	s := NewSurface(screen, invite.Default(), ctrl, clock, constRandom(0.5), effects.NewFog(1))
	return s, screen, ctrl
}

func row(screen tcell.SimulationScreen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

func background(screen tcell.SimulationScreen, x, y int) tcell.Color {
	_, _, style, _ := screen.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return bg
}

func TestDrawShowsInvitation(t *testing.T) {
	s, screen, _ := newTestSurface(t, 0)
	s.Mount()
	s.Draw()

	if got := row(screen, 1); !strings.Contains(got, "Night of Mystics") {
		t.Fatalf("title row = %q", got)
	}
	if got := row(screen, 29); !strings.Contains(got, "[m] Mute sounds") {
		t.Fatalf("status row = %q", got)
	}
}

func TestMuteKey(t *testing.T) {
	s, screen, ctrl := newTestSurface(t, 0)
	s.Mount()

	if quit := s.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModNone)); quit {
		t.Fatal("m should not quit")
	}
	if !ctrl.Muted() {
		t.Fatal("m did not mute")
	}
	s.Draw()
	if got := row(screen, 29); !strings.Contains(got, "Unmute sounds") {
		t.Fatalf("status row = %q", got)
	}
}

func TestQuitKeys(t *testing.T) {
	s, _, _ := newTestSurface(t, 0)
	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
	} {
		if !s.HandleKey(ev) {
			t.Errorf("key %v did not quit", ev.Name())
		}
	}
}

func TestLightningFlashesScreen(t *testing.T) {
	s, screen, ctrl := newTestSurface(t, 0.9)
	s.Mount()

	s.Step(3 * time.Second)
	if !ctrl.LightningActive() {
		t.Fatal("expected a strike on the first tick")
	}
	s.Draw()
	if bg := background(screen, 99, 20); bg != tcell.ColorWhite {
		t.Fatalf("background during flash = %v", bg)
	}

	s.Step(150 * time.Millisecond)
	s.Draw()
	if bg := background(screen, 99, 20); bg != tcell.ColorBlack {
		t.Fatalf("background between flashes = %v", bg)
	}
}

func TestRunQuitsAndUnmounts(t *testing.T) {
	s, screen, ctrl := newTestSurface(t, 0)

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after q")
	}
	if ctrl.Mounted() {
		t.Fatal("controller still mounted after run")
	}
}

func TestRunStopsOnContext(t *testing.T) {
	s, _, ctrl := newTestSurface(t, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if ctrl.Mounted() {
		t.Fatal("controller still mounted after run")
	}
}
