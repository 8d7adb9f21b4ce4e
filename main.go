package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/storm-invite/internal/ambience"
	"github.com/iburimskiy/storm-invite/internal/config"
	"github.com/iburimskiy/storm-invite/internal/effects"
	"github.com/iburimskiy/storm-invite/internal/game"
	"github.com/iburimskiy/storm-invite/internal/invite"
	"github.com/iburimskiy/storm-invite/internal/sound"
	"github.com/iburimskiy/storm-invite/internal/tty"
)

const (
	logFileName = "storm-invite.log"
	maxLogSize  = 10 << 20
)

var (
	mutedFlag  = flag.Bool("muted", false, "Start with sounds muted")
	ttyFlag    = flag.Bool("tty", false, "Render in the terminal instead of a window")
	exportFlag = flag.String("export", "", "Write the invitation as HTML to `file` and exit")
	seedFlag   = flag.Int64("seed", 0, "Random seed for rain and lightning (0 picks one)")
	debugFlag  = flag.Bool("debug", false, "Write a debug log")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "storm-invite: %v\n", err)
		os.Exit(2)
	}
	if *mutedFlag {
		cfg.Muted = true
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}

	if logFile := setupLogging(cfg.LogDir, *debugFlag); logFile != nil {
		defer logFile.Close()
	}

	if *exportFlag != "" {
		if err := export(*exportFlag, invite.Default()); err != nil {
			fmt.Fprintf(os.Stderr, "storm-invite: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(cfg, *ttyFlag); err != nil {
		fmt.Fprintf(os.Stderr, "storm-invite: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, terminal bool) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("starting: seed=%d muted=%v tty=%v", seed, cfg.Muted, terminal)
	rng := rand.New(rand.NewSource(seed))

	engine := sound.NewEngine(cfg.SampleRate, &http.Client{Timeout: cfg.FetchTimeout})
	if err := engine.Init(); err != nil {
		log.Printf("audio disabled: %v", err)
	}
	defer engine.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
	if err := engine.Preload(ctx, cfg.RainURL, cfg.ThunderURL); err != nil {
		log.Printf("preload: %v", err)
	}
	cancel()

	clock := ambience.NewClock()
	ctrl := ambience.New(ambience.Options{
		Scheduler:     clock,
		Random:        rng,
		NewRain:       func() ambience.Track { return engine.NewTrack(cfg.RainURL, true) },
		NewThunder:    func() ambience.Track { return engine.NewTrack(cfg.ThunderURL, false) },
		Logger:        log.Default(),
		Muted:         cfg.Muted,
		RainVolume:    cfg.RainVolume,
		ThunderVolume: cfg.ThunderVolume,
		OnChange: func(s ambience.State) {
			log.Printf("ambience: muted=%v lightning=%v", s.Muted, s.LightningActive)
		},
	})
	defer ctrl.Unmount()

	ev := invite.Default()
	fog := effects.NewFog(seed)

	if terminal {
		return runTerminal(ev, ctrl, clock, rng, fog)
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(ev.Title + " - M: mute, R: RSVP, G: map, Esc/Q: quit")
	g := game.New(game.Options{
		Event:      ev,
		Controller: ctrl,
		Clock:      clock,
		Random:     rng,
		Fog:        fog,
		Levels:     engine.Levels,
		Logger:     log.Default(),
	})
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func runTerminal(ev invite.Event, ctrl *ambience.Controller, clock *ambience.Clock, rng *rand.Rand, fog *effects.Fog) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	// Restore the terminal before the stack trace is printed.
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\nstorm-invite crashed: %v\nStack Trace:\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
		screen.Fini()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return tty.NewSurface(screen, ev, ctrl, clock, rng, fog).Run(ctx)
}

func export(path string, ev invite.Event) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := invite.Page(ev).Render(context.Background(), f); err != nil {
		f.Close()
		return fmt.Errorf("export: render: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	log.Printf("exported invitation to %s", path)
	return nil
}

// setupLogging sends the standard logger to dir/storm-invite.log when enabled,
// rotating a file over maxLogSize aside first. Otherwise logs are
// discarded and nil is returned.
func setupLogging(dir string, enabled bool) *os.File {
	if !enabled {
		log.SetOutput(io.Discard)
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "log dir: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}

	path := filepath.Join(dir, logFileName)
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(dir, fmt.Sprintf("storm-invite-%s.log", time.Now().Format("20060102-150405")))
		if err := os.Rename(path, rotated); err != nil {
			fmt.Fprintf(os.Stderr, "rotate log: %v\n", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	return f
}
