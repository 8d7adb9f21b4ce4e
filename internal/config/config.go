package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	WindowWidth  = 1024
	WindowHeight = 768

	// Mute button, bottom right
	ButtonWidth  = 132
	ButtonHeight = 40
	ButtonX      = WindowWidth - ButtonWidth - 32
	ButtonY      = WindowHeight - ButtonHeight - 32

	// Link buttons
	LinkWidth  = 150
	LinkHeight = 36

	// Visual parameters
	DropLength      = 28
	LightningAlpha  = 0.2
	FogColumns      = 64
	FogBandHeight   = 140
	LevelBars       = 24
	SmoothingFactor = 0.6
	MaxFrameStep    = 250 * time.Millisecond
)

// Config is the runtime configuration, read from the environment and then
// overridden by command-line flags.
type Config struct {
	RainURL       string        `env:"STORM_INVITE_RAIN_URL" envDefault:"https://assets.mixkit.co/active_storage/sfx/2393/2393-preview.mp3"`
	ThunderURL    string        `env:"STORM_INVITE_THUNDER_URL" envDefault:"https://assets.mixkit.co/active_storage/sfx/2800/2800-preview.mp3"`
	RainVolume    float64       `env:"STORM_INVITE_RAIN_VOLUME" envDefault:"0.3"`
	ThunderVolume float64       `env:"STORM_INVITE_THUNDER_VOLUME" envDefault:"0.5"`
	Muted         bool          `env:"STORM_INVITE_MUTED" envDefault:"false"`
	Seed          int64         `env:"STORM_INVITE_SEED" envDefault:"0"`
	SampleRate    int           `env:"STORM_INVITE_SAMPLE_RATE" envDefault:"44100"`
	FetchTimeout  time.Duration `env:"STORM_INVITE_FETCH_TIMEOUT" envDefault:"15s"`
	LogDir        string        `env:"STORM_INVITE_LOG_DIR" envDefault:"logs"`
}

// Load parses the environment into a validated Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every out-of-range field.
func (c Config) Validate() error {
	var errs []error
	if c.RainURL == "" {
		errs = append(errs, errors.New("rain url is empty"))
	}
	if c.ThunderURL == "" {
		errs = append(errs, errors.New("thunder url is empty"))
	}
	if c.RainVolume < 0 || c.RainVolume > 1 {
		errs = append(errs, fmt.Errorf("rain volume %v outside [0,1]", c.RainVolume))
	}
	if c.ThunderVolume < 0 || c.ThunderVolume > 1 {
		errs = append(errs, fmt.Errorf("thunder volume %v outside [0,1]", c.ThunderVolume))
	}
	if c.SampleRate < 8000 || c.SampleRate > 192000 {
		errs = append(errs, fmt.Errorf("sample rate %d outside [8000,192000]", c.SampleRate))
	}
	if c.FetchTimeout <= 0 {
		errs = append(errs, fmt.Errorf("fetch timeout %v must be positive", c.FetchTimeout))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
