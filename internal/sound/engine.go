package sound

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

const (
	levelRingSize    = 64
	resampleQuality  = 4
	maxAssetBytes    = 32 << 20
	speakerBufferDiv = 20 // speaker buffer is 1/20 s
)

var (
	// ErrNoDevice is returned by Play when no audio output could be opened.
	ErrNoDevice = errors.New("sound: no audio device")
	// ErrNotLoaded is returned when a track's asset was never decoded.
	ErrNotLoaded = errors.New("sound: asset not loaded")
	// ErrUnsupportedFormat is returned for assets that are not mp3, wav or flac.
	ErrUnsupportedFormat = errors.New("sound: unsupported format")
)

// Engine decodes assets into memory and mixes tracks onto the speaker.
type Engine struct {
	rate   beep.SampleRate
	client *http.Client

	mixer *beep.Mixer
	tap   *levelTap

	mu     sync.Mutex
	ready  bool
	assets map[string]*beep.Buffer
}

// NewEngine creates a silent engine mixing at rate. A nil client uses
// http.DefaultClient.
func NewEngine(rate int, client *http.Client) *Engine {
	if client == nil {
		client = http.DefaultClient
	}
	mixer := &beep.Mixer{}
	return &Engine{
		rate:   beep.SampleRate(rate),
		client: client,
		mixer:  mixer,
		tap:    newLevelTap(mixer, levelRingSize),
		assets: make(map[string]*beep.Buffer),
	}
}

// Init opens the speaker. On failure the engine stays usable but silent.
func (e *Engine) Init() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ready {
		return nil
	}
	if err := speaker.Init(e.rate, e.rate.N(time.Second/speakerBufferDiv)); err != nil {
		return fmt.Errorf("%w: %v", ErrNoDevice, err)
	}
	speaker.Play(e.tap)
	e.ready = true
	return nil
}

// Ready reports whether the speaker is open.
func (e *Engine) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ready
}

// Close silences everything still attached to the mix.
func (e *Engine) Close() {
	speaker.Lock()
	e.mixer.Clear()
	speaker.Unlock()
}

// Levels returns the most recent n RMS levels of the mix, oldest first.
func (e *Engine) Levels(n int) []float64 {
	return e.tap.snapshot(n)
}

// Preload fetches and decodes every source. It returns the joined errors of
// the sources that failed; the others stay usable.
func (e *Engine) Preload(ctx context.Context, srcs ...string) error {
	var errs []error
	for _, src := range srcs {
		if e.buffer(src) != nil {
			continue
		}
		buf, err := e.decode(ctx, src)
		if err != nil {
			errs = append(errs, fmt.Errorf("preload %s: %w", src, err))
			continue
		}
		e.mu.Lock()
		e.assets[src] = buf
		e.mu.Unlock()
	}
	return errors.Join(errs...)
}

func (e *Engine) buffer(src string) *beep.Buffer {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.assets[src]
}

func (e *Engine) decode(ctx context.Context, src string) (*beep.Buffer, error) {
	data, err := e.fetch(ctx, src)
	if err != nil {
		return nil, err
	}

	rc := io.NopCloser(bytes.NewReader(data))
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(path.Ext(stripQuery(src))) {
	case ".wav":
		streamer, format, err = wav.Decode(rc)
	case ".mp3":
		streamer, format, err = mp3.Decode(rc)
	case ".flac":
		streamer, format, err = flac.Decode(rc)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, src)
	}
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != e.rate {
		s = beep.Resample(resampleQuality, format.SampleRate, e.rate, streamer)
	}
	format.SampleRate = e.rate
	buf := beep.NewBuffer(format)
	buf.Append(s)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return buf, nil
}

func (e *Engine) fetch(ctx context.Context, src string) ([]byte, error) {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		return os.ReadFile(src)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes+1))
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	if len(data) > maxAssetBytes {
		return nil, fmt.Errorf("fetch: asset larger than %d bytes", maxAssetBytes)
	}
	return data, nil
}

func stripQuery(src string) string {
	if i := strings.IndexAny(src, "?#"); i >= 0 {
		return src[:i]
	}
	return src
}
