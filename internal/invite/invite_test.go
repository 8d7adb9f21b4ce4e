package invite

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestMuteLabel(t *testing.T) {
	if got := MuteLabel(false); got != "Mute sounds" {
		t.Errorf("MuteLabel(false) = %q", got)
	}
	if got := MuteLabel(true); got != "Unmute sounds" {
		t.Errorf("MuteLabel(true) = %q", got)
	}
}

func TestUntil(t *testing.T) {
	ev := Default()
	if got := ev.Until(ev.Starts.Add(-90 * time.Minute)); got != 90*time.Minute {
		t.Errorf("Until before start = %v", got)
	}
	if got := ev.Until(ev.Starts); got != 0 {
		t.Errorf("Until at start = %v", got)
	}
	if got := ev.Until(ev.Starts.Add(time.Hour)); got != 0 {
		t.Errorf("Until after start = %v", got)
	}
}

func TestPageRender(t *testing.T) {
	ev := Default()
	var buf bytes.Buffer
	if err := Page(ev).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		"<title>Night of Mystics</title>",
		`href="` + ev.RSVPURL + `"`,
		"maps.google.com",
		`aria-label="Mute sounds"`,
		"Mexican Street Tacos",
		"Alcoholic &amp; Non-Alcoholic",
		"Please RSVP by October 25th",
		`<div class="rain-container" aria-hidden="true"></div>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Count(html, `class="fog fog-`) != 3 {
		t.Error("expected three fog layers")
	}
}

func TestPageRenderIsDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	if err := Page(Default()).Render(context.Background(), &a); err != nil {
		t.Fatal(err)
	}
	if err := Page(Default()).Render(context.Background(), &b); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Fatal("pre-rendered page differs between runs")
	}
}

func TestPageEscapes(t *testing.T) {
	ev := Default()
	ev.Title = `<script>alert("boo")</script>`
	ev.RSVPURL = "javascript:alert(1)"
	var buf bytes.Buffer
	if err := Page(ev).Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "<script>") {
		t.Error("title not escaped")
	}
	if strings.Contains(buf.String(), "javascript:") {
		t.Error("unsafe URL rendered")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

var errWrite = errors.New("disk full")

func TestPageRenderWriteError(t *testing.T) {
	if err := Page(Default()).Render(context.Background(), failingWriter{}); !errors.Is(err, errWrite) {
		t.Fatalf("render error = %v, want write error", err)
	}
}
