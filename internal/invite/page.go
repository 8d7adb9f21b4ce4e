package invite

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Page renders the invitation as a standalone HTML document. The rain
// container is left empty: drops are generated by the interactive surface
// at mount, so the pre-rendered markup is identical on every run.
func Page(ev Event) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		p.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		p.raw(`<title>`).text(ev.Title).raw(`</title></head><body>`)

		p.raw(`<div class="lightning" aria-hidden="true"></div>`)
		p.raw(`<div class="rain-container" aria-hidden="true"></div>`)
		p.raw(`<div class="fog-container" aria-hidden="true">`)
		for i := 1; i <= 3; i++ {
			p.raw(fmt.Sprintf(`<div class="fog fog-%d"></div>`, i))
		}
		p.raw(`</div>`)
		p.raw(`<button class="mute" aria-label="`).text(MuteLabel(false)).raw(`"></button>`)

		p.raw(`<section class="hero"><h1>`).text(ev.Title).raw(`</h1><p>`).text(ev.Tagline).raw(`</p></section><main>`)

		p.raw(`<section class="details">`)
		for _, c := range ev.Details {
			p.card(c)
			if c.Title == "Where" && ev.MapURL != "" {
				p.link(ev.MapURL, "View on Google Maps")
			}
		}
		p.raw(`</section>`)

		p.raw(`<section class="expect"><h2>`).text(ev.Heading).raw(`</h2><p>`).text(ev.Intro).raw(`</p>`)
		for _, c := range ev.Highlights {
			p.card(c)
		}
		p.raw(`</section>`)

		p.raw(`<section class="dress-code"><h3>Dress Code</h3>`)
		for _, line := range ev.DressCode {
			p.raw(`<p>`).text(line).raw(`</p>`)
		}
		p.raw(`</section>`)

		p.raw(`<section class="rsvp"><h2>RSVP</h2><p>`).text(ev.RSVPNote).raw(`</p>`)
		p.link(ev.RSVPURL, "RSVP Now")
		p.raw(`<p>`).text(ev.RSVPBy).raw(`</p></section>`)

		p.raw(`</main></body></html>`)
		return p.err
	})
}

// printer keeps the first write error so the component body stays linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) raw(s string) *printer {
	if p.err == nil {
		_, p.err = io.WriteString(p.w, s)
	}
	return p
}

func (p *printer) text(s string) *printer {
	return p.raw(templ.EscapeString(s))
}

func (p *printer) card(c Card) {
	p.raw(`<div class="card">`)
	if c.Icon != "" {
		p.raw(`<div class="icon">`).text(c.Icon).raw(`</div>`)
	}
	p.raw(`<h3>`).text(c.Title).raw(`</h3>`)
	for _, line := range c.Lines {
		p.raw(`<p>`).text(line).raw(`</p>`)
	}
	p.raw(`</div>`)
}

func (p *printer) link(href, label string) {
	u := templ.URL(href)
	p.raw(`<a href="`).text(string(u)).raw(`" target="_blank" rel="noopener noreferrer">`).text(label).raw(`</a>`)
}
