package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/storm-invite/internal/config"
	"github.com/iburimskiy/storm-invite/internal/effects"
	"github.com/iburimskiy/storm-invite/internal/invite"
)

// Content layout
const (
	margin      = 40
	charWidth   = 6 // debug font advance
	lineHeight  = 16
	cardWidth   = 296
	cardGap     = 16
	detailsY    = 100
	detailsH    = 76
	highlightsY = 230
	highlightsH = 52
	dressCodeY  = 380
	rsvpY       = 440
	rsvpX       = margin
	linksY      = rsvpY + 2*lineHeight + 8
	countdownY  = linksY + config.LinkHeight + 24
)

func (g *game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)
	g.drawFog(screen)
	g.drawRain(screen)
	g.drawLightning(screen)

	g.drawContent(screen)
	for _, b := range g.buttons {
		g.drawButton(screen, b)
	}
	g.drawLevelMeter(screen)

	status := "M: mute/unmute  R: RSVP  G: map  Esc/Q: quit"
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, config.WindowHeight-lineHeight-4)
}

func (g *game) drawBackground(screen *ebiten.Image) {
	if g.sky == nil {
		g.sky = ebiten.NewImage(config.WindowWidth, config.WindowHeight)
		for y := 0; y < config.WindowHeight; y++ {
			c := nrgba(skyAt(float64(y)/float64(config.WindowHeight)), 1)
			vector.DrawFilledRect(g.sky, 0, float32(y), config.WindowWidth, 1, c, false)
		}
	}
	screen.DrawImage(g.sky, nil)
}

func (g *game) drawFog(screen *ebiten.Image) {
	if g.opts.Fog == nil {
		return
	}
	colWidth := float32(config.WindowWidth) / config.FogColumns
	for layer := 0; layer < effects.FogLayers; layer++ {
		bandY := float32(config.WindowHeight) - float32(layer+1)*config.FogBandHeight*0.8
		for col := 0; col < config.FogColumns; col++ {
			x := (float64(col) + 0.5) / config.FogColumns
			d := g.opts.Fog.Density(layer, x, g.elapsed)
			c := nrgba(mist, d*0.07)
			vector.DrawFilledRect(screen, float32(col)*colWidth, bandY, colWidth+1, config.FogBandHeight, c, false)
		}
	}
}

func (g *game) drawRain(screen *ebiten.Image) {
	h := float64(config.WindowHeight + config.DropLength)
	for _, d := range g.drops {
		progress, started := d.Fall(g.elapsed)
		if !started {
			continue
		}
		x := float32(d.Left / 100 * config.WindowWidth)
		y := float32(progress*h) - config.DropLength
		vector.StrokeLine(screen, x, y, x, y+config.DropLength, 1, nrgba(rainBlue, d.Opacity), false)
	}
}

func (g *game) drawLightning(screen *ebiten.Image) {
	if !g.opts.Controller.LightningActive() {
		return
	}
	vector.DrawFilledRect(screen, 0, 0, config.WindowWidth, config.WindowHeight, nrgba(flash, config.LightningAlpha), false)
}

func (g *game) drawContent(screen *ebiten.Image) {
	ev := g.opts.Event

	ebitenutil.DebugPrintAt(screen, ev.Title, margin, margin)
	ebitenutil.DebugPrintAt(screen, ev.Tagline, margin, margin+lineHeight+4)

	for i, c := range ev.Details {
		drawCard(screen, c, margin+i*(cardWidth+cardGap), detailsY, detailsH)
	}

	ebitenutil.DebugPrintAt(screen, ev.Heading+" - "+ev.Intro, margin, highlightsY-lineHeight-8)
	for i, c := range ev.Highlights {
		col, row := i%3, i/3
		drawCard(screen, c, margin+col*(cardWidth+cardGap), highlightsY+row*(highlightsH+cardGap/2), highlightsH)
	}

	ebitenutil.DebugPrintAt(screen, "Dress Code", margin, dressCodeY)
	for i, line := range ev.DressCode {
		ebitenutil.DebugPrintAt(screen, line, margin, dressCodeY+(i+1)*lineHeight)
	}

	ebitenutil.DebugPrintAt(screen, "RSVP - "+ev.RSVPNote, rsvpX, rsvpY)
	ebitenutil.DebugPrintAt(screen, ev.RSVPBy, rsvpX, rsvpY+lineHeight)

	left := ev.Until(g.opts.Now())
	countdown := "The party has started!"
	if left > 0 {
		countdown = "Party starts in " + formatCountdown(left.Truncate(time.Second))
	}
	ebitenutil.DebugPrintAt(screen, countdown, rsvpX, countdownY)
}

func drawCard(screen *ebiten.Image, c invite.Card, x, y, h int) {
	vector.DrawFilledRect(screen, float32(x), float32(y), cardWidth, float32(h), nrgba(skyTop, 0.6), false)
	vector.StrokeRect(screen, float32(x), float32(y), cardWidth, float32(h), 1, nrgba(coral, 0.3), false)
	ebitenutil.DebugPrintAt(screen, c.Title, x+10, y+6)
	for i, line := range c.Lines {
		ebitenutil.DebugPrintAt(screen, line, x+10, y+6+(i+1)*lineHeight)
	}
}

func (g *game) drawButton(screen *ebiten.Image, b *button) {
	alpha := 0.8
	if g.pressed == b {
		alpha = 1
	} else if b.hovered {
		alpha = 0.9
	}
	border := 0.3
	if b.hovered {
		border = 0.6
	}

	vector.DrawFilledRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h), nrgba(skyMid, alpha), false)
	vector.StrokeRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h), 2, nrgba(coral, border), false)

	text := b.label()
	textX := b.x + (b.w-len(text)*charWidth)/2
	textY := b.y + (b.h-lineHeight)/2
	ebitenutil.DebugPrintAt(screen, text, textX, textY)
}

// drawLevelMeter shows what the mix is playing, left of the mute button.
func (g *game) drawLevelMeter(screen *ebiten.Image) {
	if g.opts.Levels == nil {
		return
	}
	const barWidth = 3
	x0 := config.ButtonX - len(g.levels)*(barWidth+1) - 12
	for i, level := range g.levels {
		h := float32(2 + level*(config.ButtonHeight-4))
		x := float32(x0 + i*(barWidth+1))
		y := float32(config.ButtonY+config.ButtonHeight) - h
		vector.DrawFilledRect(screen, x, y, barWidth, h, nrgba(coral, 0.4+0.6*level), false)
	}
}
