package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	skyTop    = colorful.Color{R: 0, G: 0, B: 0}
	skyMid    = mustHex("#09090b") // zinc-950
	skyBottom = mustHex("#0c0a09") // stone-950
	coral     = mustHex("#ff7f6e")
	mist      = mustHex("#d4d4d8")
	rainBlue  = mustHex("#aec2e0")
	flash     = colorful.Color{R: 1, G: 1, B: 1}
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// skyAt returns the background gradient color at ratio (0 top, 1 bottom).
func skyAt(ratio float64) colorful.Color {
	ratio = clamp01(ratio)
	if ratio < 0.5 {
		return skyTop.BlendLab(skyMid, ratio*2).Clamped()
	}
	return skyMid.BlendLab(skyBottom, (ratio-0.5)*2).Clamped()
}

// nrgba converts c with a straight alpha in [0, 1].
func nrgba(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clamp01(alpha) * 255)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// formatCountdown formats a duration as "Dd HH:MM:SS", dropping the day
// part when under a day.
func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %02d:%02d:%02d", days, hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
