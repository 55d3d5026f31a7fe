// Package theme provides color themes for the TUI.
package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Double      lipgloss.Color
	Single      lipgloss.Color
	Evening     lipgloss.Color
	Warning     lipgloss.Color

	DoubleBg    lipgloss.Color
	DoubleBgAlt lipgloss.Color
	SingleBg    lipgloss.Color
	EveningBg   lipgloss.Color
	WarningBg   lipgloss.Color

	TextOnAccent  lipgloss.Color
	TextOnWarning lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load("mocha")
	}

	isLight := isLightTheme(t.Bg)
	doubleBgHex := lessonBg(t.Double, t.Bg, isLight)

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Double:      lipgloss.Color(t.Double),
		Single:      lipgloss.Color(t.Single),
		Evening:     lipgloss.Color(t.Evening),
		Warning:     lipgloss.Color(t.Warning),

		DoubleBg:    lipgloss.Color(doubleBgHex),
		DoubleBgAlt: lipgloss.Color(alternateShade(doubleBgHex, isLight)),
		SingleBg:    lipgloss.Color(lessonBg(t.Single, t.Bg, isLight)),
		EveningBg:   lipgloss.Color(lessonBg(t.Evening, t.Bg, isLight)),
		WarningBg:   lipgloss.Color(lessonBg(t.Warning, t.Bg, isLight)),

		TextOnAccent:  lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnWarning: lipgloss.Color(chooseTextColor(t.Warning, t.Bg, t.Fg)),
	}
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

func lessonBg(accent, bg string, isLight bool) string {
	if isLight {
		return blendColors(accent, bg, 0.75)
	}
	return darkenColor(accent)
}

// darkenColor halves each channel of a hex color with a floor of 40 so
// lesson backgrounds stay visible on dark themes.
func darkenColor(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}

	const minBrightness = 40
	r, g, b := channels(c)
	return fromChannels(max(r/2, minBrightness), max(g/2, minBrightness), max(b/2, minBrightness))
}

// alternateShade lifts or sinks a background for back-to-back double lessons.
func alternateShade(hex string, isLight bool) string {
	if isLight {
		return blendColors(hex, "#000000", 0.10)
	}
	return blendColors(hex, "#ffffff", 0.30)
}

func channels(c colorful.Color) (r, g, b int) {
	return int(c.R*255 + 0.5), int(c.G*255 + 0.5), int(c.B*255 + 0.5)
}

func fromChannels(r, g, b int) string {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}.Clamped().Hex()
}

func chooseTextColor(bg, lightText, darkText string) string {
	if contrastRatio(bg, lightText) >= contrastRatio(bg, darkText) {
		return lightText
	}
	return darkText
}

func contrastRatio(a, b string) float64 {
	l1 := relativeLuminance(a)
	l2 := relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// relativeLuminance is the WCAG luminance of a hex color, 0 when unparsable.
func relativeLuminance(hex string) float64 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// blendColors mixes b into a by ratio in RGB space.
func blendColors(a, b string, ratio float64) string {
	ca, errA := colorful.Hex(a)
	cb, errB := colorful.Hex(b)
	if errA != nil || errB != nil {
		return a
	}
	ratio = max(0, min(1, ratio))
	return ca.BlendRgb(cb, ratio).Clamped().Hex()
}
