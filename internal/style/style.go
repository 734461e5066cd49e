package style

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
	"github.com/robinovitch61/uiscroll/internal/dev"
)

var (
	output               = termenv.DefaultOutput()
	foregroundHex        = termenv.ConvertToRGB(output.ForegroundColor()).Hex()
	lighterForegroundHex = adjustColor(foregroundHex, 1.7)
	darkerForegroundHex  = adjustColor(foregroundHex, 0.1)
	backgroundHex        = termenv.ConvertToRGB(output.BackgroundColor()).Hex()
	lighterBackgroundHex = adjustColor(backgroundHex, 1.7)
	darkerBackgroundHex  = adjustColor(backgroundHex, 0.1)
	foreground           = lipgloss.Color(foregroundHex)
	altForeground        = lipgloss.AdaptiveColor{
		Light: lighterForegroundHex,
		Dark:  darkerForegroundHex,
	}
	background    = lipgloss.Color(backgroundHex)
	altBackground = lipgloss.AdaptiveColor{
		Light: lighterBackgroundHex,
		Dark:  darkerBackgroundHex,
	}
)

func DebugColors() {
	darkBg := termenv.HasDarkBackground()
	dev.Debug(fmt.Sprintf("has dark background: %t", darkBg))
	dev.Debug(fmt.Sprintf("foreground: %s, background: %s", foregroundHex, backgroundHex))
	if darkBg {
		dev.Debug(fmt.Sprintf("altForeground: %s, altBackground: %s", altForeground.Dark, altBackground.Dark))
	} else {
		dev.Debug(fmt.Sprintf("altForeground: %s, altBackground: %s", altForeground.Light, altBackground.Light))
	}
}

var (
	Regular             = lipgloss.NewStyle().Foreground(foreground).Background(background).BorderForeground(foreground).BorderBackground(background).ColorWhitespace(true)
	Bold                = Regular.Bold(true)
	Inverse             = Regular.Foreground(background).Background(foreground)
	AltInverse          = Inverse.Background(altForeground)
	ViewportFooterStyle = Bold
	StatusBarStyle      = Regular
	LoadingStyle        = Inverse
	PausedStyle         = AltInverse
	ToastStyle          = Inverse
	ErrorStyle          = Bold.Underline(true)
	ModalOptionStyle    = Regular.Margin(0, 1).Padding(0, 1)
	ModalSelectedStyle  = Inverse.Margin(0, 1).Padding(0, 1)
	KeyHelpStyle        = Bold.Foreground(background).Background(foreground).Underline(true)
)

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}

// adjustColor shifts lightness by a tenth of (factor - 1) and scales saturation by factor
func adjustColor(hexColor string, factor float64) string {
	c, err := colorful.Hex(hexColor)
	if err != nil {
		dev.Debug(fmt.Sprintf("invalid hex color %q: %v", hexColor, err))
		return "#000000"
	}
	h, s, l := c.Hsl()
	return colorful.Hsl(h, clamp01(s*factor), clamp01(l+(factor-1)*0.1)).Clamped().Hex()
}
