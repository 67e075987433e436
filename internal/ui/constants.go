package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconExport   = "⬇"
	IconError    = "⚠"
	IconInfo     = "✔"
	IconStart    = "📍"
)

// Layout sizing
const (
	FormMinWidth  float32 = 300
	MapMinWidth   float32 = 320
	MapMinHeight  float32 = 240
	SplitOffset           = 0.32
	LogoSize      float32 = 32
	DialogWidth   float32 = 520
	DialogHeight  float32 = 420
	MetricsColumn         = 2

	// Touch target minimum sizes (iOS/Android guidelines)
	MinTouchTargetSize float32 = 44
	MobileButtonHeight float32 = 48
)

// Map interaction and rendering
const (
	MapRedrawDebounce = 100 * time.Millisecond
	MapRenderTimeout  = 30 * time.Second
)


// Default form values
const (
	DefaultDistanceText = "10"
)

// StartLocationExamples are suggested as placeholder when the start field gets focus
var StartLocationExamples = []string{
	"Place de la République, Paris",
	"Tour Eiffel, Paris",
	"Jardin du Luxembourg, Paris",
	"Parc des Buttes-Chaumont, Paris",
}
