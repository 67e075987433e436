package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// MobileUI picks layouts and sizes depending on the device
type MobileUI struct {
	app fyne.App
}

// NewMobileUI creates a new mobile UI helper
func NewMobileUI(app fyne.App) *MobileUI {
	return &MobileUI{app: app}
}

// IsMobileDevice checks if the app is running on a mobile device
func (m *MobileUI) IsMobileDevice() bool {
	return fyne.CurrentDevice().IsMobile()
}

// IsPortrait returns true if device is in portrait orientation
func (m *MobileUI) IsPortrait() bool {
	orientation := fyne.CurrentDevice().Orientation()
	return orientation == fyne.OrientationVertical || orientation == fyne.OrientationVerticalUpsideDown
}

// SplitLayout places the form beside the map on desktop and in landscape,
// and under the map on a phone held upright
func (m *MobileUI) SplitLayout(form, mapView fyne.CanvasObject) *container.Split {
	if m.IsMobileDevice() && m.IsPortrait() {
		split := container.NewVSplit(mapView, form)
		split.Offset = 0.5
		return split
	}

	split := container.NewHSplit(form, mapView)
	split.Offset = SplitOffset
	return split
}

// TouchSized wraps a button so it keeps a finger-sized height on mobile
func (m *MobileUI) TouchSized(btn *widget.Button) fyne.CanvasObject {
	if !m.IsMobileDevice() {
		return btn
	}
	spacer := canvas.NewRectangle(color.Transparent)
	spacer.SetMinSize(fyne.NewSize(MinTouchTargetSize, MobileButtonHeight))
	return container.New(layout.NewStackLayout(), spacer, btn)
}
