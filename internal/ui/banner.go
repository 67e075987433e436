package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// MessageView is a colored strip with an icon and a wrapped message. It
// implements notify.View; every method may be called from any goroutine.
type MessageView struct {
	container *fyne.Container
	label     *widget.Label
}

// NewMessageView creates a hidden message strip
func NewMessageView(icon string, background color.Color) *MessageView {
	v := &MessageView{label: widget.NewLabel("")}
	v.label.Wrapping = fyne.TextWrapWord

	bg := canvas.NewRectangle(background)
	bg.CornerRadius = 4

	iconLabel := widget.NewLabel(icon)
	v.container = container.NewStack(bg, container.NewBorder(nil, nil, iconLabel, nil, v.label))
	v.container.Hide()
	return v
}

// Container returns the strip to place in a layout
func (v *MessageView) Container() fyne.CanvasObject {
	return v.container
}

// SetMessage replaces the displayed text
func (v *MessageView) SetMessage(message string) {
	fyne.Do(func() { v.label.SetText(message) })
}

// Show makes the strip visible
func (v *MessageView) Show() {
	fyne.Do(func() {
		v.container.Show()
		v.container.Refresh()
	})
}

// Hide hides the strip
func (v *MessageView) Hide() {
	fyne.Do(func() { v.container.Hide() })
}

// Text returns the displayed text
func (v *MessageView) Text() string {
	return v.label.Text
}

// Visible reports whether the strip is shown
func (v *MessageView) Visible() bool {
	return v.container.Visible()
}
