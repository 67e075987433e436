package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/parcours/internal/model"
)

// MetricsPanel shows the statistics of the last generated route. It starts
// hidden and is revealed by the first Render.
type MetricsPanel struct {
	localization *Localization

	card          *widget.Card
	distance      *widget.Label
	elevationGain *widget.Label
	elevationLoss *widget.Label
	duration      *widget.Label
	startAddress  *widget.Label

	distanceCaption *widget.Label
	gainCaption     *widget.Label
	lossCaption     *widget.Label
	durationCaption *widget.Label

	address string
}

// NewMetricsPanel creates a hidden metrics card
func NewMetricsPanel(localization *Localization) *MetricsPanel {
	p := &MetricsPanel{
		localization:    localization,
		distance:        valueLabel(),
		elevationGain:   valueLabel(),
		elevationLoss:   valueLabel(),
		duration:        valueLabel(),
		startAddress:    widget.NewLabel(""),
		distanceCaption: widget.NewLabel(""),
		gainCaption:     widget.NewLabel(""),
		lossCaption:     widget.NewLabel(""),
		durationCaption: widget.NewLabel(""),
	}
	p.startAddress.Wrapping = fyne.TextWrapWord

	grid := container.NewGridWithColumns(MetricsColumn,
		metricCell(p.distanceCaption, p.distance),
		metricCell(p.durationCaption, p.duration),
		metricCell(p.gainCaption, p.elevationGain),
		metricCell(p.lossCaption, p.elevationLoss),
	)
	p.card = widget.NewCard("", "", container.NewVBox(grid, p.startAddress))
	p.RefreshTexts()
	p.card.Hide()
	return p
}

func valueLabel() *widget.Label {
	l := widget.NewLabel("")
	l.TextStyle = fyne.TextStyle{Bold: true}
	return l
}

func metricCell(caption, value *widget.Label) fyne.CanvasObject {
	caption.Importance = widget.LowImportance
	return container.NewVBox(caption, value)
}

// Container returns the card
func (p *MetricsPanel) Container() fyne.CanvasObject {
	return p.card
}

// Render writes the metrics as text and reveals the panel. Values are set as
// plain text, never interpreted.
func (p *MetricsPanel) Render(metrics model.Metrics, startAddress string) {
	p.distance.SetText(metrics.DistanceText())
	p.elevationGain.SetText(metrics.ElevationGainText())
	p.elevationLoss.SetText(metrics.ElevationLossText())
	p.duration.SetText(metrics.DurationText())

	p.address = startAddress
	p.startAddress.SetText(p.startText())

	p.card.Show()
}

// RefreshTexts relabels the panel for the current language
func (p *MetricsPanel) RefreshTexts() {
	l := p.localization
	p.card.SetTitle(l.GetText(KeyMetrics))
	p.distanceCaption.SetText(l.GetText(KeyMetricDistance))
	p.gainCaption.SetText(l.GetText(KeyMetricElevationGain))
	p.lossCaption.SetText(l.GetText(KeyMetricElevationLoss))
	p.durationCaption.SetText(l.GetText(KeyMetricDuration))
	if p.card.Visible() {
		p.startAddress.SetText(p.startText())
	}
}

func (p *MetricsPanel) startText() string {
	return fmt.Sprintf("%s: %s", p.localization.GetText(KeyStartAddress), p.address)
}

// Visible reports whether the panel has been revealed
func (p *MetricsPanel) Visible() bool {
	return p.card.Visible()
}
