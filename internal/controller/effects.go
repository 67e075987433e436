package controller

import (
	"github.com/paulmach/orb/geojson"

	"github.com/ytget/parcours/internal/model"
)

// Command is an input of the controller
type Command interface {
	Name() string
}

// Submit asks for a route built from the current form values
type Submit struct {
	Form model.RouteForm
}

// Name returns the command identifier
func (Submit) Name() string { return "submit" }

// ExportRequested asks for the last generated track to be saved
type ExportRequested struct{}

// Name returns the command identifier
func (ExportRequested) Name() string { return "export_requested" }

// Effect is an output of the controller, applied by a Presenter
type Effect interface {
	// Type returns a string identifier for this effect type (useful for logging).
	Type() string
}

// SetLoading toggles the loading indicator: submit control, label and spinner
type SetLoading struct {
	Loading bool
}

// HideError clears any visible error notification
type HideError struct{}

// ShowError displays a message in the error banner
type ShowError struct {
	Message string
}

// RenderRoute replaces the map overlay with a new route
type RenderRoute struct {
	Route        *geojson.FeatureCollection
	StartAddress string
}

// ShowMetrics fills the metrics panel and reveals it with the export control
type ShowMetrics struct {
	Metrics      model.Metrics
	StartAddress string
}

// ArtifactExported reports where the track file was written
type ArtifactExported struct {
	Path string
}

func (SetLoading) Type() string       { return "set_loading" }
func (HideError) Type() string        { return "hide_error" }
func (ShowError) Type() string        { return "show_error" }
func (RenderRoute) Type() string      { return "render_route" }
func (ShowMetrics) Type() string      { return "show_metrics" }
func (ArtifactExported) Type() string { return "artifact_exported" }

// Presenter consumes effects. Apply is called from the goroutine running
// Dispatch; implementations marshal to their UI thread themselves.
type Presenter interface {
	Apply(effect Effect)
}

// PresenterFunc adapts a function to the Presenter interface
type PresenterFunc func(Effect)

// Apply calls f(effect)
func (f PresenterFunc) Apply(effect Effect) { f(effect) }
