package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ytget/parcours/internal/export"
	"github.com/ytget/parcours/internal/generate"
	"github.com/ytget/parcours/internal/model"
)

// User-facing messages
const (
	MessageGenericFailure  = "Une erreur est survenue lors de la génération du parcours"
	MessageServiceFailure  = "Erreur lors de la génération du parcours"
	MessageNothingToExport = "Aucun parcours à exporter"
	MessageExportFailed    = "Impossible d'enregistrer le parcours"
)

var (
	// ErrBusy is returned when a submission arrives while another one is in flight
	ErrBusy = errors.New("a route is already being generated")

	// ErrUnknownCommand is returned for commands the controller does not handle
	ErrUnknownCommand = errors.New("unknown command")
)

// Controller owns the application state of a session: the controller phase,
// the loading flag and the last exportable artifact.
type Controller struct {
	mu           sync.Mutex
	state        model.State
	lastOutcome  model.State
	loading      bool
	artifact     string
	hasArtifact  bool
	startAddress string

	generator generate.Generator
	exporter  export.Exporter
	presenter Presenter
	log       zerolog.Logger
	newID     func() string
}

// New creates a controller in the Idle state with no artifact
func New(generator generate.Generator, exporter export.Exporter, presenter Presenter, log zerolog.Logger) *Controller {
	return &Controller{
		state:       model.StateIdle,
		lastOutcome: model.StateIdle,
		generator:   generator,
		exporter:    exporter,
		presenter:   presenter,
		log:         log.With().Str("component", "controller").Logger(),
		newID:       uuid.NewString,
	}
}

// Dispatch runs a command to completion. Submit blocks until the generation
// request settles, so callers on a UI thread should run it in a goroutine.
// Failures of the request are reported through effects and do not surface as
// errors; only rejected commands do.
func (c *Controller) Dispatch(ctx context.Context, cmd Command) error {
	switch cmd := cmd.(type) {
	case Submit:
		return c.submit(ctx, cmd.Form)
	case ExportRequested:
		c.exportArtifact()
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
}

// State returns the current phase
func (c *Controller) State() model.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastOutcome returns the settled state of the latest request, or Idle if none
func (c *Controller) LastOutcome() model.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastOutcome
}

// Loading reports whether a request is in flight
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Artifact returns the GPX of the latest successful response
func (c *Controller) Artifact() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.artifact, c.hasArtifact
}

// StartAddress returns the resolved start address of the latest successful response
func (c *Controller) StartAddress() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startAddress
}

func (c *Controller) submit(ctx context.Context, form model.RouteForm) error {
	if !c.begin() {
		c.log.Warn().Msg("submission rejected while a request is in flight")
		return ErrBusy
	}

	id := c.newID()
	log := c.log.With().Str("request_id", id).Logger()

	c.emit(HideError{})
	c.emit(SetLoading{Loading: true})
	defer c.settle(log)

	req := form.Request()
	log.Info().
		Str("start_location", req.StartLocation).
		Float64("distance_km", req.DistanceKm).
		Str("training_type", string(req.TrainingType)).
		Str("elevation_preference", string(req.ElevationPreference)).
		Msg("generating route")

	route, err := c.generator.Generate(generate.WithRequestID(ctx, id), req)
	if err != nil {
		c.fail(log, err)
		return nil
	}

	c.succeed(log, route)
	return nil
}

// begin moves Idle to Submitting; it fails if a request is already in flight
func (c *Controller) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loading {
		return false
	}
	c.loading = true
	c.state = model.StateSubmitting
	return true
}

func (c *Controller) succeed(log zerolog.Logger, route *model.RouteResponse) {
	c.mu.Lock()
	c.artifact = route.GPX
	c.hasArtifact = true
	c.startAddress = route.StartAddress
	c.state = model.StateSuccess
	c.lastOutcome = model.StateSuccess
	c.mu.Unlock()

	c.emit(RenderRoute{Route: route.GeoJSON, StartAddress: route.StartAddress})
	c.emit(ShowMetrics{Metrics: route.Metrics, StartAddress: route.StartAddress})

	log.Info().
		Str("start_address", route.StartAddress).
		Float64("distance_km", route.Metrics.DistanceKm).
		Int("gpx_bytes", len(route.GPX)).
		Msg("route generated")
}

func (c *Controller) fail(log zerolog.Logger, err error) {
	c.mu.Lock()
	c.state = model.StateFailure
	c.lastOutcome = model.StateFailure
	c.mu.Unlock()

	message := FailureMessage(err)
	log.Error().Err(err).Str("message", message).Msg("route generation failed")
	c.emit(ShowError{Message: message})
}

// settle always runs when a submission ends, whatever the outcome, including
// a panic while handling the response.
func (c *Controller) settle(log zerolog.Logger) {
	if r := recover(); r != nil {
		log.Error().Interface("panic", r).Msg("route handling panicked")
		c.mu.Lock()
		c.state = model.StateFailure
		c.lastOutcome = model.StateFailure
		c.mu.Unlock()
		c.emit(ShowError{Message: MessageGenericFailure})
	}

	c.mu.Lock()
	c.loading = false
	c.state = model.StateIdle
	c.mu.Unlock()

	c.emit(SetLoading{Loading: false})
}

func (c *Controller) exportArtifact() {
	c.mu.Lock()
	artifact, ok := c.artifact, c.hasArtifact
	c.mu.Unlock()

	if !ok || artifact == "" {
		c.log.Info().Msg("export requested without a generated route")
		c.emit(ShowError{Message: MessageNothingToExport})
		return
	}

	path, err := c.exporter.Export(artifact)
	if err != nil {
		if errors.Is(err, export.ErrNoArtifact) {
			c.emit(ShowError{Message: MessageNothingToExport})
			return
		}
		c.log.Error().Err(err).Msg("export failed")
		c.emit(ShowError{Message: fmt.Sprintf("%s: %v", MessageExportFailed, err)})
		return
	}

	c.emit(ArtifactExported{Path: path})
}

func (c *Controller) emit(effect Effect) {
	c.log.Debug().Str("effect", effect.Type()).Msg("emit")
	c.presenter.Apply(effect)
}

// FailureMessage converts a generation error into the text shown to the user:
// the service's detail when it gave one, a fixed message otherwise.
func FailureMessage(err error) string {
	var apiErr *generate.Error
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return MessageServiceFailure
	}
	return MessageGenericFailure
}
