package ui

import (
	"context"
	"errors"
	"sync"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/parcours/internal/config"
	"github.com/ytget/parcours/internal/controller"
	"github.com/ytget/parcours/internal/generate"
	"github.com/ytget/parcours/internal/model"
)

type stubGenerator struct {
	mu       sync.Mutex
	requests []model.RouteRequest
	response *model.RouteResponse
	err      error
	baseURL  string
}

func (g *stubGenerator) Generate(_ context.Context, req model.RouteRequest) (*model.RouteResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	return g.response, g.err
}

func (g *stubGenerator) Health(context.Context) error { return nil }

func (g *stubGenerator) SetBaseURL(baseURL string) { g.baseURL = baseURL }

type stubExporter struct {
	dir string
}

func (e *stubExporter) Export(artifact string) (string, error) {
	if artifact == "" {
		return "", errors.New("empty")
	}
	return "/tmp/parcours_1.gpx", nil
}

func (e *stubExporter) SetDirectory(dir string) { e.dir = dir }

func sampleRoute() *model.RouteResponse {
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.LineString{{2.2945, 48.8584}, {2.3050, 48.8650}, {2.2945, 48.8584}}))

	duration := 60.0
	return &model.RouteResponse{
		GeoJSON:      fc,
		StartAddress: "Tour Eiffel, Paris",
		GPX:          "<gpx/>",
		Metrics: model.Metrics{
			DistanceKm:           10.02,
			ElevationGainM:       35.5,
			ElevationLossM:       34,
			EstimatedDurationMin: &duration,
		},
	}
}

func newTestUI(t *testing.T, gen *stubGenerator) (*RootUI, *stubExporter) {
	t.Helper()

	app := test.NewApp()
	t.Cleanup(app.Quit)
	window := app.NewWindow("test")

	exp := &stubExporter{}
	ui := NewRootUI(window, app, config.NewSettings(app), Services{
		Generator: gen,
		Exporter:  exp,
		Log:       zerolog.Nop(),
	})
	return ui, exp
}

func TestRootUI_InitialState(t *testing.T) {
	ui, _ := newTestUI(t, &stubGenerator{})

	assert.Equal(t, "Générer le parcours", ui.generateBtn.Text)
	assert.False(t, ui.generateBtn.Disabled())
	assert.False(t, ui.spinner.Visible())
	assert.False(t, ui.errorView.Visible())
	assert.False(t, ui.metrics.Visible())
	assert.False(t, ui.exportBtn.Visible())
	assert.Equal(t, 0, ui.surface.Overlay().Len())
}

func TestRootUI_SetLoading(t *testing.T) {
	ui, _ := newTestUI(t, &stubGenerator{})

	ui.applyEffect(controller.SetLoading{Loading: true})
	assert.True(t, ui.generateBtn.Disabled())
	assert.Equal(t, "Génération en cours...", ui.generateBtn.Text)
	assert.True(t, ui.spinner.Visible())

	ui.applyEffect(controller.SetLoading{Loading: false})
	assert.False(t, ui.generateBtn.Disabled())
	assert.Equal(t, "Générer le parcours", ui.generateBtn.Text)
	assert.False(t, ui.spinner.Visible())
}

func TestRootUI_SuccessfulSubmission(t *testing.T) {
	gen := &stubGenerator{response: sampleRoute()}
	ui, _ := newTestUI(t, gen)

	ui.form.start.SetText("Tour Eiffel, Paris")
	err := ui.Controller().Dispatch(context.Background(), controller.Submit{Form: ui.form.Values()})
	require.NoError(t, err)

	require.Len(t, gen.requests, 1)
	req := gen.requests[0]
	assert.Equal(t, "Tour Eiffel, Paris", req.StartLocation)
	assert.Equal(t, 10.0, req.DistanceKm)
	assert.Equal(t, model.TrainingEndurance, req.TrainingType)
	assert.Equal(t, model.ElevationPlat, req.ElevationPreference)

	assert.False(t, ui.generateBtn.Disabled())
	assert.False(t, ui.spinner.Visible())
	assert.False(t, ui.errorView.Visible())

	assert.True(t, ui.metrics.Visible())
	assert.Equal(t, "10.02", ui.metrics.distance.Text)
	assert.Equal(t, "35.5", ui.metrics.elevationGain.Text)
	assert.Equal(t, "34", ui.metrics.elevationLoss.Text)
	assert.Equal(t, "60", ui.metrics.duration.Text)
	assert.Equal(t, "Départ: Tour Eiffel, Paris", ui.metrics.startAddress.Text)
	assert.True(t, ui.exportBtn.Visible())

	assert.Equal(t, 2, ui.surface.Overlay().Len())
}

func TestRootUI_FailedSubmission(t *testing.T) {
	gen := &stubGenerator{err: &generate.Error{Status: 400, Detail: "Adresse introuvable"}}
	ui, _ := newTestUI(t, gen)

	err := ui.Controller().Dispatch(context.Background(), controller.Submit{Form: ui.form.Values()})
	require.NoError(t, err)

	assert.True(t, ui.errorView.Visible())
	assert.Equal(t, "Adresse introuvable", ui.errorView.Text())
	assert.False(t, ui.generateBtn.Disabled())
	assert.False(t, ui.metrics.Visible())
	assert.False(t, ui.exportBtn.Visible())
	assert.Equal(t, 0, ui.surface.Overlay().Len())
}

func TestRootUI_NewSubmissionHidesError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("connection refused")}
	ui, _ := newTestUI(t, gen)

	require.NoError(t, ui.Controller().Dispatch(context.Background(), controller.Submit{Form: ui.form.Values()}))
	assert.Equal(t, controller.MessageGenericFailure, ui.errorView.Text())

	gen.err = nil
	gen.response = sampleRoute()
	require.NoError(t, ui.Controller().Dispatch(context.Background(), controller.Submit{Form: ui.form.Values()}))
	assert.False(t, ui.errorView.Visible())
}

func TestRootUI_ExportWithoutRoute(t *testing.T) {
	ui, _ := newTestUI(t, &stubGenerator{})

	require.NoError(t, ui.Controller().Dispatch(context.Background(), controller.ExportRequested{}))
	assert.True(t, ui.errorView.Visible())
	assert.Equal(t, controller.MessageNothingToExport, ui.errorView.Text())
}

func TestRootUI_ExportAfterSuccess(t *testing.T) {
	ui, _ := newTestUI(t, &stubGenerator{response: sampleRoute()})

	require.NoError(t, ui.Controller().Dispatch(context.Background(), controller.Submit{Form: ui.form.Values()}))
	require.NoError(t, ui.Controller().Dispatch(context.Background(), controller.ExportRequested{}))

	assert.True(t, ui.infoView.Visible())
	assert.Equal(t, "Parcours enregistré: /tmp/parcours_1.gpx", ui.infoView.Text())
	assert.False(t, ui.errorView.Visible())
}

func TestRootUI_RenderRouteFailureShowsError(t *testing.T) {
	ui, _ := newTestUI(t, &stubGenerator{})

	ui.applyEffect(controller.RenderRoute{Route: geojson.NewFeatureCollection(), StartAddress: "Paris"})
	assert.True(t, ui.errorView.Visible())
	assert.Equal(t, controller.MessageGenericFailure, ui.errorView.Text())
}

func TestRootUI_LanguageChange(t *testing.T) {
	ui, _ := newTestUI(t, &stubGenerator{response: sampleRoute()})
	require.NoError(t, ui.Controller().Dispatch(context.Background(), controller.Submit{Form: ui.form.Values()}))

	ui.onLanguageChange("en")

	assert.Equal(t, "Generate route", ui.generateBtn.Text)
	assert.Equal(t, "Start: Tour Eiffel, Paris", ui.metrics.startAddress.Text)
	assert.Equal(t, "en", ui.settings.GetLanguage())

	values := ui.form.Values()
	assert.Equal(t, string(model.TrainingEndurance), values.TrainingType)
	assert.Equal(t, string(model.ElevationPlat), values.ElevationPreference)
}

func TestRootUI_SettingsSaved(t *testing.T) {
	gen := &stubGenerator{}
	ui, exp := newTestUI(t, gen)

	ui.settings.SetAPIBaseURL("https://routes.example.org")
	ui.settings.SetDownloadDirectory("/tmp/parcours-export")
	ui.onSettingsSaved()

	assert.Equal(t, "https://routes.example.org", gen.baseURL)
	assert.Equal(t, "/tmp/parcours-export", exp.dir)
	assert.True(t, ui.infoView.Visible())
}
