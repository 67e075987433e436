package ui

import (
	"context"
	"errors"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/ytget/parcours/internal/mapview"
)

// MapWidget displays a mapview.Surface. Rendering runs off the UI goroutine;
// redraw requests are debounced and only the latest one is shown.
type MapWidget struct {
	widget.BaseWidget

	surface *mapview.Surface
	fetcher mapview.TileFetcher
	raster  *canvas.Image
	log     zerolog.Logger

	mu         sync.Mutex
	generation uint64
	timer      *time.Timer
}

// NewMapWidget creates a map widget; fetcher may be nil to draw without tiles
func NewMapWidget(surface *mapview.Surface, fetcher mapview.TileFetcher, log zerolog.Logger) *MapWidget {
	m := &MapWidget{
		surface: surface,
		fetcher: fetcher,
		raster:  &canvas.Image{FillMode: canvas.ImageFillStretch, ScaleMode: canvas.ImageScaleFastest},
		log:     log.With().Str("component", "map_widget").Logger(),
	}
	m.ExtendBaseWidget(m)
	return m
}

// CreateRenderer implements fyne.Widget
func (m *MapWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(m.raster)
}

// MinSize keeps the map usable when the window is small
func (m *MapWidget) MinSize() fyne.Size {
	return fyne.NewSize(MapMinWidth, MapMinHeight)
}

// Resize updates the surface viewport and redraws
func (m *MapWidget) Resize(size fyne.Size) {
	m.BaseWidget.Resize(size)
	m.surface.SetViewport(int(size.Width), int(size.Height))
	m.Redraw()
}

// Surface returns the displayed surface
func (m *MapWidget) Surface() *mapview.Surface {
	return m.surface
}

// Redraw schedules a new raster of the surface
func (m *MapWidget) Redraw() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.generation++
	gen := m.generation
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(MapRedrawDebounce, func() { m.render(gen) })
}

func (m *MapWidget) render(gen uint64) {
	if !m.isCurrent(gen) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), MapRenderTimeout)
	defer cancel()

	img, err := m.surface.Render(ctx, m.fetcher)
	if err != nil {
		if !errors.Is(err, mapview.ErrNoViewport) {
			m.log.Warn().Err(err).Msg("map render failed")
		}
		return
	}
	if !m.isCurrent(gen) {
		return
	}

	fyne.Do(func() {
		m.raster.Image = img
		m.raster.Refresh()
	})
}

func (m *MapWidget) isCurrent(gen uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return gen == m.generation
}

// Dragged pans the map
func (m *MapWidget) Dragged(e *fyne.DragEvent) {
	m.surface.Pan(float64(-e.Dragged.DX), float64(-e.Dragged.DY))
	m.Redraw()
}

// DragEnd implements fyne.Draggable
func (m *MapWidget) DragEnd() {}

// Scrolled zooms around the pointer
func (m *MapWidget) Scrolled(e *fyne.ScrollEvent) {
	delta := 0
	switch {
	case e.Scrolled.DY > 0:
		delta = 1
	case e.Scrolled.DY < 0:
		delta = -1
	default:
		return
	}
	m.surface.ZoomAt(delta, float64(e.Position.X), float64(e.Position.Y))
	m.Redraw()
}

// Tapped toggles the popup of a tapped marker
func (m *MapWidget) Tapped(e *fyne.PointEvent) {
	if m.surface.TogglePopupAt(float64(e.Position.X), float64(e.Position.Y)) {
		m.Redraw()
	}
}

// DoubleTapped zooms in around the tapped point
func (m *MapWidget) DoubleTapped(e *fyne.PointEvent) {
	m.surface.ZoomAt(1, float64(e.Position.X), float64(e.Position.Y))
	m.Redraw()
}
