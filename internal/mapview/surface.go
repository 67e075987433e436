package mapview

import (
	"errors"
	"math"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog"

	"github.com/ytget/parcours/internal/geo"
	"github.com/ytget/parcours/internal/tiles"
)

// View defaults
const (
	DefaultZoom       = 12
	DefaultFitPadding = 50
	MinZoom           = 0

	StartPopupTitle = "Départ"
)

// DefaultCenter is the initial view center, Paris
var DefaultCenter = LatLng{Lat: 48.8566, Lng: 2.3522}

var (
	// ErrEmptyRoute is returned when a route has no geometry to fit the view to
	ErrEmptyRoute = errors.New("route has no geometry")

	// ErrNoStartPoint is returned when the first feature is not a line with a first coordinate
	ErrNoStartPoint = errors.New("route has no start point")
)

// TileLayer describes the base map
type TileLayer struct {
	URLTemplate string
	Attribution string
	MaxZoom     int
}

// Options configures a new Surface
type Options struct {
	Center     LatLng
	Zoom       int
	Tiles      TileLayer
	FitPadding int
	Log        zerolog.Logger
}

// DefaultOptions returns a Paris view over OpenStreetMap tiles
func DefaultOptions() Options {
	return Options{
		Center: DefaultCenter,
		Zoom:   DefaultZoom,
		Tiles: TileLayer{
			URLTemplate: tiles.DefaultTemplate,
			Attribution: tiles.DefaultAttribution,
			MaxZoom:     tiles.DefaultMaxZoom,
		},
		FitPadding: DefaultFitPadding,
		Log:        zerolog.Nop(),
	}
}

// Surface is the map: a base tile layer, one overlay group and the current view
type Surface struct {
	mu      sync.RWMutex
	center  LatLng
	zoom    int
	width   int
	height  int
	tiles   TileLayer
	padding int
	overlay *LayerGroup
	pending *orb.Bound
	log     zerolog.Logger
}

// NewSurface creates the map surface. Zero fields of opts take their defaults.
func NewSurface(opts Options) *Surface {
	def := DefaultOptions()
	if opts.Center == (LatLng{}) {
		opts.Center = def.Center
	}
	if opts.Zoom == 0 {
		opts.Zoom = def.Zoom
	}
	if opts.Tiles.URLTemplate == "" {
		opts.Tiles.URLTemplate = def.Tiles.URLTemplate
	}
	if opts.Tiles.Attribution == "" {
		opts.Tiles.Attribution = def.Tiles.Attribution
	}
	if opts.Tiles.MaxZoom <= 0 {
		opts.Tiles.MaxZoom = def.Tiles.MaxZoom
	}
	if opts.FitPadding <= 0 {
		opts.FitPadding = def.FitPadding
	}

	return &Surface{
		center:  opts.Center,
		zoom:    clampZoom(opts.Zoom, opts.Tiles.MaxZoom),
		tiles:   opts.Tiles,
		padding: opts.FitPadding,
		overlay: &LayerGroup{},
		log:     opts.Log.With().Str("component", "mapview").Logger(),
	}
}

// Tiles returns the base layer description
func (s *Surface) Tiles() TileLayer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tiles
}

// Overlay returns the overlay group holding the route and its marker
func (s *Surface) Overlay() *LayerGroup {
	return s.overlay
}

// View returns the current center and zoom
func (s *Surface) View() (LatLng, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.center, s.zoom
}

// SetView moves the map to center at zoom
func (s *Surface) SetView(center LatLng, zoom int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.center = clampCenter(center)
	s.zoom = clampZoom(zoom, s.tiles.MaxZoom)
}

// Viewport returns the raster size in pixels
func (s *Surface) Viewport() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height
}

// SetViewport sets the raster size. A fit requested before the surface had a
// size is applied as soon as it gets one.
func (s *Surface) SetViewport(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.width, s.height = width, height
	if s.pending != nil && width > 0 && height > 0 {
		bound := *s.pending
		s.pending = nil
		s.fitLocked(bound)
	}
}

// RenderRoute replaces whatever the overlay shows with fc and a start marker,
// then fits the view to the route. Repeated calls never accumulate layers.
func (s *Surface) RenderRoute(fc *geojson.FeatureCollection, startAddress string) error {
	s.overlay.ClearLayers()

	route := NewRouteLayer(fc)
	s.overlay.AddLayer(route)

	bound, ok := route.bound()
	if !ok {
		return ErrEmptyRoute
	}
	s.FitBounds(bound)

	start, ok := startPoint(fc)
	if !ok {
		return ErrNoStartPoint
	}
	s.overlay.AddLayer(NewStartMarker(FromPoint(start), startAddress))

	s.log.Debug().
		Float64("start_lat", start.Lat()).
		Float64("start_lng", start.Lon()).
		Int("features", len(fc.Features)).
		Msg("route rendered")
	return nil
}

// FitBounds centers the view on bound at the largest zoom that keeps it
// inside the viewport minus the fit padding
func (s *Surface) FitBounds(bound orb.Bound) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.width <= 0 || s.height <= 0 {
		s.pending = &bound
		return
	}
	s.fitLocked(bound)
}

func (s *Surface) fitLocked(bound orb.Bound) {
	zoom := geo.BoundsZoom(bound, s.width, s.height, s.padding, s.tiles.MaxZoom)
	s.zoom = clampZoom(zoom, s.tiles.MaxZoom)
	s.center = clampCenter(FromPoint(geo.BoundsCenter(bound, s.zoom)))
}

// Pan moves the view by dx, dy pixels
func (s *Surface) Pan(dx, dy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	x, y := geo.Project(s.center.Point(), s.zoom)
	s.center = clampCenter(FromPoint(geo.Unproject(x+dx, y+dy, s.zoom)))
}

// ZoomBy changes the zoom by delta levels around the view center
func (s *Surface) ZoomBy(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zoom = clampZoom(s.zoom+delta, s.tiles.MaxZoom)
}

// ZoomAt changes the zoom by delta levels keeping the position under pixel
// (x, y) in place
func (s *Surface) ZoomAt(delta int, x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	zoom := clampZoom(s.zoom+delta, s.tiles.MaxZoom)
	if zoom == s.zoom {
		return
	}

	v := s.viewLocked()
	anchor := geo.Unproject(v.originX+x, v.originY+y, s.zoom)

	ax, ay := geo.Project(anchor, zoom)
	cx := ax - x + float64(s.width)/2
	cy := ay - y + float64(s.height)/2

	s.zoom = zoom
	s.center = clampCenter(FromPoint(geo.Unproject(cx, cy, zoom)))
}

// MarkerAt returns the marker drawn under pixel (x, y), if any
func (s *Surface) MarkerAt(x, y float64) *Marker {
	s.mu.RLock()
	v := s.viewLocked()
	s.mu.RUnlock()

	layers := s.overlay.Layers()
	for i := len(layers) - 1; i >= 0; i-- {
		if m, ok := layers[i].(*Marker); ok && m.hit(v, x, y) {
			return m
		}
	}
	return nil
}

// TogglePopupAt opens or closes the popup of the marker under (x, y) and
// reports whether a marker was hit
func (s *Surface) TogglePopupAt(x, y float64) bool {
	m := s.MarkerAt(x, y)
	if m == nil {
		return false
	}
	s.overlay.mu.Lock()
	m.popupOpen = !m.popupOpen
	s.overlay.mu.Unlock()
	return true
}

func (s *Surface) viewLocked() view {
	cx, cy := geo.Project(s.center.Point(), s.zoom)
	return view{
		originX: cx - float64(s.width)/2,
		originY: cy - float64(s.height)/2,
		zoom:    s.zoom,
	}
}

func startPoint(fc *geojson.FeatureCollection) (orb.Point, bool) {
	if fc == nil || len(fc.Features) == 0 || fc.Features[0] == nil {
		return orb.Point{}, false
	}
	line, ok := fc.Features[0].Geometry.(orb.LineString)
	if !ok || len(line) == 0 {
		return orb.Point{}, false
	}
	return line[0], true
}

func clampZoom(zoom, maxZoom int) int {
	if zoom < MinZoom {
		return MinZoom
	}
	if zoom > maxZoom {
		return maxZoom
	}
	return zoom
}

func clampCenter(c LatLng) LatLng {
	c.Lat = math.Max(-geo.MaxLatitude, math.Min(geo.MaxLatitude, c.Lat))
	return c
}

// LayerGroup is an ordered set of overlay layers
type LayerGroup struct {
	mu     sync.RWMutex
	layers []Layer
}

// AddLayer appends l on top of the group
func (g *LayerGroup) AddLayer(l Layer) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.layers = append(g.layers, l)
}

// ClearLayers removes every layer; clearing an empty group is a no-op
func (g *LayerGroup) ClearLayers() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.layers = nil
}

// Layers returns the layers bottom to top
func (g *LayerGroup) Layers() []Layer {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Layer, len(g.layers))
	copy(out, g.layers)
	return out
}

// Len returns the number of layers
func (g *LayerGroup) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.layers)
}
