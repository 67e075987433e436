package mapview

import (
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/ytget/parcours/internal/geo"
)

// LatLng is a position in latitude, longitude order
type LatLng struct {
	Lat float64
	Lng float64
}

// Point returns the position as an orb point ([lon, lat])
func (l LatLng) Point() orb.Point {
	return orb.Point{l.Lng, l.Lat}
}

// FromPoint converts an orb point ([lon, lat]) to LatLng
func FromPoint(p orb.Point) LatLng {
	return LatLng{Lat: p.Lat(), Lng: p.Lon()}
}

// RouteStyle is the stroke used for route polylines
type RouteStyle struct {
	Color   color.RGBA
	Weight  float64
	Opacity float64
}

// DefaultRouteStyle is the route look: orange, 4px, 80% opaque, solid
var DefaultRouteStyle = RouteStyle{
	Color:   color.RGBA{R: 0xfc, G: 0x52, B: 0x00, A: 0xff},
	Weight:  4,
	Opacity: 0.8,
}

// view maps geographic positions to pixels of the current raster
type view struct {
	originX float64
	originY float64
	zoom    int
}

func (v view) pixel(p orb.Point) (float64, float64) {
	x, y := geo.Project(p, v.zoom)
	return x - v.originX, y - v.originY
}

// Layer is something drawn on top of the base tiles
type Layer interface {
	Bound() orb.Bound
	draw(dc *gg.Context, v view)
}

// RouteLayer draws every line of a feature collection with one style
type RouteLayer struct {
	Collection *geojson.FeatureCollection
	Style      RouteStyle
}

// NewRouteLayer wraps fc with the default route style
func NewRouteLayer(fc *geojson.FeatureCollection) *RouteLayer {
	return &RouteLayer{Collection: fc, Style: DefaultRouteStyle}
}

// Bound returns the union of all feature bounds
func (l *RouteLayer) Bound() orb.Bound {
	b, _ := l.bound()
	return b
}

func (l *RouteLayer) bound() (orb.Bound, bool) {
	var bound orb.Bound
	found := false
	if l.Collection == nil {
		return bound, false
	}
	for _, f := range l.Collection.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		b := f.Geometry.Bound()
		if !found {
			bound, found = b, true
			continue
		}
		bound = bound.Union(b)
	}
	return bound, found
}

func (l *RouteLayer) lines() []orb.LineString {
	var lines []orb.LineString
	if l.Collection == nil {
		return nil
	}
	for _, f := range l.Collection.Features {
		if f == nil {
			continue
		}
		switch g := f.Geometry.(type) {
		case orb.LineString:
			lines = append(lines, g)
		case orb.MultiLineString:
			lines = append(lines, g...)
		case orb.Polygon:
			for _, ring := range g {
				lines = append(lines, orb.LineString(ring))
			}
		}
	}
	return lines
}

func (l *RouteLayer) draw(dc *gg.Context, v view) {
	dc.Push()
	defer dc.Pop()

	c := l.Style.Color
	dc.SetRGBA255(int(c.R), int(c.G), int(c.B), int(math.Round(l.Style.Opacity*255)))
	dc.SetLineWidth(l.Style.Weight)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	for _, line := range l.lines() {
		if len(line) == 0 {
			continue
		}
		dc.NewSubPath()
		for i, p := range line {
			x, y := v.pixel(p)
			if i == 0 {
				dc.MoveTo(x, y)
				continue
			}
			dc.LineTo(x, y)
		}
	}
	dc.Stroke()
}

// Marker geometry
const (
	MarkerSize   = 20
	markerRadius = MarkerSize / 2
)

// Marker is a round pin with a popup that opens on tap
type Marker struct {
	Position   LatLng
	PopupTitle string
	PopupText  string
	popupOpen  bool
}

// NewStartMarker creates the departure marker of a route
func NewStartMarker(pos LatLng, address string) *Marker {
	return &Marker{Position: pos, PopupTitle: StartPopupTitle, PopupText: address}
}

// PopupOpen reports whether the popup is shown
func (m *Marker) PopupOpen() bool {
	return m.popupOpen
}

// Bound returns the marker position as a zero-area bound
func (m *Marker) Bound() orb.Bound {
	return m.Position.Point().Bound()
}

func (m *Marker) hit(v view, x, y float64) bool {
	mx, my := v.pixel(m.Position.Point())
	return math.Hypot(mx-x, my-y) <= markerRadius+2
}

func (m *Marker) draw(dc *gg.Context, v view) {
	x, y := v.pixel(m.Position.Point())

	dc.Push()
	dc.DrawCircle(x, y, markerRadius)
	dc.SetRGB255(0x2e, 0x7d, 0x32)
	dc.FillPreserve()
	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(3)
	dc.Stroke()
	dc.Pop()

	if m.popupOpen {
		drawPopup(dc, x, y-markerRadius-4, m.PopupTitle, m.PopupText)
	}
}
