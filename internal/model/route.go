package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// TrainingType is the workout category forwarded to the generation service
type TrainingType string

const (
	TrainingFractionne   TrainingType = "fractionne"
	TrainingEndurance    TrainingType = "endurance"
	TrainingTempo        TrainingType = "tempo"
	TrainingRecuperation TrainingType = "recuperation"
)

// ElevationPreference is the requested hilliness of the route
type ElevationPreference string

const (
	ElevationPlat       ElevationPreference = "plat"
	ElevationVallonne   ElevationPreference = "vallonne"
	ElevationMontagneux ElevationPreference = "montagneux"
)

// Defaults used by the form when nothing is selected
const (
	DefaultTrainingType        = TrainingEndurance
	DefaultElevationPreference = ElevationPlat
)

// DurationPlaceholder is displayed when the service gives no duration estimate
const DurationPlaceholder = "-"

// TrainingTypes returns the categories offered in the form, in display order
func TrainingTypes() []TrainingType {
	return []TrainingType{TrainingFractionne, TrainingEndurance, TrainingTempo, TrainingRecuperation}
}

// ElevationPreferences returns the preferences offered in the form, in display order
func ElevationPreferences() []ElevationPreference {
	return []ElevationPreference{ElevationPlat, ElevationVallonne, ElevationMontagneux}
}

// RouteRequest is the body of POST /api/generate-route. It is built once per
// submission and passed by value, so it cannot change after being sent.
type RouteRequest struct {
	StartLocation       string              `json:"start_location"`
	DistanceKm          float64             `json:"distance_km"`
	TrainingType        TrainingType        `json:"training_type"`
	ElevationPreference ElevationPreference `json:"elevation_preference"`
	AvoidBusyRoads      bool                `json:"avoid_busy_roads"`
	PreferParks         bool                `json:"prefer_parks"`
}

// MarshalJSON encodes a non-finite distance as null so that malformed input
// still reaches the service, which owns validation.
func (r RouteRequest) MarshalJSON() ([]byte, error) {
	type wire struct {
		StartLocation       string              `json:"start_location"`
		DistanceKm          *float64            `json:"distance_km"`
		TrainingType        TrainingType        `json:"training_type"`
		ElevationPreference ElevationPreference `json:"elevation_preference"`
		AvoidBusyRoads      bool                `json:"avoid_busy_roads"`
		PreferParks         bool                `json:"prefer_parks"`
	}

	w := wire{
		StartLocation:       r.StartLocation,
		TrainingType:        r.TrainingType,
		ElevationPreference: r.ElevationPreference,
		AvoidBusyRoads:      r.AvoidBusyRoads,
		PreferParks:         r.PreferParks,
	}
	if !math.IsNaN(r.DistanceKm) && !math.IsInf(r.DistanceKm, 0) {
		d := r.DistanceKm
		w.DistanceKm = &d
	}
	return json.Marshal(w)
}

// RouteForm holds raw form field values as typed by the user
type RouteForm struct {
	StartLocation       string
	Distance            string
	TrainingType        string
	ElevationPreference string
	AvoidBusyRoads      bool
	PreferParks         bool
}

// Request coerces the form into a RouteRequest. No validation happens here:
// a distance that does not parse becomes NaN and is left to the service.
func (f RouteForm) Request() RouteRequest {
	return RouteRequest{
		StartLocation:       f.StartLocation,
		DistanceKm:          ParseDistance(f.Distance),
		TrainingType:        TrainingType(f.TrainingType),
		ElevationPreference: ElevationPreference(f.ElevationPreference),
		AvoidBusyRoads:      f.AvoidBusyRoads,
		PreferParks:         f.PreferParks,
	}
}

// ParseDistance parses a floating point distance, returning NaN when the text is not a number
func ParseDistance(text string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Metrics are the statistics of a generated route
type Metrics struct {
	DistanceKm           float64  `json:"distance_km"`
	ElevationGainM       float64  `json:"elevation_gain_m"`
	ElevationLossM       float64  `json:"elevation_loss_m"`
	EstimatedDurationMin *float64 `json:"estimated_duration_min,omitempty"`
}

// DistanceText returns the distance as displayed in the metrics panel
func (m Metrics) DistanceText() string {
	return FormatNumber(m.DistanceKm)
}

// ElevationGainText returns the positive elevation as displayed in the metrics panel
func (m Metrics) ElevationGainText() string {
	return FormatNumber(m.ElevationGainM)
}

// ElevationLossText returns the negative elevation as displayed in the metrics panel
func (m Metrics) ElevationLossText() string {
	return FormatNumber(m.ElevationLossM)
}

// DurationText returns the estimated duration, or "-" if unknown
func (m Metrics) DurationText() string {
	if m.EstimatedDurationMin == nil || *m.EstimatedDurationMin == 0 {
		return DurationPlaceholder
	}
	return FormatNumber(*m.EstimatedDurationMin)
}

// FormatNumber renders a number with the shortest exact representation (10, 10.5, 123.25)
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Coordinates is a waypoint of the generated route
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RouteResponse is the body returned by a successful generation
type RouteResponse struct {
	GeoJSON      *geojson.FeatureCollection `json:"geojson"`
	StartAddress string                     `json:"start_address"`
	Metrics      Metrics                    `json:"metrics"`
	GPX          string                     `json:"gpx"`
	Waypoints    []Coordinates              `json:"waypoints,omitempty"`
}

// ErrIncompleteRoute is returned by Validate when the response cannot be drawn
var ErrIncompleteRoute = errors.New("incomplete route response")

// Validate checks that the response carries a drawable route line
func (r *RouteResponse) Validate() error {
	if r.GeoJSON == nil {
		return fmt.Errorf("%w: missing geojson", ErrIncompleteRoute)
	}
	if len(r.GeoJSON.Features) == 0 || r.GeoJSON.Features[0] == nil {
		return fmt.Errorf("%w: geojson has no features", ErrIncompleteRoute)
	}
	line, ok := r.GeoJSON.Features[0].Geometry.(orb.LineString)
	if !ok {
		return fmt.Errorf("%w: first feature is %T, expected a line", ErrIncompleteRoute, r.GeoJSON.Features[0].Geometry)
	}
	if len(line) == 0 {
		return fmt.Errorf("%w: route line is empty", ErrIncompleteRoute)
	}
	return nil
}

// StartPoint returns the first coordinate of the first feature's line, in [lon, lat] order
func (r *RouteResponse) StartPoint() (orb.Point, bool) {
	if r.Validate() != nil {
		return orb.Point{}, false
	}
	return r.GeoJSON.Features[0].Geometry.(orb.LineString)[0], true
}
