package models

import (
	"fmt"
	"strconv"

	"github.com/paulmach/orb/geojson"
)

// GeocodeResult is the first match of a place-name lookup.
type GeocodeResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Coordinates parses the decimal-string latitude and longitude.
func (g GeocodeResult) Coordinates() (lat, lon float64, err error) {
	lat, err = strconv.ParseFloat(g.Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude %q: %w", g.Lat, err)
	}
	lon, err = strconv.ParseFloat(g.Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude %q: %w", g.Lon, err)
	}
	return lat, lon, nil
}

// RouteRequest is what the user fills in on the safe-route page.
type RouteRequest struct {
	Region      string `json:"region" form:"region"`
	Start       string `json:"start" form:"start"`
	Destination string `json:"destination" form:"destination"`
}

// SafeRouteRequest is the body of POST /safe_route.
type SafeRouteRequest struct {
	Region   string  `json:"region"`
	StartLat float64 `json:"start_lat"`
	StartLon float64 `json:"start_lon"`
	EndLat   float64 `json:"end_lat"`
	EndLon   float64 `json:"end_lon"`
}

// TurnInstruction is one maneuver from the routing engine.
// Distance is in meters and Time in milliseconds.
type TurnInstruction struct {
	Text       string  `json:"text"`
	StreetName string  `json:"street_name"`
	Distance   float64 `json:"distance"`
	Time       float64 `json:"time"`
}

// SafeRouteResponse is the body of a successful /safe_route call.
// RouteGeometry pairs are [lat, lon]; the first is the start.
type SafeRouteResponse struct {
	DistanceKm    float64           `json:"distance_km"`
	DurationMin   float64           `json:"duration_min"`
	RouteGeometry [][2]float64      `json:"route_geometry"`
	TurnByTurn    []TurnInstruction `json:"turn_by_turn"`
}

// Place is a resolved endpoint of a route.
type Place struct {
	Query       string  `json:"query"`
	DisplayName string  `json:"display_name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// RouteStep is a formatted turn-by-turn line.
type RouteStep struct {
	Text       string `json:"text"`
	StreetName string `json:"street_name,omitempty"`
	Distance   string `json:"distance"`
	Duration   string `json:"duration"`
}

// RoutePlan is the rendered safe-route result.
type RoutePlan struct {
	Region      string           `json:"region"`
	Start       Place            `json:"start"`
	Destination Place            `json:"destination"`
	DistanceKm  float64          `json:"distance_km"`
	DurationMin float64          `json:"duration_min"`
	Summary     string           `json:"summary"`
	Duration    string           `json:"duration"`
	Geometry    [][2]float64     `json:"route_geometry"`
	Bounds      [2][2]float64    `json:"bounds"`
	Map         *geojson.Feature `json:"map"`
	Steps       []RouteStep      `json:"turn_by_turn"`
	Demo        bool             `json:"demo"`
}

// Region is a preset on the safe-route page.
type Region struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
