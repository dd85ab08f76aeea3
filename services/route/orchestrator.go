// Package route turns two place names into a safe route: geocode both ends
// concurrently, then ask the routing endpoint for a path between them.
package route

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"firstresponse/models"
	"firstresponse/services/upstream"
	"firstresponse/utils"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrMissingFields = errors.New("Please fill in all fields.")
	ErrRouteFailed   = errors.New("Failed to calculate safe route. Please try again.")
)

// Endpoint names which end of the route could not be resolved.
type Endpoint string

const (
	EndpointStart       Endpoint = "start"
	EndpointDestination Endpoint = "destination"
)

// LocationNotFoundError is returned when geocoding one end yields no match.
type LocationNotFoundError struct {
	Endpoint Endpoint
	Query    string
}

func (e *LocationNotFoundError) Error() string {
	if e.Endpoint == EndpointStart {
		return "Start location not found"
	}
	return "Destination not found"
}

// Geocoder resolves a place name to its first match.
type Geocoder interface {
	Search(ctx context.Context, query string) (*models.GeocodeResult, error)
}

// API is the part of the upstream client the orchestrator uses.
type API interface {
	SafeRoute(ctx context.Context, token string, req models.SafeRouteRequest) (*upstream.Response, error)
}

// Orchestrator sequences geocode(start) and geocode(destination) in
// parallel, then the route request.
type Orchestrator struct {
	Geocoder     Geocoder
	API          API
	DemoFallback bool
}

func NewOrchestrator(geocoder Geocoder, api API, demoFallback bool) *Orchestrator {
	return &Orchestrator{Geocoder: geocoder, API: api, DemoFallback: demoFallback}
}

// Plan resolves both ends and requests a route with the caller's bearer token.
func (o *Orchestrator) Plan(ctx context.Context, token string, req models.RouteRequest) (*models.RoutePlan, error) {
	logger := utils.GetLogger()

	req.Region = strings.TrimSpace(req.Region)
	req.Start = strings.TrimSpace(req.Start)
	req.Destination = strings.TrimSpace(req.Destination)
	if req.Region == "" || req.Start == "" || req.Destination == "" {
		return nil, ErrMissingFields
	}

	start, dest, err := o.resolve(ctx, req.Start, req.Destination)
	if err != nil {
		return nil, err
	}

	body := models.SafeRouteRequest{
		Region:   req.Region,
		StartLat: start.Lat,
		StartLon: start.Lon,
		EndLat:   dest.Lat,
		EndLon:   dest.Lon,
	}
	resp, err := o.API.SafeRoute(ctx, token, body)
	if err != nil {
		logger.Warn("Safe route request failed", zap.String("region", req.Region), zap.Error(err))
		if upstream.IsTransport(err) && o.DemoFallback {
			return demoPlan(req.Region, *start, *dest), nil
		}
		return nil, ErrRouteFailed
	}
	if !resp.IsSuccess() {
		logger.Warn("Safe route endpoint returned non-OK status", zap.Int("status", resp.Status))
		return nil, ErrRouteFailed
	}

	var route models.SafeRouteResponse
	if err := resp.Decode(&route); err != nil {
		logger.Error("Failed to decode safe route response", zap.Error(err))
		return nil, ErrRouteFailed
	}
	return BuildPlan(req.Region, *start, *dest, route), nil
}

// resolve geocodes both ends concurrently. When both fail the start is
// reported, whichever lookup finished first.
func (o *Orchestrator) resolve(ctx context.Context, startQuery, destQuery string) (*models.Place, *models.Place, error) {
	var start, dest *models.Place
	var startErr error
	var g errgroup.Group
	g.Go(func() error {
		start, startErr = o.geocode(ctx, EndpointStart, startQuery)
		return startErr
	})
	g.Go(func() error {
		var err error
		dest, err = o.geocode(ctx, EndpointDestination, destQuery)
		return err
	})
	err := g.Wait()
	if startErr != nil {
		return nil, nil, startErr
	}
	if err != nil {
		return nil, nil, err
	}
	return start, dest, nil
}

func (o *Orchestrator) geocode(ctx context.Context, which Endpoint, query string) (*models.Place, error) {
	res, err := o.Geocoder.Search(ctx, query)
	if err != nil || res == nil {
		utils.GetLogger().Info("Geocoding found no match",
			zap.String("endpoint", string(which)),
			zap.String("query", query),
			zap.Error(err),
		)
		return nil, &LocationNotFoundError{Endpoint: which, Query: query}
	}
	lat, lon, err := res.Coordinates()
	if err != nil {
		return nil, &LocationNotFoundError{Endpoint: which, Query: query}
	}
	return &models.Place{Query: query, DisplayName: res.DisplayName, Lat: lat, Lon: lon}, nil
}

// BuildPlan maps a routing response into the renderable view model.
func BuildPlan(region string, start, dest models.Place, route models.SafeRouteResponse) *models.RoutePlan {
	plan := &models.RoutePlan{
		Region:      region,
		Start:       start,
		Destination: dest,
		DistanceKm:  route.DistanceKm,
		DurationMin: route.DurationMin,
		Summary:     fmt.Sprintf("Found %.1f km route", route.DistanceKm),
		Duration:    FormatDuration(route.DurationMin),
		Geometry:    route.RouteGeometry,
		Steps:       make([]models.RouteStep, 0, len(route.TurnByTurn)),
	}
	if plan.Geometry == nil {
		plan.Geometry = [][2]float64{}
	}

	// GeoJSON is lon/lat; the upstream geometry is lat/lon.
	line := make(orb.LineString, 0, len(route.RouteGeometry))
	for _, p := range route.RouteGeometry {
		line = append(line, orb.Point{p[1], p[0]})
	}
	if len(line) > 0 {
		feature := geojson.NewFeature(line)
		feature.Properties["region"] = region
		feature.Properties["distance_km"] = route.DistanceKm
		plan.Map = feature

		b := line.Bound()
		plan.Bounds = [2][2]float64{{b.Min.Lat(), b.Min.Lon()}, {b.Max.Lat(), b.Max.Lon()}}
	}

	for _, inst := range route.TurnByTurn {
		plan.Steps = append(plan.Steps, models.RouteStep{
			Text:       inst.Text,
			StreetName: inst.StreetName,
			Distance:   FormatDistance(inst.Distance),
			Duration:   FormatDuration(millisToMinutes(inst.Time)),
		})
	}
	return plan
}
