package route

import "firstresponse/models"

var popularRegions = []models.Region{
	{Value: "karnataka", Label: "Karnataka, India"},
	{Value: "maharashtra", Label: "Maharashtra, India"},
	{Value: "delhi", Label: "Delhi, India"},
	{Value: "kathmandu", Label: "Kathmandu, Nepal"},
	{Value: "dhaka", Label: "Dhaka, Bangladesh"},
	{Value: "colombo", Label: "Colombo, Sri Lanka"},
}

// Regions lists the presets offered on the safe-route page.
func Regions() []models.Region {
	out := make([]models.Region, len(popularRegions))
	copy(out, popularRegions)
	return out
}

// SampleRequest is the canned form used by "load sample route".
func SampleRequest() models.RouteRequest {
	return models.RouteRequest{
		Region:      "karnataka",
		Start:       "MG Road, Bengaluru",
		Destination: "Koramangala, Bengaluru",
	}
}

// demoPlan is a straight two-leg path between the resolved ends, shown when
// the routing backend is unreachable.
func demoPlan(region string, start, dest models.Place) *models.RoutePlan {
	midLat := (start.Lat + dest.Lat) / 2
	midLon := (start.Lon + dest.Lon) / 2
	resp := models.SafeRouteResponse{
		DistanceKm:  4.2,
		DurationMin: 18,
		RouteGeometry: [][2]float64{
			{start.Lat, start.Lon},
			{midLat, midLon},
			{dest.Lat, dest.Lon},
		},
		TurnByTurn: []models.TurnInstruction{
			{Text: "Head toward the main road", StreetName: "", Distance: 650, Time: 180000},
			{Text: "Continue on the well-lit arterial road", StreetName: "", Distance: 3100, Time: 780000},
			{Text: "Arrive at destination", StreetName: "", Distance: 0, Time: 0},
		},
	}
	plan := BuildPlan(region, start, dest, resp)
	plan.Demo = true
	return plan
}
