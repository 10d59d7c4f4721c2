package query

import "github.com/travigo/routecost/pkg/ctdf"

// RealRoute asks for a routed path over the points using a travel profile
type RealRoute struct {
	Points  []ctdf.RoutePoint
	Profile ctdf.RoutingProfile
}

// TransitRoute asks for a public transport itinerary over the points in a city.
// Sources that cannot plan it pass so it can be walked instead.
type TransitRoute struct {
	Points   []ctdf.RoutePoint
	CityName string
}
