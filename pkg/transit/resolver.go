package transit

import (
	"context"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/travigo/routecost/pkg/ctdf"
	"github.com/travigo/routecost/pkg/feeds"
	"github.com/travigo/routecost/pkg/util"
	"golang.org/x/exp/slices"
)

// FeedSource is the set of feed tables the resolver reads, satisfied by *feeds.Loader
type FeedSource interface {
	LoadStops(ctx context.Context, feedPath string) map[string]*ctdf.Stop
	LoadRoutes(ctx context.Context, feedPath string) map[string]*ctdf.Route
	LoadShapes(ctx context.Context, feedPath string) map[string][]*ctdf.ShapePoint
	LoadTrips(ctx context.Context, feedPath string) map[string]*ctdf.TripBinding
	LoadTripRoutes(ctx context.Context, feedPath string) map[string]string
	SampleStopTimes(ctx context.Context, feedPath string) []feeds.StopTime
}

// Resolver answers which routes serve each stop and what shape each route has.
// Missing or broken feeds give empty results.
type Resolver struct {
	Feeds FeedSource
}

// GetTransitStops returns the stops of a feed inside bounds (all stops when bounds is nil), sorted by id.
// Route names come from a sample of stop_times so stops outside the sample have none.
func (r *Resolver) GetTransitStops(ctx context.Context, feedPath string, bounds *ctdf.Bounds) []*ctdf.TransitStop {
	var stops map[string]*ctdf.Stop
	var routes map[string]*ctdf.Route
	var tripRoutes map[string]string
	var stopTimes []feeds.StopTime

	var wg conc.WaitGroup
	wg.Go(func() { stops = r.Feeds.LoadStops(ctx, feedPath) })
	wg.Go(func() { routes = r.Feeds.LoadRoutes(ctx, feedPath) })
	wg.Go(func() { tripRoutes = r.Feeds.LoadTripRoutes(ctx, feedPath) })
	wg.Go(func() { stopTimes = r.Feeds.SampleStopTimes(ctx, feedPath) })
	wg.Wait()

	stopRouteNames := map[string]map[string]bool{}
	for _, stopTime := range stopTimes {
		route, exists := routes[tripRoutes[stopTime.TripID]]
		if !exists {
			continue
		}

		name := route.DisplayName()
		if name == "" {
			continue
		}

		if stopRouteNames[stopTime.StopID] == nil {
			stopRouteNames[stopTime.StopID] = map[string]bool{}
		}
		stopRouteNames[stopTime.StopID][name] = true
	}

	transitStops := []*ctdf.TransitStop{}
	for _, stop := range stops {
		if bounds != nil && !bounds.Contains(stop.Latitude, stop.Longitude) {
			continue
		}

		transitStop := &ctdf.TransitStop{}
		if err := copier.Copy(transitStop, stop); err != nil {
			log.Debug().Err(err).Str("stop", stop.ID).Msg("Failed to copy stop")
			continue
		}
		transitStop.RouteNames = util.SortedSet(stopRouteNames[stop.ID])

		transitStops = append(transitStops, transitStop)
	}

	slices.SortFunc(transitStops, func(a, b *ctdf.TransitStop) int {
		return strings.Compare(a.ID, b.ID)
	})

	return transitStops
}

// GetTransitRoutes returns the routes of a feed with their shape attached, sorted by id.
// An empty routeIDs returns every route. Routes without a shape get an empty geometry.
func (r *Resolver) GetTransitRoutes(ctx context.Context, feedPath string, routeIDs []string) []*ctdf.TransitRoute {
	var routes map[string]*ctdf.Route
	var trips map[string]*ctdf.TripBinding
	var shapes map[string][]*ctdf.ShapePoint

	var wg conc.WaitGroup
	wg.Go(func() { routes = r.Feeds.LoadRoutes(ctx, feedPath) })
	wg.Go(func() { trips = r.Feeds.LoadTrips(ctx, feedPath) })
	wg.Go(func() { shapes = r.Feeds.LoadShapes(ctx, feedPath) })
	wg.Wait()

	var ids []string
	if len(routeIDs) > 0 {
		ids = util.RemoveDuplicateStrings(routeIDs, []string{})
	} else {
		ids = make([]string, 0, len(routes))
		for id := range routes {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	transitRoutes := []*ctdf.TransitRoute{}
	for _, id := range ids {
		route, exists := routes[id]
		if !exists {
			continue
		}

		transitRoute := &ctdf.TransitRoute{}
		if err := copier.Copy(transitRoute, route); err != nil {
			log.Debug().Err(err).Str("route", route.ID).Msg("Failed to copy route")
			continue
		}
		transitRoute.Geometry = shapeGeometry(trips[id], shapes)

		transitRoutes = append(transitRoutes, transitRoute)
	}

	return transitRoutes
}

// ConnectingRoute returns the first route, in id order, whose short or long name serves both stops
func (r *Resolver) ConnectingRoute(ctx context.Context, feedPath string, origin *ctdf.TransitStop, destination *ctdf.TransitStop) *ctdf.TransitRoute {
	routes := r.Feeds.LoadRoutes(ctx, feedPath)

	ids := make([]string, 0, len(routes))
	for id := range routes {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		route := routes[id]

		for _, name := range []string{route.ShortName, route.LongName} {
			if origin.ServedBy(name) && destination.ServedBy(name) {
				connecting := r.GetTransitRoutes(ctx, feedPath, []string{id})
				if len(connecting) == 0 {
					return nil
				}

				return connecting[0]
			}
		}
	}

	return nil
}

func shapeGeometry(binding *ctdf.TripBinding, shapes map[string][]*ctdf.ShapePoint) [][]float64 {
	geometry := [][]float64{}
	if binding == nil || binding.ShapeID == "" {
		return geometry
	}

	for _, point := range shapes[binding.ShapeID] {
		geometry = append(geometry, []float64{point.Longitude, point.Latitude})
	}

	return geometry
}
