package transit

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/travigo/routecost/pkg/ctdf"
)

const (
	BoundsPaddingDegrees    = 0.05
	NearestStopCutoffMeters = 1000.0
	WalkingSpeedKmh         = 5.0
	TransitSpeedKmh         = 20.0
)

// Router approximates a walk, transit, walk itinerary from the nearest stops to each end.
// Only direct routes are considered, transfers are not modelled.
type Router struct {
	Cities   *CityFeeds
	Resolver *Resolver
}

// CalculateTransitRoute returns nil when the city has no feed, either end has no stop within reach
// or both ends share the same stop
func (r *Router) CalculateTransitRoute(ctx context.Context, from ctdf.RoutePoint, to ctdf.RoutePoint, cityName string) *ctdf.TransitRouteResult {
	feedPath, found := r.Cities.Resolve(cityName)
	if !found {
		log.Debug().Str("city", cityName).Msg("No transit feed for city")
		return nil
	}

	bounds := ctdf.BoundsAround(from, to).Pad(BoundsPaddingDegrees)
	stops := r.Resolver.GetTransitStops(ctx, feedPath, bounds)

	originStop := nearestStop(stops, from, NearestStopCutoffMeters)
	destinationStop := nearestStop(stops, to, NearestStopCutoffMeters)

	if originStop == nil || destinationStop == nil {
		log.Debug().
			Str("feed", feedPath).
			Int("stops", len(stops)).
			Bool("origin", originStop != nil).
			Bool("destination", destinationStop != nil).
			Msg("No transit stop near route ends")
		return nil
	}

	originPoint := originStop.RoutePoint()
	destinationPoint := destinationStop.RoutePoint()

	if originStop.ID == destinationStop.ID || originPoint.DistanceTo(destinationPoint) == 0 {
		log.Debug().Str("feed", feedPath).Str("stop", originStop.ID).Msg("Route ends share a transit stop")
		return nil
	}

	route := r.Resolver.ConnectingRoute(ctx, feedPath, originStop, destinationStop)

	result := &ctdf.TransitRouteResult{
		Segments: []ctdf.TransitSegment{},
	}

	if segment := walkSegment(from, originPoint); segment.Distance > 0 {
		result.AddSegment(segment)
	}

	result.AddSegment(transitSegment(originPoint, destinationPoint, route))

	if segment := walkSegment(destinationPoint, to); segment.Distance > 0 {
		result.AddSegment(segment)
	}

	return result
}

func nearestStop(stops []*ctdf.TransitStop, point ctdf.RoutePoint, cutoff float64) *ctdf.TransitStop {
	var nearest *ctdf.TransitStop
	nearestDistance := cutoff

	for _, stop := range stops {
		distance := point.DistanceTo(stop.RoutePoint())
		if distance <= nearestDistance && (nearest == nil || distance < nearestDistance) {
			nearest = stop
			nearestDistance = distance
		}
	}

	return nearest
}

func walkSegment(from ctdf.RoutePoint, to ctdf.RoutePoint) ctdf.TransitSegment {
	distance := from.DistanceTo(to)

	return ctdf.TransitSegment{
		Type:     ctdf.TransitSegmentWalk,
		From:     from,
		To:       to,
		Distance: distance,
		Duration: distance / (WalkingSpeedKmh / 3.6),
		Geometry: ctdf.StraightLine(from, to),
	}
}

func transitSegment(from ctdf.RoutePoint, to ctdf.RoutePoint, route *ctdf.TransitRoute) ctdf.TransitSegment {
	distance := from.DistanceTo(to)

	geometry := ctdf.StraightLine(from, to)
	if route != nil {
		geometry = clipGeometry(route.Geometry, from, to)
	}

	return ctdf.TransitSegment{
		Type:     ctdf.TransitSegmentTransit,
		From:     from,
		To:       to,
		Distance: distance,
		Duration: distance / (TransitSpeedKmh / 3.6),
		Geometry: geometry,
		Route:    route,
	}
}

// clipGeometry cuts the part of a route shape between the two points, following the
// shape backwards when the destination comes first
func clipGeometry(shape [][]float64, from ctdf.RoutePoint, to ctdf.RoutePoint) [][]float64 {
	fromIndex := from.NearestLineIndex(shape)
	toIndex := to.NearestLineIndex(shape)

	geometry := [][]float64{from.Coordinates()}

	if fromIndex >= 0 && toIndex >= 0 {
		if fromIndex <= toIndex {
			geometry = append(geometry, shape[fromIndex+1:toIndex+1]...)
		} else {
			for i := fromIndex; i > toIndex; i-- {
				geometry = append(geometry, shape[i])
			}
		}
	}

	return append(geometry, to.Coordinates())
}
