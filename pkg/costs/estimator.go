package costs

import (
	"context"
	"math"

	"github.com/rs/zerolog/log"
	"github.com/travigo/routecost/pkg/ctdf"
	"github.com/travigo/routecost/pkg/dataaggregator"
	"github.com/travigo/routecost/pkg/dataaggregator/query"
	"github.com/travigo/routecost/pkg/util"
)

// Estimator prices trips. Routes come from the aggregator chain and when none is
// available every segment is estimated from the straight line distance.
type Estimator struct {
	Aggregator *dataaggregator.Aggregator
}

// CalculateTransportCosts never fails. Unknown modes are priced as walking and
// fewer than two valid points give a zero cost.
func (e *Estimator) CalculateTransportCosts(ctx context.Context, points []ctdf.RoutePoint, requestedMode ctdf.TransportMode, cityName string) *ctdf.TransportCost {
	mode, known := ctdf.ParseTransportMode(string(requestedMode))
	if !known {
		log.Warn().Str("mode", string(requestedMode)).Msg("Unknown transport mode, pricing as walking")
	}

	validPoints := append([]ctdf.RoutePoint{}, points...)
	util.InPlaceFilter(&validPoints, func(point ctdf.RoutePoint) bool {
		return point.Valid()
	})

	if len(validPoints) < len(points) {
		log.Debug().Int("dropped", len(points)-len(validPoints)).Msg("Dropped invalid route points")
	}

	transportCost := ctdf.EmptyTransportCost(mode)
	if len(validPoints) < 2 {
		return transportCost
	}

	route := e.lookupRoute(ctx, validPoints, mode, cityName)

	if route == nil || len(route.Segments) == 0 {
		for i := 0; i+1 < len(validPoints); i++ {
			addSegment(transportCost, estimateSegment(mode, validPoints[i], validPoints[i+1]))
		}

		return transportCost
	}

	itineraryUsesTransit := false
	for _, segment := range route.Segments {
		if segment.Mode == ctdf.SegmentModeTransit {
			itineraryUsesTransit = true
			break
		}
	}

	for _, segment := range route.Segments {
		if !segment.IsReal {
			addSegment(transportCost, estimateSegment(mode, segment.From, segment.To))
			continue
		}

		distanceKm := clamp(segment.Distance) / 1000

		addSegment(transportCost, ctdf.CostSegment{
			From:            segment.From,
			To:              segment.To,
			Mode:            segment.Mode,
			DistanceKm:      distanceKm,
			DurationMinutes: clamp(segment.Duration) / 60,
			CostRON:         segmentCost(mode, segment.Mode, distanceKm, itineraryUsesTransit),
			RouteName:       segment.RouteName,
			Geometry:        segment.Geometry,
			IsReal:          true,
		})
	}

	return transportCost
}

func (e *Estimator) lookupRoute(ctx context.Context, points []ctdf.RoutePoint, mode ctdf.TransportMode, cityName string) *ctdf.RouteResult {
	if e.Aggregator == nil {
		return nil
	}

	var routeQuery any = query.RealRoute{
		Points:  points,
		Profile: mode.RoutingProfile(),
	}
	if mode.UsesTransit() && cityName != "" {
		routeQuery = query.TransitRoute{
			Points:   points,
			CityName: cityName,
		}
	}

	route, err := dataaggregator.Lookup[*ctdf.RouteResult](ctx, e.Aggregator, routeQuery)
	if err != nil {
		log.Warn().Err(err).Str("mode", string(mode)).Msg("Failed to find route, estimating costs")
		return nil
	}

	return route
}

func estimateSegment(mode ctdf.TransportMode, from ctdf.RoutePoint, to ctdf.RoutePoint) ctdf.CostSegment {
	distanceKm := clamp(from.DistanceTo(to)*distanceCorrection(mode)) / 1000
	segmentMode := estimatedSegmentMode(mode)

	return ctdf.CostSegment{
		From:            from,
		To:              to,
		Mode:            segmentMode,
		DistanceKm:      distanceKm,
		DurationMinutes: estimatedMinutes(mode, distanceKm),
		CostRON:         segmentCost(mode, segmentMode, distanceKm, false),
		Geometry:        ctdf.StraightLine(from, to),
		IsReal:          false,
	}
}

// addSegment rounds the segment and adds it to the totals
func addSegment(transportCost *ctdf.TransportCost, segment ctdf.CostSegment) {
	segment.DistanceKm = roundTo(clamp(segment.DistanceKm), 2)
	segment.DurationMinutes = math.Round(clamp(segment.DurationMinutes))
	segment.CostRON = roundTo(clamp(segment.CostRON), 2)

	transportCost.Segments = append(transportCost.Segments, segment)

	transportCost.TotalDistanceKm = roundTo(transportCost.TotalDistanceKm+segment.DistanceKm, 2)
	transportCost.TotalDurationMinutes += segment.DurationMinutes
	transportCost.TotalCostRON = roundTo(transportCost.TotalCostRON+segment.CostRON, 2)

	if segment.IsReal {
		transportCost.IsRealRouteUsed = true
	}
}

func clamp(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0
	}

	return value
}

func roundTo(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}
