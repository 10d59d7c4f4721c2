package routing

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/routecost/pkg/ctdf"
	"github.com/travigo/routecost/pkg/osrm"
)

type Engine interface {
	Route(ctx context.Context, profile string, from ctdf.RoutePoint, to ctdf.RoutePoint) (*osrm.Route, error)
}

// Router resolves waypoint lists into routed paths. Each segment is asked of the Engine
// first and estimated from the straight line distance when the engine cannot answer.
type Router struct {
	Engine Engine
	Cache  *ResultCache

	// Concurrency caps how many segments are routed at once, 1 or less routes them in order
	Concurrency int
}

func (r *Router) CalculateRealRoute(ctx context.Context, points []ctdf.RoutePoint, profile ctdf.RoutingProfile) *ctdf.RouteResult {
	result := &ctdf.RouteResult{
		Segments: []ctdf.RouteSegment{},
	}

	if len(points) < 2 {
		return result
	}

	segments := make([]ctdf.RouteSegment, len(points)-1)

	if r.Concurrency <= 1 {
		for i := range segments {
			segments[i] = r.calculateSegment(ctx, points[i], points[i+1], profile)
		}
	} else {
		p := pool.New().WithMaxGoroutines(r.Concurrency)

		for i := range segments {
			i := i
			p.Go(func() {
				segments[i] = r.calculateSegment(ctx, points[i], points[i+1], profile)
			})
		}

		p.Wait()
	}

	for _, segment := range segments {
		result.AddSegment(segment)
	}

	return result
}

func (r *Router) calculateSegment(ctx context.Context, from ctdf.RoutePoint, to ctdf.RoutePoint, profile ctdf.RoutingProfile) ctdf.RouteSegment {
	engineProfile := profile.EngineProfile()
	key := segmentCacheKey(engineProfile, from, to)

	if cached, found := r.Cache.get(ctx, key); found {
		return realSegment(from, to, profile, cached.Distance, cached.Duration, cached.Geometry)
	}

	if r.Engine != nil {
		route, err := r.Engine.Route(ctx, engineProfile, from, to)
		if err == nil {
			r.Cache.set(ctx, key, &cachedSegment{
				Distance: route.Distance,
				Duration: route.Duration,
				Geometry: route.Geometry.Coordinates,
			})

			return realSegment(from, to, profile, route.Distance, route.Duration, route.Geometry.Coordinates)
		}

		log.Warn().Err(err).
			Str("profile", engineProfile).
			Str("from", from.Name).
			Str("to", to.Name).
			Msg("Routing engine failed, estimating segment")
	}

	return EstimateSegment(from, to, profile)
}

func realSegment(from ctdf.RoutePoint, to ctdf.RoutePoint, profile ctdf.RoutingProfile, distance float64, duration float64, geometry [][]float64) ctdf.RouteSegment {
	if len(geometry) == 0 {
		geometry = ctdf.StraightLine(from, to)
	}

	return ctdf.RouteSegment{
		From:     from,
		To:       to,
		Mode:     SegmentMode(profile),
		Distance: distance,
		Duration: duration,
		Geometry: geometry,
		IsReal:   true,
	}
}

func SegmentMode(profile ctdf.RoutingProfile) ctdf.SegmentMode {
	switch profile {
	case ctdf.RoutingProfileDriving:
		return ctdf.SegmentModeDrive
	case ctdf.RoutingProfileCycling:
		return ctdf.SegmentModeCycle
	default:
		return ctdf.SegmentModeWalk
	}
}
