package transitplanner

import (
	"context"
	"reflect"

	"github.com/rs/zerolog/log"
	"github.com/travigo/routecost/pkg/ctdf"
	"github.com/travigo/routecost/pkg/dataaggregator/query"
	"github.com/travigo/routecost/pkg/dataaggregator/source"
)

type TransitRouter interface {
	CalculateTransitRoute(ctx context.Context, from ctdf.RoutePoint, to ctdf.RoutePoint, cityName string) *ctdf.TransitRouteResult
}

type WalkingRouter interface {
	CalculateRealRoute(ctx context.Context, points []ctdf.RoutePoint, profile ctdf.RoutingProfile) *ctdf.RouteResult
}

// Source plans transit itineraries leg by leg. Legs without transit coverage are
// walked, and when no leg can use transit the query is passed on.
type Source struct {
	Transit TransitRouter
	Walking WalkingRouter
}

func (s Source) GetName() string {
	return "Transit Planner"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(ctdf.RouteResult{}),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (any, error) {
	switch q := q.(type) {
	case query.TransitRoute:
		result, err := s.TransitRouteQuery(ctx, q)
		if err != nil {
			return nil, err
		}
		return result, nil
	default:
		return nil, source.UnsupportedSourceError
	}
}

func (s Source) TransitRouteQuery(ctx context.Context, q query.TransitRoute) (*ctdf.RouteResult, error) {
	if q.CityName == "" || len(q.Points) < 2 {
		return nil, source.UnsupportedSourceError
	}

	plans := make([]*ctdf.TransitRouteResult, len(q.Points)-1)
	transitLegs := 0

	for i := range plans {
		plan := s.Transit.CalculateTransitRoute(ctx, q.Points[i], q.Points[i+1], q.CityName)
		if plan.UsesTransit() {
			plans[i] = plan
			transitLegs++
		}
	}

	if transitLegs == 0 {
		log.Debug().Str("city", q.CityName).Msg("No transit coverage for any leg")
		return nil, source.UnsupportedSourceError
	}

	result := &ctdf.RouteResult{
		Segments: []ctdf.RouteSegment{},
	}

	for i, plan := range plans {
		var legResult *ctdf.RouteResult
		if plan != nil {
			legResult = plan.RouteResult()
		} else {
			legResult = s.Walking.CalculateRealRoute(ctx, []ctdf.RoutePoint{q.Points[i], q.Points[i+1]}, ctdf.RoutingProfileWalking)
		}

		for _, segment := range legResult.Segments {
			result.AddSegment(segment)
		}
	}

	return result, nil
}
