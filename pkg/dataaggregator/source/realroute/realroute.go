package realroute

import (
	"context"
	"reflect"

	"github.com/travigo/routecost/pkg/ctdf"
	"github.com/travigo/routecost/pkg/dataaggregator/query"
	"github.com/travigo/routecost/pkg/dataaggregator/source"
)

type Router interface {
	CalculateRealRoute(ctx context.Context, points []ctdf.RoutePoint, profile ctdf.RoutingProfile) *ctdf.RouteResult
}

// Source answers route queries from the routing engine. Transit queries that
// reach it are walked.
type Source struct {
	Router Router
}

func (s Source) GetName() string {
	return "Real Route"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(ctdf.RouteResult{}),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (any, error) {
	switch q := q.(type) {
	case query.RealRoute:
		return s.Router.CalculateRealRoute(ctx, q.Points, q.Profile), nil
	case query.TransitRoute:
		return s.Router.CalculateRealRoute(ctx, q.Points, ctdf.RoutingProfileWalking), nil
	default:
		return nil, source.UnsupportedSourceError
	}
}
