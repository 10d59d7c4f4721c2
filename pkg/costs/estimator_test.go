package costs

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/routecost/pkg/ctdf"
	"github.com/travigo/routecost/pkg/dataaggregator"
	"github.com/travigo/routecost/pkg/dataaggregator/source/realroute"
	"github.com/travigo/routecost/pkg/dataaggregator/source/transitplanner"
	"github.com/travigo/routecost/pkg/osrm"
	"github.com/travigo/routecost/pkg/routing"
)

var (
	pointA = ctdf.RoutePoint{Latitude: 44.4268, Longitude: 26.1025, Name: "A"}
	pointB = ctdf.RoutePoint{Latitude: 44.4368, Longitude: 26.1125, Name: "B"}
	pointC = ctdf.RoutePoint{Latitude: 44.4468, Longitude: 26.1025, Name: "C"}
)

type fixedEngine struct {
	distance float64
	duration float64
	err      error
}

func (e fixedEngine) Route(_ context.Context, _ string, from ctdf.RoutePoint, to ctdf.RoutePoint) (*osrm.Route, error) {
	if e.err != nil {
		return nil, e.err
	}

	return &osrm.Route{
		Distance: e.distance,
		Duration: e.duration,
		Geometry: osrm.Geometry{Type: "LineString", Coordinates: ctdf.StraightLine(from, to)},
	}, nil
}

type fixedTransit struct {
	plan *ctdf.TransitRouteResult
}

func (t fixedTransit) CalculateTransitRoute(context.Context, ctdf.RoutePoint, ctdf.RoutePoint, string) *ctdf.TransitRouteResult {
	return t.plan
}

func newEstimator(engine routing.Engine, transit transitplanner.TransitRouter) *Estimator {
	router := &routing.Router{Engine: engine}

	aggregator := &dataaggregator.Aggregator{}
	aggregator.RegisterSource(transitplanner.Source{Transit: transit, Walking: router})
	aggregator.RegisterSource(realroute.Source{Router: router})

	return &Estimator{Aggregator: aggregator}
}

func haversineKm(from ctdf.RoutePoint, to ctdf.RoutePoint) float64 {
	return from.DistanceTo(to) / 1000
}

func assertTotalsMatchSegments(t *testing.T, cost *ctdf.TransportCost) {
	t.Helper()

	var distance, duration, price float64
	for _, segment := range cost.Segments {
		distance += segment.DistanceKm
		duration += segment.DurationMinutes
		price += segment.CostRON
	}

	assert.InDelta(t, distance, cost.TotalDistanceKm, 0.005)
	assert.Equal(t, duration, cost.TotalDurationMinutes)
	assert.InDelta(t, price, cost.TotalCostRON, 0.005)
}

func TestWalkingIsFree(t *testing.T) {
	estimators := []*Estimator{
		newEstimator(nil, fixedTransit{}),
		newEstimator(fixedEngine{distance: 25000, duration: 18000}, fixedTransit{}),
	}

	for _, estimator := range estimators {
		cost := estimator.CalculateTransportCosts(context.Background(), []ctdf.RoutePoint{pointA, pointB, pointC}, ctdf.TransportModeWalking, "")

		require.Len(t, cost.Segments, 2)
		assert.Equal(t, 0.0, cost.TotalCostRON)
		assert.Greater(t, cost.TotalDistanceKm, 0.0)
		assertTotalsMatchSegments(t, cost)
	}
}

func TestCarFallbackCost(t *testing.T) {
	estimator := newEstimator(fixedEngine{err: errors.New("offline")}, fixedTransit{})

	cost := estimator.CalculateTransportCosts(context.Background(), []ctdf.RoutePoint{pointA, pointB}, ctdf.TransportModeCar, "")

	require.Len(t, cost.Segments, 1)
	assert.False(t, cost.IsRealRouteUsed)
	assert.Equal(t, ctdf.SegmentModeDrive, cost.Segments[0].Mode)

	expectedKm := haversineKm(pointA, pointB) * 1.3
	assert.InDelta(t, expectedKm, cost.TotalDistanceKm, 0.005)
	assert.InDelta(t, cost.TotalDistanceKm*0.42, cost.TotalCostRON, 0.01)
	assert.Equal(t, math.Round(expectedKm/40*60), cost.TotalDurationMinutes)
}

func TestTaxiWithUnreachableEngine(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	estimator := newEstimator(osrm.NewClient(server.URL, time.Second), fixedTransit{})

	cost := estimator.CalculateTransportCosts(context.Background(), []ctdf.RoutePoint{pointA, pointB}, ctdf.TransportModeTaxi, "")

	assert.Equal(t, ctdf.TransportModeTaxi, cost.Mode)
	assert.False(t, cost.IsRealRouteUsed)
	assert.InDelta(t, haversineKm(pointA, pointB)*1.3*3, cost.TotalCostRON, 0.02)
}

func TestTaxiWithReachableEngine(t *testing.T) {
	estimator := newEstimator(fixedEngine{distance: 2345.6, duration: 300}, fixedTransit{})

	cost := estimator.CalculateTransportCosts(context.Background(), []ctdf.RoutePoint{pointA, pointB}, ctdf.TransportModeTaxi, "")

	assert.True(t, cost.IsRealRouteUsed)
	assert.Equal(t, 2.35, cost.TotalDistanceKm)
	assert.Equal(t, 5.0, cost.TotalDurationMinutes)
	assert.Equal(t, 7.04, cost.TotalCostRON)
}

func TestFewerThanTwoValidPoints(t *testing.T) {
	estimator := newEstimator(fixedEngine{distance: 1000, duration: 60}, fixedTransit{})

	inputs := [][]ctdf.RoutePoint{
		nil,
		{pointA},
		{pointA, {Latitude: math.NaN(), Longitude: 26.1}},
		{{Latitude: 95, Longitude: 26.1}, {Latitude: 44.4, Longitude: 200}},
	}

	for _, points := range inputs {
		cost := estimator.CalculateTransportCosts(context.Background(), points, ctdf.TransportModeCar, "")

		assert.Equal(t, 0.0, cost.TotalDistanceKm)
		assert.Equal(t, 0.0, cost.TotalDurationMinutes)
		assert.Equal(t, 0.0, cost.TotalCostRON)
		assert.False(t, cost.IsRealRouteUsed)
		assert.NotNil(t, cost.Segments)
		assert.Empty(t, cost.Segments)
	}
}

func TestInvalidPointsAreDropped(t *testing.T) {
	estimator := newEstimator(nil, fixedTransit{})

	points := []ctdf.RoutePoint{pointA, {Latitude: math.Inf(1), Longitude: 26.1}, pointB}
	cost := estimator.CalculateTransportCosts(context.Background(), points, ctdf.TransportModeCar, "")

	require.Len(t, cost.Segments, 1)
	assert.Equal(t, "A", cost.Segments[0].From.Name)
	assert.Equal(t, "B", cost.Segments[0].To.Name)
	assert.Len(t, points, 3)
}

func TestTransitUsesTransitPlan(t *testing.T) {
	stopA := ctdf.RoutePoint{Latitude: 44.4270, Longitude: 26.1030, Name: "Stop A"}
	stopB := ctdf.RoutePoint{Latitude: 44.4365, Longitude: 26.1120, Name: "Stop B"}

	plan := &ctdf.TransitRouteResult{}
	plan.AddSegment(ctdf.TransitSegment{Type: ctdf.TransitSegmentWalk, From: pointA, To: stopA, Distance: 50, Duration: 36, Geometry: ctdf.StraightLine(pointA, stopA)})
	plan.AddSegment(ctdf.TransitSegment{
		Type: ctdf.TransitSegmentTransit, From: stopA, To: stopB, Distance: 1290, Duration: 232.2, Geometry: ctdf.StraightLine(stopA, stopB),
		Route: &ctdf.TransitRoute{ID: "R1", ShortName: "5"},
	})
	plan.AddSegment(ctdf.TransitSegment{Type: ctdf.TransitSegmentWalk, From: stopB, To: pointB, Distance: 60, Duration: 43.2, Geometry: ctdf.StraightLine(stopB, pointB)})

	estimator := newEstimator(fixedEngine{err: errors.New("offline")}, fixedTransit{plan: plan})

	cost := estimator.CalculateTransportCosts(context.Background(), []ctdf.RoutePoint{pointA, pointB}, ctdf.TransportModeTransit, "Bucuresti")

	require.Len(t, cost.Segments, 3)
	assert.True(t, cost.IsRealRouteUsed)
	assert.Equal(t, 5.0, cost.TotalCostRON)
	assert.Equal(t, 0.0, cost.Segments[0].CostRON)
	assert.Equal(t, "5", cost.Segments[1].RouteName)
	assert.Equal(t, ctdf.SegmentModeTransit, cost.Segments[1].Mode)
	assert.Equal(t, 1.4, cost.TotalDistanceKm)
	assertTotalsMatchSegments(t, cost)
}

func TestTransitFallsBackToWalking(t *testing.T) {
	estimator := newEstimator(fixedEngine{distance: 1500, duration: 1080}, fixedTransit{plan: nil})

	cost := estimator.CalculateTransportCosts(context.Background(), []ctdf.RoutePoint{pointA, pointB}, ctdf.TransportModeTransit, "Bucuresti")

	assert.Equal(t, ctdf.TransportModeTransit, cost.Mode)
	require.Len(t, cost.Segments, 1)
	assert.Equal(t, ctdf.SegmentModeWalk, cost.Segments[0].Mode)
	assert.True(t, cost.IsRealRouteUsed)
	assert.Equal(t, 1.5, cost.TotalDistanceKm)
	assert.Equal(t, 18.0, cost.TotalDurationMinutes)
	assert.Equal(t, 5.0, cost.TotalCostRON)
}

func TestTransitWalkOnlyPlanIsWalkedOnce(t *testing.T) {
	stop := ctdf.RoutePoint{Latitude: 44.4318, Longitude: 26.1075, Name: "Shared stop"}

	plan := &ctdf.TransitRouteResult{}
	plan.AddSegment(ctdf.TransitSegment{Type: ctdf.TransitSegmentWalk, From: pointA, To: stop, Distance: 500, Duration: 360})
	plan.AddSegment(ctdf.TransitSegment{Type: ctdf.TransitSegmentWalk, From: stop, To: pointB, Distance: 500, Duration: 360})

	estimator := newEstimator(fixedEngine{distance: 1500, duration: 1080}, fixedTransit{plan: plan})

	cost := estimator.CalculateTransportCosts(context.Background(), []ctdf.RoutePoint{pointA, pointB}, ctdf.TransportModeTransit, "Bucuresti")

	require.Len(t, cost.Segments, 1)
	assert.Equal(t, ctdf.SegmentModeWalk, cost.Segments[0].Mode)
	assert.Equal(t, 1.5, cost.TotalDistanceKm)
	assert.Equal(t, 5.0, cost.TotalCostRON)
	assertTotalsMatchSegments(t, cost)
}

func TestWalkingTransitEstimate(t *testing.T) {
	estimator := newEstimator(nil, fixedTransit{})

	cost := estimator.CalculateTransportCosts(context.Background(), []ctdf.RoutePoint{pointA, pointB}, ctdf.TransportModeWalkingTransit, "")

	require.Len(t, cost.Segments, 1)
	assert.False(t, cost.IsRealRouteUsed)
	assert.Equal(t, 5.0, cost.TotalCostRON)

	km := cost.Segments[0].DistanceKm
	assert.InDelta(t, math.Round(km/2/5*60+km/2/20*60), cost.TotalDurationMinutes, 1)
}

func TestUnknownModeIsWalking(t *testing.T) {
	estimator := newEstimator(nil, fixedTransit{})

	cost := estimator.CalculateTransportCosts(context.Background(), []ctdf.RoutePoint{pointA, pointB}, ctdf.TransportMode("teleport"), "")

	assert.Equal(t, ctdf.TransportModeWalking, cost.Mode)
	assert.Equal(t, 0.0, cost.TotalCostRON)
	require.Len(t, cost.Segments, 1)
}

func TestNegativeAndNaNClamped(t *testing.T) {
	estimator := newEstimator(fixedEngine{distance: math.NaN(), duration: -20}, fixedTransit{})

	cost := estimator.CalculateTransportCosts(context.Background(), []ctdf.RoutePoint{pointA, pointB}, ctdf.TransportModeTaxi, "")

	require.Len(t, cost.Segments, 1)
	assert.Equal(t, 0.0, cost.TotalDistanceKm)
	assert.Equal(t, 0.0, cost.TotalDurationMinutes)
	assert.Equal(t, 0.0, cost.TotalCostRON)
}

func TestWithoutAggregator(t *testing.T) {
	estimator := &Estimator{}

	cost := estimator.CalculateTransportCosts(context.Background(), []ctdf.RoutePoint{pointA, pointB}, ctdf.TransportModeCar, "")

	require.Len(t, cost.Segments, 1)
	assert.False(t, cost.IsRealRouteUsed)
	assert.InDelta(t, haversineKm(pointA, pointB)*1.3, cost.TotalDistanceKm, 0.005)
}
