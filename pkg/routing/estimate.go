package routing

import (
	"github.com/travigo/routecost/pkg/ctdf"
)

// Straight line distances are stretched by a curvature factor to approximate the real path
type profileModel struct {
	Curvature float64
	SpeedKmh  float64
}

var profileModels = map[ctdf.RoutingProfile]profileModel{
	ctdf.RoutingProfileWalking: {Curvature: 1.15, SpeedKmh: 5},
	ctdf.RoutingProfileDriving: {Curvature: 1.35, SpeedKmh: 40},
	ctdf.RoutingProfileCycling: {Curvature: 1.25, SpeedKmh: 15},
}

func modelFor(profile ctdf.RoutingProfile) profileModel {
	if model, exists := profileModels[profile]; exists {
		return model
	}

	return profileModels[ctdf.RoutingProfileWalking]
}

// EstimateSegment builds a segment without the routing engine, as a straight line
func EstimateSegment(from ctdf.RoutePoint, to ctdf.RoutePoint, profile ctdf.RoutingProfile) ctdf.RouteSegment {
	model := modelFor(profile)

	distance := from.DistanceTo(to) * model.Curvature
	duration := distance / (model.SpeedKmh / 3.6)

	return ctdf.RouteSegment{
		From:     from,
		To:       to,
		Mode:     SegmentMode(profile),
		Distance: distance,
		Duration: duration,
		Geometry: ctdf.StraightLine(from, to),
		IsReal:   false,
	}
}
