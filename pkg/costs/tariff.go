package costs

import (
	"github.com/travigo/routecost/pkg/ctdf"
)

const (
	WalkingSpeedKmh = 5.0
	TransitSpeedKmh = 20.0
	CarSpeedKmh     = 40.0
	TaxiSpeedKmh    = 30.0

	TransitFareRON = 5.0

	// 6 RON/L at 7L/100km
	CarCostPerKmRON  = 0.42
	TaxiCostPerKmRON = 3.0

	// DrivingCorrection stretches straight line distances when no road route is known
	DrivingCorrection = 1.3
)

func distanceCorrection(mode ctdf.TransportMode) float64 {
	switch mode {
	case ctdf.TransportModeCar, ctdf.TransportModeTaxi:
		return DrivingCorrection
	default:
		return 1
	}
}

// estimatedMinutes is the travel time over distanceKm from the speed model alone
func estimatedMinutes(mode ctdf.TransportMode, distanceKm float64) float64 {
	switch mode {
	case ctdf.TransportModeTransit:
		return distanceKm / TransitSpeedKmh * 60
	case ctdf.TransportModeWalkingTransit:
		half := distanceKm / 2
		return half/WalkingSpeedKmh*60 + half/TransitSpeedKmh*60
	case ctdf.TransportModeCar:
		return distanceKm / CarSpeedKmh * 60
	case ctdf.TransportModeTaxi:
		return distanceKm / TaxiSpeedKmh * 60
	default:
		return distanceKm / WalkingSpeedKmh * 60
	}
}

// segmentCost prices one segment. Walks inside a transit itinerary are free.
func segmentCost(mode ctdf.TransportMode, segmentMode ctdf.SegmentMode, distanceKm float64, itineraryUsesTransit bool) float64 {
	switch mode {
	case ctdf.TransportModeTransit, ctdf.TransportModeWalkingTransit:
		if itineraryUsesTransit && segmentMode != ctdf.SegmentModeTransit {
			return 0
		}
		return TransitFareRON
	case ctdf.TransportModeCar:
		return distanceKm * CarCostPerKmRON
	case ctdf.TransportModeTaxi:
		return distanceKm * TaxiCostPerKmRON
	default:
		return 0
	}
}

func estimatedSegmentMode(mode ctdf.TransportMode) ctdf.SegmentMode {
	switch mode {
	case ctdf.TransportModeTransit, ctdf.TransportModeWalkingTransit:
		return ctdf.SegmentModeTransit
	case ctdf.TransportModeCar, ctdf.TransportModeTaxi:
		return ctdf.SegmentModeDrive
	default:
		return ctdf.SegmentModeWalk
	}
}
