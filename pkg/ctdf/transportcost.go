package ctdf

// TransportCost is a priced and timed itinerary.
// Costs are in RON, distances in kilometres and durations in whole minutes.
type TransportCost struct {
	Mode                 TransportMode `json:"mode"`
	TotalDistanceKm      float64       `json:"totalDistanceKm"`
	TotalDurationMinutes float64       `json:"totalDurationMinutes"`
	TotalCostRON         float64       `json:"totalCostRON"`
	Segments             []CostSegment `json:"segments"`
	IsRealRouteUsed      bool          `json:"isRealRouteUsed"`
}

type CostSegment struct {
	From            RoutePoint  `json:"from"`
	To              RoutePoint  `json:"to"`
	Mode            SegmentMode `json:"mode"`
	DistanceKm      float64     `json:"distanceKm"`
	DurationMinutes float64     `json:"durationMinutes"`
	CostRON         float64     `json:"costRON"`
	RouteName       string      `json:"routeName,omitempty"`
	Geometry        [][]float64 `json:"geometry,omitempty"`
	Polyline        string      `json:"polyline,omitempty"`
	IsReal          bool        `json:"isReal"`
}

func EmptyTransportCost(mode TransportMode) *TransportCost {
	return &TransportCost{
		Mode:     mode,
		Segments: []CostSegment{},
	}
}
