package ctdf

type TransitSegmentType string

const (
	TransitSegmentWalk    TransitSegmentType = "walk"
	TransitSegmentTransit TransitSegmentType = "transit"
)

// TransitRouteResult is a walk, transit, walk itinerary between two points
type TransitRouteResult struct {
	Segments      []TransitSegment `json:"segments"`
	TotalDistance float64          `json:"totalDistance"`
	TotalDuration float64          `json:"totalDuration"`
}

type TransitSegment struct {
	Type     TransitSegmentType `json:"type"`
	From     RoutePoint         `json:"from"`
	To       RoutePoint         `json:"to"`
	Distance float64            `json:"distance"`
	Duration float64            `json:"duration"`
	Geometry [][]float64        `json:"geometry"`

	// Route is nil when no single line connects the two stops
	Route *TransitRoute `json:"route"`
}

// UsesTransit reports whether any segment rides a transit line
func (r *TransitRouteResult) UsesTransit() bool {
	if r == nil {
		return false
	}

	for _, segment := range r.Segments {
		if segment.Type == TransitSegmentTransit {
			return true
		}
	}

	return false
}

func (r *TransitRouteResult) AddSegment(segment TransitSegment) {
	r.Segments = append(r.Segments, segment)
	r.TotalDistance += segment.Distance
	r.TotalDuration += segment.Duration
}

// RouteResult converts the itinerary into the generic routed form
func (r *TransitRouteResult) RouteResult() *RouteResult {
	result := &RouteResult{
		Segments: []RouteSegment{},
	}

	for _, segment := range r.Segments {
		routeSegment := RouteSegment{
			From:     segment.From,
			To:       segment.To,
			Mode:     SegmentModeWalk,
			Distance: segment.Distance,
			Duration: segment.Duration,
			Geometry: segment.Geometry,
			IsReal:   true,
		}

		if segment.Type == TransitSegmentTransit {
			routeSegment.Mode = SegmentModeTransit
			if segment.Route != nil {
				routeSegment.RouteName = segment.Route.DisplayName()
			}
		}

		result.AddSegment(routeSegment)
	}

	return result
}
