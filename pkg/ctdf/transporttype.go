package ctdf

import "strings"

// RouteType is the GTFS route_type of a transit line
type RouteType int

//goland:noinspection GoUnusedConst
const (
	RouteTypeTram       RouteType = 0
	RouteTypeSubway     RouteType = 1
	RouteTypeRail       RouteType = 2
	RouteTypeBus        RouteType = 3
	RouteTypeFerry      RouteType = 4
	RouteTypeCableCar   RouteType = 5
	RouteTypeGondola    RouteType = 6
	RouteTypeFunicular  RouteType = 7
	RouteTypeTrolleybus RouteType = 11
	RouteTypeMonorail   RouteType = 12
)

func (t RouteType) String() string {
	switch t {
	case RouteTypeTram:
		return "tram"
	case RouteTypeSubway:
		return "subway"
	case RouteTypeRail:
		return "rail"
	case RouteTypeBus:
		return "bus"
	case RouteTypeFerry:
		return "ferry"
	case RouteTypeCableCar:
		return "cableCar"
	case RouteTypeGondola:
		return "gondola"
	case RouteTypeFunicular:
		return "funicular"
	case RouteTypeTrolleybus:
		return "trolleybus"
	case RouteTypeMonorail:
		return "monorail"
	default:
		return "unknown"
	}
}

// TransportMode is the way a traveller pays for and makes a trip
type TransportMode string

const (
	TransportModeWalking        TransportMode = "walking"
	TransportModeTransit        TransportMode = "transit"
	TransportModeWalkingTransit TransportMode = "walking-transit"
	TransportModeCar            TransportMode = "car"
	TransportModeTaxi           TransportMode = "taxi"
)

func ParseTransportMode(s string) (TransportMode, bool) {
	mode := TransportMode(strings.ToLower(strings.TrimSpace(s)))

	switch mode {
	case TransportModeWalking, TransportModeTransit, TransportModeWalkingTransit, TransportModeCar, TransportModeTaxi:
		return mode, true
	}

	return TransportModeWalking, false
}

// UsesTransit reports whether the mode should try the transit planner first
func (m TransportMode) UsesTransit() bool {
	return m == TransportModeTransit || m == TransportModeWalkingTransit
}

// RoutingProfile is the travel profile used when asking the routing engine for a path
type RoutingProfile string

const (
	RoutingProfileWalking RoutingProfile = "walking"
	RoutingProfileDriving RoutingProfile = "driving"
	RoutingProfileCycling RoutingProfile = "cycling"
)

func ParseRoutingProfile(s string) (RoutingProfile, bool) {
	profile := RoutingProfile(strings.ToLower(strings.TrimSpace(s)))

	switch profile {
	case RoutingProfileWalking, RoutingProfileDriving, RoutingProfileCycling:
		return profile, true
	}

	return RoutingProfileWalking, false
}

// EngineProfile is the profile name understood by the routing engine
func (p RoutingProfile) EngineProfile() string {
	switch p {
	case RoutingProfileDriving:
		return "car"
	case RoutingProfileCycling:
		return "bike"
	default:
		return "foot"
	}
}

func (m TransportMode) RoutingProfile() RoutingProfile {
	switch m {
	case TransportModeCar, TransportModeTaxi:
		return RoutingProfileDriving
	default:
		return RoutingProfileWalking
	}
}
