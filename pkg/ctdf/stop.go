package ctdf

import "golang.org/x/exp/slices"

// Stop is a boarding point read from a transit feed
type Stop struct {
	ID            string  `json:"id" groups:"basic"`
	Name          string  `json:"name" groups:"basic"`
	Description   string  `json:"description,omitempty" groups:"detailed"`
	Latitude      float64 `json:"latitude" groups:"basic"`
	Longitude     float64 `json:"longitude" groups:"basic"`
	LocationType  int     `json:"locationType" groups:"detailed"`
	PlatformCode  string  `json:"platformCode,omitempty" groups:"detailed"`
	ParentStation string  `json:"parentStation,omitempty" groups:"detailed"`
}

func (s *Stop) RoutePoint() RoutePoint {
	return RoutePoint{
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		Name:      s.Name,
	}
}

// TransitStop is a stop together with the names of the routes seen serving it
type TransitStop struct {
	ID            string   `json:"id" groups:"basic"`
	Name          string   `json:"name" groups:"basic"`
	Description   string   `json:"description,omitempty" groups:"detailed"`
	Latitude      float64  `json:"latitude" groups:"basic"`
	Longitude     float64  `json:"longitude" groups:"basic"`
	LocationType  int      `json:"locationType" groups:"detailed"`
	PlatformCode  string   `json:"platformCode,omitempty" groups:"detailed"`
	ParentStation string   `json:"parentStation,omitempty" groups:"detailed"`
	RouteNames    []string `json:"routeNames" groups:"basic"`
}

func (s *TransitStop) RoutePoint() RoutePoint {
	return RoutePoint{
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		Name:      s.Name,
	}
}

func (s *TransitStop) ServedBy(routeName string) bool {
	if routeName == "" {
		return false
	}

	return slices.Contains(s.RouteNames, routeName)
}
