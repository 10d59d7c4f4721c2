package ctdf

const (
	DefaultRouteColour     = "#3b82f6"
	DefaultRouteTextColour = "#ffffff"
)

// Route is a transit line read from a feed
type Route struct {
	ID         string    `json:"id" groups:"basic"`
	AgencyID   string    `json:"agencyId" groups:"detailed"`
	ShortName  string    `json:"shortName" groups:"basic"`
	LongName   string    `json:"longName" groups:"basic"`
	Type       RouteType `json:"type" groups:"basic"`
	Colour     string    `json:"color" groups:"basic"`
	TextColour string    `json:"textColor" groups:"basic"`
}

// DisplayName is the short name where the feed has one, otherwise the long name
func (r *Route) DisplayName() string {
	if r.ShortName != "" {
		return r.ShortName
	}

	return r.LongName
}

type ShapePoint struct {
	ShapeID          string  `json:"shapeId"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Sequence         int     `json:"sequence"`
	DistanceTraveled float64 `json:"distanceTraveled,omitempty"`
}

// TripBinding ties a route to the shape of the first trip seen for it
type TripBinding struct {
	RouteID string `json:"routeId"`
	ShapeID string `json:"shapeId"`
}

// TransitRoute is a route with its physical geometry attached
type TransitRoute struct {
	ID         string      `json:"id" groups:"basic"`
	AgencyID   string      `json:"agencyId" groups:"detailed"`
	ShortName  string      `json:"shortName" groups:"basic"`
	LongName   string      `json:"longName" groups:"basic"`
	Type       RouteType   `json:"type" groups:"basic"`
	Colour     string      `json:"color" groups:"basic"`
	TextColour string      `json:"textColor" groups:"basic"`
	Geometry   [][]float64 `json:"geometry" groups:"detailed"`
}

func (r *TransitRoute) DisplayName() string {
	if r.ShortName != "" {
		return r.ShortName
	}

	return r.LongName
}
