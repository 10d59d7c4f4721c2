package feeds

// Rows are unmarshalled as strings so one bad numeric cell only drops its own row

type stopRow struct {
	ID            string `csv:"stop_id"`
	Name          string `csv:"stop_name"`
	Description   string `csv:"stop_desc"`
	Latitude      string `csv:"stop_lat"`
	Longitude     string `csv:"stop_lon"`
	LocationType  string `csv:"location_type"`
	PlatformCode  string `csv:"platform_code"`
	ParentStation string `csv:"parent_station"`
}

type routeRow struct {
	ID         string `csv:"route_id"`
	AgencyID   string `csv:"agency_id"`
	ShortName  string `csv:"route_short_name"`
	LongName   string `csv:"route_long_name"`
	Type       string `csv:"route_type"`
	Colour     string `csv:"route_color"`
	TextColour string `csv:"route_text_color"`
}

type shapeRow struct {
	ID               string `csv:"shape_id"`
	PointLatitude    string `csv:"shape_pt_lat"`
	PointLongitude   string `csv:"shape_pt_lon"`
	PointSequence    string `csv:"shape_pt_sequence"`
	DistanceTraveled string `csv:"shape_dist_traveled"`
}

type tripRow struct {
	ID      string `csv:"trip_id"`
	RouteID string `csv:"route_id"`
	ShapeID string `csv:"shape_id"`
}

type stopTimeRow struct {
	TripID string `csv:"trip_id"`
	StopID string `csv:"stop_id"`
}

// StopTime is the part of a stop_times row needed to tell which routes serve a stop
type StopTime struct {
	TripID string
	StopID string
}
