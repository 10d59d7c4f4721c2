package ctdf

import (
	"github.com/twpayne/go-polyline"
)

type SegmentMode string

const (
	SegmentModeWalk    SegmentMode = "walk"
	SegmentModeDrive   SegmentMode = "drive"
	SegmentModeCycle   SegmentMode = "cycle"
	SegmentModeTransit SegmentMode = "transit"
)

// RouteResult is a routed path over an ordered list of waypoints.
// Distance is in meters, Duration in seconds and Geometry holds [lon, lat] pairs.
type RouteResult struct {
	Distance float64        `json:"distance"`
	Duration float64        `json:"duration"`
	Segments []RouteSegment `json:"segments"`
	Geometry [][]float64    `json:"geometry,omitempty"`
}

type RouteSegment struct {
	From      RoutePoint  `json:"from"`
	To        RoutePoint  `json:"to"`
	Mode      SegmentMode `json:"mode"`
	Distance  float64     `json:"distance"`
	Duration  float64     `json:"duration"`
	Geometry  [][]float64 `json:"geometry"`
	RouteName string      `json:"routeName,omitempty"`

	// IsReal is false when the segment was estimated rather than routed
	IsReal bool `json:"isReal"`
}

func (r *RouteResult) AddSegment(segment RouteSegment) {
	r.Segments = append(r.Segments, segment)
	r.Distance += segment.Distance
	r.Duration += segment.Duration
	r.Geometry = AppendGeometry(r.Geometry, segment.Geometry)
}

func (r *RouteResult) HasRealSegment() bool {
	for _, segment := range r.Segments {
		if segment.IsReal {
			return true
		}
	}

	return false
}

// EncodedPolyline returns the geometry in the Google encoded polyline format
func (r *RouteResult) EncodedPolyline() string {
	return EncodePolyline(r.Geometry)
}

// AppendGeometry joins next onto path, dropping the first coordinate of next when it repeats the last of path
func AppendGeometry(path [][]float64, next [][]float64) [][]float64 {
	if len(next) == 0 {
		return path
	}

	if len(path) > 0 && sameCoordinate(path[len(path)-1], next[0]) {
		next = next[1:]
	}

	return append(path, next...)
}

func sameCoordinate(a []float64, b []float64) bool {
	return len(a) >= 2 && len(b) >= 2 && a[0] == b[0] && a[1] == b[1]
}

func StraightLine(from RoutePoint, to RoutePoint) [][]float64 {
	return [][]float64{from.Coordinates(), to.Coordinates()}
}

func EncodePolyline(geometry [][]float64) string {
	coords := make([][]float64, 0, len(geometry))
	for _, coordinate := range geometry {
		if len(coordinate) < 2 {
			continue
		}
		coords = append(coords, []float64{coordinate[1], coordinate[0]})
	}

	return string(polyline.EncodeCoords(coords))
}
