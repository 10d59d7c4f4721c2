package ctdf

import "math"

const EarthRadiusMeters = 6371000.0

// RoutePoint is a caller supplied waypoint
type RoutePoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name,omitempty"`
}

// Valid reports whether the point has finite, in-range coordinates
func (p RoutePoint) Valid() bool {
	if math.IsNaN(p.Latitude) || math.IsInf(p.Latitude, 0) || p.Latitude < -90 || p.Latitude > 90 {
		return false
	}
	if math.IsNaN(p.Longitude) || math.IsInf(p.Longitude, 0) || p.Longitude < -180 || p.Longitude > 180 {
		return false
	}

	return true
}

// Coordinates returns the point in [lon, lat] order
func (p RoutePoint) Coordinates() []float64 {
	return []float64{p.Longitude, p.Latitude}
}

func (p RoutePoint) DistanceTo(other RoutePoint) float64 {
	return HaversineDistance(p.Latitude, p.Longitude, other.Latitude, other.Longitude)
}

// DistanceFromLine is the planar distance in degrees from the point to the segment a-b, both given as [lon, lat]
func (p RoutePoint) DistanceFromLine(a []float64, b []float64) float64 {
	A := p.Longitude - a[0]
	B := p.Latitude - a[1]
	C := b[0] - a[0]
	D := b[1] - a[1]

	dot := A*C + B*D
	lenSq := C*C + D*D

	param := -1.0
	if lenSq != 0 {
		param = dot / lenSq
	}

	var xx, yy float64

	if param < 0 {
		xx = a[0]
		yy = a[1]
	} else if param > 1 {
		xx = b[0]
		yy = b[1]
	} else {
		xx = a[0] + param*C
		yy = a[1] + param*D
	}

	dx := p.Longitude - xx
	dy := p.Latitude - yy
	return math.Sqrt(dx*dx + dy*dy)
}

// NearestLineIndex returns the index of the geometry segment closest to the point, -1 for fewer than 2 coordinates
func (p RoutePoint) NearestLineIndex(geometry [][]float64) int {
	nearest := -1
	nearestDistance := math.Inf(1)

	for i := 0; i+1 < len(geometry); i++ {
		if len(geometry[i]) < 2 || len(geometry[i+1]) < 2 {
			continue
		}

		distance := p.DistanceFromLine(geometry[i], geometry[i+1])
		if distance < nearestDistance {
			nearest = i
			nearestDistance = distance
		}
	}

	return nearest
}

// HaversineDistance returns the great-circle distance in meters
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	deltaPhi := toRadians(lat2 - lat1)
	deltaLambda := toRadians(lon2 - lon1)

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*
			math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Bounds is a lat/lon bounding box
type Bounds struct {
	MinLatitude  float64 `json:"minLatitude"`
	MinLongitude float64 `json:"minLongitude"`
	MaxLatitude  float64 `json:"maxLatitude"`
	MaxLongitude float64 `json:"maxLongitude"`
}

func BoundsAround(points ...RoutePoint) *Bounds {
	if len(points) == 0 {
		return nil
	}

	bounds := &Bounds{
		MinLatitude:  points[0].Latitude,
		MinLongitude: points[0].Longitude,
		MaxLatitude:  points[0].Latitude,
		MaxLongitude: points[0].Longitude,
	}
	for _, point := range points[1:] {
		bounds.MinLatitude = math.Min(bounds.MinLatitude, point.Latitude)
		bounds.MinLongitude = math.Min(bounds.MinLongitude, point.Longitude)
		bounds.MaxLatitude = math.Max(bounds.MaxLatitude, point.Latitude)
		bounds.MaxLongitude = math.Max(bounds.MaxLongitude, point.Longitude)
	}

	return bounds
}

// Pad grows the box by the given number of degrees on every side
func (b *Bounds) Pad(degrees float64) *Bounds {
	return &Bounds{
		MinLatitude:  b.MinLatitude - degrees,
		MinLongitude: b.MinLongitude - degrees,
		MaxLatitude:  b.MaxLatitude + degrees,
		MaxLongitude: b.MaxLongitude + degrees,
	}
}

func (b *Bounds) Contains(latitude, longitude float64) bool {
	return latitude >= b.MinLatitude && latitude <= b.MaxLatitude &&
		longitude >= b.MinLongitude && longitude <= b.MaxLongitude
}
