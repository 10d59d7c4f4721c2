package feeds

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/travigo/routecost/pkg/ctdf"
)

// csvReader skips malformed rows and rows with fewer fields than the header instead of
// failing the whole file. A malformed header is still an error.
type csvReader struct {
	reader *csv.Reader
	header []string
}

func newCSVReader(in io.Reader) *csvReader {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	return &csvReader{reader: r}
}

func (c *csvReader) Read() ([]string, error) {
	for {
		record, err := c.reader.Read()
		if err != nil {
			var parseError *csv.ParseError
			if c.header != nil && errors.As(err, &parseError) {
				continue
			}
			return nil, err
		}

		if c.header == nil {
			c.header = normaliseHeader(record)
			return c.header, nil
		}

		if len(record) < len(c.header) {
			continue
		}

		return record, nil
	}
}

func (c *csvReader) ReadAll() ([][]string, error) {
	var records [][]string

	for {
		record, err := c.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, err
		}

		records = append(records, record)
	}
}

func normaliseHeader(header []string) []string {
	normalised := make([]string, len(header))
	for i, column := range header {
		column = strings.TrimPrefix(column, "\ufeff")
		normalised[i] = strings.ToLower(strings.TrimSpace(column))
	}

	return normalised
}

func unmarshal(in io.Reader, out interface{}) error {
	err := gocsv.UnmarshalCSV(newCSVReader(in), out)
	if errors.Is(err, gocsv.ErrEmptyCSVFile) {
		return nil
	}

	return err
}

func ParseStops(in io.Reader) (map[string]*ctdf.Stop, error) {
	stops := map[string]*ctdf.Stop{}

	var rows []*stopRow
	if err := unmarshal(in, &rows); err != nil {
		return stops, err
	}

	for _, row := range rows {
		if row.ID == "" || parseInt(row.LocationType, 0) != 0 {
			continue
		}

		latitude, latOK := parseCoordinate(row.Latitude)
		longitude, lonOK := parseCoordinate(row.Longitude)
		if !latOK || !lonOK {
			continue
		}

		stops[row.ID] = &ctdf.Stop{
			ID:            row.ID,
			Name:          row.Name,
			Description:   row.Description,
			Latitude:      latitude,
			Longitude:     longitude,
			LocationType:  0,
			PlatformCode:  row.PlatformCode,
			ParentStation: row.ParentStation,
		}
	}

	return stops, nil
}

func ParseRoutes(in io.Reader) (map[string]*ctdf.Route, error) {
	routes := map[string]*ctdf.Route{}

	var rows []*routeRow
	if err := unmarshal(in, &rows); err != nil {
		return routes, err
	}

	for _, row := range rows {
		if row.ID == "" {
			continue
		}

		routes[row.ID] = &ctdf.Route{
			ID:         row.ID,
			AgencyID:   row.AgencyID,
			ShortName:  row.ShortName,
			LongName:   row.LongName,
			Type:       ctdf.RouteType(parseInt(row.Type, int(ctdf.RouteTypeBus))),
			Colour:     parseColour(row.Colour, ctdf.DefaultRouteColour),
			TextColour: parseColour(row.TextColour, ctdf.DefaultRouteTextColour),
		}
	}

	return routes, nil
}

func ParseShapes(in io.Reader) (map[string][]*ctdf.ShapePoint, error) {
	shapes := map[string][]*ctdf.ShapePoint{}

	var rows []*shapeRow
	if err := unmarshal(in, &rows); err != nil {
		return shapes, err
	}

	for _, row := range rows {
		if row.ID == "" {
			continue
		}

		latitude, latOK := parseCoordinate(row.PointLatitude)
		longitude, lonOK := parseCoordinate(row.PointLongitude)
		if !latOK || !lonOK {
			continue
		}

		distance, _ := strconv.ParseFloat(strings.TrimSpace(row.DistanceTraveled), 64)

		shapes[row.ID] = append(shapes[row.ID], &ctdf.ShapePoint{
			ShapeID:          row.ID,
			Latitude:         latitude,
			Longitude:        longitude,
			Sequence:         parseInt(row.PointSequence, 0),
			DistanceTraveled: distance,
		})
	}

	for _, points := range shapes {
		sort.SliceStable(points, func(i, j int) bool {
			return points[i].Sequence < points[j].Sequence
		})
	}

	return shapes, nil
}

type tripTables struct {
	byRoute     map[string]*ctdf.TripBinding
	routeByTrip map[string]string
}

// ParseTrips keeps the first trip seen for each route as that route's shape binding
func ParseTrips(in io.Reader) (map[string]*ctdf.TripBinding, map[string]string, error) {
	tables, err := parseTripTables(in)

	return tables.byRoute, tables.routeByTrip, err
}

func parseTripTables(in io.Reader) (*tripTables, error) {
	tables := &tripTables{
		byRoute:     map[string]*ctdf.TripBinding{},
		routeByTrip: map[string]string{},
	}

	var rows []*tripRow
	if err := unmarshal(in, &rows); err != nil {
		return tables, err
	}

	for _, row := range rows {
		if row.RouteID == "" {
			continue
		}

		if row.ID != "" {
			tables.routeByTrip[row.ID] = row.RouteID
		}

		if _, exists := tables.byRoute[row.RouteID]; !exists {
			tables.byRoute[row.RouteID] = &ctdf.TripBinding{
				RouteID: row.RouteID,
				ShapeID: row.ShapeID,
			}
		}
	}

	return tables, nil
}

func ParseStopTimes(in io.Reader) ([]StopTime, error) {
	stopTimes := []StopTime{}

	var rows []*stopTimeRow
	if err := unmarshal(in, &rows); err != nil {
		return stopTimes, err
	}

	for _, row := range rows {
		if row.TripID == "" || row.StopID == "" {
			continue
		}

		stopTimes = append(stopTimes, StopTime{
			TripID: row.TripID,
			StopID: row.StopID,
		})
	}

	return stopTimes, nil
}

func parseCoordinate(value string) (float64, bool) {
	coordinate, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(coordinate) || math.IsInf(coordinate, 0) || coordinate == 0 {
		return 0, false
	}

	return coordinate, true
}

func parseInt(value string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}

	return n
}

func parseColour(value string, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}

	if !strings.HasPrefix(value, "#") {
		value = "#" + value
	}

	return value
}
