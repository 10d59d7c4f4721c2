package feeds

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/routecost/pkg/ctdf"
)

const defaultSampleBytes = 2 * 1024 * 1024
const defaultSampleLines = 50000

// SampleLimits bounds how much of stop_times is read. stop_times can be tens of megabytes
// so only a prefix is used to find which routes serve which stops.
type SampleLimits struct {
	MaxBytes int64
	MaxLines int
}

func DefaultSampleLimits() SampleLimits {
	return SampleLimits{
		MaxBytes: defaultSampleBytes,
		MaxLines: defaultSampleLines,
	}
}

// Loader reads feed tables through a Fetcher and memoizes them in a Cache.
// Fetch and parse failures are logged and give empty tables, never errors.
type Loader struct {
	Fetcher      Fetcher
	Cache        *Cache
	SampleLimits SampleLimits

	// Transformer, when set, rewrites every route as it is loaded
	Transformer Transformer
}

type Transformer interface {
	Transform(input any)
}

func NewLoader(fetcher Fetcher, cache *Cache) *Loader {
	return &Loader{
		Fetcher:      fetcher,
		Cache:        cache,
		SampleLimits: DefaultSampleLimits(),
	}
}

func cacheKey(table string, feedPath string) string {
	return fmt.Sprintf("%s:%s", table, feedPath)
}

func (l *Loader) LoadStops(ctx context.Context, feedPath string) map[string]*ctdf.Stop {
	return loadCached(l.Cache, cacheKey("stops", feedPath), func() (map[string]*ctdf.Stop, bool) {
		stops := map[string]*ctdf.Stop{}

		ok := l.parseFile(ctx, feedPath, "stops", 0, func(r io.Reader) (err error) {
			stops, err = ParseStops(r)
			return err
		})

		return stops, ok
	})
}

func (l *Loader) LoadRoutes(ctx context.Context, feedPath string) map[string]*ctdf.Route {
	return loadCached(l.Cache, cacheKey("routes", feedPath), func() (map[string]*ctdf.Route, bool) {
		routes := map[string]*ctdf.Route{}

		ok := l.parseFile(ctx, feedPath, "routes", 0, func(r io.Reader) (err error) {
			routes, err = ParseRoutes(r)
			return err
		})

		if l.Transformer != nil {
			for _, route := range routes {
				l.Transformer.Transform(route)
			}
		}

		return routes, ok
	})
}

func (l *Loader) LoadShapes(ctx context.Context, feedPath string) map[string][]*ctdf.ShapePoint {
	return loadCached(l.Cache, cacheKey("shapes", feedPath), func() (map[string][]*ctdf.ShapePoint, bool) {
		shapes := map[string][]*ctdf.ShapePoint{}

		ok := l.parseFile(ctx, feedPath, "shapes", 0, func(r io.Reader) (err error) {
			shapes, err = ParseShapes(r)
			return err
		})

		return shapes, ok
	})
}

// LoadTrips returns the trip binding of every route, keyed by route id
func (l *Loader) LoadTrips(ctx context.Context, feedPath string) map[string]*ctdf.TripBinding {
	return l.loadTripTables(ctx, feedPath).byRoute
}

// LoadTripRoutes returns the route id of every trip, keyed by trip id
func (l *Loader) LoadTripRoutes(ctx context.Context, feedPath string) map[string]string {
	return l.loadTripTables(ctx, feedPath).routeByTrip
}

func (l *Loader) loadTripTables(ctx context.Context, feedPath string) *tripTables {
	return loadCached(l.Cache, cacheKey("trips", feedPath), func() (*tripTables, bool) {
		tables := &tripTables{
			byRoute:     map[string]*ctdf.TripBinding{},
			routeByTrip: map[string]string{},
		}

		ok := l.parseFile(ctx, feedPath, "trips", 0, func(r io.Reader) (err error) {
			tables, err = parseTripTables(r)
			return err
		})

		return tables, ok
	})
}

// SampleStopTimes reads the leading part of stop_times within the loader's SampleLimits
func (l *Loader) SampleStopTimes(ctx context.Context, feedPath string) []StopTime {
	return loadCached(l.Cache, cacheKey("stop_times", feedPath), func() ([]StopTime, bool) {
		stopTimes := []StopTime{}

		ok := l.parseFile(ctx, feedPath, "stop_times", l.SampleLimits.MaxBytes, func(r io.Reader) (err error) {
			stopTimes, err = ParseStopTimes(r)
			return err
		})

		return stopTimes, ok
	})
}

func (l *Loader) parseFile(ctx context.Context, feedPath string, file string, maxBytes int64, parse func(io.Reader) error) bool {
	startTime := time.Now()

	data, err := l.Fetcher.Fetch(ctx, feedPath, file, maxBytes)
	if err != nil {
		log.Warn().Err(err).Str("feed", feedPath).Str("file", file).Msg("Failed to fetch feed file")
		return false
	}

	if maxBytes > 0 {
		data = truncateSample(data, maxBytes, l.SampleLimits.MaxLines)
	}

	if err := parse(bytes.NewReader(data)); err != nil {
		log.Warn().Err(err).Str("feed", feedPath).Str("file", file).Msg("Failed to parse feed file")
		return false
	}

	log.Debug().
		Str("feed", feedPath).
		Str("file", file).
		Int("bytes", len(data)).
		Str("latency", time.Since(startTime).String()).
		Msg("Loaded feed file")

	return true
}

// truncateSample drops a trailing partial line from a byte capped read and caps the line count
func truncateSample(data []byte, maxBytes int64, maxLines int) []byte {
	if int64(len(data)) >= maxBytes {
		if lastNewline := bytes.LastIndexByte(data, '\n'); lastNewline >= 0 {
			data = data[:lastNewline+1]
		}
	}

	if maxLines > 0 {
		lines := 0
		for i, b := range data {
			if b != '\n' {
				continue
			}

			lines++
			if lines >= maxLines {
				return data[:i+1]
			}
		}
	}

	return data
}
