package feeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/routecost/pkg/ctdf"
)

type feedServer struct {
	*httptest.Server
	files    map[string]string
	requests sync.Map
}

func newFeedServer(t *testing.T, files map[string]string) *feedServer {
	server := &feedServer{files: files}
	server.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		counter, _ := server.requests.LoadOrStore(r.URL.Path, new(int32))
		atomic.AddInt32(counter.(*int32), 1)

		body, exists := server.files[r.URL.Path]
		if !exists {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server
}

func (s *feedServer) requestCount(path string) int32 {
	counter, found := s.requests.Load(path)
	if !found {
		return 0
	}

	return atomic.LoadInt32(counter.(*int32))
}

func TestLoadStopsFetchesOnce(t *testing.T) {
	server := newFeedServer(t, map[string]string{
		"/brasov/stops.txt": "stop_id,stop_name,stop_lat,stop_lon,location_type\nS1,Livada Poștei,45.6458,25.5885,0\n",
	})

	loader := NewLoader(&HTTPFetcher{BaseURL: server.URL}, NewCache(0, 0))

	first := loader.LoadStops(context.Background(), "brasov")
	second := loader.LoadStops(context.Background(), "brasov")

	require.Len(t, first, 1)
	assert.Equal(t, first, second)
	assert.Same(t, first["S1"], second["S1"])
	assert.Equal(t, int32(1), server.requestCount("/brasov/stops.txt"))
}

func TestLoadStopsConcurrentCallersShareOneFetch(t *testing.T) {
	server := newFeedServer(t, map[string]string{
		"/cluj/stops.txt": "stop_id,stop_name,stop_lat,stop_lon\nS1,Piața Mihai Viteazul,46.7712,23.5897\n",
	})

	loader := NewLoader(&HTTPFetcher{BaseURL: server.URL}, NewCache(0, 0))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, loader.LoadStops(context.Background(), "cluj"), 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), server.requestCount("/cluj/stops.txt"))
}

func TestLoadMissingFileGivesEmptyAndIsNotCached(t *testing.T) {
	server := newFeedServer(t, map[string]string{})

	loader := NewLoader(&HTTPFetcher{BaseURL: server.URL, MaxRetries: 3}, NewCache(0, 0))

	assert.Empty(t, loader.LoadRoutes(context.Background(), "iasi"))
	assert.Empty(t, loader.LoadRoutes(context.Background(), "iasi"))

	// 404 is permanent so there is no retry, and the failure is not memoized
	assert.Equal(t, int32(2), server.requestCount("/iasi/routes.txt"))
	assert.Equal(t, 0, loader.Cache.Len())
}

func TestHTTPFetcherRetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("route_id,route_short_name\nR1,1\n"))
	}))
	defer server.Close()

	fetcher := &HTTPFetcher{BaseURL: server.URL, MaxRetries: 2, RetryInterval: time.Millisecond}

	body, err := fetcher.Fetch(context.Background(), "sibiu", "routes", 0)
	require.NoError(t, err)
	assert.Equal(t, "route_id,route_short_name\nR1,1\n", string(body))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestHTTPFetcherNotFound(t *testing.T) {
	server := newFeedServer(t, map[string]string{})

	_, err := (&HTTPFetcher{BaseURL: server.URL}).Fetch(context.Background(), "sibiu", "routes", 0)
	assert.ErrorIs(t, err, ErrFeedFileNotFound)
}

func TestHTTPFetcherSendsRangeForSamples(t *testing.T) {
	var rangeHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rangeHeader = r.Header.Get("Range")
		w.Write([]byte("trip_id,stop_id\nT1,S1\nT1,S2\n"))
	}))
	defer server.Close()

	body, err := (&HTTPFetcher{BaseURL: server.URL}).Fetch(context.Background(), "brasov", "stop_times", 20)
	require.NoError(t, err)

	assert.Equal(t, "bytes=0-19", rangeHeader)
	assert.Len(t, body, 20)
}

func TestSampleStopTimesDropsPartialLine(t *testing.T) {
	server := newFeedServer(t, map[string]string{
		"/brasov/stop_times.txt": "trip_id,stop_id\nT1,S1\nT1,S2\nT2,S3\n",
	})

	loader := NewLoader(&HTTPFetcher{BaseURL: server.URL}, NewCache(0, 0))
	loader.SampleLimits = SampleLimits{MaxBytes: 31}

	stopTimes := loader.SampleStopTimes(context.Background(), "brasov")

	assert.Equal(t, []StopTime{{TripID: "T1", StopID: "S1"}, {TripID: "T1", StopID: "S2"}}, stopTimes)
}

func TestDirectoryFetcherLoadsAllTables(t *testing.T) {
	root := t.TempDir()
	feedDir := filepath.Join(root, "timisoara")
	require.NoError(t, os.MkdirAll(feedDir, 0o755))

	files := map[string]string{
		"stops.txt":      "stop_id,stop_name,stop_lat,stop_lon,location_type\nS1,Piața Victoriei,45.7537,21.2257,0\nS2,Gara de Nord,45.7505,21.2078,0\n",
		"routes.txt":     "route_id,route_short_name,route_long_name,route_type\nR1,1,Gara de Nord - Piața Victoriei,0\n",
		"shapes.txt":     "shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence\nSH1,45.7505,21.2078,1\nSH1,45.7537,21.2257,2\n",
		"trips.txt":      "route_id,service_id,trip_id,shape_id\nR1,WK,T1,SH1\n",
		"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\nT1,08:00:00,08:00:00,S2,1\nT1,08:07:00,08:07:00,S1,2\n",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(feedDir, name), []byte(body), 0o644))
	}

	loader := NewLoader(NewFetcher(root, 0), NewCache(0, 0))
	ctx := context.Background()

	assert.Len(t, loader.LoadStops(ctx, "timisoara"), 2)
	assert.Equal(t, "1", loader.LoadRoutes(ctx, "timisoara")["R1"].ShortName)
	assert.Len(t, loader.LoadShapes(ctx, "timisoara")["SH1"], 2)
	assert.Equal(t, "SH1", loader.LoadTrips(ctx, "timisoara")["R1"].ShapeID)
	assert.Equal(t, "R1", loader.LoadTripRoutes(ctx, "timisoara")["T1"])
	assert.Len(t, loader.SampleStopTimes(ctx, "timisoara"), 2)

	assert.Empty(t, loader.LoadStops(ctx, "unknown"))
}

func TestNewFetcher(t *testing.T) {
	assert.IsType(t, &HTTPFetcher{}, NewFetcher("https://feeds.example.com", 1))
	assert.IsType(t, &DirectoryFetcher{}, NewFetcher("./feeds", 1))
}

type colourTransformer struct{}

func (colourTransformer) Transform(input any) {
	if route, ok := input.(*ctdf.Route); ok && route.ShortName == "M1" {
		route.Colour = "#ffd100"
	}
}

func TestLoadRoutesAppliesTransformer(t *testing.T) {
	server := newFeedServer(t, map[string]string{
		"/bucuresti/routes.txt": "route_id,route_short_name,route_type\nR1,M1,1\nR2,41,0\n",
	})

	loader := NewLoader(&HTTPFetcher{BaseURL: server.URL}, NewCache(0, 0))
	loader.Transformer = colourTransformer{}

	routes := loader.LoadRoutes(context.Background(), "bucuresti")

	require.Len(t, routes, 2)
	assert.Equal(t, "#ffd100", routes["R1"].Colour)
	assert.Equal(t, ctdf.DefaultRouteColour, routes["R2"].Colour)
}
