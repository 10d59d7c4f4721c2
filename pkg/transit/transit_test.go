package transit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/travigo/routecost/pkg/feeds"
)

var brasovFeed = map[string]string{
	"stops": `stop_id,stop_name,stop_lat,stop_lon,location_type
S1,Livada Postei,45.6450,25.5880,0
S2,Gara,45.6610,25.6110,0
S3,Poiana,45.9000,25.9000,0
S4,Livada Postei Station,45.6450,25.5890,1
S5,Unserved,45.6455,25.5900,0
`,
	"routes": `route_id,route_short_name,route_long_name,route_type
R2,4,Livada Postei - Gara,3
R1,,Tractorul - Centru,0
`,
	"trips": `route_id,service_id,trip_id,shape_id
R2,weekday,T1,SH1
R1,weekday,T2,
`,
	"shapes": `shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence
SH1,45.6560,25.6030,3
SH1,45.6450,25.5880,1
SH1,45.6610,25.6110,4
SH1,45.6500,25.5950,2
`,
	"stop_times": `trip_id,arrival_time,departure_time,stop_id,stop_sequence
T1,08:00:00,08:00:00,S1,1
T1,08:10:00,08:10:00,S2,2
T2,09:00:00,09:00:00,S1,1
`,
}

func writeFeed(t *testing.T, feedPath string, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, feedPath), 0o755))

	for name, contents := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, feedPath, name+".txt"), []byte(contents), 0o644))
	}

	return root
}

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()

	root := writeFeed(t, "brasov", brasovFeed)

	return &Resolver{
		Feeds: feeds.NewLoader(&feeds.DirectoryFetcher{Root: root}, feeds.NewCache(0, 16)),
	}
}

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	return &Router{
		Cities:   DefaultCityFeeds(),
		Resolver: newTestResolver(t),
	}
}
