package transit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/routecost/pkg/config"
)

func TestResolveDiacritics(t *testing.T) {
	cities := DefaultCityFeeds()

	withMarks, found := cities.Resolve("Brașov")
	require.True(t, found)

	withoutMarks, found := cities.Resolve("Brasov")
	require.True(t, found)

	assert.Equal(t, "brasov", withMarks)
	assert.Equal(t, withMarks, withoutMarks)
}

func TestResolveMatching(t *testing.T) {
	cities := DefaultCityFeeds()

	tests := []struct {
		name     string
		expected string
	}{
		{"Cluj-Napoca", "cluj"},
		{"  cluj-napoca ", "cluj"},
		{"BUCHAREST", "bucuresti"},
		{"IAȘI", "iasi"},
		{"timișoara", "timisoara"},
		{"Constanţa", "constanta"},
		{"oradea", "oradea"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			feedPath, found := cities.Resolve(test.name)

			assert.True(t, found)
			assert.Equal(t, test.expected, feedPath)
		})
	}
}

func TestResolveUnknown(t *testing.T) {
	cities := DefaultCityFeeds()

	_, found := cities.Resolve("Gotham")
	assert.False(t, found)

	_, found = cities.Resolve("")
	assert.False(t, found)

	var missing *CityFeeds
	_, found = missing.Resolve("Brasov")
	assert.False(t, found)
}

func TestAddFromCitiesFile(t *testing.T) {
	cityFeeds, err := config.ParseCities([]byte(`
cities:
  - name: Craiova
    feed: craiova
  - name: Brașov
    feed: brasov-ratbv
`))
	require.NoError(t, err)

	cities := DefaultCityFeeds()
	before := cities.Len()

	for _, city := range cityFeeds {
		cities.Add(city.Name, city.Feed)
	}

	assert.Equal(t, before+1, cities.Len())

	feedPath, found := cities.Resolve("craiova")
	assert.True(t, found)
	assert.Equal(t, "craiova", feedPath)

	feedPath, _ = cities.Resolve("Brașov")
	assert.Equal(t, "brasov-ratbv", feedPath)
}
