package transit

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CityFeeds maps city display names onto feed paths.
// It is built once at startup and only read afterwards.
type CityFeeds struct {
	names []string
	feeds map[string]string
}

func NewCityFeeds() *CityFeeds {
	return &CityFeeds{
		feeds: map[string]string{},
	}
}

func DefaultCityFeeds() *CityFeeds {
	cities := NewCityFeeds()

	cities.Add("București", "bucuresti")
	cities.Add("Bucuresti", "bucuresti")
	cities.Add("Bucharest", "bucuresti")
	cities.Add("Cluj-Napoca", "cluj")
	cities.Add("Cluj", "cluj")
	cities.Add("Brașov", "brasov")
	cities.Add("Brasov", "brasov")
	cities.Add("Timișoara", "timisoara")
	cities.Add("Timisoara", "timisoara")
	cities.Add("Iași", "iasi")
	cities.Add("Iasi", "iasi")
	cities.Add("Constanța", "constanta")
	cities.Add("Constanta", "constanta")
	cities.Add("Sibiu", "sibiu")
	cities.Add("Oradea", "oradea")

	return cities
}

// Add registers a city, replacing the feed of an existing entry with the same name
func (c *CityFeeds) Add(name string, feedPath string) {
	name = strings.TrimSpace(name)
	if name == "" || feedPath == "" {
		return
	}

	if _, exists := c.feeds[name]; !exists {
		c.names = append(c.names, name)
	}
	c.feeds[name] = feedPath
}

func (c *CityFeeds) Len() int {
	return len(c.names)
}

// Resolve finds the feed for a city name, trying an exact match, then a
// case-insensitive one and finally one that ignores diacritics
func (c *CityFeeds) Resolve(cityName string) (string, bool) {
	cityName = strings.TrimSpace(cityName)
	if c == nil || cityName == "" {
		return "", false
	}

	if feedPath, exists := c.feeds[cityName]; exists {
		return feedPath, true
	}

	for _, name := range c.names {
		if strings.EqualFold(name, cityName) {
			return c.feeds[name], true
		}
	}

	folded := foldName(cityName)
	for _, name := range c.names {
		if foldName(name) == folded {
			return c.feeds[name], true
		}
	}

	return "", false
}

func foldName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}

	return strings.ToLower(folded)
}
