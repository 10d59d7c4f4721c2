package osrm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/travigo/routecost/pkg/ctdf"
)

var ErrNoRoute = errors.New("routing engine returned no route")

// Client talks to an OSRM compatible route service
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		UserAgent: "routecost/1.0",
	}
}

type routeResponse struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Routes  []Route `json:"routes"`
}

type Route struct {
	Distance float64  `json:"distance"`
	Duration float64  `json:"duration"`
	Geometry Geometry `json:"geometry"`
}

// Geometry is a GeoJSON LineString, coordinates in [lon, lat] order
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

// Route asks for the full geometry of the best route between two points
func (c *Client) Route(ctx context.Context, profile string, from ctdf.RoutePoint, to ctdf.RoutePoint) (*Route, error) {
	url := fmt.Sprintf("%s/%s/%s,%s;%s,%s?overview=full&geometries=geojson&steps=false",
		c.BaseURL,
		profile,
		formatCoordinate(from.Longitude), formatCoordinate(from.Latitude),
		formatCoordinate(to.Longitude), formatCoordinate(to.Latitude),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("routing engine returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var response routeResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("decoding routing engine response: %w", err)
	}

	if response.Code != "Ok" {
		return nil, fmt.Errorf("routing engine returned code %q %s: %w", response.Code, response.Message, ErrNoRoute)
	}
	if len(response.Routes) == 0 {
		return nil, ErrNoRoute
	}

	return &response.Routes[0], nil
}

func formatCoordinate(value float64) string {
	return strconv.FormatFloat(value, 'f', 6, 64)
}
