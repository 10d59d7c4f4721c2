package routes

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/routecost/pkg/ctdf"
	"github.com/travigo/routecost/pkg/transit"
)

func TransitRouter(router fiber.Router, cities *transit.CityFeeds, resolver *transit.Resolver) {
	router.Get("/:city/stops", func(c *fiber.Ctx) error {
		return listTransitStops(c, cities, resolver)
	})
	router.Get("/:city/routes", func(c *fiber.Ctx) error {
		return listTransitRoutes(c, cities, resolver)
	})
}

func resolveCityFeed(c *fiber.Ctx, cities *transit.CityFeeds) (string, bool) {
	cityName, err := url.PathUnescape(c.Params("city"))
	if err != nil {
		cityName = c.Params("city")
	}

	return cities.Resolve(cityName)
}

func detailGroups(detail string) ([]string, bool) {
	switch detail {
	case "basic":
		return []string{"basic"}, true
	case "detailed":
		return []string{"basic", "detailed"}, true
	default:
		return nil, false
	}
}

func parseBounds(boundsQuery string) (*ctdf.Bounds, bool) {
	boundsQuerySplit := strings.Split(boundsQuery, ",")
	if len(boundsQuerySplit) != 4 {
		return nil, false
	}

	values := make([]float64, 4)
	for i, value := range boundsQuerySplit {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, false
		}
		values[i] = parsed
	}

	bounds := &ctdf.Bounds{
		MinLongitude: values[0],
		MinLatitude:  values[1],
		MaxLongitude: values[2],
		MaxLatitude:  values[3],
	}
	if bounds.MinLongitude > bounds.MaxLongitude || bounds.MinLatitude > bounds.MaxLatitude {
		return nil, false
	}

	return bounds, true
}

func listTransitStops(c *fiber.Ctx, cities *transit.CityFeeds, resolver *transit.Resolver) error {
	feedPath, found := resolveCityFeed(c, cities)
	if !found {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "No transit feed is known for this city",
		})
	}

	groups, valid := detailGroups(c.Query("detail", "basic"))
	if !valid {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter detail should be basic or detailed",
		})
	}

	var bounds *ctdf.Bounds
	if boundsQuery := c.Query("bounds"); boundsQuery != "" {
		bounds, valid = parseBounds(boundsQuery)
		if !valid {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Bounds must contain 4 co-ordinates as minLon,minLat,maxLon,maxLat",
			})
		}
	}

	stops := resolver.GetTransitStops(c.UserContext(), feedPath, bounds)

	stopsReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, stops)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sheriff could not reduce stops",
		})
	}

	return c.JSON(stopsReduced)
}

func listTransitRoutes(c *fiber.Ctx, cities *transit.CityFeeds, resolver *transit.Resolver) error {
	feedPath, found := resolveCityFeed(c, cities)
	if !found {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "No transit feed is known for this city",
		})
	}

	groups, valid := detailGroups(c.Query("detail", "detailed"))
	if !valid {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter detail should be basic or detailed",
		})
	}

	var routeIDs []string
	for _, id := range strings.Split(c.Query("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			routeIDs = append(routeIDs, id)
		}
	}

	routes := resolver.GetTransitRoutes(c.UserContext(), feedPath, routeIDs)

	routesReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, routes)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sheriff could not reduce routes",
		})
	}

	return c.JSON(routesReduced)
}
