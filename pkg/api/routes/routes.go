package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/routecost/pkg/ctdf"
	"github.com/travigo/routecost/pkg/routing"
)

type routeRequest struct {
	Points []ctdf.RoutePoint `json:"points"`
	Mode   string            `json:"mode"`
}

type routeResponse struct {
	*ctdf.RouteResult
	Polyline string `json:"polyline"`
}

func RoutesRouter(router fiber.Router, realRouter *routing.Router) {
	router.Post("/", func(c *fiber.Ctx) error {
		return calculateRoute(c, realRouter)
	})
}

func calculateRoute(c *fiber.Ctx, realRouter *routing.Router) error {
	var request routeRequest
	if err := c.BodyParser(&request); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Request body must be a JSON object with points and mode",
		})
	}

	profile := ctdf.RoutingProfileWalking
	if request.Mode != "" {
		var known bool
		profile, known = ctdf.ParseRoutingProfile(request.Mode)

		if !known {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Mode must be one of walking, driving or cycling",
			})
		}
	}

	for _, point := range request.Points {
		if !point.Valid() {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Points must have a latitude within 90 and a longitude within 180 degrees",
			})
		}
	}

	result := realRouter.CalculateRealRoute(c.UserContext(), request.Points, profile)

	return c.JSON(routeResponse{
		RouteResult: result,
		Polyline:    result.EncodedPolyline(),
	})
}
