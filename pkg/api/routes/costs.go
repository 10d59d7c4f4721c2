package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/routecost/pkg/costs"
	"github.com/travigo/routecost/pkg/ctdf"
)

type costsRequest struct {
	Points []ctdf.RoutePoint `json:"points"`
	Mode   string            `json:"mode"`
	City   string            `json:"city"`
}

func CostsRouter(router fiber.Router, estimator *costs.Estimator) {
	router.Post("/", func(c *fiber.Ctx) error {
		return calculateCosts(c, estimator)
	})
}

func calculateCosts(c *fiber.Ctx, estimator *costs.Estimator) error {
	var request costsRequest
	if err := c.BodyParser(&request); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Request body must be a JSON object with points and mode",
		})
	}

	if request.Mode == "" {
		request.Mode = string(ctdf.TransportModeWalking)
	}

	transportCost := estimator.CalculateTransportCosts(c.UserContext(), request.Points, ctdf.TransportMode(request.Mode), request.City)

	if c.Query("geometry") == "polyline" {
		for i := range transportCost.Segments {
			transportCost.Segments[i].Polyline = ctdf.EncodePolyline(transportCost.Segments[i].Geometry)
			transportCost.Segments[i].Geometry = nil
		}
	}

	return c.JSON(transportCost)
}
