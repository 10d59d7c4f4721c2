package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/routecost/pkg/api/routes"
	"github.com/travigo/routecost/pkg/dataaggregator/global"
)

func NewApp(services *global.Services) *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.CostsRouter(group.Group("/costs"), services.Costs)
	routes.RoutesRouter(group.Group("/routes"), services.Routing)
	routes.TransitRouter(group.Group("/transit"), services.Cities, services.Resolver)

	return webApp
}

func SetupServer(listen string, services *global.Services) error {
	return NewApp(services).Listen(listen)
}
