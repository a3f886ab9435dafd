package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Thoxh/smart-biodigester-dashboard/internal/chart"
	"github.com/Thoxh/smart-biodigester-dashboard/internal/service"
)

func Register(app *fiber.App, svcs *service.Services) {
	g := app.Group("/")

	g.Get("readings/latest", func(c *fiber.Ctx) error {
		reading, assessment, err := svcs.LatestAssessed(c.Context())
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		if reading == nil {
			return c.Status(404).JSON(fiber.Map{"error": "no data"})
		}
		return c.JSON(fiber.Map{"reading": reading, "status": assessment})
	})

	g.Get("readings/window", func(c *fiber.Ctx) error {
		w, err := chart.ParseWindow(c.Query("window", string(chart.Window1d)))
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		charts, err := svcs.WindowSeries(c.Context(), w)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"window": w, "charts": charts})
	})
}
