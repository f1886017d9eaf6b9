package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/yuchenw/weather-mcp/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	app.Get("/weather", func(c *fiber.Ctx) error {
		q, err := parseWeatherQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		lang, err := weather.ParseLanguage(q.Lang)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid language parameter")
		}

		snapshot, err := service.GetWeather(c.Context(), q.City, lang)
		if err != nil {
			var fatal *weather.FatalError
			if errors.As(err, &fatal) {
				return fiber.NewError(fiber.StatusInternalServerError, fatal.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
		}

		return c.JSON(snapshot)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":       "healthy",
			"service_info": service.Status(),
		})
	})

	app.Get("/cache/stats", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"cache_stats": service.CacheStats(),
		})
	})
}

// weatherQuery holds the /weather query parameters. City arrives
// percent-decoded from Fiber; UTF-8 names pass through as-is.
type weatherQuery struct {
	City string `validate:"required"`
	Lang string `validate:"required,oneof=en zh"`
}

func parseWeatherQuery(c *fiber.Ctx) (weatherQuery, error) {
	q := weatherQuery{
		City: c.Query("city"),
		Lang: c.Query("lang", "en"),
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}
