package http

import (
	"log/slog"
	"net/http"

	_ "fulfillment/docs" // swagger docs
	"fulfillment/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// BasePath prefixes every API route.
const BasePath = "/api/v1"

// NewRouter builds the echo instance serving the Fulfillment API, the health probe
// and the swagger UI. Requests under BasePath are validated against the embedded
// OpenAPI document before they reach the server.
func NewRouter(server servers.ServerInterface, logger *slog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(echo.WrapMiddleware(otelhttp.NewMiddleware("fulfillment-api")))
	e.Use(requestLogger(logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	validator, err := OpenAPIValidator(doc, BasePath)
	if err != nil {
		return nil, err
	}

	api := e.Group(BasePath, validator)
	servers.RegisterHandlers(api, server)

	return e, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	log := logger.With("component", "http")
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			ctx := c.Request().Context()
			if v.Error != nil {
				log.ErrorContext(ctx, "Request error", append(attrs, "error", v.Error)...)
				return nil
			}
			log.DebugContext(ctx, "Request", attrs...)
			return nil
		},
	})
}
