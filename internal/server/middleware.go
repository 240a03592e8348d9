// internal/server/middleware.go
package server

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mwiater/matboard/internal/logging"
)

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogStatus:   true,
		LogLatency:  true,
		LogURI:      true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			var payload any
			if v.Error != nil {
				payload = v.Error
			}
			logging.LogRequest(v.Method, v.URI, v.Status, v.Latency, payload)
			return nil
		},
	})
}
