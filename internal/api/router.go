package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"github/chapool/tron-custody/internal/api/httperrors"
)

// InitRouter attaches middleware and route groups to the server's echo
// instance. Route handlers register themselves via AttachAllRoutes.
func InitRouter(s *Server) {
	e := echo.New()
	e.Debug = false
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler(s)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(loggerMiddleware())

	if s.Config.Echo.EnablePrometheusMiddleware {
		e.Use(echoprometheus.NewMiddleware("tron_custody"))
	}

	s.Echo = e
	s.Router = &Router{
		Root:        e.Group(""),
		Management:  e.Group("/-"),
		APIV1Wallet: e.Group("/api/v1/wallet"),
	}

	if s.Config.Echo.EnablePrometheusMiddleware {
		s.Router.Management.GET("/metrics", echoprometheus.NewHandler())
	}
}

// AttachRoute records a registered route so it shows up in diagnostics.
func (s *Server) AttachRoute(route *echo.Route) {
	s.Router.Routes = append(s.Router.Routes, route)
}

func loggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			logger := log.With().
				Str("requestID", c.Response().Header().Get(echo.HeaderXRequestID)).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Logger()

			c.SetRequest(req.WithContext(logger.WithContext(req.Context())))

			err := next(c)

			logger.Debug().Int("status", c.Response().Status).Msg("Request handled")

			return err
		}
	}
}

// errorHandler renders *httperrors.HTTPError payloads and falls back to
// echo's defaults for everything else.
func errorHandler(s *Server) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var httpError *httperrors.HTTPError
		if errors.As(err, &httpError) {
			if jsonErr := c.JSON(httpError.Code, httpError); jsonErr != nil {
				log.Error().Err(jsonErr).Msg("Failed to write error response")
			}

			return
		}

		var echoError *echo.HTTPError
		if errors.As(err, &echoError) {
			c.Echo().DefaultHTTPErrorHandler(err, c)

			return
		}

		code := http.StatusInternalServerError
		title := http.StatusText(code)
		if !s.Config.Echo.HideInternalServerErrorDetails {
			title = err.Error()
		}

		if jsonErr := c.JSON(code, httperrors.NewHTTPError(code, httperrors.TypeGeneric, title)); jsonErr != nil {
			log.Error().Err(jsonErr).Msg("Failed to write error response")
		}
	}
}
