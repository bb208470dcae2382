package common

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/chapool/tron-custody/internal/api"
	"github/chapool/tron-custody/internal/util"
)

func GetReadyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/ready", getReadyHandler(s))
}

// getReadyHandler 就绪探针: 服务组件齐备且数据库可达才返回 200.
func getReadyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		if !s.Ready() {
			return c.String(521, "Not ready.")
		}

		if err := s.DB.PingContext(ctx); err != nil {
			util.LogFromContext(ctx).Warn().Err(err).Msg("Database ping failed")

			return c.String(521, "Not ready.")
		}

		return c.String(http.StatusOK, "Ready.")
	}
}
