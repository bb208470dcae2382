package common

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/chapool/tron-custody/internal/api"
)

func GetHealthyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/healthy", getHealthyHandler(s))
}

// getHealthyHandler 存活探针: 进程在跑即返回 200, 不检查依赖.
func getHealthyHandler(_ *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy.")
	}
}
