package handlers

import (
	"github.com/labstack/echo/v4"

	"github/chapool/tron-custody/internal/api"
	"github/chapool/tron-custody/internal/api/handlers/common"
	"github/chapool/tron-custody/internal/api/handlers/wallet"
)

// AttachAllRoutes registers every route of the service on the server.
func AttachAllRoutes(s *api.Server) {
	routes := []*echo.Route{
		common.GetHealthyRoute(s),
		common.GetReadyRoute(s),

		wallet.PostCreateWalletRoute(s),
		wallet.GetTransactionsRoute(s),
		wallet.GetBalanceRoute(s),
		wallet.GetActivationRoute(s),
		wallet.GetFeeRoute(s),
		wallet.PostMonitorRoute(s),
		wallet.PostWithdrawRoute(s),
	}

	for _, route := range routes {
		s.AttachRoute(route)
	}
}
