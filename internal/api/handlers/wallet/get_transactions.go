package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/chapool/tron-custody/internal/api"
	"github/chapool/tron-custody/internal/api/httperrors"
	"github/chapool/tron-custody/internal/wallet/tron"
)

func GetTransactionsRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.GET("/transactions", getTransactionsHandler(s))
}

func getTransactionsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		address := c.QueryParam("address")
		if !tron.ValidateAddress(address) {
			return httperrors.ErrBadRequestInvalidAddress
		}

		return c.JSON(http.StatusOK, s.Wallet.FetchTransactions(ctx, address))
	}
}
