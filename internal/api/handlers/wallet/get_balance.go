package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/chapool/tron-custody/internal/api"
	"github/chapool/tron-custody/internal/api/httperrors"
	"github/chapool/tron-custody/internal/wallet/tron"
)

type getBalanceResponse struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

func GetBalanceRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.GET("/balance", getBalanceHandler(s))
}

func getBalanceHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		address := c.QueryParam("address")
		if !tron.ValidateAddress(address) {
			return httperrors.ErrBadRequestInvalidAddress
		}

		balance, err := s.Wallet.GetBalance(ctx, address)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, getBalanceResponse{
			Address: address,
			Balance: balance,
		})
	}
}
