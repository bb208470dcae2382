package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/chapool/tron-custody/internal/api"
	"github/chapool/tron-custody/internal/api/httperrors"
	"github/chapool/tron-custody/internal/wallet/tron"
)

type getActivationResponse struct {
	Address   string `json:"address"`
	Activated bool   `json:"activated"`
}

func GetActivationRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.GET("/activation", getActivationHandler(s))
}

func getActivationHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		address := c.QueryParam("address")
		if !tron.ValidateAddress(address) {
			return httperrors.ErrBadRequestInvalidAddress
		}

		activated, err := s.Wallet.IsAddressActivated(ctx, address)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, getActivationResponse{
			Address:   address,
			Activated: activated,
		})
	}
}
