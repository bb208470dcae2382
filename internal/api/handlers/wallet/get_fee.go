package wallet

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github/chapool/tron-custody/internal/api"
	"github/chapool/tron-custody/internal/api/httperrors"
	"github/chapool/tron-custody/internal/wallet/tron"
)

type getFeeResponse struct {
	FeeSun int64 `json:"feeSun"`
}

func GetFeeRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.GET("/fee", getFeeHandler(s))
}

// getFeeHandler 预估转账手续费. feeSun 为 0 表示无法估算, 不代表免费.
func getFeeHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		from := c.QueryParam("from")
		to := c.QueryParam("to")
		if !tron.ValidateAddress(from) || !tron.ValidateAddress(to) {
			return httperrors.ErrBadRequestInvalidAddress
		}

		amountSun, err := strconv.ParseInt(c.QueryParam("amount"), 10, 64)
		if err != nil || amountSun <= 0 {
			return httperrors.NewHTTPError(http.StatusBadRequest, httperrors.TypeGeneric, "Amount must be a positive integer in Sun.")
		}

		return c.JSON(http.StatusOK, getFeeResponse{
			FeeSun: s.Wallet.EstimateFee(ctx, from, to, amountSun),
		})
	}
}
