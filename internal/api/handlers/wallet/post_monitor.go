package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/chapool/tron-custody/internal/api"
	"github/chapool/tron-custody/internal/api/httperrors"
	"github/chapool/tron-custody/internal/wallet/deposit"
	"github/chapool/tron-custody/internal/wallet/tron"
)

type postMonitorPayload struct {
	WalletID string `json:"walletId"`
	UserID   string `json:"userId"`
	Address  string `json:"address"`
}

func PostMonitorRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/monitor", postMonitorHandler(s))
}

// postMonitorHandler 启动充值监控, 即发即忘.
// 同一 (walletId, address) 的重复请求是幂等的, 不会产生第二个会话.
func postMonitorHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body postMonitorPayload
		if err := c.Bind(&body); err != nil {
			return echo.ErrBadRequest
		}
		if body.WalletID == "" || body.UserID == "" {
			return httperrors.NewHTTPError(http.StatusBadRequest, httperrors.TypeGeneric, "walletId and userId are required.")
		}
		if !tron.ValidateAddress(body.Address) {
			return httperrors.ErrBadRequestInvalidAddress
		}

		s.Wallet.MonitorDeposits(deposit.Wallet{
			ID:     body.WalletID,
			UserID: body.UserID,
		}, body.Address)

		return c.NoContent(http.StatusAccepted)
	}
}
