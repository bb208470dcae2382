package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github/chapool/tron-custody/internal/api"
	"github/chapool/tron-custody/internal/api/httperrors"
	"github/chapool/tron-custody/internal/wallet/keystore"
	"github/chapool/tron-custody/internal/wallet/tron"
	"github/chapool/tron-custody/internal/wallet/withdraw"
)

type postWithdrawPayload struct {
	TransactionID string `json:"transactionId"`
	WalletID      string `json:"walletId"`
	Amount        string `json:"amount"`
	ToAddress     string `json:"toAddress"`
}

type postWithdrawResponse struct {
	TxID string `json:"txId"`
}

func PostWithdrawRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/withdraw", postWithdrawHandler(s))
}

// postWithdrawHandler 执行提现. 失败时账本记录已标记为 FAILED,
// 响应错误码只反映失败类别.
func postWithdrawHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body postWithdrawPayload
		if err := c.Bind(&body); err != nil {
			return echo.ErrBadRequest
		}
		if body.TransactionID == "" || body.WalletID == "" {
			return httperrors.NewHTTPError(http.StatusBadRequest, httperrors.TypeGeneric, "transactionId and walletId are required.")
		}
		if !tron.ValidateAddress(body.ToAddress) {
			return httperrors.ErrBadRequestInvalidAddress
		}

		amount, err := decimal.NewFromString(body.Amount)
		if err != nil || amount.Sign() <= 0 {
			return httperrors.NewHTTPError(http.StatusBadRequest, httperrors.TypeGeneric, "Amount must be a positive decimal number.")
		}

		txID, err := s.Wallet.HandleWithdrawal(ctx, withdraw.Request{
			TransactionID: body.TransactionID,
			WalletID:      body.WalletID,
			Amount:        amount,
			ToAddress:     body.ToAddress,
		}, nil)
		if err != nil {
			switch {
			case errors.Is(err, keystore.ErrSecretNotFound):
				return httperrors.ErrNotFoundWalletSecret
			case errors.Is(err, withdraw.ErrBroadcastRejected):
				return httperrors.NewHTTPErrorWithDetail(http.StatusBadGateway, httperrors.TypeBroadcastRejected, "The chain rejected the signed transaction.", err.Error())
			default:
				return httperrors.NewHTTPErrorWithDetail(http.StatusInternalServerError, httperrors.TypeWithdrawFailed, "Withdrawal failed.", err.Error())
			}
		}

		return c.JSON(http.StatusOK, postWithdrawResponse{TxID: txID})
	}
}
