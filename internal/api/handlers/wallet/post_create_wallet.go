package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/chapool/tron-custody/internal/api"
)

func PostCreateWalletRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("", postCreateWalletHandler(s))
}

// postCreateWalletHandler 创建托管钱包.
// 响应含助记词与私钥明文, 仅在创建时返回一次, 调用方负责妥善交付.
func postCreateWalletHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		wallet, err := s.Wallet.CreateWallet(ctx)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, wallet)
	}
}
