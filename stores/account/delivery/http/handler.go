package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/faromarket/goapi/base/ctx"
	"github.com/faromarket/goapi/base/delivery"
	"github.com/faromarket/goapi/domain"
	"github.com/faromarket/goapi/domain/account"
	"github.com/faromarket/goapi/middleware"
)

type handler struct {
	au account.Usecase
}

// New registers account endpoints. Nonce generation is unauthenticated,
// it is the first step of wallet login.
func New(e *echo.Echo, au account.Usecase) {
	h := &handler{au}

	g := e.Group("/account")
	g.GET("/:account", h.getAccount, middleware.IsValidAddress("account"))
	g.POST("/:account/nonce", h.generateNonce, middleware.IsValidAddress("account"))
}

// getAccount
//
//	@Summary	Get account info
//	@Tags		account
//	@Produce	json
//	@Param		account	path		string	true	"account address"
//	@Success	200		{object}	account.Info
//	@Failure	404
//	@Router		/account/{account} [get]
func (h *handler) getAccount(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := domain.Address(c.Param("account"))

	info, err := h.au.Get(ctx, address)
	if err == domain.ErrNotFound {
		return delivery.MakeJsonResp(c, http.StatusNotFound, err)
	} else if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, info)
}

// generateNonce
//
//	@Summary		Generate nonce for signing
//	@Description	The wallet signs the nonce message and exchanges it for a token at /auth/sign
//	@Tags			account
//	@Produce		json
//	@Param			account	path		string	true	"account address"
//	@Success		200		{integer}	integer	"nonce"
//	@Failure		500
//	@Router			/account/{account}/nonce [post]
func (h *handler) generateNonce(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := domain.Address(c.Param("account"))

	nonce, err := h.au.GenerateNonce(ctx, address)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nonce)
}
