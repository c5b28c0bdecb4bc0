package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/faromarket/goapi/base/ctx"
	"github.com/faromarket/goapi/base/delivery"
	"github.com/faromarket/goapi/domain"
	"github.com/faromarket/goapi/domain/account"
)

type authHandler struct {
	auth               domain.AuthUsecase
	signingMsgTemplate string
}

func New(e *echo.Echo, auth domain.AuthUsecase, template string) {
	handler := &authHandler{
		auth:               auth,
		signingMsgTemplate: template,
	}
	g := e.Group("/auth")
	g.POST("/sign", handler.sign)
	g.GET("/signingMsgTemplate", handler.getSigningMsgTemplate)
}

// sign
//
//	@Summary		Get access token
//	@Description	Verifies the signed nonce message and issues a bearer token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			params	body		object{address=string,signature=string}	true	"address and signature over the nonce message"
//	@Success		201		{object}	object{data=string}
//	@Failure		400
//	@Failure		401
//	@Router			/auth/sign [post]
func (h *authHandler) sign(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Address   domain.Address `json:"address" validate:"required" example:"0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d"`
		Signature string         `json:"signature" validate:"required"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	tkn, err := h.auth.SignToken(ctx, p.Address, p.Signature)
	if err == account.ErrInvalidNonce || err == account.ErrInvalidSignature {
		return delivery.MakeJsonResp(c, http.StatusUnauthorized, err)
	} else if err != nil {
		ctx.WithField("err", err).Error("auth.SignToken failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, tkn)
}

// getSigningMsgTemplate
//
//	@Summary		Get signature template
//	@Description	Replace %s with the nonce fetched from /account/{account}/nonce to build the signing message
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	object{template=string}	"signing message template"
//	@Router			/auth/signingMsgTemplate [get]
func (h *authHandler) getSigningMsgTemplate(c echo.Context) error {
	res := struct {
		Msg string `json:"template"`
	}{
		Msg: h.signingMsgTemplate,
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
