package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/faromarket/goapi/base/ctx"
	"github.com/faromarket/goapi/base/delivery"
	"github.com/faromarket/goapi/base/pricefmt"
	"github.com/faromarket/goapi/domain"
	"github.com/faromarket/goapi/domain/escrow"
	authMiddleware "github.com/faromarket/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	ledger escrow.FundLedger
}

func New(e *echo.Echo, ledger escrow.FundLedger, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{ledger}

	g := e.Group("/escrow/:chainId")

	g.GET("/balance", h.getBalance, authMiddleware.Auth())

	g.POST("/deposit", h.deposit, authMiddleware.Auth(), authMiddleware.IsAdmin())

	g.GET("/entries", h.getEntries, authMiddleware.Auth(), authMiddleware.IsAdmin())
}

// getBalance
//
//	@Summary	Get the caller's free balance
//	@Tags		escrow
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		chainId	path		int	true	"chain id"
//	@Success	200		{object}	object{balance=string,balanceDisplay=string}
//	@Router		/escrow/{chainId}/balance [get]
func (h *handler) getBalance(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	type params struct {
		ChainId domain.ChainId `param:"chainId"`
	}
	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	balance, err := h.ledger.BalanceOf(ctx, p.ChainId, address)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]string{
		"balance":        domain.FormatAmount(balance),
		"balanceDisplay": pricefmt.ToDisplay(balance),
	})
}

// deposit
//
//	@Summary		Credit an account
//	@Description	Records an off-band deposit into the custodial ledger
//	@Tags			escrow
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			chainId	path	int										true	"chain id"
//	@Param			payload	body	object{account=string,amount=string}	true	"amount in wei"
//	@Success		200
//	@Failure		400
//	@Router			/escrow/{chainId}/deposit [post]
func (h *handler) deposit(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		ChainId domain.ChainId `param:"chainId"`
		Account domain.Address `json:"account" validate:"required"`
		Amount  string         `json:"amount" validate:"required"`
	}
	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	amount, err := domain.ParseAmount(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	if err := h.ledger.Deposit(ctx, p.ChainId, p.Account, amount); err != nil {
		if err == domain.ErrBadParamInput {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
		}
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

// getEntries
//
//	@Summary	List ledger entries
//	@Tags		escrow
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		chainId			path		int		true	"chain id"
//	@Param		account			query		string	false	"filter by account"
//	@Param		auctionIndex	query		int		false	"filter by auction"
//	@Success	200				{array}		escrow.LedgerEntry
//	@Router		/escrow/{chainId}/entries [get]
func (h *handler) getEntries(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		ChainId      domain.ChainId `param:"chainId"`
		Account      *domain.Address `query:"account"`
		AuctionIndex *int64          `query:"auctionIndex"`
	}
	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	opts := []escrow.EntryFindAllOptionsFunc{
		escrow.EntryWithChainId(p.ChainId),
	}
	if p.Account != nil {
		opts = append(opts, escrow.EntryWithAccount(*p.Account))
	}
	if p.AuctionIndex != nil {
		opts = append(opts, escrow.EntryWithAuctionIndex(*p.AuctionIndex))
	}

	entries, err := h.ledger.Entries(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, entries)
}
