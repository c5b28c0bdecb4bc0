package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/faromarket/goapi/base/ctx"
	"github.com/faromarket/goapi/base/delivery"
	"github.com/faromarket/goapi/base/metrics"
	"github.com/faromarket/goapi/base/pricefmt"
	"github.com/faromarket/goapi/domain"
	"github.com/faromarket/goapi/domain/auction"
	"github.com/faromarket/goapi/middleware"
	authMiddleware "github.com/faromarket/goapi/stores/auth/delivery/http/middleware"
)

var met metrics.Service

type handler struct {
	auction auction.UseCase
}

func New(e *echo.Echo, auctionUC auction.UseCase, authMiddleware *authMiddleware.AuthMiddleware) {
	met = metrics.New("auction")

	h := &handler{auctionUC}

	gs := e.Group("/auctions")

	gs.POST("", h.create, authMiddleware.Auth())

	gs.GET("/live", h.getLive, middleware.CacheHttp(10*time.Second))

	gs.GET("/mine/count", h.getCount, authMiddleware.Auth())

	gs.GET("/mine/last", h.getLast, authMiddleware.Auth())

	gs.GET("/mine/:index", h.getByOwnerIndex, authMiddleware.Auth())

	g := e.Group("/auction/:chainId/:index")

	g.GET("", h.get)

	g.GET("/bids/:address", h.getBid)

	g.GET("/events", h.getEvents)

	g.POST("/start", h.start, authMiddleware.Auth())

	g.POST("/bids", h.bid, authMiddleware.Auth())

	g.POST("/end", h.end)

	g.POST("/cancel", h.cancel, authMiddleware.Auth())

	g.POST("/withdraw", h.withdraw, authMiddleware.Auth())

	g.POST("/nft/withdraw", h.withdrawNft, authMiddleware.Auth())

	g.POST("/nft/withdraw-cancelled", h.withdrawNftCancelled, authMiddleware.Auth())
}

type idParams struct {
	ChainId domain.ChainId `param:"chainId"`
	Index   int64          `param:"index"`
}

func (p *idParams) toId() auction.Id {
	return auction.Id{ChainId: p.ChainId, Index: p.Index}
}

// auctionResp decorates the stored document with display prices
type auctionResp struct {
	*auction.Auction
	HighestBidDisplay        string `json:"highestBidDisplay"`
	HighestBindingBidDisplay string `json:"highestBindingBidDisplay"`
	FloorPriceDisplay        string `json:"floorPriceDisplay"`
}

func makeAuctionResp(a *auction.Auction) *auctionResp {
	return &auctionResp{
		Auction:                  a,
		HighestBidDisplay:        pricefmt.ToDisplayFromString(a.HighestBid),
		HighestBindingBidDisplay: pricefmt.ToDisplayFromString(a.HighestBindingBid),
		FloorPriceDisplay:        pricefmt.ToDisplayFromString(a.FloorPrice),
	}
}

func errStatus(err error) int {
	switch err {
	case domain.ErrOnlyOwner, domain.ErrNotHighestBidder, domain.ErrNotTokenHolder:
		return http.StatusUnauthorized
	case domain.ErrBadParamInput, domain.ErrAuctionNotLive, domain.ErrAlreadyStarted,
		domain.ErrAlreadyTerminal, domain.ErrAuctionNotSettled, domain.ErrAuctionNotEnded,
		domain.ErrAuctionNotCancelled, domain.ErrItemWithdrawn, domain.ErrBidBelowFloor,
		domain.ErrNoBidsToWithdraw, domain.ErrZeroWithdrawal, domain.ErrInsufficientFunds,
		domain.ErrIndexOutOfRange:
		return http.StatusBadRequest
	case domain.ErrDuplicateActiveAuction:
		return http.StatusConflict
	case domain.ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// create
//
//	@Summary		Create an auction
//	@Description	Escrows the token and appends the auction to the registry
//	@Tags			auction
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			payload	body		auction.CreateAuctionPayload	true	"auction parameters, amounts in wei"
//	@Success		200		{object}	auction.Auction
//	@Failure		400
//	@Failure		401
//	@Failure		409	"item already has a live auction"
//	@Router			/auctions [post]
func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	p := auction.CreateAuctionPayload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	a, err := h.auction.CreateAuction(ctx, address, p)
	if err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, makeAuctionResp(a))
}

// getLive
//
//	@Summary		List live auctions
//	@Description	Scans started auctions in creation order
//	@Tags			auction
//	@Produce		json
//	@Param			chainId	query		int	true	"chain id"
//	@Param			offset	query		int	false	"registry index to scan from"
//	@Param			limit	query		int	false	"max results"
//	@Success		200		{array}		auction.Auction
//	@Failure		400
//	@Router			/auctions/live [get]
func (h *handler) getLive(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		ChainId domain.ChainId `query:"chainId"`
		Offset  int32          `query:"offset"`
		Limit   int32          `query:"limit"`
	}
	p := params{Limit: 50}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	res, err := h.auction.GetLiveAuctions(ctx, p.ChainId, p.Offset, p.Limit)
	if err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}

	resp := make([]*auctionResp, len(res))
	for i, a := range res {
		resp[i] = makeAuctionResp(a)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, resp)
}

// getCount
//
//	@Summary	Count the caller's auctions
//	@Tags		auction
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		chainId	query		int	true	"chain id"
//	@Success	200		{integer}	integer
//	@Router		/auctions/mine/count [get]
func (h *handler) getCount(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	type params struct {
		ChainId domain.ChainId `query:"chainId"`
	}
	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	cnt, err := h.auction.GetAuctionCount(ctx, p.ChainId, address)
	if err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, cnt)
}

// getLast
//
//	@Summary	Get the caller's newest auction
//	@Tags		auction
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		chainId	query		int	true	"chain id"
//	@Success	200		{object}	auction.Auction
//	@Failure	400	"caller has no auctions"
//	@Router		/auctions/mine/last [get]
func (h *handler) getLast(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	type params struct {
		ChainId domain.ChainId `query:"chainId"`
	}
	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	a, err := h.auction.GetLastAuction(ctx, p.ChainId, address)
	if err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, makeAuctionResp(a))
}

// getByOwnerIndex
//
//	@Summary	Get the caller's i-th auction
//	@Tags		auction
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		index	path		int	true	"position in the caller's creation-ordered list"
//	@Param		chainId	query		int	true	"chain id"
//	@Success	200		{object}	auction.Auction
//	@Failure	400	"index out of range"
//	@Router		/auctions/mine/{index} [get]
func (h *handler) getByOwnerIndex(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	type params struct {
		Index   int32          `param:"index"`
		ChainId domain.ChainId `query:"chainId"`
	}
	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	a, err := h.auction.GetAuctionByOwnerIndex(ctx, p.ChainId, address, p.Index)
	if err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, makeAuctionResp(a))
}

// get
//
//	@Summary	Get an auction
//	@Tags		auction
//	@Produce	json
//	@Param		chainId	path		int	true	"chain id"
//	@Param		index	path		int	true	"registry index"
//	@Success	200		{object}	auction.Auction
//	@Failure	404
//	@Router		/auction/{chainId}/{index} [get]
func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := idParams{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	a, err := h.auction.Get(ctx, p.toId())
	if err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, makeAuctionResp(a))
}

// getBid
//
//	@Summary	Get an address's cumulative bid
//	@Tags		auction
//	@Produce	json
//	@Param		chainId	path		int		true	"chain id"
//	@Param		index	path		int		true	"registry index"
//	@Param		address	path		string	true	"bidder address"
//	@Success	200		{object}	object{amount=string,amountDisplay=string}
//	@Failure	404
//	@Router		/auction/{chainId}/{index}/bids/{address} [get]
func (h *handler) getBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		ChainId domain.ChainId `param:"chainId"`
		Index   int64          `param:"index"`
		Address domain.Address `param:"address"`
	}
	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	amount, err := h.auction.GetBid(ctx, auction.Id{ChainId: p.ChainId, Index: p.Index}, p.Address)
	if err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]string{
		"amount":        amount,
		"amountDisplay": pricefmt.ToDisplayFromString(amount),
	})
}

// getEvents
//
//	@Summary	List an auction's events
//	@Tags		auction
//	@Produce	json
//	@Param		chainId	path	int	true	"chain id"
//	@Param		index	path	int	true	"registry index"
//	@Success	200		{array}	auction.Event
//	@Failure	404
//	@Router		/auction/{chainId}/{index}/events [get]
func (h *handler) getEvents(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := idParams{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	evs, err := h.auction.GetEvents(ctx, p.toId())
	if err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, evs)
}

// start
//
//	@Summary	Start an auction
//	@Tags		auction
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		chainId	path		int	true	"chain id"
//	@Param		index	path		int	true	"registry index"
//	@Success	200		{object}	auction.Auction
//	@Failure	400	"not in deployed state"
//	@Failure	401	"caller is not the owner"
//	@Router		/auction/{chainId}/{index}/start [post]
func (h *handler) start(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	p := idParams{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	a, err := h.auction.Start(ctx, address, p.toId())
	if err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, makeAuctionResp(a))
}

// bid
//
//	@Summary		Place a bid
//	@Description	Amount is added to the caller's previous contributions
//	@Tags			auction
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			chainId	path		int						true	"chain id"
//	@Param			index	path		int						true	"registry index"
//	@Param			payload	body		object{amount=string}	true	"bid amount in wei"
//	@Success		200		{object}	auction.Auction
//	@Failure		400	"auction not live, below floor, or insufficient funds"
//	@Router			/auction/{chainId}/{index}/bids [post]
func (h *handler) bid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	type params struct {
		ChainId domain.ChainId `param:"chainId"`
		Index   int64          `param:"index"`
		Amount  string         `json:"amount" validate:"required"`
	}
	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	a, err := h.auction.PlaceBid(ctx, address, auction.Id{ChainId: p.ChainId, Index: p.Index}, p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}

	met.BumpSum("bid.count", 1)
	return delivery.MakeJsonResp(c, http.StatusOK, makeAuctionResp(a))
}

// end
//
//	@Summary		End an auction
//	@Description	No-op before the deadline, anyone may call
//	@Tags			auction
//	@Produce		json
//	@Param			chainId	path		int	true	"chain id"
//	@Param			index	path		int	true	"registry index"
//	@Success		200		{object}	auction.Auction
//	@Failure		404
//	@Router			/auction/{chainId}/{index}/end [post]
func (h *handler) end(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := idParams{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	a, err := h.auction.End(ctx, p.toId())
	if err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}

	if a.State == auction.StateEnded {
		met.BumpSum("settlement.count", 1)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, makeAuctionResp(a))
}

// cancel
//
//	@Summary	Cancel an auction
//	@Tags		auction
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		chainId	path		int	true	"chain id"
//	@Param		index	path		int	true	"registry index"
//	@Success	200		{object}	auction.Auction
//	@Failure	400	"already ended or cancelled"
//	@Failure	401	"caller is not the owner"
//	@Router		/auction/{chainId}/{index}/cancel [post]
func (h *handler) cancel(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	p := idParams{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	a, err := h.auction.Cancel(ctx, address, p.toId())
	if err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, makeAuctionResp(a))
}

// withdraw
//
//	@Summary		Withdraw escrowed funds
//	@Description	Winner gets the excess over the binding bid, everyone else their full balance
//	@Tags			auction
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			chainId	path		int	true	"chain id"
//	@Param			index	path		int	true	"registry index"
//	@Success		200		{object}	object{refund=string,refundDisplay=string}
//	@Failure		400	"auction still running or nothing to withdraw"
//	@Router			/auction/{chainId}/{index}/withdraw [post]
func (h *handler) withdraw(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	p := idParams{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	refund, err := h.auction.Withdraw(ctx, address, p.toId())
	if err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]string{
		"refund":        refund,
		"refundDisplay": pricefmt.ToDisplayFromString(refund),
	})
}

// withdrawNft
//
//	@Summary		Withdraw the auctioned token
//	@Description	Winner-only once the auction has ended, settles the binding bid to the owner
//	@Tags			auction
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			chainId	path	int	true	"chain id"
//	@Param			index	path	int	true	"registry index"
//	@Success		200
//	@Failure		400	"not ended or already withdrawn"
//	@Failure		401	"caller is not the highest bidder"
//	@Router			/auction/{chainId}/{index}/nft/withdraw [post]
func (h *handler) withdrawNft(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	p := idParams{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if err := h.auction.WithdrawItem(ctx, address, p.toId()); err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}

	met.BumpSum("settlement.nft.count", 1)
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

// withdrawNftCancelled
//
//	@Summary	Recover the token from a cancelled auction
//	@Tags		auction
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		chainId	path	int	true	"chain id"
//	@Param		index	path	int	true	"registry index"
//	@Success	200
//	@Failure	400	"auction is not cancelled"
//	@Failure	401	"caller is not the owner"
//	@Router		/auction/{chainId}/{index}/nft/withdraw-cancelled [post]
func (h *handler) withdrawNftCancelled(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	p := idParams{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if err := h.auction.WithdrawItemWhenCancelled(ctx, address, p.toId()); err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
