package usecase

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/viney-shih/goroutines"
	"github.com/faromarket/goapi/base/ctx"
	"github.com/faromarket/goapi/base/log"
	"github.com/faromarket/goapi/domain"
	"github.com/faromarket/goapi/domain/auction"
	"github.com/faromarket/goapi/domain/escrow"
	"github.com/faromarket/goapi/service/notifier"
)

var timeNow = time.Now

type AuctionUseCaseCfg struct {
	AuctionRepo auction.Repo
	SlotRepo    auction.ActiveSlotRepo
	EventRepo   auction.EventRepo
	Ledger      escrow.FundLedger
	Gateway     escrow.TokenGateway
	Notifier    notifier.Notifier
}

type impl struct {
	repo     auction.Repo
	slots    auction.ActiveSlotRepo
	events   auction.EventRepo
	ledger   escrow.FundLedger
	gateway  escrow.TokenGateway
	notifier notifier.Notifier

	mu    sync.Mutex
	locks map[auction.Id]*sync.Mutex
}

func New(cfg *AuctionUseCaseCfg) auction.UseCase {
	return &impl{
		repo:     cfg.AuctionRepo,
		slots:    cfg.SlotRepo,
		events:   cfg.EventRepo,
		ledger:   cfg.Ledger,
		gateway:  cfg.Gateway,
		notifier: cfg.Notifier,
		locks:    map[auction.Id]*sync.Mutex{},
	}
}

// lock serializes mutations per auction. Reads go through unlocked.
func (im *impl) lock(id auction.Id) func() {
	im.mu.Lock()
	l, ok := im.locks[id]
	if !ok {
		l = &sync.Mutex{}
		im.locks[id] = l
	}
	im.mu.Unlock()
	l.Lock()
	return l.Unlock
}

func (im *impl) appendEvent(c ctx.Ctx, a *auction.Auction, typ auction.EventType, account domain.Address, amount string) {
	ev := &auction.Event{
		Id:           uuid.New().String(),
		ChainId:      a.ChainId,
		AuctionIndex: a.Index,
		Type:         typ,
		Account:      account,
		Amount:       amount,
		Time:         timeNow(),
	}
	if err := im.events.Insert(c, ev); err != nil {
		// events are an audit trail, never fail the operation for them
		c.WithFields(log.Fields{"err": err, "type": typ}).Error("events.Insert failed")
	}
}

func (im *impl) CreateAuction(c ctx.Ctx, owner domain.Address, payload auction.CreateAuctionPayload) (*auction.Auction, error) {
	increment, err := domain.ParseAmount(payload.BidIncrement)
	if err != nil || increment.Sign() <= 0 {
		return nil, domain.ErrBadParamInput
	}
	if _, err := domain.ParseAmount(payload.FloorPrice); err != nil {
		return nil, domain.ErrBadParamInput
	}
	if payload.DurationSec <= 0 {
		return nil, domain.ErrBadParamInput
	}

	owner = owner.ToLower()
	contract := payload.ContractAddress.ToLower()

	holder, err := im.gateway.CurrentHolder(c, payload.ChainId, contract, payload.TokenId)
	if err != nil {
		c.WithField("err", err).Error("gateway.CurrentHolder failed")
		return nil, err
	}
	if !holder.Equals(owner) {
		return nil, domain.ErrNotTokenHolder
	}

	index, err := im.repo.NextIndex(c, payload.ChainId)
	if err != nil {
		c.WithField("err", err).Error("repo.NextIndex failed")
		return nil, err
	}

	if err := im.slots.Acquire(c, &auction.ActiveSlot{
		ChainId:         payload.ChainId,
		ContractAddress: contract,
		TokenId:         payload.TokenId,
		AuctionIndex:    index,
		CreatedAt:       timeNow(),
	}); err != nil {
		if err != domain.ErrDuplicateActiveAuction {
			c.WithField("err", err).Error("slots.Acquire failed")
		}
		return nil, err
	}

	releaseSlot := func() {
		if err := im.slots.Release(c, payload.ChainId, contract, payload.TokenId); err != nil {
			c.WithField("err", err).Error("slots.Release failed")
		}
	}

	if _, err := im.gateway.TransferInto(c, payload.ChainId, contract, payload.TokenId, owner); err != nil {
		c.WithField("err", err).Error("gateway.TransferInto failed")
		releaseSlot()
		return nil, err
	}

	now := timeNow()
	a := &auction.Auction{
		ChainId:           payload.ChainId,
		Index:             index,
		Owner:             owner,
		ContractAddress:   contract,
		TokenId:           payload.TokenId,
		BidIncrement:      payload.BidIncrement,
		FloorPrice:        payload.FloorPrice,
		Duration:          payload.DurationSec,
		State:             auction.StateDeployed,
		HighestBid:        "0",
		HighestBindingBid: "0",
		Bids:              map[domain.Address]string{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := im.repo.Insert(c, a); err != nil {
		c.WithField("err", err).Error("repo.Insert failed")
		releaseSlot()
		return nil, err
	}

	im.appendEvent(c, a, auction.EventCreated, owner, "")
	im.notifier.NotifyCreated(c, a)
	return a, nil
}

func (im *impl) Start(c ctx.Ctx, caller domain.Address, id auction.Id) (*auction.Auction, error) {
	unlock := im.lock(id)
	defer unlock()

	a, err := im.findOne(c, id)
	if err != nil {
		return nil, err
	}
	if err := a.Start(caller, timeNow()); err != nil {
		return nil, err
	}
	if err := im.repo.Update(c, a); err != nil {
		c.WithField("err", err).Error("repo.Update failed")
		return nil, err
	}
	im.appendEvent(c, a, auction.EventStarted, caller, "")
	return a, nil
}

func (im *impl) PlaceBid(c ctx.Ctx, caller domain.Address, id auction.Id, amount string) (*auction.Auction, error) {
	v, err := domain.ParseAmount(amount)
	if err != nil {
		return nil, domain.ErrBadParamInput
	}

	unlock := im.lock(id)
	defer unlock()

	a, err := im.findOne(c, id)
	if err != nil {
		return nil, err
	}
	caller = caller.ToLower()
	if err := a.PlaceBid(caller, v, timeNow()); err != nil {
		return nil, err
	}

	// the bid is accepted in memory; funds move before it is persisted,
	// so an insufficient balance leaves the stored auction untouched
	if err := im.ledger.Hold(c, a.ChainId, caller, v, a.Index); err != nil {
		if err != domain.ErrInsufficientFunds {
			c.WithField("err", err).Error("ledger.Hold failed")
		}
		return nil, err
	}
	if err := im.repo.Update(c, a); err != nil {
		c.WithField("err", err).Error("repo.Update failed")
		if rerr := im.ledger.Release(c, a.ChainId, caller, v, a.Index, escrow.EntryRefund); rerr != nil {
			c.WithField("err", rerr).Error("ledger.Release rollback failed")
		}
		return nil, err
	}

	im.appendEvent(c, a, auction.EventBid, caller, amount)
	return a, nil
}

func (im *impl) End(c ctx.Ctx, id auction.Id) (*auction.Auction, error) {
	unlock := im.lock(id)
	defer unlock()

	a, err := im.findOne(c, id)
	if err != nil {
		return nil, err
	}
	if !a.End(timeNow()) {
		return a, nil
	}
	if err := im.repo.Update(c, a); err != nil {
		c.WithField("err", err).Error("repo.Update failed")
		return nil, err
	}
	if err := im.slots.Release(c, a.ChainId, a.ContractAddress, a.TokenId); err != nil {
		c.WithField("err", err).Error("slots.Release failed")
	}
	im.appendEvent(c, a, auction.EventEnded, a.HighestBidder, a.HighestBindingBid)
	im.notifier.NotifySettled(c, a)
	return a, nil
}

func (im *impl) Cancel(c ctx.Ctx, caller domain.Address, id auction.Id) (*auction.Auction, error) {
	unlock := im.lock(id)
	defer unlock()

	a, err := im.findOne(c, id)
	if err != nil {
		return nil, err
	}
	if err := a.Cancel(caller); err != nil {
		return nil, err
	}
	if err := im.repo.Update(c, a); err != nil {
		c.WithField("err", err).Error("repo.Update failed")
		return nil, err
	}
	if err := im.slots.Release(c, a.ChainId, a.ContractAddress, a.TokenId); err != nil {
		c.WithField("err", err).Error("slots.Release failed")
	}
	im.appendEvent(c, a, auction.EventCancelled, caller, "")
	return a, nil
}

func (im *impl) Withdraw(c ctx.Ctx, caller domain.Address, id auction.Id) (string, error) {
	unlock := im.lock(id)
	defer unlock()

	a, err := im.findOne(c, id)
	if err != nil {
		return "", err
	}
	caller = caller.ToLower()
	refund, err := a.Withdraw(caller)
	if err != nil {
		return "", err
	}

	// the stored bid is zeroed before the payout, so a replay of the
	// same withdrawal cannot pay twice
	if err := im.repo.Update(c, a); err != nil {
		c.WithField("err", err).Error("repo.Update failed")
		return "", err
	}
	if err := im.ledger.Release(c, a.ChainId, caller, refund, a.Index, escrow.EntryRefund); err != nil {
		c.WithFields(log.Fields{"err": err, "account": caller, "amount": refund.String()}).Error("ledger.Release failed after bid was zeroed")
		return "", err
	}

	im.appendEvent(c, a, auction.EventFundsWithdrawn, caller, refund.String())
	return domain.FormatAmount(refund), nil
}

func (im *impl) WithdrawItem(c ctx.Ctx, caller domain.Address, id auction.Id) error {
	unlock := im.lock(id)
	defer unlock()

	a, err := im.findOne(c, id)
	if err != nil {
		return err
	}
	caller = caller.ToLower()
	settlement, err := a.WithdrawItem(caller)
	if err != nil {
		return err
	}

	// custody moves before the withdrawal is persisted; a failed transfer
	// leaves the stored auction untouched so the winner can retry
	if _, err := im.gateway.TransferOut(c, a.ChainId, a.ContractAddress, a.TokenId, caller); err != nil {
		c.WithField("err", err).Error("gateway.TransferOut failed")
		return err
	}
	if err := im.repo.Update(c, a); err != nil {
		c.WithField("err", err).Error("repo.Update failed")
		return err
	}
	if settlement.Sign() > 0 {
		if err := im.ledger.Release(c, a.ChainId, a.Owner, settlement, a.Index, escrow.EntrySettlement); err != nil {
			c.WithFields(log.Fields{"err": err, "owner": a.Owner, "amount": settlement.String()}).Error("settlement ledger.Release failed")
			return err
		}
	}

	im.appendEvent(c, a, auction.EventItemWithdrawn, caller, settlement.String())
	return nil
}

func (im *impl) WithdrawItemWhenCancelled(c ctx.Ctx, caller domain.Address, id auction.Id) error {
	unlock := im.lock(id)
	defer unlock()

	a, err := im.findOne(c, id)
	if err != nil {
		return err
	}
	caller = caller.ToLower()
	if err := a.WithdrawItemWhenCancelled(caller); err != nil {
		return err
	}

	if _, err := im.gateway.TransferOut(c, a.ChainId, a.ContractAddress, a.TokenId, a.Owner); err != nil {
		c.WithField("err", err).Error("gateway.TransferOut failed")
		return err
	}
	if err := im.repo.Update(c, a); err != nil {
		c.WithField("err", err).Error("repo.Update failed")
		return err
	}

	im.appendEvent(c, a, auction.EventItemWithdrawn, caller, "")
	return nil
}

func (im *impl) Get(c ctx.Ctx, id auction.Id) (*auction.Auction, error) {
	return im.findOne(c, id)
}

func (im *impl) GetBid(c ctx.Ctx, id auction.Id, address domain.Address) (string, error) {
	a, err := im.findOne(c, id)
	if err != nil {
		return "", err
	}
	return domain.FormatAmount(a.BidOf(address.ToLower())), nil
}

func (im *impl) GetLiveAuctions(c ctx.Ctx, chainId domain.ChainId, offset, limit int32) ([]*auction.Auction, error) {
	if offset < 0 || limit <= 0 {
		return nil, domain.ErrBadParamInput
	}
	res, err := im.repo.FindAll(c,
		auction.WithChainId(chainId),
		auction.WithState(auction.StateStarted),
		auction.WithIndexGTE(int64(offset)),
		auction.WithSort("index"),
		auction.WithPagination(0, limit),
	)
	if err != nil {
		c.WithField("err", err).Error("repo.FindAll failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) GetAuctionCount(c ctx.Ctx, chainId domain.ChainId, owner domain.Address) (int, error) {
	cnt, err := im.repo.Count(c, auction.WithChainId(chainId), auction.WithOwner(owner.ToLower()))
	if err != nil {
		c.WithField("err", err).Error("repo.Count failed")
		return 0, err
	}
	return cnt, nil
}

func (im *impl) GetAuctionByOwnerIndex(c ctx.Ctx, chainId domain.ChainId, owner domain.Address, index int32) (*auction.Auction, error) {
	if index < 0 {
		return nil, domain.ErrIndexOutOfRange
	}
	res, err := im.repo.FindAll(c,
		auction.WithChainId(chainId),
		auction.WithOwner(owner.ToLower()),
		auction.WithSort("index"),
		auction.WithPagination(index, 1),
	)
	if err != nil {
		c.WithField("err", err).Error("repo.FindAll failed")
		return nil, err
	}
	if len(res) == 0 {
		return nil, domain.ErrIndexOutOfRange
	}
	return res[0], nil
}

func (im *impl) GetLastAuction(c ctx.Ctx, chainId domain.ChainId, owner domain.Address) (*auction.Auction, error) {
	res, err := im.repo.FindAll(c,
		auction.WithChainId(chainId),
		auction.WithOwner(owner.ToLower()),
		auction.WithSort("-index"),
		auction.WithPagination(0, 1),
	)
	if err != nil {
		c.WithField("err", err).Error("repo.FindAll failed")
		return nil, err
	}
	if len(res) == 0 {
		return nil, domain.ErrIndexOutOfRange
	}
	return res[0], nil
}

func (im *impl) GetEvents(c ctx.Ctx, id auction.Id) ([]*auction.Event, error) {
	if _, err := im.findOne(c, id); err != nil {
		return nil, err
	}
	evs, err := im.events.FindAll(c, auction.EventWithAuction(id))
	if err != nil {
		c.WithField("err", err).Error("events.FindAll failed")
		return nil, err
	}
	return evs, nil
}

// EndExpired sweeps started auctions whose deadline has passed and returns
// how many it closed.
func (im *impl) EndExpired(c ctx.Ctx, chainId domain.ChainId) (int, error) {
	now := timeNow()
	started, err := im.repo.FindAll(c, auction.WithChainId(chainId), auction.WithState(auction.StateStarted))
	if err != nil {
		c.WithField("err", err).Error("repo.FindAll failed")
		return 0, err
	}

	expired := make([]*auction.Auction, 0, len(started))
	for _, a := range started {
		if a.EndTime != nil && !now.Before(*a.EndTime) {
			expired = append(expired, a)
		}
	}
	if len(expired) == 0 {
		return 0, nil
	}

	b := goroutines.NewBatch(10, goroutines.WithBatchSize(len(expired)))
	defer b.Close()
	for i := 0; i < len(expired); i++ {
		idx := i
		b.Queue(func() (interface{}, error) {
			a, err := im.End(c, expired[idx].ToId())
			if err != nil {
				return false, err
			}
			return a.State == auction.StateEnded, nil
		})
	}
	b.QueueComplete()

	ended := 0
	for ret := range b.Results() {
		if ret.Error() != nil {
			c.WithField("err", ret.Error()).Error("End failed for expired auction")
			continue
		}
		if ret.Value().(bool) {
			ended++
		}
	}
	return ended, nil
}

func (im *impl) findOne(c ctx.Ctx, id auction.Id) (*auction.Auction, error) {
	a, err := im.repo.FindOne(c, id)
	if err == domain.ErrNotFound {
		return nil, err
	} else if err != nil {
		c.WithField("err", err).Error("repo.FindOne failed")
		return nil, err
	}
	return a, nil
}
