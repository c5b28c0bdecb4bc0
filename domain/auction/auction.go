package auction

import (
	"math/big"
	"time"

	"github.com/faromarket/goapi/base/ctx"
	"github.com/faromarket/goapi/domain"
)

// State follows the lifecycle Deployed -> Started -> Ended, with
// Deployed|Started -> Cancelled. Ended and Cancelled are terminal.
type State int32

const (
	StateDeployed State = iota
	StateStarted
	StateEnded
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateDeployed:
		return "deployed"
	case StateStarted:
		return "started"
	case StateEnded:
		return "ended"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}

func (s State) IsTerminal() bool {
	return s == StateEnded || s == StateCancelled
}

type Auction struct {
	ChainId         domain.ChainId `json:"chainId" bson:"chainId"`
	Index           int64          `json:"index" bson:"index"`
	Owner           domain.Address `json:"owner" bson:"owner"`
	ContractAddress domain.Address `json:"contractAddress" bson:"contractAddress"`
	TokenId         domain.TokenId `json:"tokenId" bson:"tokenId"`

	// amounts are base-10 integer strings in the smallest unit
	BidIncrement string `json:"bidIncrement" bson:"bidIncrement"`
	FloorPrice   string `json:"floorPrice" bson:"floorPrice"`

	// seconds
	Duration int64 `json:"duration" bson:"duration"`

	State     State      `json:"state" bson:"state"`
	StartTime *time.Time `json:"startTime" bson:"startTime"`
	EndTime   *time.Time `json:"endTime" bson:"endTime"`

	HighestBidder     domain.Address `json:"highestBidder" bson:"highestBidder"`
	HighestBid        string         `json:"highestBid" bson:"highestBid"`
	HighestBindingBid string         `json:"highestBindingBid" bson:"highestBindingBid"`

	// cumulative contribution per bidder, zeroed on withdrawal
	Bids map[domain.Address]string `json:"bids" bson:"bids"`

	NftWithdrawn bool      `json:"nftWithdrawn" bson:"nftWithdrawn"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

type Id struct {
	ChainId domain.ChainId `json:"chainId" bson:"chainId"`
	Index   int64          `json:"index" bson:"index"`
}

func (a *Auction) ToId() Id {
	return Id{ChainId: a.ChainId, Index: a.Index}
}

// BidOf returns the cumulative contribution recorded for the address,
// zero when the address never bid or already withdrew.
func (a *Auction) BidOf(address domain.Address) *big.Int {
	if a.Bids == nil {
		return new(big.Int)
	}
	raw, ok := a.Bids[address.ToLower()]
	if !ok {
		return new(big.Int)
	}
	v, err := domain.ParseAmount(raw)
	if err != nil {
		return new(big.Int)
	}
	return v
}

func (a *Auction) setBid(address domain.Address, v *big.Int) {
	if a.Bids == nil {
		a.Bids = map[domain.Address]string{}
	}
	a.Bids[address.ToLower()] = domain.FormatAmount(v)
}

func (a *Auction) highestBid() *big.Int {
	v, err := domain.ParseAmount(a.HighestBid)
	if err != nil {
		return new(big.Int)
	}
	return v
}

func (a *Auction) highestBindingBid() *big.Int {
	v, err := domain.ParseAmount(a.HighestBindingBid)
	if err != nil {
		return new(big.Int)
	}
	return v
}

// Start moves the auction from Deployed to Started and fixes the deadline.
func (a *Auction) Start(caller domain.Address, now time.Time) error {
	if !caller.Equals(a.Owner) {
		return domain.ErrOnlyOwner
	}
	if a.State != StateDeployed {
		return domain.ErrAlreadyStarted
	}
	end := now.Add(time.Duration(a.Duration) * time.Second)
	a.State = StateStarted
	a.StartTime = &now
	a.EndTime = &end
	return nil
}

// PlaceBid adds amount to the sender's cumulative contribution and applies
// the proxy-bidding rule: the binding bid only rises one increment at a
// time, capped by the totals involved, so the eventual winner never pays
// their full maximum unless contested that far.
func (a *Auction) PlaceBid(bidder domain.Address, amount *big.Int, now time.Time) error {
	if a.State != StateStarted || a.EndTime == nil || !now.Before(*a.EndTime) {
		return domain.ErrAuctionNotLive
	}
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrBadParamInput
	}

	bidder = bidder.ToLower()
	prev := a.BidOf(bidder)
	newTotal := new(big.Int).Add(prev, amount)

	floor, err := domain.ParseAmount(a.FloorPrice)
	if err != nil {
		return err
	}
	if prev.Sign() == 0 && newTotal.Cmp(floor) < 0 {
		return domain.ErrBidBelowFloor
	}

	inc, err := domain.ParseAmount(a.BidIncrement)
	if err != nil {
		return err
	}

	a.setBid(bidder, newTotal)

	switch {
	case a.HighestBidder.IsEmpty():
		// first bid: the floor is the baseline binding price
		a.HighestBidder = bidder
		a.HighestBid = domain.FormatAmount(newTotal)
		a.HighestBindingBid = domain.FormatAmount(floor)

	case bidder.Equals(a.HighestBidder):
		binding := bigMin(newTotal, new(big.Int).Add(a.highestBindingBid(), inc))
		a.HighestBid = domain.FormatAmount(newTotal)
		a.HighestBindingBid = domain.FormatAmount(binding)

	case newTotal.Cmp(a.highestBid()) > 0:
		binding := bigMin(new(big.Int).Add(a.highestBid(), inc), newTotal)
		a.HighestBidder = bidder
		a.HighestBid = domain.FormatAmount(newTotal)
		a.HighestBindingBid = domain.FormatAmount(binding)

	default:
		// trailing bid: escrowed but leadership and price unchanged
	}
	return nil
}

// End transitions Started to Ended once the deadline has passed. Before the
// deadline, and on terminal states, it returns without changing anything.
// The bool reports whether a transition happened.
func (a *Auction) End(now time.Time) bool {
	if a.State != StateStarted {
		return false
	}
	if a.EndTime == nil || now.Before(*a.EndTime) {
		return false
	}
	a.State = StateEnded
	return true
}

// Cancel moves a not-yet-ended auction to Cancelled.
func (a *Auction) Cancel(caller domain.Address) error {
	if !caller.Equals(a.Owner) {
		return domain.ErrOnlyOwner
	}
	if a.State.IsTerminal() {
		return domain.ErrAlreadyTerminal
	}
	a.State = StateCancelled
	return nil
}

// Withdraw computes and records the refund owed to caller. The winner of an
// ended auction only gets back the excess over the binding bid; everyone
// else, and everyone after cancellation, gets their full balance. Once the
// item has been withdrawn the binding bid is already settled to the owner,
// so the winner's remaining balance is pure excess and refunds in full. The
// returned amount is what the ledger must pay out.
func (a *Auction) Withdraw(caller domain.Address) (*big.Int, error) {
	if !a.State.IsTerminal() {
		return nil, domain.ErrAuctionNotSettled
	}
	caller = caller.ToLower()
	balance := a.BidOf(caller)
	if balance.Sign() == 0 {
		return nil, domain.ErrNoBidsToWithdraw
	}

	refund := balance
	remaining := new(big.Int)
	if a.State == StateEnded && caller.Equals(a.HighestBidder) && !a.NftWithdrawn {
		binding := a.highestBindingBid()
		refund = new(big.Int).Sub(balance, binding)
		remaining = binding
	}
	if refund.Sign() <= 0 {
		return nil, domain.ErrZeroWithdrawal
	}

	a.setBid(caller, remaining)
	return refund, nil
}

// WithdrawItem releases the escrowed item to the winner and settles the
// binding bid. The returned amount is what the owner is owed from escrow.
func (a *Auction) WithdrawItem(caller domain.Address) (*big.Int, error) {
	if a.State != StateEnded {
		return nil, domain.ErrAuctionNotEnded
	}
	if !caller.Equals(a.HighestBidder) {
		return nil, domain.ErrNotHighestBidder
	}
	if a.NftWithdrawn {
		return nil, domain.ErrItemWithdrawn
	}

	caller = caller.ToLower()
	binding := a.highestBindingBid()
	balance := a.BidOf(caller)
	if balance.Cmp(binding) < 0 {
		// bids[winner] never drops below the binding bid before settlement
		return nil, domain.ErrInternalServerError
	}

	a.NftWithdrawn = true
	a.setBid(caller, new(big.Int).Sub(balance, binding))
	return binding, nil
}

// WithdrawItemWhenCancelled returns the escrowed item to the owner after
// cancellation.
func (a *Auction) WithdrawItemWhenCancelled(caller domain.Address) error {
	if a.State != StateCancelled {
		return domain.ErrAuctionNotCancelled
	}
	if !caller.Equals(a.Owner) {
		return domain.ErrOnlyOwner
	}
	if a.NftWithdrawn {
		return domain.ErrItemWithdrawn
	}
	a.NftWithdrawn = true
	return nil
}

func bigMin(a, b *big.Int) *big.Int {
	if a.Cmp(b) < 0 {
		return a
	}
	return b
}

type FindAllOptions struct {
	SortBy          *string
	Offset          *int32
	Limit           *int32
	ChainId         *domain.ChainId
	Owner           *domain.Address
	ContractAddress *domain.Address
	TokenId         *domain.TokenId
	State           *State
	IndexGTE        *int64
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithSort(sortby string) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.SortBy = &sortby
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithChainId(chainId domain.ChainId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ChainId = &chainId
		return nil
	}
}

func WithOwner(owner domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Owner = owner.ToLowerPtr()
		return nil
	}
}

func WithAsset(contractAddress domain.Address, tokenId domain.TokenId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ContractAddress = contractAddress.ToLowerPtr()
		options.TokenId = &tokenId
		return nil
	}
}

func WithState(state State) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.State = &state
		return nil
	}
}

func WithIndexGTE(index int64) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.IndexGTE = &index
		return nil
	}
}

type Repo interface {
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Auction, error)
	Count(ctx ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
	FindOne(ctx ctx.Ctx, id Id) (*Auction, error)
	Insert(ctx ctx.Ctx, a *Auction) error
	Update(ctx ctx.Ctx, a *Auction) error
	NextIndex(ctx ctx.Ctx, chainId domain.ChainId) (int64, error)
}

// ActiveSlot marks the single permitted non-terminal auction for an asset.
// Acquire fails with ErrDuplicateActiveAuction while a slot is held.
type ActiveSlot struct {
	ChainId         domain.ChainId `json:"chainId" bson:"chainId"`
	ContractAddress domain.Address `json:"contractAddress" bson:"contractAddress"`
	TokenId         domain.TokenId `json:"tokenId" bson:"tokenId"`
	AuctionIndex    int64          `json:"auctionIndex" bson:"auctionIndex"`
	CreatedAt       time.Time      `json:"createdAt" bson:"createdAt"`
}

type ActiveSlotRepo interface {
	Acquire(ctx ctx.Ctx, slot *ActiveSlot) error
	Release(ctx ctx.Ctx, chainId domain.ChainId, contractAddress domain.Address, tokenId domain.TokenId) error
}

type CreateAuctionPayload struct {
	ChainId         domain.ChainId `json:"chainId" validate:"required"`
	ContractAddress domain.Address `json:"contractAddress" validate:"required"`
	TokenId         domain.TokenId `json:"tokenId" validate:"required"`
	BidIncrement    string         `json:"bidIncrement" validate:"required"`
	FloorPrice      string         `json:"floorPrice" validate:"required"`
	DurationSec     int64          `json:"durationSec" validate:"required,gt=0"`
}

type UseCase interface {
	CreateAuction(ctx ctx.Ctx, owner domain.Address, payload CreateAuctionPayload) (*Auction, error)
	Start(ctx ctx.Ctx, caller domain.Address, id Id) (*Auction, error)
	PlaceBid(ctx ctx.Ctx, caller domain.Address, id Id, amount string) (*Auction, error)
	End(ctx ctx.Ctx, id Id) (*Auction, error)
	Cancel(ctx ctx.Ctx, caller domain.Address, id Id) (*Auction, error)
	Withdraw(ctx ctx.Ctx, caller domain.Address, id Id) (string, error)
	WithdrawItem(ctx ctx.Ctx, caller domain.Address, id Id) error
	WithdrawItemWhenCancelled(ctx ctx.Ctx, caller domain.Address, id Id) error

	Get(ctx ctx.Ctx, id Id) (*Auction, error)
	GetBid(ctx ctx.Ctx, id Id, address domain.Address) (string, error)
	GetLiveAuctions(ctx ctx.Ctx, chainId domain.ChainId, offset, limit int32) ([]*Auction, error)
	GetAuctionCount(ctx ctx.Ctx, chainId domain.ChainId, owner domain.Address) (int, error)
	GetAuctionByOwnerIndex(ctx ctx.Ctx, chainId domain.ChainId, owner domain.Address, index int32) (*Auction, error)
	GetLastAuction(ctx ctx.Ctx, chainId domain.ChainId, owner domain.Address) (*Auction, error)
	GetEvents(ctx ctx.Ctx, id Id) ([]*Event, error)

	EndExpired(ctx ctx.Ctx, chainId domain.ChainId) (int, error)
}
