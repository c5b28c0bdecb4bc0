package usecase_test

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/faromarket/goapi/base/ctx"
	"github.com/faromarket/goapi/domain"
	"github.com/faromarket/goapi/domain/auction"
	mAuction "github.com/faromarket/goapi/domain/auction/mocks"
	"github.com/faromarket/goapi/domain/escrow"
	mEscrow "github.com/faromarket/goapi/domain/escrow/mocks"
	"github.com/faromarket/goapi/service/notifier"
	"github.com/faromarket/goapi/stores/auction/usecase"
)

type ucMocks struct {
	repo    *mAuction.Repo
	slots   *mAuction.ActiveSlotRepo
	events  *mAuction.EventRepo
	ledger  *mEscrow.FundLedger
	gateway *mEscrow.TokenGateway
}

func newUsecase() (auction.UseCase, *ucMocks) {
	m := &ucMocks{
		repo:    &mAuction.Repo{},
		slots:   &mAuction.ActiveSlotRepo{},
		events:  &mAuction.EventRepo{},
		ledger:  &mEscrow.FundLedger{},
		gateway: &mEscrow.TokenGateway{},
	}
	noopNotifier, _ := notifier.New(notifier.Config{})
	uc := usecase.New(&usecase.AuctionUseCaseCfg{
		AuctionRepo: m.repo,
		SlotRepo:    m.slots,
		EventRepo:   m.events,
		Ledger:      m.ledger,
		Gateway:     m.gateway,
		Notifier:    noopNotifier,
	})
	return uc, m
}

func startedAuction(index int64, endsIn time.Duration) *auction.Auction {
	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(endsIn)
	return &auction.Auction{
		ChainId:           1,
		Index:             index,
		Owner:             "0xaaa",
		ContractAddress:   "0xc0ffee",
		TokenId:           "42",
		BidIncrement:      "3",
		FloorPrice:        "5",
		Duration:          3600,
		State:             auction.StateStarted,
		StartTime:         &start,
		EndTime:           &end,
		HighestBid:        "0",
		HighestBindingBid: "0",
		Bids:              map[domain.Address]string{},
	}
}

func TestCreateAuction(t *testing.T) {
	c := ctx.Background()
	uc, m := newUsecase()

	payload := auction.CreateAuctionPayload{
		ChainId:         1,
		ContractAddress: "0xC0FFEE",
		TokenId:         "42",
		BidIncrement:    "3",
		FloorPrice:      "5",
		DurationSec:     3600,
	}

	m.gateway.On("CurrentHolder", mock.Anything, domain.ChainId(1), domain.Address("0xc0ffee"), domain.TokenId("42")).Return(domain.Address("0xaaa"), nil)
	m.repo.On("NextIndex", mock.Anything, domain.ChainId(1)).Return(int64(5), nil)
	m.slots.On("Acquire", mock.Anything, mock.Anything).Return(nil)
	m.gateway.On("TransferInto", mock.Anything, domain.ChainId(1), domain.Address("0xc0ffee"), domain.TokenId("42"), domain.Address("0xaaa")).Return(domain.TxHash("0xdeadbeef"), nil)
	m.repo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	m.events.On("Insert", mock.Anything, mock.Anything).Return(nil)

	a, err := uc.CreateAuction(c, "0xAAA", payload)
	require.NoError(t, err)
	assert.Equal(t, int64(5), a.Index)
	assert.Equal(t, auction.StateDeployed, a.State)
	assert.Equal(t, domain.Address("0xaaa"), a.Owner)
	assert.Equal(t, domain.Address("0xc0ffee"), a.ContractAddress)
	assert.Equal(t, "0", a.HighestBindingBid)
	m.slots.AssertCalled(t, "Acquire", mock.Anything, mock.Anything)
}

func TestCreateAuctionNotHolder(t *testing.T) {
	c := ctx.Background()
	uc, m := newUsecase()

	m.gateway.On("CurrentHolder", mock.Anything, domain.ChainId(1), domain.Address("0xc0ffee"), domain.TokenId("42")).Return(domain.Address("0xbbb"), nil)

	_, err := uc.CreateAuction(c, "0xaaa", auction.CreateAuctionPayload{
		ChainId:         1,
		ContractAddress: "0xc0ffee",
		TokenId:         "42",
		BidIncrement:    "3",
		FloorPrice:      "5",
		DurationSec:     3600,
	})
	assert.Equal(t, domain.ErrNotTokenHolder, err)
	m.repo.AssertNotCalled(t, "NextIndex", mock.Anything, mock.Anything)
}

func TestCreateAuctionDuplicateAsset(t *testing.T) {
	c := ctx.Background()
	uc, m := newUsecase()

	m.gateway.On("CurrentHolder", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(domain.Address("0xaaa"), nil)
	m.repo.On("NextIndex", mock.Anything, domain.ChainId(1)).Return(int64(6), nil)
	m.slots.On("Acquire", mock.Anything, mock.Anything).Return(domain.ErrDuplicateActiveAuction)

	_, err := uc.CreateAuction(c, "0xaaa", auction.CreateAuctionPayload{
		ChainId:         1,
		ContractAddress: "0xc0ffee",
		TokenId:         "42",
		BidIncrement:    "3",
		FloorPrice:      "5",
		DurationSec:     3600,
	})
	assert.Equal(t, domain.ErrDuplicateActiveAuction, err)
	m.gateway.AssertNotCalled(t, "TransferInto", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateAuctionTransferFailureReleasesSlot(t *testing.T) {
	c := ctx.Background()
	uc, m := newUsecase()

	m.gateway.On("CurrentHolder", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(domain.Address("0xaaa"), nil)
	m.repo.On("NextIndex", mock.Anything, domain.ChainId(1)).Return(int64(7), nil)
	m.slots.On("Acquire", mock.Anything, mock.Anything).Return(nil)
	m.gateway.On("TransferInto", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(domain.TxHash(""), domain.ErrInternalServerError)
	m.slots.On("Release", mock.Anything, domain.ChainId(1), domain.Address("0xc0ffee"), domain.TokenId("42")).Return(nil)

	_, err := uc.CreateAuction(c, "0xaaa", auction.CreateAuctionPayload{
		ChainId:         1,
		ContractAddress: "0xc0ffee",
		TokenId:         "42",
		BidIncrement:    "3",
		FloorPrice:      "5",
		DurationSec:     3600,
	})
	assert.Error(t, err)
	m.slots.AssertCalled(t, "Release", mock.Anything, domain.ChainId(1), domain.Address("0xc0ffee"), domain.TokenId("42"))
	m.repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestPlaceBid(t *testing.T) {
	c := ctx.Background()
	uc, m := newUsecase()
	id := auction.Id{ChainId: 1, Index: 3}

	m.repo.On("FindOne", mock.Anything, id).Return(startedAuction(3, time.Hour), nil)
	m.ledger.On("Hold", mock.Anything, domain.ChainId(1), domain.Address("0xbbb"), big.NewInt(8), int64(3)).Return(nil)
	m.repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	m.events.On("Insert", mock.Anything, mock.Anything).Return(nil)

	a, err := uc.PlaceBid(c, "0xBBB", id, "8")
	require.NoError(t, err)
	assert.Equal(t, domain.Address("0xbbb"), a.HighestBidder)
	assert.Equal(t, "8", a.HighestBid)
	assert.Equal(t, "5", a.HighestBindingBid)
	m.ledger.AssertCalled(t, "Hold", mock.Anything, domain.ChainId(1), domain.Address("0xbbb"), big.NewInt(8), int64(3))
}

func TestPlaceBidInsufficientFunds(t *testing.T) {
	c := ctx.Background()
	uc, m := newUsecase()
	id := auction.Id{ChainId: 1, Index: 3}

	m.repo.On("FindOne", mock.Anything, id).Return(startedAuction(3, time.Hour), nil)
	m.ledger.On("Hold", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(domain.ErrInsufficientFunds)

	_, err := uc.PlaceBid(c, "0xbbb", id, "8")
	assert.Equal(t, domain.ErrInsufficientFunds, err)
	m.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPlaceBidRejectedHoldsNothing(t *testing.T) {
	c := ctx.Background()
	uc, m := newUsecase()
	id := auction.Id{ChainId: 1, Index: 3}

	m.repo.On("FindOne", mock.Anything, id).Return(startedAuction(3, time.Hour), nil)

	_, err := uc.PlaceBid(c, "0xbbb", id, "4")
	assert.Equal(t, domain.ErrBidBelowFloor, err)
	m.ledger.AssertNotCalled(t, "Hold", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEndBeforeDeadlineIsNoop(t *testing.T) {
	c := ctx.Background()
	uc, m := newUsecase()
	id := auction.Id{ChainId: 1, Index: 3}

	m.repo.On("FindOne", mock.Anything, id).Return(startedAuction(3, time.Hour), nil)

	a, err := uc.End(c, id)
	require.NoError(t, err)
	assert.Equal(t, auction.StateStarted, a.State)
	m.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestEndAfterDeadline(t *testing.T) {
	c := ctx.Background()
	uc, m := newUsecase()
	id := auction.Id{ChainId: 1, Index: 3}

	m.repo.On("FindOne", mock.Anything, id).Return(startedAuction(3, -time.Minute), nil)
	m.repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	m.slots.On("Release", mock.Anything, domain.ChainId(1), domain.Address("0xc0ffee"), domain.TokenId("42")).Return(nil)
	m.events.On("Insert", mock.Anything, mock.Anything).Return(nil)

	a, err := uc.End(c, id)
	require.NoError(t, err)
	assert.Equal(t, auction.StateEnded, a.State)
	m.slots.AssertCalled(t, "Release", mock.Anything, domain.ChainId(1), domain.Address("0xc0ffee"), domain.TokenId("42"))
}

func TestWithdrawRefundsLoser(t *testing.T) {
	c := ctx.Background()
	uc, m := newUsecase()
	id := auction.Id{ChainId: 1, Index: 3}

	a := startedAuction(3, -time.Minute)
	a.State = auction.StateEnded
	a.HighestBidder = "0xccc"
	a.HighestBid = "9"
	a.HighestBindingBid = "9"
	a.Bids = map[domain.Address]string{"0xbbb": "6", "0xccc": "9"}

	m.repo.On("FindOne", mock.Anything, id).Return(a, nil)
	m.repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	m.ledger.On("Release", mock.Anything, domain.ChainId(1), domain.Address("0xbbb"), big.NewInt(6), int64(3), escrow.EntryRefund).Return(nil)
	m.events.On("Insert", mock.Anything, mock.Anything).Return(nil)

	refund, err := uc.Withdraw(c, "0xbbb", id)
	require.NoError(t, err)
	assert.Equal(t, "6", refund)
	m.ledger.AssertCalled(t, "Release", mock.Anything, domain.ChainId(1), domain.Address("0xbbb"), big.NewInt(6), int64(3), escrow.EntryRefund)
}

func TestWithdrawItemSettlesOwner(t *testing.T) {
	c := ctx.Background()
	uc, m := newUsecase()
	id := auction.Id{ChainId: 1, Index: 3}

	a := startedAuction(3, -time.Minute)
	a.State = auction.StateEnded
	a.HighestBidder = "0xccc"
	a.HighestBid = "12"
	a.HighestBindingBid = "9"
	a.Bids = map[domain.Address]string{"0xccc": "12"}

	m.repo.On("FindOne", mock.Anything, id).Return(a, nil)
	m.repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	m.gateway.On("TransferOut", mock.Anything, domain.ChainId(1), domain.Address("0xc0ffee"), domain.TokenId("42"), domain.Address("0xccc")).Return(domain.TxHash("0xfeed"), nil)
	m.ledger.On("Release", mock.Anything, domain.ChainId(1), domain.Address("0xaaa"), big.NewInt(9), int64(3), escrow.EntrySettlement).Return(nil)
	m.events.On("Insert", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, uc.WithdrawItem(c, "0xccc", id))
	assert.True(t, a.NftWithdrawn)
	assert.Equal(t, "3", a.Bids["0xccc"])
	m.ledger.AssertCalled(t, "Release", mock.Anything, domain.ChainId(1), domain.Address("0xaaa"), big.NewInt(9), int64(3), escrow.EntrySettlement)
}

func TestWithdrawItemTransferFailureIsRetryable(t *testing.T) {
	c := ctx.Background()
	uc, m := newUsecase()
	id := auction.Id{ChainId: 1, Index: 3}

	endedAuction := func() *auction.Auction {
		a := startedAuction(3, -time.Minute)
		a.State = auction.StateEnded
		a.HighestBidder = "0xccc"
		a.HighestBid = "12"
		a.HighestBindingBid = "9"
		a.Bids = map[domain.Address]string{"0xccc": "12"}
		return a
	}

	// each call re-reads the stored document
	m.repo.On("FindOne", mock.Anything, id).Return(endedAuction(), nil).Once()
	m.repo.On("FindOne", mock.Anything, id).Return(endedAuction(), nil).Once()
	m.gateway.On("TransferOut", mock.Anything, domain.ChainId(1), domain.Address("0xc0ffee"), domain.TokenId("42"), domain.Address("0xccc")).Return(domain.TxHash(""), domain.ErrInternalServerError).Once()
	m.gateway.On("TransferOut", mock.Anything, domain.ChainId(1), domain.Address("0xc0ffee"), domain.TokenId("42"), domain.Address("0xccc")).Return(domain.TxHash("0xfeed"), nil).Once()
	m.repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	m.ledger.On("Release", mock.Anything, domain.ChainId(1), domain.Address("0xaaa"), big.NewInt(9), int64(3), escrow.EntrySettlement).Return(nil)
	m.events.On("Insert", mock.Anything, mock.Anything).Return(nil)

	// the failed transfer must not mark the item withdrawn or settle the owner
	assert.Error(t, uc.WithdrawItem(c, "0xccc", id))
	m.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	m.ledger.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	require.NoError(t, uc.WithdrawItem(c, "0xccc", id))
	m.ledger.AssertCalled(t, "Release", mock.Anything, domain.ChainId(1), domain.Address("0xaaa"), big.NewInt(9), int64(3), escrow.EntrySettlement)
}

func TestWithdrawWinnerExcessAfterItem(t *testing.T) {
	c := ctx.Background()
	uc, m := newUsecase()
	id := auction.Id{ChainId: 1, Index: 3}

	a := startedAuction(3, -time.Minute)
	a.State = auction.StateEnded
	a.HighestBidder = "0xccc"
	a.HighestBid = "12"
	a.HighestBindingBid = "9"
	a.NftWithdrawn = true
	a.Bids = map[domain.Address]string{"0xccc": "3"}

	m.repo.On("FindOne", mock.Anything, id).Return(a, nil)
	m.repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	m.ledger.On("Release", mock.Anything, domain.ChainId(1), domain.Address("0xccc"), big.NewInt(3), int64(3), escrow.EntryRefund).Return(nil)
	m.events.On("Insert", mock.Anything, mock.Anything).Return(nil)

	// the binding bid was settled when the item left escrow; the remainder
	// refunds in full
	refund, err := uc.Withdraw(c, "0xccc", id)
	require.NoError(t, err)
	assert.Equal(t, "3", refund)
	assert.Equal(t, "0", a.Bids["0xccc"])
}

func TestWithdrawItemWhenCancelledReturnsItemToOwner(t *testing.T) {
	c := ctx.Background()
	uc, m := newUsecase()
	id := auction.Id{ChainId: 1, Index: 3}

	a := startedAuction(3, time.Hour)
	a.State = auction.StateCancelled

	m.repo.On("FindOne", mock.Anything, id).Return(a, nil)
	m.repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	m.gateway.On("TransferOut", mock.Anything, domain.ChainId(1), domain.Address("0xc0ffee"), domain.TokenId("42"), domain.Address("0xaaa")).Return(domain.TxHash("0xfeed"), nil)
	m.events.On("Insert", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, uc.WithdrawItemWhenCancelled(c, "0xaaa", id))
	assert.True(t, a.NftWithdrawn)
	m.ledger.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetAuctionByOwnerIndexOutOfRange(t *testing.T) {
	c := ctx.Background()
	uc, m := newUsecase()

	m.repo.On("FindAll", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]*auction.Auction{}, nil)

	_, err := uc.GetAuctionByOwnerIndex(c, 1, "0xaaa", 10)
	assert.Equal(t, domain.ErrIndexOutOfRange, err)

	_, err = uc.GetAuctionByOwnerIndex(c, 1, "0xaaa", -1)
	assert.Equal(t, domain.ErrIndexOutOfRange, err)
}

func TestEndExpired(t *testing.T) {
	c := ctx.Background()
	uc, m := newUsecase()

	expired := startedAuction(1, -time.Minute)
	live := startedAuction(2, time.Hour)

	m.repo.On("FindAll", mock.Anything, mock.Anything, mock.Anything).Return([]*auction.Auction{expired, live}, nil)
	m.repo.On("FindOne", mock.Anything, auction.Id{ChainId: 1, Index: 1}).Return(expired, nil)
	m.repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	m.slots.On("Release", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.events.On("Insert", mock.Anything, mock.Anything).Return(nil)

	n, err := uc.EndExpired(c, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	m.repo.AssertNotCalled(t, "FindOne", mock.Anything, auction.Id{ChainId: 1, Index: 2})
}
