package auction

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faromarket/goapi/domain"
)

var (
	owner   = domain.Address("0xaaa1111111111111111111111111111111111111")
	bidderA = domain.Address("0xbbb1111111111111111111111111111111111111")
	bidderB = domain.Address("0xbbb2222222222222222222222222222222222222")
	bidderC = domain.Address("0xbbb3333333333333333333333333333333333333")
)

func newTestAuction(floor, increment int64) *Auction {
	return &Auction{
		ChainId:           1,
		Index:             0,
		Owner:             owner,
		ContractAddress:   domain.Address("0xccc1111111111111111111111111111111111111"),
		TokenId:           domain.TokenId("1"),
		BidIncrement:      big.NewInt(increment).String(),
		FloorPrice:        big.NewInt(floor).String(),
		Duration:          3600,
		State:             StateDeployed,
		HighestBid:        "0",
		HighestBindingBid: "0",
	}
}

func startedAuction(t *testing.T, floor, increment int64, now time.Time) *Auction {
	a := newTestAuction(floor, increment)
	require.NoError(t, a.Start(owner, now))
	return a
}

func TestStart(t *testing.T) {
	now := time.Now()

	a := newTestAuction(5, 1)
	assert.Equal(t, domain.ErrOnlyOwner, a.Start(bidderA, now))
	assert.Equal(t, StateDeployed, a.State)

	require.NoError(t, a.Start(owner, now))
	assert.Equal(t, StateStarted, a.State)
	require.NotNil(t, a.EndTime)
	assert.Equal(t, now.Add(time.Hour), *a.EndTime)

	assert.Equal(t, domain.ErrAlreadyStarted, a.Start(owner, now))
}

func TestPlaceBidOrdering(t *testing.T) {
	now := time.Now()
	a := startedAuction(t, 5, 1, now)

	// first bid below floor rejected with no state change
	err := a.PlaceBid(bidderA, big.NewInt(4), now)
	assert.Equal(t, domain.ErrBidBelowFloor, err)
	assert.True(t, a.HighestBidder.IsEmpty())
	assert.Equal(t, int64(0), a.BidOf(bidderA).Int64())

	// first accepted bid sets the floor as binding price
	require.NoError(t, a.PlaceBid(bidderA, big.NewInt(8), now))
	assert.Equal(t, bidderA, a.HighestBidder)
	assert.Equal(t, "8", a.HighestBid)
	assert.Equal(t, "5", a.HighestBindingBid)

	// trailing bid keeps funds but changes nothing else
	require.NoError(t, a.PlaceBid(bidderB, big.NewInt(6), now))
	assert.Equal(t, bidderA, a.HighestBidder)
	assert.Equal(t, "8", a.HighestBid)
	assert.Equal(t, "5", a.HighestBindingBid)
	assert.Equal(t, int64(6), a.BidOf(bidderB).Int64())

	// cumulative overtake moves the binding price one increment past
	// the previous lead
	require.NoError(t, a.PlaceBid(bidderB, big.NewInt(6), now))
	assert.Equal(t, bidderB, a.HighestBidder)
	assert.Equal(t, "12", a.HighestBid)
	assert.Equal(t, "9", a.HighestBindingBid)

	// and back again
	require.NoError(t, a.PlaceBid(bidderA, big.NewInt(8), now))
	assert.Equal(t, bidderA, a.HighestBidder)
	assert.Equal(t, "16", a.HighestBid)
	assert.Equal(t, "13", a.HighestBindingBid)
}

func TestPlaceBidLeaderRaise(t *testing.T) {
	now := time.Now()
	a := startedAuction(t, 5, 1, now)

	require.NoError(t, a.PlaceBid(bidderA, big.NewInt(8), now))
	require.NoError(t, a.PlaceBid(bidderA, big.NewInt(8), now))
	assert.Equal(t, "16", a.HighestBid)
	// leader raising themselves ratchets binding by one increment only
	assert.Equal(t, "6", a.HighestBindingBid)

	bid, _ := domain.ParseAmount(a.HighestBid)
	binding, _ := domain.ParseAmount(a.HighestBindingBid)
	assert.True(t, binding.Cmp(bid) <= 0)
}

func TestPlaceBidBindingCappedByTotal(t *testing.T) {
	now := time.Now()
	a := startedAuction(t, 5, 100, now)

	require.NoError(t, a.PlaceBid(bidderA, big.NewInt(8), now))
	require.NoError(t, a.PlaceBid(bidderB, big.NewInt(9), now))
	// min(8+100, 9) caps at the new leader's total
	assert.Equal(t, bidderB, a.HighestBidder)
	assert.Equal(t, "9", a.HighestBindingBid)
}

func TestPlaceBidNotLive(t *testing.T) {
	now := time.Now()

	a := newTestAuction(5, 1)
	assert.Equal(t, domain.ErrAuctionNotLive, a.PlaceBid(bidderA, big.NewInt(8), now))

	a = startedAuction(t, 5, 1, now)
	afterEnd := now.Add(2 * time.Hour)
	assert.Equal(t, domain.ErrAuctionNotLive, a.PlaceBid(bidderA, big.NewInt(8), afterEnd))

	a = startedAuction(t, 5, 1, now)
	require.NoError(t, a.Cancel(owner))
	assert.Equal(t, domain.ErrAuctionNotLive, a.PlaceBid(bidderA, big.NewInt(8), now))
}

func TestEnd(t *testing.T) {
	now := time.Now()
	a := startedAuction(t, 5, 1, now)

	// before the deadline end is a silent no-op
	assert.False(t, a.End(now.Add(30*time.Minute)))
	assert.Equal(t, StateStarted, a.State)

	assert.True(t, a.End(now.Add(time.Hour)))
	assert.Equal(t, StateEnded, a.State)

	// idempotent afterwards
	assert.False(t, a.End(now.Add(2*time.Hour)))
	assert.Equal(t, StateEnded, a.State)

	// never ends an auction that was not started
	b := newTestAuction(5, 1)
	assert.False(t, b.End(now.Add(2*time.Hour)))
	assert.Equal(t, StateDeployed, b.State)
}

func TestCancel(t *testing.T) {
	now := time.Now()

	a := newTestAuction(5, 1)
	assert.Equal(t, domain.ErrOnlyOwner, a.Cancel(bidderA))
	require.NoError(t, a.Cancel(owner))
	assert.Equal(t, StateCancelled, a.State)
	assert.Equal(t, domain.ErrAlreadyTerminal, a.Cancel(owner))

	b := startedAuction(t, 5, 1, now)
	require.NoError(t, b.Cancel(owner))
	assert.Equal(t, StateCancelled, b.State)

	c := startedAuction(t, 5, 1, now)
	c.End(now.Add(time.Hour))
	assert.Equal(t, domain.ErrAlreadyTerminal, c.Cancel(owner))
}

func TestWithdrawWinner(t *testing.T) {
	now := time.Now()
	a := startedAuction(t, 5, 1, now)

	require.NoError(t, a.PlaceBid(bidderA, big.NewInt(8), now))
	require.NoError(t, a.PlaceBid(bidderB, big.NewInt(12), now))
	// binding = min(8+1, 12) = 9, winner B holds 12

	_, err := a.Withdraw(bidderB)
	assert.Equal(t, domain.ErrAuctionNotSettled, err)

	a.End(now.Add(time.Hour))

	refund, err := a.Withdraw(bidderB)
	require.NoError(t, err)
	assert.Equal(t, int64(3), refund.Int64())
	assert.Equal(t, int64(9), a.BidOf(bidderB).Int64())

	// nothing further to withdraw while the binding bid is owed
	_, err = a.Withdraw(bidderB)
	assert.Equal(t, domain.ErrZeroWithdrawal, err)

	// collecting the item settles the rest; the balance is spent, not owed
	settled, err := a.WithdrawItem(bidderB)
	require.NoError(t, err)
	assert.Equal(t, int64(9), settled.Int64())
	_, err = a.Withdraw(bidderB)
	assert.Equal(t, domain.ErrNoBidsToWithdraw, err)
}

// the original flow collects the item before the funds; the settled binding
// bid must not be deducted a second time on the later withdrawal
func TestWithdrawWinnerAfterItem(t *testing.T) {
	now := time.Now()
	a := startedAuction(t, 5, 1, now)

	require.NoError(t, a.PlaceBid(bidderA, big.NewInt(8), now))
	require.NoError(t, a.PlaceBid(bidderB, big.NewInt(12), now))
	a.End(now.Add(time.Hour))

	settled, err := a.WithdrawItem(bidderB)
	require.NoError(t, err)
	assert.Equal(t, int64(9), settled.Int64())
	assert.Equal(t, int64(3), a.BidOf(bidderB).Int64())

	refund, err := a.Withdraw(bidderB)
	require.NoError(t, err)
	assert.Equal(t, int64(3), refund.Int64())
	assert.Equal(t, int64(0), a.BidOf(bidderB).Int64())

	_, err = a.Withdraw(bidderB)
	assert.Equal(t, domain.ErrNoBidsToWithdraw, err)
}

func TestWithdrawLoser(t *testing.T) {
	now := time.Now()
	a := startedAuction(t, 5, 1, now)

	require.NoError(t, a.PlaceBid(bidderA, big.NewInt(8), now))
	require.NoError(t, a.PlaceBid(bidderB, big.NewInt(12), now))
	a.End(now.Add(time.Hour))

	refund, err := a.Withdraw(bidderA)
	require.NoError(t, err)
	assert.Equal(t, int64(8), refund.Int64())
	assert.Equal(t, int64(0), a.BidOf(bidderA).Int64())

	_, err = a.Withdraw(bidderA)
	assert.Equal(t, domain.ErrNoBidsToWithdraw, err)

	_, err = a.Withdraw(bidderC)
	assert.Equal(t, domain.ErrNoBidsToWithdraw, err)
}

func TestWithdrawAfterCancel(t *testing.T) {
	now := time.Now()
	a := startedAuction(t, 5, 1, now)

	require.NoError(t, a.PlaceBid(bidderA, big.NewInt(8), now))
	require.NoError(t, a.PlaceBid(bidderB, big.NewInt(12), now))
	require.NoError(t, a.Cancel(owner))

	// even the would-be winner gets everything back after cancellation
	refund, err := a.Withdraw(bidderB)
	require.NoError(t, err)
	assert.Equal(t, int64(12), refund.Int64())

	refund, err = a.Withdraw(bidderA)
	require.NoError(t, err)
	assert.Equal(t, int64(8), refund.Int64())
}

func TestWithdrawItem(t *testing.T) {
	now := time.Now()
	a := startedAuction(t, 5, 1, now)

	require.NoError(t, a.PlaceBid(bidderA, big.NewInt(8), now))
	require.NoError(t, a.PlaceBid(bidderB, big.NewInt(12), now))

	_, err := a.WithdrawItem(bidderB)
	assert.Equal(t, domain.ErrAuctionNotEnded, err)

	a.End(now.Add(time.Hour))

	_, err = a.WithdrawItem(bidderA)
	assert.Equal(t, domain.ErrNotHighestBidder, err)

	settled, err := a.WithdrawItem(bidderB)
	require.NoError(t, err)
	assert.Equal(t, int64(9), settled.Int64())
	assert.True(t, a.NftWithdrawn)
	// the excess stays withdrawable after settlement
	assert.Equal(t, int64(3), a.BidOf(bidderB).Int64())

	_, err = a.WithdrawItem(bidderB)
	assert.Equal(t, domain.ErrItemWithdrawn, err)
}

func TestWithdrawItemWhenCancelled(t *testing.T) {
	now := time.Now()
	a := startedAuction(t, 5, 1, now)

	assert.Equal(t, domain.ErrAuctionNotCancelled, a.WithdrawItemWhenCancelled(owner))

	require.NoError(t, a.Cancel(owner))
	assert.Equal(t, domain.ErrOnlyOwner, a.WithdrawItemWhenCancelled(bidderA))

	require.NoError(t, a.WithdrawItemWhenCancelled(owner))
	assert.True(t, a.NftWithdrawn)
	assert.Equal(t, domain.ErrItemWithdrawn, a.WithdrawItemWhenCancelled(owner))
}

// conservation: escrowed balances plus withdrawn amounts always equal the
// total ever received
func TestFundConservation(t *testing.T) {
	now := time.Now()
	a := startedAuction(t, 5, 1, now)

	deposited := big.NewInt(0)
	for _, b := range []struct {
		bidder domain.Address
		amount int64
	}{
		{bidderA, 8}, {bidderB, 6}, {bidderB, 6}, {bidderA, 8}, {bidderC, 20},
	} {
		require.NoError(t, a.PlaceBid(b.bidder, big.NewInt(b.amount), now))
		deposited.Add(deposited, big.NewInt(b.amount))

		bid, _ := domain.ParseAmount(a.HighestBid)
		binding, _ := domain.ParseAmount(a.HighestBindingBid)
		assert.True(t, binding.Cmp(bid) <= 0)
		assert.Equal(t, bid, a.BidOf(a.HighestBidder))
	}

	a.End(now.Add(time.Hour))

	withdrawn := big.NewInt(0)
	for _, bidder := range []domain.Address{bidderA, bidderB, bidderC} {
		if refund, err := a.Withdraw(bidder); err == nil {
			withdrawn.Add(withdrawn, refund)
		}
	}
	settled, err := a.WithdrawItem(a.HighestBidder)
	require.NoError(t, err)
	withdrawn.Add(withdrawn, settled)

	escrowed := big.NewInt(0)
	for addr := range a.Bids {
		escrowed.Add(escrowed, a.BidOf(addr))
	}
	assert.Equal(t, deposited, new(big.Int).Add(withdrawn, escrowed))
}
