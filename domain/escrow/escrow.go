package escrow

import (
	"math/big"
	"time"

	"github.com/faromarket/goapi/base/ctx"
	"github.com/faromarket/goapi/domain"
)

// TokenGateway moves item custody between outside owners and the house
// escrow wallet. TransferInto requires the holder's prior approval on the
// escrow wallet.
type TokenGateway interface {
	CurrentHolder(ctx ctx.Ctx, chainId domain.ChainId, contractAddress domain.Address, tokenId domain.TokenId) (domain.Address, error)
	TransferInto(ctx ctx.Ctx, chainId domain.ChainId, contractAddress domain.Address, tokenId domain.TokenId, from domain.Address) (domain.TxHash, error)
	TransferOut(ctx ctx.Ctx, chainId domain.ChainId, contractAddress domain.Address, tokenId domain.TokenId, to domain.Address) (domain.TxHash, error)
}

type EntryType string

const (
	EntryDeposit    EntryType = "deposit"
	EntryBid        EntryType = "bid"
	EntryRefund     EntryType = "refund"
	EntrySettlement EntryType = "settlement"
)

// LedgerEntry is one append-only movement of funds. Delta is a signed
// base-10 integer string from the account's point of view: deposits and
// refunds are positive, escrowed bids negative. The sum over all entries of
// one account is its free balance, so value is never created or lost.
type LedgerEntry struct {
	Id           string         `json:"id" bson:"id"`
	ChainId      domain.ChainId `json:"chainId" bson:"chainId"`
	Account      domain.Address `json:"account" bson:"account"`
	Delta        string         `json:"delta" bson:"delta"`
	Type         EntryType      `json:"type" bson:"type"`
	AuctionIndex *int64         `json:"auctionIndex,omitempty" bson:"auctionIndex,omitempty"`
	CreatedAt    time.Time      `json:"createdAt" bson:"createdAt"`
}

type EntryFindAllOptions struct {
	Offset       *int32
	Limit        *int32
	ChainId      *domain.ChainId
	Account      *domain.Address
	AuctionIndex *int64
	Type         *EntryType
}

type EntryFindAllOptionsFunc func(*EntryFindAllOptions) error

func GetEntryFindAllOptions(opts ...EntryFindAllOptionsFunc) (EntryFindAllOptions, error) {
	res := EntryFindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func EntryWithPagination(offset int32, limit int32) EntryFindAllOptionsFunc {
	return func(options *EntryFindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func EntryWithChainId(chainId domain.ChainId) EntryFindAllOptionsFunc {
	return func(options *EntryFindAllOptions) error {
		options.ChainId = &chainId
		return nil
	}
}

func EntryWithAccount(account domain.Address) EntryFindAllOptionsFunc {
	return func(options *EntryFindAllOptions) error {
		options.Account = account.ToLowerPtr()
		return nil
	}
}

func EntryWithAuctionIndex(index int64) EntryFindAllOptionsFunc {
	return func(options *EntryFindAllOptions) error {
		options.AuctionIndex = &index
		return nil
	}
}

func EntryWithType(t EntryType) EntryFindAllOptionsFunc {
	return func(options *EntryFindAllOptions) error {
		options.Type = &t
		return nil
	}
}

// FundLedger is the custodial money side of the house. Hold moves an
// account's free balance into an auction's escrow and fails with
// ErrInsufficientFunds when the free balance does not cover the amount;
// Release pays escrowed funds of an auction out to an account's free
// balance (bid refunds and the settlement to the seller).
type FundLedger interface {
	Deposit(ctx ctx.Ctx, chainId domain.ChainId, account domain.Address, amount *big.Int) error
	BalanceOf(ctx ctx.Ctx, chainId domain.ChainId, account domain.Address) (*big.Int, error)
	Hold(ctx ctx.Ctx, chainId domain.ChainId, account domain.Address, amount *big.Int, auctionIndex int64) error
	Release(ctx ctx.Ctx, chainId domain.ChainId, account domain.Address, amount *big.Int, auctionIndex int64, entryType EntryType) error
	EscrowBalance(ctx ctx.Ctx, chainId domain.ChainId, auctionIndex int64) (*big.Int, error)
	Entries(ctx ctx.Ctx, opts ...EntryFindAllOptionsFunc) ([]*LedgerEntry, error)
}
