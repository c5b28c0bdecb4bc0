package repository

import (
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/faromarket/goapi/base/ctx"
	"github.com/faromarket/goapi/base/log"
	"github.com/faromarket/goapi/domain"
	"github.com/faromarket/goapi/domain/escrow"
	"github.com/faromarket/goapi/service/query"
)

type balanceDoc struct {
	ChainId   domain.ChainId `bson:"chainId"`
	Account   domain.Address `bson:"account"`
	Amount    string         `bson:"amount"`
	UpdatedAt time.Time      `bson:"updatedAt"`
}

type ledgerImpl struct {
	q query.Mongo

	// balance reads and writes are not atomic in mongo since amounts
	// exceed int64; serialize them here instead
	mu sync.Mutex
}

func NewFundLedger(q query.Mongo) escrow.FundLedger {
	return &ledgerImpl{q: q}
}

func (im *ledgerImpl) balanceOf(ctx ctx.Ctx, chainId domain.ChainId, account domain.Address) (*big.Int, error) {
	doc := balanceDoc{}
	err := im.q.FindOne(ctx, domain.TableLedgerBalances, bson.M{
		"chainId": chainId,
		"account": account,
	}, &doc)
	if err == query.ErrNotFound {
		return new(big.Int), nil
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"account": account,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return domain.ParseAmount(doc.Amount)
}

func (im *ledgerImpl) setBalance(ctx ctx.Ctx, chainId domain.ChainId, account domain.Address, amount *big.Int) error {
	selector := bson.M{
		"chainId": chainId,
		"account": account,
	}
	doc := balanceDoc{
		ChainId:   chainId,
		Account:   account,
		Amount:    domain.FormatAmount(amount),
		UpdatedAt: time.Now(),
	}
	if err := im.q.Upsert(ctx, domain.TableLedgerBalances, selector, doc); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"account": account,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *ledgerImpl) appendEntry(ctx ctx.Ctx, entry *escrow.LedgerEntry) error {
	entry.Id = uuid.New().String()
	entry.Account = entry.Account.ToLower()
	entry.CreatedAt = time.Now()
	if err := im.q.Insert(ctx, domain.TableLedgerEntries, entry); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"entry": *entry,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *ledgerImpl) Deposit(ctx ctx.Ctx, chainId domain.ChainId, account domain.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrBadParamInput
	}
	account = account.ToLower()

	im.mu.Lock()
	defer im.mu.Unlock()

	balance, err := im.balanceOf(ctx, chainId, account)
	if err != nil {
		return err
	}
	if err := im.setBalance(ctx, chainId, account, new(big.Int).Add(balance, amount)); err != nil {
		return err
	}
	return im.appendEntry(ctx, &escrow.LedgerEntry{
		ChainId: chainId,
		Account: account,
		Delta:   domain.FormatAmount(amount),
		Type:    escrow.EntryDeposit,
	})
}

func (im *ledgerImpl) BalanceOf(ctx ctx.Ctx, chainId domain.ChainId, account domain.Address) (*big.Int, error) {
	im.mu.Lock()
	defer im.mu.Unlock()
	return im.balanceOf(ctx, chainId, account.ToLower())
}

func (im *ledgerImpl) Hold(ctx ctx.Ctx, chainId domain.ChainId, account domain.Address, amount *big.Int, auctionIndex int64) error {
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrBadParamInput
	}
	account = account.ToLower()

	im.mu.Lock()
	defer im.mu.Unlock()

	balance, err := im.balanceOf(ctx, chainId, account)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return domain.ErrInsufficientFunds
	}
	if err := im.setBalance(ctx, chainId, account, new(big.Int).Sub(balance, amount)); err != nil {
		return err
	}
	return im.appendEntry(ctx, &escrow.LedgerEntry{
		ChainId:      chainId,
		Account:      account,
		Delta:        domain.FormatAmount(new(big.Int).Neg(amount)),
		Type:         escrow.EntryBid,
		AuctionIndex: &auctionIndex,
	})
}

func (im *ledgerImpl) Release(ctx ctx.Ctx, chainId domain.ChainId, account domain.Address, amount *big.Int, auctionIndex int64, entryType escrow.EntryType) error {
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrBadParamInput
	}
	account = account.ToLower()

	im.mu.Lock()
	defer im.mu.Unlock()

	balance, err := im.balanceOf(ctx, chainId, account)
	if err != nil {
		return err
	}
	if err := im.setBalance(ctx, chainId, account, new(big.Int).Add(balance, amount)); err != nil {
		return err
	}
	return im.appendEntry(ctx, &escrow.LedgerEntry{
		ChainId:      chainId,
		Account:      account,
		Delta:        domain.FormatAmount(amount),
		Type:         entryType,
		AuctionIndex: &auctionIndex,
	})
}

// EscrowBalance sums the ledger for one auction: holds minus releases is
// what the auction still keeps in custody.
func (im *ledgerImpl) EscrowBalance(ctx ctx.Ctx, chainId domain.ChainId, auctionIndex int64) (*big.Int, error) {
	entries, err := im.Entries(ctx,
		escrow.EntryWithChainId(chainId),
		escrow.EntryWithAuctionIndex(auctionIndex),
	)
	if err != nil {
		return nil, err
	}

	total := new(big.Int)
	for _, e := range entries {
		// deltas are signed, holds negative and releases positive
		delta, ok := new(big.Int).SetString(e.Delta, 10)
		if !ok {
			ctx.WithField("entry", e.Id).Error("corrupt ledger entry")
			return nil, domain.ErrInternalServerError
		}
		total.Sub(total, delta)
	}
	return total, nil
}

func (im *ledgerImpl) Entries(ctx ctx.Ctx, opts ...escrow.EntryFindAllOptionsFunc) ([]*escrow.LedgerEntry, error) {
	options, err := escrow.GetEntryFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	query := bson.M{}
	if options.ChainId != nil {
		query["chainId"] = *options.ChainId
	}
	if options.Account != nil {
		query["account"] = *options.Account
	}
	if options.AuctionIndex != nil {
		query["auctionIndex"] = *options.AuctionIndex
	}
	if options.Type != nil {
		query["type"] = *options.Type
	}

	offset := 0
	if options.Offset != nil {
		offset = int(*options.Offset)
	}

	limit := 0
	if options.Limit != nil {
		limit = int(*options.Limit)
	}

	res := []*escrow.LedgerEntry{}
	err = im.q.Search(ctx, domain.TableLedgerEntries, offset, limit, "createdAt", query, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("q.Search failed")
		return nil, err
	}

	return res, nil
}
