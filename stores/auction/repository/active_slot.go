package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/faromarket/goapi/base/ctx"
	"github.com/faromarket/goapi/base/log"
	"github.com/faromarket/goapi/domain"
	"github.com/faromarket/goapi/domain/auction"
	"github.com/faromarket/goapi/service/query"
)

type activeSlotImpl struct {
	q query.Mongo
}

// NewActiveSlotRepo guards the one-live-auction-per-item invariant. The
// collection carries a unique index on (chainId, contractAddress, tokenId)
// so concurrent Acquire calls for the same item race on the insert and
// exactly one wins.
func NewActiveSlotRepo(q query.Mongo) auction.ActiveSlotRepo {
	return &activeSlotImpl{q}
}

func (im *activeSlotImpl) Acquire(ctx ctx.Ctx, slot *auction.ActiveSlot) error {
	slot.ContractAddress = slot.ContractAddress.ToLower()
	if err := im.q.Insert(ctx, domain.TableActiveAuctions, slot); err != nil {
		if err == query.ErrDuplicateKey {
			return domain.ErrDuplicateActiveAuction
		}
		ctx.WithFields(log.Fields{
			"err":  err,
			"slot": *slot,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *activeSlotImpl) Release(ctx ctx.Ctx, chainId domain.ChainId, contractAddress domain.Address, tokenId domain.TokenId) error {
	selector := bson.M{
		"chainId":         chainId,
		"contractAddress": contractAddress.ToLower(),
		"tokenId":         tokenId,
	}
	if err := im.q.Remove(ctx, domain.TableActiveAuctions, selector); err != nil && err != query.ErrNotFound {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
		}).Error("q.Remove failed")
		return err
	}
	return nil
}
