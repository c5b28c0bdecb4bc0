package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/faromarket/goapi/base/ctx"
	"github.com/faromarket/goapi/base/log"
	"github.com/faromarket/goapi/domain"
	"github.com/faromarket/goapi/domain/auction"
	"github.com/faromarket/goapi/service/query"
)

type eventImpl struct {
	q query.Mongo
}

func NewEventRepo(q query.Mongo) auction.EventRepo {
	return &eventImpl{q}
}

func (im *eventImpl) Insert(ctx ctx.Ctx, ev *auction.Event) error {
	ev.Account = ev.Account.ToLower()
	if err := im.q.Insert(ctx, domain.TableAuctionEvents, ev); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"event": *ev,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *eventImpl) FindAll(ctx ctx.Ctx, opts ...auction.EventFindAllOptionsFunc) ([]*auction.Event, error) {
	options, err := auction.GetEventFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	query := bson.M{}
	if options.ChainId != nil {
		query["chainId"] = *options.ChainId
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

	res := []*auction.Event{}
	err = im.q.Search(ctx, domain.TableAuctionEvents, offset, limit, "time", query, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("q.Search failed")
		return nil, err
	}

	return res, nil
}
