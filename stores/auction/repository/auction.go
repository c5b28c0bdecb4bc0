package repository

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/faromarket/goapi/base/ctx"
	"github.com/faromarket/goapi/base/database/mongoclient"
	"github.com/faromarket/goapi/base/log"
	"github.com/faromarket/goapi/domain"
	"github.com/faromarket/goapi/domain/auction"
	"github.com/faromarket/goapi/service/query"
)

type impl struct {
	q query.Mongo
}

func NewAuctionRepo(q query.Mongo) auction.Repo {
	return &impl{q}
}

func (im *impl) makeQuery(options auction.FindAllOptions) (bson.M, error) {
	query := bson.M{}

	if options.ChainId != nil {
		query["chainId"] = *options.ChainId
	}

	if options.Owner != nil {
		query["owner"] = *options.Owner
	}

	if options.ContractAddress != nil {
		query["contractAddress"] = *options.ContractAddress
	}

	if options.TokenId != nil {
		query["tokenId"] = *options.TokenId
	}

	if options.State != nil {
		query["state"] = *options.State
	}

	if options.IndexGTE != nil {
		query["index"] = bson.M{"$gte": *options.IndexGTE}
	}

	return query, nil
}

func (im *impl) FindAll(ctx ctx.Ctx, opts ...auction.FindAllOptionsFunc) ([]*auction.Auction, error) {
	options, err := auction.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}
	query, err := im.makeQuery(options)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery failed")
		return nil, err
	}

	offset := 0
	if options.Offset != nil {
		offset = int(*options.Offset)
	}

	limit := 0
	if options.Limit != nil {
		limit = int(*options.Limit)
	}

	sort := "index"
	if options.SortBy != nil {
		sort = *options.SortBy
	}

	res := []*auction.Auction{}
	err = im.q.Search(ctx, domain.TableAuctions, offset, limit, sort, query, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("q.Search failed")
		return nil, err
	}

	return res, nil
}

func (im *impl) Count(ctx ctx.Ctx, opts ...auction.FindAllOptionsFunc) (int, error) {
	options, err := auction.GetFindAllOptions(opts...)
	if err != nil {
		return 0, err
	}
	query, err := im.makeQuery(options)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery failed")
		return 0, err
	}

	cnt, err := im.q.Count(ctx, domain.TableAuctions, query)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("q.Count failed")
		return 0, err
	}

	return cnt, nil
}

func (im *impl) FindOne(ctx ctx.Ctx, id auction.Id) (*auction.Auction, error) {
	qry, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("mongoclient.MakeBsonM failed")
		return nil, err
	}

	res := auction.Auction{}
	err = im.q.FindOne(ctx, domain.TableAuctions, qry, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("q.FindOne failed")
		return nil, err
	}

	return &res, nil
}

func (im *impl) Insert(ctx ctx.Ctx, a *auction.Auction) error {
	if err := im.q.Insert(ctx, domain.TableAuctions, a); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"auction": *a,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *impl) Update(ctx ctx.Ctx, a *auction.Auction) error {
	id := a.ToId()
	selector, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("mongoclient.MakeBsonM failed")
		return err
	}

	a.UpdatedAt = time.Now()
	if err := im.q.Upsert(ctx, domain.TableAuctions, selector, a); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}

type counter struct {
	Name string `bson:"name"`
	Seq  int64  `bson:"seq"`
}

// NextIndex hands out the zero-based creation-order index for a chain, one
// atomic $inc per call.
func (im *impl) NextIndex(ctx ctx.Ctx, chainId domain.ChainId) (int64, error) {
	selector := bson.M{"name": fmt.Sprintf("auctions-%d", chainId)}

	res := counter{}
	if err := im.q.Increment(ctx, domain.TableCounters, selector, &res, "seq", int64(1)); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
		}).Error("q.Increment failed")
		return 0, err
	}
	return res.Seq - 1, nil
}
