package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/faromarket/goapi/base/ctx"
	"github.com/faromarket/goapi/base/database/mongoclient"
	"github.com/faromarket/goapi/base/log"
	"github.com/faromarket/goapi/domain"
	"github.com/faromarket/goapi/domain/account"
	"github.com/faromarket/goapi/domain/keys"
	"github.com/faromarket/goapi/service/cache"
	compoundcache "github.com/faromarket/goapi/service/cache/compoundCache"
	"github.com/faromarket/goapi/service/cache/provider/primitive"
	redisCache "github.com/faromarket/goapi/service/cache/provider/redis"
	"github.com/faromarket/goapi/service/query"
	"github.com/faromarket/goapi/service/redis"
)

type impl struct {
	query        query.Mongo
	accountCache cache.Service
}

// New creates new account repo. Writes invalidate the cache so nonce
// reads after GenerateNonce are never stale.
func New(query query.Mongo, redis redis.Service) account.Repo {
	layers := []cache.Service{
		cache.New(cache.ServiceConfig{
			Ttl:   time.Minute,
			Pfx:   keys.PfxAccount,
			Cache: primitive.NewPrimitive(keys.PfxAccount, 128),
		}),
	}

	if redis != nil {
		layers = append(layers, cache.New(cache.ServiceConfig{
			Ttl:   time.Hour,
			Pfx:   keys.PfxAccount,
			Cache: redisCache.NewRedis(redis),
		}))
	}

	return &impl{
		query:        query,
		accountCache: compoundcache.NewCompoundCache(layers),
	}
}

func (im *impl) Get(c ctx.Ctx, address domain.Address) (*account.Account, error) {
	res := &account.Account{}

	if err := im.accountCache.GetByFunc(c, address.ToLowerStr(), res, func() (interface{}, error) {
		return im.get(c, address)
	}); err != nil {
		if err != domain.ErrNotFound {
			c.WithFields(log.Fields{
				"err":     err,
				"address": address,
			}).Error("accountCache.GetByFunc failed")
		}
		return nil, err
	}

	return res, nil
}

func (im *impl) get(c ctx.Ctx, address domain.Address) (*account.Account, error) {
	a := &account.Account{}
	err := im.query.FindOne(c, domain.TableAccounts, bson.M{"address": address.ToLowerStr()}, a)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"address": address,
			"err":     err,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return a, nil
}

func (im *impl) Insert(c ctx.Ctx, a *account.Account) error {
	a.Address = a.Address.ToLower()
	if err := im.query.Insert(c, domain.TableAccounts, a); err != nil {
		c.WithFields(log.Fields{
			"address": a.Address,
			"err":     err,
		}).Error("q.Insert failed")
		return err
	}
	if err := im.accountCache.Del(c, a.Address.ToLowerStr()); err != nil && err != cache.ErrNotFound {
		c.WithField("err", err).Warn("accountCache.Del failed")
	}
	return nil
}

func (im *impl) Update(c ctx.Ctx, address domain.Address, updater *account.Updater) error {
	updaterBson, err := mongoclient.MakeBsonM(updater)
	if err != nil {
		c.WithFields(log.Fields{
			"address": address,
			"err":     err,
		}).Error("mongoclient.MakeBsonM failed")
		return err
	}
	if err := im.query.Patch(c, domain.TableAccounts, bson.M{"address": address.ToLowerStr()}, updaterBson); err != nil {
		c.WithFields(log.Fields{
			"address": address,
			"err":     err,
		}).Error("q.Patch failed")
		return err
	}
	if err := im.accountCache.Del(c, address.ToLowerStr()); err != nil && err != cache.ErrNotFound {
		c.WithField("err", err).Warn("accountCache.Del failed")
	}
	return nil
}
