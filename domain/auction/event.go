package auction

import (
	"time"

	"github.com/faromarket/goapi/base/ctx"
	"github.com/faromarket/goapi/domain"
)

type EventType string

const (
	EventCreated        EventType = "created"
	EventStarted        EventType = "started"
	EventBid            EventType = "bid"
	EventEnded          EventType = "ended"
	EventCancelled      EventType = "cancelled"
	EventFundsWithdrawn EventType = "fundsWithdrawn"
	EventItemWithdrawn  EventType = "itemWithdrawn"
)

// Event is an append-only audit record of an auction transition.
type Event struct {
	Id           string         `json:"id" bson:"id"`
	ChainId      domain.ChainId `json:"chainId" bson:"chainId"`
	AuctionIndex int64          `json:"auctionIndex" bson:"auctionIndex"`
	Type         EventType      `json:"type" bson:"type"`
	Account      domain.Address `json:"account" bson:"account"`
	Amount       string         `json:"amount,omitempty" bson:"amount,omitempty"`
	Time         time.Time      `json:"time" bson:"time"`
}

type EventFindAllOptions struct {
	Offset       *int32
	Limit        *int32
	ChainId      *domain.ChainId
	AuctionIndex *int64
	Type         *EventType
}

type EventFindAllOptionsFunc func(*EventFindAllOptions) error

func GetEventFindAllOptions(opts ...EventFindAllOptionsFunc) (EventFindAllOptions, error) {
	res := EventFindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func EventWithPagination(offset int32, limit int32) EventFindAllOptionsFunc {
	return func(options *EventFindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func EventWithAuction(id Id) EventFindAllOptionsFunc {
	return func(options *EventFindAllOptions) error {
		options.ChainId = &id.ChainId
		options.AuctionIndex = &id.Index
		return nil
	}
}

func EventWithType(t EventType) EventFindAllOptionsFunc {
	return func(options *EventFindAllOptions) error {
		options.Type = &t
		return nil
	}
}

type EventRepo interface {
	Insert(ctx ctx.Ctx, ev *Event) error
	FindAll(ctx ctx.Ctx, opts ...EventFindAllOptionsFunc) ([]*Event, error)
}
