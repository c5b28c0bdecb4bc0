package account

import (
	"errors"
	"time"

	"github.com/faromarket/goapi/base/ctx"
	"github.com/faromarket/goapi/domain"
)

var (
	ErrInvalidNonce     = errors.New("invalid nonce")
	ErrInvalidSignature = errors.New("invalid signature")
)

// Account is a wallet known to the house. Nonce is the one-shot challenge
// for signature login, invalidated after each validation.
type Account struct {
	Address   domain.Address `json:"address" bson:"address"`
	Nonce     int32          `json:"-" bson:"nonce"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// Updater to update account info
type Updater struct {
	Nonce     int32     `json:"-" bson:"nonce"`
	UpdatedAt time.Time `json:"-" bson:"updatedAt,omitempty"`
}

type Info struct {
	Address   domain.Address `json:"address"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (a *Account) ToInfo() *Info {
	return &Info{
		Address:   a.Address,
		CreatedAt: a.CreatedAt,
	}
}

type Usecase interface {
	Create(c ctx.Ctx, address domain.Address) (*Info, error)
	Get(c ctx.Ctx, address domain.Address) (*Info, error)
	GenerateNonce(c ctx.Ctx, address domain.Address) (int32, error)
	ValidateSignature(c ctx.Ctx, address domain.Address, signature string) error
}

type Repo interface {
	Get(c ctx.Ctx, address domain.Address) (*Account, error)
	Insert(c ctx.Ctx, account *Account) error
	Update(c ctx.Ctx, address domain.Address, updater *Updater) error
}
