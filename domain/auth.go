package domain

import (
	"github.com/golang-jwt/jwt"
	"github.com/faromarket/goapi/base/ctx"
)

type JwtCustomClaims struct {
	Address string `json:"data"`
	jwt.StandardClaims
}

type AuthUsecase interface {
	// GetNonce issues a one-time nonce the wallet signs to prove control
	// of the address.
	GetNonce(ctx ctx.Ctx, address Address) (string, error)

	// SignToken verifies the signature over the signing message built from
	// the nonce and returns a bearer token for the address.
	SignToken(ctx ctx.Ctx, address Address, signature string) (string, error)

	ParseToken(ctx ctx.Ctx, token string) (address string, err error)
}
