package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/faromarket/goapi/base/ctx"
	"github.com/faromarket/goapi/domain"
	"github.com/faromarket/goapi/domain/account"
	mAccount "github.com/faromarket/goapi/domain/account/mocks"
	"github.com/faromarket/goapi/stores/auth/usecase"
)

func TestSignAndParseToken(t *testing.T) {
	mockAccountUC := &mAccount.Usecase{}

	mockAccountUC.On("ValidateSignature", mock.Anything, domain.Address("0xabc"), "sig").Return(nil)

	ctx := ctx.Background()
	u := usecase.New("jwt-secret", mockAccountUC)
	tkn, err := u.SignToken(ctx, "0xABC", "sig")
	assert.NoError(t, err)
	assert.NotEmpty(t, tkn)
	ads, err := u.ParseToken(ctx, tkn)
	assert.NoError(t, err)
	assert.Equal(t, "0xabc", ads)
}

func TestSignTokenRejectsBadSignature(t *testing.T) {
	mockAccountUC := &mAccount.Usecase{}

	mockAccountUC.On("ValidateSignature", mock.Anything, domain.Address("0xabc"), "bad").Return(account.ErrInvalidSignature)

	ctx := ctx.Background()
	u := usecase.New("jwt-secret", mockAccountUC)
	_, err := u.SignToken(ctx, "0xABC", "bad")
	assert.Equal(t, account.ErrInvalidSignature, err)
}

func TestParseTokenRejectsForeignToken(t *testing.T) {
	mockAccountUC := &mAccount.Usecase{}
	mockAccountUC.On("ValidateSignature", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	ctx := ctx.Background()
	issuer := usecase.New("jwt-secret", mockAccountUC)
	tkn, err := issuer.SignToken(ctx, "0xabc", "sig")
	assert.NoError(t, err)

	verifier := usecase.New("other-secret", mockAccountUC)
	_, err = verifier.ParseToken(ctx, tkn)
	assert.Error(t, err)
}
