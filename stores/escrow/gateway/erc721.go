package gateway

import (
	"github.com/faromarket/goapi/base/ctx"
	"github.com/faromarket/goapi/base/log"
	"github.com/faromarket/goapi/domain"
	"github.com/faromarket/goapi/domain/escrow"
	"github.com/faromarket/goapi/service/chain"
	"github.com/faromarket/goapi/service/chain/contract"
)

type erc721Gateway struct {
	client chain.Client
	erc721 *contract.Erc721
}

// NewErc721Gateway backs the escrow custody with an ERC-721 contract and
// the house operator wallet. TransferInto relies on the holder having
// approved the operator beforehand.
func NewErc721Gateway(client chain.Client) escrow.TokenGateway {
	return &erc721Gateway{
		client: client,
		erc721: contract.NewErc721(client),
	}
}

func (g *erc721Gateway) CurrentHolder(ctx ctx.Ctx, chainId domain.ChainId, contractAddress domain.Address, tokenId domain.TokenId) (domain.Address, error) {
	id, err := tokenId.ToBig()
	if err != nil {
		return "", domain.ErrBadParamInput
	}
	holder, err := g.erc721.OwnerOf(ctx, int32(chainId), string(contractAddress), id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":             err,
			"contractAddress": contractAddress,
			"tokenId":         tokenId,
		}).Error("erc721.OwnerOf failed")
		return "", err
	}
	return domain.Address(holder).ToLower(), nil
}

func (g *erc721Gateway) TransferInto(ctx ctx.Ctx, chainId domain.ChainId, contractAddress domain.Address, tokenId domain.TokenId, from domain.Address) (domain.TxHash, error) {
	return g.transfer(ctx, chainId, contractAddress, tokenId, from, domain.Address(g.client.OperatorAddress().Hex()))
}

func (g *erc721Gateway) TransferOut(ctx ctx.Ctx, chainId domain.ChainId, contractAddress domain.Address, tokenId domain.TokenId, to domain.Address) (domain.TxHash, error) {
	return g.transfer(ctx, chainId, contractAddress, tokenId, domain.Address(g.client.OperatorAddress().Hex()), to)
}

func (g *erc721Gateway) transfer(ctx ctx.Ctx, chainId domain.ChainId, contractAddress domain.Address, tokenId domain.TokenId, from, to domain.Address) (domain.TxHash, error) {
	id, err := tokenId.ToBig()
	if err != nil {
		return "", domain.ErrBadParamInput
	}
	hash, err := g.erc721.TransferFrom(ctx, int32(chainId), string(contractAddress), string(from), string(to), id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":             err,
			"contractAddress": contractAddress,
			"tokenId":         tokenId,
			"from":            from,
			"to":              to,
		}).Error("erc721.TransferFrom failed")
		return "", err
	}
	return domain.TxHash(hash.Hex()), nil
}
