package marketplace

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Listing is the on-chain listing state returned by getListing
type Listing struct {
	Seller   string
	Price    *big.Int
	IsActive bool
}

type listingTuple struct {
	Seller   common.Address
	Price    *big.Int
	IsActive bool
}

// GetListingArgs builds the call arguments for getListing
func GetListingArgs(nft string, tokenID string) ([]interface{}, error) {
	if !common.IsHexAddress(nft) {
		return nil, fmt.Errorf("invalid nft address: %s", nft)
	}
	id, ok := new(big.Int).SetString(tokenID, 10)
	if !ok {
		return nil, fmt.Errorf("invalid token id: %s", tokenID)
	}
	return []interface{}{common.HexToAddress(nft), id}, nil
}

// ListingFromOutputs converts unpacked getListing outputs into a Listing
func ListingFromOutputs(outputs []interface{}) (*Listing, error) {
	if len(outputs) != 1 {
		return nil, errors.New("unexpected getListing output length")
	}

	tuple, ok := abi.ConvertType(outputs[0], new(listingTuple)).(*listingTuple)
	if !ok || tuple == nil {
		return nil, errors.New("unexpected getListing output type")
	}

	price := tuple.Price
	if price == nil {
		price = new(big.Int)
	}
	return &Listing{
		Seller:   strings.ToLower(tuple.Seller.Hex()),
		Price:    price,
		IsActive: tuple.IsActive,
	}, nil
}
