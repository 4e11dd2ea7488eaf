package marketplace

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Transfer is a decoded ERC-721 Transfer log
type Transfer struct {
	Contract string   `json:"contract"`
	From     string   `json:"from"`
	To       string   `json:"to"`
	TokenID  *big.Int `json:"tokenId"`
	LogIndex uint     `json:"logIndex"`
}

// Listed is a decoded NFTListed log
type Listed struct {
	Marketplace string   `json:"marketplace"`
	Seller      string   `json:"seller"`
	NFT         string   `json:"nft"`
	TokenID     *big.Int `json:"tokenId"`
	Price       *big.Int `json:"price"`
	LogIndex    uint     `json:"logIndex"`
}

// Unlisted is a decoded NFTUnlisted log
type Unlisted struct {
	Marketplace string   `json:"marketplace"`
	Seller      string   `json:"seller"`
	NFT         string   `json:"nft"`
	TokenID     *big.Int `json:"tokenId"`
	LogIndex    uint     `json:"logIndex"`
}

// Purchased is a decoded NFTPurchased log
type Purchased struct {
	Marketplace     string   `json:"marketplace"`
	Buyer           string   `json:"buyer"`
	Seller          string   `json:"seller"`
	NFT             string   `json:"nft"`
	TokenID         *big.Int `json:"tokenId"`
	Price           *big.Int `json:"price"`
	RoyaltyReceiver string   `json:"royaltyReceiver"`
	RoyaltyAmount   *big.Int `json:"royaltyAmount"`
	PlatformFee     *big.Int `json:"platformFee"`
	LogIndex        uint     `json:"logIndex"`
}

// DecodeTransfers returns every ERC-721 Transfer in the receipt.
// When contract is non-empty only logs emitted by that contract are returned.
// Transfer logs with three topics (ERC-20) are skipped.
func DecodeTransfers(receipt *types.Receipt, contract string) []Transfer {
	if receipt == nil {
		return nil
	}

	var transfers []Transfer
	for _, lg := range receipt.Logs {
		if lg == nil || len(lg.Topics) != 4 || lg.Topics[0] != TransferTopic {
			continue
		}
		if contract != "" && !sameAddress(lg.Address, contract) {
			continue
		}
		transfers = append(transfers, Transfer{
			Contract: addressHex(lg.Address),
			From:     topicAddress(lg.Topics[1]),
			To:       topicAddress(lg.Topics[2]),
			TokenID:  lg.Topics[3].Big(),
			LogIndex: lg.Index,
		})
	}
	return transfers
}

// FindMintTransfer returns the first Transfer from the zero address to the given wallet
func FindMintTransfer(receipt *types.Receipt, to string) *Transfer {
	for _, t := range DecodeTransfers(receipt, "") {
		if t.From == zeroAddress && strings.EqualFold(t.To, to) {
			return &t
		}
	}
	return nil
}

// DecodeListed returns the first NFTListed emitted by the marketplace, or nil
func DecodeListed(receipt *types.Receipt, marketplace string) *Listed {
	for _, lg := range marketplaceLogs(receipt, marketplace, NFTListedTopic, 4) {
		values, err := ABI.Unpack(EventNFTListed, lg.Data)
		if err != nil || len(values) != 1 {
			continue
		}
		price, ok := values[0].(*big.Int)
		if !ok {
			continue
		}
		return &Listed{
			Marketplace: addressHex(lg.Address),
			Seller:      topicAddress(lg.Topics[1]),
			NFT:         topicAddress(lg.Topics[2]),
			TokenID:     lg.Topics[3].Big(),
			Price:       price,
			LogIndex:    lg.Index,
		}
	}
	return nil
}

// DecodeUnlisted returns the first NFTUnlisted emitted by the marketplace, or nil
func DecodeUnlisted(receipt *types.Receipt, marketplace string) *Unlisted {
	logs := marketplaceLogs(receipt, marketplace, NFTUnlistedTopic, 4)
	if len(logs) == 0 {
		return nil
	}

	lg := logs[0]
	return &Unlisted{
		Marketplace: addressHex(lg.Address),
		Seller:      topicAddress(lg.Topics[1]),
		NFT:         topicAddress(lg.Topics[2]),
		TokenID:     lg.Topics[3].Big(),
		LogIndex:    lg.Index,
	}
}

// DecodePurchased returns the first NFTPurchased emitted by the marketplace, or nil
func DecodePurchased(receipt *types.Receipt, marketplace string) *Purchased {
	for _, lg := range marketplaceLogs(receipt, marketplace, NFTPurchasedTopic, 4) {
		values, err := ABI.Unpack(EventNFTPurchased, lg.Data)
		if err != nil || len(values) != 5 {
			continue
		}
		tokenID, ok1 := values[0].(*big.Int)
		price, ok2 := values[1].(*big.Int)
		royaltyReceiver, ok3 := values[2].(common.Address)
		royaltyAmount, ok4 := values[3].(*big.Int)
		platformFee, ok5 := values[4].(*big.Int)
		if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
			continue
		}
		return &Purchased{
			Marketplace:     addressHex(lg.Address),
			Buyer:           topicAddress(lg.Topics[1]),
			Seller:          topicAddress(lg.Topics[2]),
			NFT:             topicAddress(lg.Topics[3]),
			TokenID:         tokenID,
			Price:           price,
			RoyaltyReceiver: addressHex(royaltyReceiver),
			RoyaltyAmount:   royaltyAmount,
			PlatformFee:     platformFee,
			LogIndex:        lg.Index,
		}
	}
	return nil
}

const zeroAddress = "0x0000000000000000000000000000000000000000"

// marketplaceLogs filters receipt logs by emitter, signature and topic count
func marketplaceLogs(receipt *types.Receipt, marketplace string, topic common.Hash, topics int) []*types.Log {
	if receipt == nil || marketplace == "" {
		return nil
	}

	var logs []*types.Log
	for _, lg := range receipt.Logs {
		if lg == nil || len(lg.Topics) != topics || lg.Topics[0] != topic {
			continue
		}
		if !sameAddress(lg.Address, marketplace) {
			continue
		}
		logs = append(logs, lg)
	}
	return logs
}

func sameAddress(addr common.Address, other string) bool {
	return common.IsHexAddress(other) && addr == common.HexToAddress(other)
}

func topicAddress(topic common.Hash) string {
	return addressHex(common.BytesToAddress(topic.Bytes()))
}

func addressHex(addr common.Address) string {
	return strings.ToLower(addr.Hex())
}
