package marketplace

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	EventNFTListed    = "NFTListed"
	EventNFTUnlisted  = "NFTUnlisted"
	EventNFTPurchased = "NFTPurchased"

	MethodGetListing = "getListing"
)

// marketplaceABIJSON is the subset of the marketplace contract interface the mirror reads
const marketplaceABIJSON = `[
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true,  "name": "seller",  "type": "address"},
			{"indexed": true,  "name": "nft",     "type": "address"},
			{"indexed": true,  "name": "tokenId", "type": "uint256"},
			{"indexed": false, "name": "price",   "type": "uint256"}
		],
		"name": "NFTListed",
		"type": "event"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true, "name": "seller",  "type": "address"},
			{"indexed": true, "name": "nft",     "type": "address"},
			{"indexed": true, "name": "tokenId", "type": "uint256"}
		],
		"name": "NFTUnlisted",
		"type": "event"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true,  "name": "buyer",           "type": "address"},
			{"indexed": true,  "name": "seller",          "type": "address"},
			{"indexed": true,  "name": "nft",             "type": "address"},
			{"indexed": false, "name": "tokenId",         "type": "uint256"},
			{"indexed": false, "name": "price",           "type": "uint256"},
			{"indexed": false, "name": "royaltyReceiver", "type": "address"},
			{"indexed": false, "name": "royaltyAmount",   "type": "uint256"},
			{"indexed": false, "name": "platformFee",     "type": "uint256"}
		],
		"name": "NFTPurchased",
		"type": "event"
	},
	{
		"inputs": [
			{"name": "nft",     "type": "address"},
			{"name": "tokenId", "type": "uint256"}
		],
		"name": "getListing",
		"outputs": [
			{
				"components": [
					{"name": "seller",   "type": "address"},
					{"name": "price",    "type": "uint256"},
					{"name": "isActive", "type": "bool"}
				],
				"name": "",
				"type": "tuple"
			}
		],
		"stateMutability": "view",
		"type": "function"
	}
]`

var (
	// ABI is the parsed marketplace contract interface
	ABI abi.ABI

	// TransferTopic is the ERC-721 Transfer(address,address,uint256) signature hash
	TransferTopic = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

	// NFTListedTopic is the NFTListed(address,address,uint256,uint256) signature hash
	NFTListedTopic = crypto.Keccak256Hash([]byte("NFTListed(address,address,uint256,uint256)"))

	// NFTUnlistedTopic is the NFTUnlisted(address,address,uint256) signature hash
	NFTUnlistedTopic = crypto.Keccak256Hash([]byte("NFTUnlisted(address,address,uint256)"))

	// NFTPurchasedTopic is the NFTPurchased(address,address,address,uint256,uint256,address,uint256,uint256) signature hash
	NFTPurchasedTopic = crypto.Keccak256Hash([]byte("NFTPurchased(address,address,address,uint256,uint256,address,uint256,uint256)"))
)

func init() {
	parsed, err := abi.JSON(strings.NewReader(marketplaceABIJSON))
	if err != nil {
		panic("failed to parse marketplace ABI")
	}
	ABI = parsed
}
