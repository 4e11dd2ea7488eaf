package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

const (
	ChainEthereumMainnet Chain = "eip155:1"
	ChainEthereumSepolia Chain = "eip155:11155111"
	ChainBSCMainnet      Chain = "eip155:56"
	ChainBSCTestnet      Chain = "eip155:97"
)

// IsValidChain checks if a chain is a well-formed EVM chain identifier
func IsValidChain(chain Chain) bool {
	_, err := chain.ID()
	return err == nil
}

// ID returns the numeric EIP-155 chain id
func (c Chain) ID() (int64, error) {
	namespace, reference, ok := strings.Cut(string(c), ":")
	if !ok || namespace != "eip155" {
		return 0, fmt.Errorf("unsupported chain: %q", c)
	}
	id, err := strconv.ParseInt(reference, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid chain reference: %q", c)
	}
	return id, nil
}

// NFTEventType represents the type of a ledger entry
type NFTEventType string

const (
	NFTEventTypeMint     NFTEventType = "MINT"
	NFTEventTypeListed   NFTEventType = "LISTED"
	NFTEventTypeUnlisted NFTEventType = "UNLISTED"
	NFTEventTypeTransfer NFTEventType = "TRANSFER"
)

// IsValidNFTEventType checks if an event type is one of the recorded types
func IsValidNFTEventType(t NFTEventType) bool {
	switch t {
	case NFTEventTypeMint, NFTEventTypeListed, NFTEventTypeUnlisted, NFTEventTypeTransfer:
		return true
	default:
		return false
	}
}

// UserRole represents the role of a user
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

var txHashRegex = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

// IsValidTxHash checks if a string is a 0x-prefixed 32-byte transaction hash
func IsValidTxHash(txHash string) bool {
	return txHashRegex.MatchString(txHash)
}

// NormalizeTxHash lower-cases a transaction hash
func NormalizeTxHash(txHash string) string {
	return strings.ToLower(txHash)
}

// IsValidAddress checks if a string is a 20-byte hex address
func IsValidAddress(address string) bool {
	return common.IsHexAddress(address)
}

// NormalizeAddress returns the lower-case hex form of an address
func NormalizeAddress(address string) string {
	if !common.IsHexAddress(address) {
		return strings.ToLower(address)
	}
	return strings.ToLower(common.HexToAddress(address).Hex())
}

// SameAddress compares two addresses case-insensitively
func SameAddress(a, b string) bool {
	return strings.EqualFold(a, b)
}

// IsZeroAddress checks if an address is the zero address
func IsZeroAddress(address string) bool {
	return SameAddress(address, ETHEREUM_ZERO_ADDRESS)
}
