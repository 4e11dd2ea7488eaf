package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace-mirror/internal/adapter"
	"github.com/feral-file/ff-marketplace-mirror/internal/block"
	"github.com/feral-file/ff-marketplace-mirror/internal/domain"
	"github.com/feral-file/ff-marketplace-mirror/internal/logger"
	"github.com/feral-file/ff-marketplace-mirror/internal/marketplace"
	"github.com/feral-file/ff-marketplace-mirror/internal/metrics"
)

const (
	opGetReceipt        = "get_receipt"
	opGetBlockTimestamp = "get_block_timestamp"
	opCallView          = "call_view"

	defaultRPCTimeout = 15 * time.Second
)

// ChainClient is the read-only view of the chain used by the reconciler
//
//go:generate mockgen -source=client.go -destination=../../mocks/chain_client.go -package=mocks -mock_names=ChainClient=MockChainClient
type ChainClient interface {
	// GetReceipt returns the receipt of a mined transaction.
	// A receipt that does not exist yet is reported as ReceiptInvalid, RPC failures as Transient.
	GetReceipt(ctx context.Context, txHash string) (*types.Receipt, error)

	// GetBlockTimestamp returns the timestamp of a block
	GetBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error)

	// CallView executes a read-only contract method and returns its unpacked outputs
	CallView(ctx context.Context, contract string, contractABI abi.ABI, method string, args ...interface{}) ([]interface{}, error)

	// GetListing reads the marketplace listing for an NFT
	GetListing(ctx context.Context, marketplaceAddress, nftAddress, tokenID string) (*marketplace.Listing, error)

	// Close closes the connection
	Close()
}

// Config holds chain client configuration
type Config struct {
	ChainID            domain.Chain
	RPCTimeout         time.Duration
	RequestsPerSecond  int
	TimestampCacheSize int
}

type chainClient struct {
	config     Config
	client     adapter.EthClient
	limiter    ratelimit.Limiter
	metrics    *metrics.ChainClient
	timestamps block.TimestampProvider
}

// NewClient creates a chain client over an established node connection
func NewClient(config Config, client adapter.EthClient) ChainClient {
	if config.RPCTimeout <= 0 {
		config.RPCTimeout = defaultRPCTimeout
	}

	limiter := ratelimit.NewUnlimited()
	if config.RequestsPerSecond > 0 {
		limiter = ratelimit.New(config.RequestsPerSecond)
	}

	c := &chainClient{
		config:  config,
		client:  client,
		limiter: limiter,
		metrics: metrics.NewChainClient(string(config.ChainID)),
	}
	c.timestamps = block.NewTimestampProvider(c, block.Config{MaxEntries: config.TimestampCacheSize})
	return c
}

// GetReceipt returns the receipt of a mined transaction
func (c *chainClient) GetReceipt(ctx context.Context, txHash string) (*types.Receipt, error) {
	if !domain.IsValidTxHash(txHash) {
		return nil, domain.NewError(domain.ErrorKindInvalidInput, fmt.Sprintf("invalid transaction hash: %s", txHash))
	}

	ctx, cancel, err := c.callContext(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	started := time.Now()
	receipt, err := c.client.TransactionReceipt(ctx, common.HexToHash(txHash))
	c.metrics.Observe(opGetReceipt, err, started)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, domain.NewError(domain.ErrorKindReceiptInvalid, "transaction not found")
		}
		logger.WarnCtx(ctx, "Failed to fetch transaction receipt", zap.String("tx_hash", txHash), zap.Error(err))
		return nil, domain.WrapError(domain.ErrorKindTransient, "failed to fetch transaction receipt", err)
	}
	if receipt == nil {
		return nil, domain.NewError(domain.ErrorKindReceiptInvalid, "transaction not found")
	}

	return receipt, nil
}

// GetBlockTimestamp returns the timestamp of a block, served from cache when possible
func (c *chainClient) GetBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error) {
	timestamp, err := c.timestamps.GetBlockTimestamp(ctx, blockNumber)
	if err != nil {
		return time.Time{}, domain.WrapError(domain.ErrorKindTransient, "failed to fetch block timestamp", err)
	}
	return timestamp, nil
}

// FetchBlockTimestamp reads a block header from the node
func (c *chainClient) FetchBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error) {
	ctx, cancel, err := c.callContext(ctx)
	if err != nil {
		return time.Time{}, err
	}
	defer cancel()

	started := time.Now()
	header, err := c.client.HeaderByNumber(ctx, new(big.Int).SetUint64(blockNumber))
	c.metrics.Observe(opGetBlockTimestamp, err, started)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get header %d: %w", blockNumber, err)
	}
	if header == nil {
		return time.Time{}, fmt.Errorf("header %d not found", blockNumber)
	}

	return time.Unix(int64(header.Time), 0).UTC(), nil //nolint:gosec,G115
}

// CallView executes a read-only contract method and returns its unpacked outputs
func (c *chainClient) CallView(ctx context.Context, contract string, contractABI abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	if !common.IsHexAddress(contract) {
		return nil, domain.NewError(domain.ErrorKindInvalidInput, fmt.Sprintf("invalid contract address: %s", contract))
	}

	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call: %w", method, err)
	}

	ctx, cancel, err := c.callContext(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	to := common.HexToAddress(contract)
	started := time.Now()
	result, err := c.client.CallContract(ctx, ethereum.CallMsg{
		To:   &to,
		Data: data,
	}, nil)
	c.metrics.Observe(opCallView, err, started)
	if err != nil {
		return nil, domain.WrapError(domain.ErrorKindTransient, fmt.Sprintf("failed to call %s", method), err)
	}

	outputs, err := contractABI.Unpack(method, result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s result: %w", method, err)
	}

	return outputs, nil
}

// GetListing reads the marketplace listing for an NFT
func (c *chainClient) GetListing(ctx context.Context, marketplaceAddress, nftAddress, tokenID string) (*marketplace.Listing, error) {
	args, err := marketplace.GetListingArgs(nftAddress, tokenID)
	if err != nil {
		return nil, domain.WrapError(domain.ErrorKindInvalidInput, "invalid listing query", err)
	}

	outputs, err := c.CallView(ctx, marketplaceAddress, marketplace.ABI, marketplace.MethodGetListing, args...)
	if err != nil {
		return nil, err
	}

	return marketplace.ListingFromOutputs(outputs)
}

// Close closes the connection
func (c *chainClient) Close() {
	c.client.Close()
}

// callContext applies the rate limit and bounds the call by the configured timeout.
// The limiter wait itself cannot be interrupted, so ctx is checked once it returns.
func (c *chainClient) callContext(ctx context.Context) (context.Context, context.CancelFunc, error) {
	c.limiter.Take()
	if err := ctx.Err(); err != nil {
		return nil, nil, domain.WrapError(domain.ErrorKindTransient, "chain call cancelled", err)
	}
	ctx, cancel := context.WithTimeout(ctx, c.config.RPCTimeout)
	return ctx, cancel, nil
}
