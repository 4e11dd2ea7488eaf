package store

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-marketplace-mirror/internal/domain"
	"github.com/feral-file/ff-marketplace-mirror/internal/store/schema"
)

const (
	testCreatorWallet = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
	testBuyerWallet   = "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"
	testContract      = "0xE7F1725E7734CE288F8367E1BB143E90BB3F0512"
	testChainID       = int64(97)
)

// =============================================================================
// Test Data Builders
// =============================================================================

func stringPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}

func txHash(b string) string {
	return "0x" + strings.Repeat(b, 64)
}

// pairTxHash builds a hash from a repeated two-character pattern
func pairTxHash(pair string) string {
	return "0x" + strings.Repeat(pair, 32)
}

func createTestUser(t *testing.T, store Store, wallet string) *schema.User {
	t.Helper()
	user, err := store.CreateUser(context.Background(), CreateUserInput{WalletAddress: wallet})
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

func createTestNFT(t *testing.T, store Store, creatorID uint64) *schema.NFT {
	t.Helper()
	nft, err := store.CreateNFT(context.Background(), CreateNFTInput{
		Name:           "Untitled",
		CreatorID:      creatorID,
		RoyaltyPercent: stringPtr("5.00"),
	})
	require.NoError(t, err)
	require.NotNil(t, nft)
	return nft
}

// buildTestEvent creates a ledger entry input
func buildTestEvent(eventType domain.NFTEventType, hash string, logIndex uint, blockNumber uint64) CreateNFTEventInput {
	raw, _ := json.Marshal(map[string]interface{}{
		"tx_hash":   hash,
		"log_index": logIndex,
	})
	return CreateNFTEventInput{
		EventType:      eventType,
		TxHash:         hash,
		LogIndex:       logIndex,
		BlockNumber:    blockNumber,
		BlockTimestamp: time.Unix(1_700_000_000+int64(blockNumber), 0).UTC(), //nolint:gosec,G115
		ChainID:        testChainID,
		Raw:            raw,
	}
}

// mintTestNFT records a MINT entry and returns the refreshed NFT
func mintTestNFT(t *testing.T, store Store, nft *schema.NFT, tokenID string, hash string) *schema.NFT {
	t.Helper()
	ctx := context.Background()

	event := buildTestEvent(domain.NFTEventTypeMint, hash, 0, 100)
	event.FromAddress = stringPtr(domain.ETHEREUM_ZERO_ADDRESS)
	event.ToAddress = stringPtr(testCreatorWallet)

	applied, err := store.ApplyNFTEvent(ctx, ApplyNFTEventInput{
		NFTID: nft.ID,
		Event: event,
		Projection: NFTProjectionUpdate{
			TokenID:         stringPtr(tokenID),
			ContractAddress: stringPtr(testContract),
		},
	})
	require.NoError(t, err)
	require.True(t, applied)

	minted, err := store.GetNFTByID(ctx, nft.ID)
	require.NoError(t, err)
	require.NotNil(t, minted)
	return minted
}

// =============================================================================
// Test: Users
// =============================================================================

func testUsers(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("create normalizes wallet and defaults role", func(t *testing.T) {
		user := createTestUser(t, store, testCreatorWallet)
		assert.NotZero(t, user.ID)
		assert.Equal(t, strings.ToLower(testCreatorWallet), user.WalletAddress)
		assert.Equal(t, domain.UserRoleUser, user.Role)
	})

	t.Run("wallet is unique regardless of case", func(t *testing.T) {
		user, err := store.CreateUser(ctx, CreateUserInput{WalletAddress: "0x" + strings.ToUpper(testCreatorWallet[2:])})
		require.Error(t, err)
		assert.Nil(t, user)
	})

	t.Run("get by id", func(t *testing.T) {
		admin, err := store.CreateUser(ctx, CreateUserInput{
			WalletAddress: testBuyerWallet,
			Username:      stringPtr("curator"),
			Role:          domain.UserRoleAdmin,
		})
		require.NoError(t, err)

		found, err := store.GetUserByID(ctx, admin.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, domain.UserRoleAdmin, found.Role)
		assert.Equal(t, "curator", *found.Username)
	})

	t.Run("missing user", func(t *testing.T) {
		user, err := store.GetUserByID(ctx, 999_999)
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

// =============================================================================
// Test: NFTs
// =============================================================================

func testNFTs(t *testing.T, store Store) {
	ctx := context.Background()
	creator := createTestUser(t, store, testCreatorWallet)

	t.Run("draft nft", func(t *testing.T) {
		nft := createTestNFT(t, store, creator.ID)

		found, err := store.GetNFTByID(ctx, nft.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, creator.ID, found.OwnerID)
		assert.Equal(t, creator.ID, found.CreatorID)
		assert.False(t, found.IsMinted())
		assert.False(t, found.IsForSale)
		assert.Nil(t, found.Price)
		assert.Equal(t, "5.00", *found.RoyaltyPercent)
	})

	t.Run("missing nft", func(t *testing.T) {
		nft, err := store.GetNFTByID(ctx, 999_999)
		require.NoError(t, err)
		assert.Nil(t, nft)
	})

	t.Run("update listing", func(t *testing.T) {
		nft := mintTestNFT(t, store, createTestNFT(t, store, creator.ID), "7", txHash("1"))

		err := store.UpdateNFTListing(ctx, UpdateNFTListingInput{NFTID: nft.ID, IsForSale: true, Price: stringPtr("1.5")})
		require.NoError(t, err)

		// Clearing the flag keeps the last price
		err = store.UpdateNFTListing(ctx, UpdateNFTListingInput{NFTID: nft.ID, IsForSale: false})
		require.NoError(t, err)

		found, err := store.GetNFTByID(ctx, nft.ID)
		require.NoError(t, err)
		assert.False(t, found.IsForSale)
		require.NotNil(t, found.Price)
		assert.Equal(t, "1.5", *found.Price)
	})

	t.Run("update listing of missing nft", func(t *testing.T) {
		err := store.UpdateNFTListing(ctx, UpdateNFTListingInput{NFTID: 999_999})
		require.Error(t, err)
		assert.Equal(t, domain.ErrorKindNotFound, domain.KindOf(err))
	})

	t.Run("listed nfts page by id", func(t *testing.T) {
		var listed []uint64
		for i := range 3 {
			nft := mintTestNFT(t, store, createTestNFT(t, store, creator.ID), "10"+string(rune('0'+i)), txHash(string(rune('a'+i))))
			require.NoError(t, store.UpdateNFTListing(ctx, UpdateNFTListingInput{NFTID: nft.ID, IsForSale: true, Price: stringPtr("2")}))
			listed = append(listed, nft.ID)
		}
		createTestNFT(t, store, creator.ID)

		page, err := store.GetListedNFTs(ctx, 0, 2)
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Less(t, page[0].ID, page[1].ID)

		rest, err := store.GetListedNFTs(ctx, page[1].ID, 10)
		require.NoError(t, err)
		for _, nft := range rest {
			assert.Greater(t, nft.ID, page[1].ID)
			assert.True(t, nft.IsForSale)
		}
		assert.Contains(t, append(idsOf(page), idsOf(rest)...), listed[2])
	})
}

func idsOf(nfts []schema.NFT) []uint64 {
	ids := make([]uint64, 0, len(nfts))
	for _, nft := range nfts {
		ids = append(ids, nft.ID)
	}
	return ids
}

// =============================================================================
// Test: Ledger application
// =============================================================================

func testApplyNFTEvent(t *testing.T, store Store) {
	ctx := context.Background()
	creator := createTestUser(t, store, testCreatorWallet)
	buyer := createTestUser(t, store, testBuyerWallet)

	t.Run("mint sets token identity", func(t *testing.T) {
		nft := mintTestNFT(t, store, createTestNFT(t, store, creator.ID), "101", txHash("2"))
		assert.True(t, nft.IsMinted())
		assert.Equal(t, "101", *nft.TokenID)
		assert.Equal(t, strings.ToLower(testContract), *nft.ContractAddress)

		event, err := store.GetNFTEventByTxHashAndLogIndex(ctx, strings.ToUpper(txHash("2")), 0)
		require.NoError(t, err)
		require.NotNil(t, event)
		assert.Equal(t, nft.ID, event.NFTID)
		assert.Equal(t, domain.NFTEventTypeMint, event.EventType)
		assert.Equal(t, strings.ToLower(testCreatorWallet), *event.ToAddress)
		assert.Equal(t, testChainID, event.ChainID)
		assert.Equal(t, uint64(100), event.BlockNumber)
		assert.JSONEq(t, `{"tx_hash":"`+txHash("2")+`","log_index":0}`, string(event.Raw))
	})

	t.Run("duplicate entry is not applied twice", func(t *testing.T) {
		nft := mintTestNFT(t, store, createTestNFT(t, store, creator.ID), "102", txHash("3"))

		listed := buildTestEvent(domain.NFTEventTypeListed, txHash("4"), 1, 110)
		listed.FromAddress = stringPtr(testCreatorWallet)
		listed.PriceWei = stringPtr("1500000000000000000")

		input := ApplyNFTEventInput{
			NFTID:      nft.ID,
			Event:      listed,
			Projection: NFTProjectionUpdate{IsForSale: boolPtr(true), Price: stringPtr("1.5")},
		}
		applied, err := store.ApplyNFTEvent(ctx, input)
		require.NoError(t, err)
		assert.True(t, applied)

		// A manual change in between must survive the replay
		require.NoError(t, store.UpdateNFTListing(ctx, UpdateNFTListingInput{NFTID: nft.ID, IsForSale: false}))

		applied, err = store.ApplyNFTEvent(ctx, input)
		require.NoError(t, err)
		assert.False(t, applied)

		found, err := store.GetNFTByID(ctx, nft.ID)
		require.NoError(t, err)
		assert.False(t, found.IsForSale)

		events, total, err := store.GetNFTEvents(ctx, NFTEventFilter{NFTID: &nft.ID, EventType: eventTypePtr(domain.NFTEventTypeListed)})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)
		require.Len(t, events, 1)
		assert.Equal(t, "1500000000000000000", *events[0].PriceWei)
	})

	t.Run("same transaction different log index", func(t *testing.T) {
		nft := mintTestNFT(t, store, createTestNFT(t, store, creator.ID), "103", txHash("5"))

		applied, err := store.ApplyNFTEvent(ctx, ApplyNFTEventInput{
			NFTID: nft.ID,
			Event: buildTestEvent(domain.NFTEventTypeUnlisted, txHash("5"), 1, 100),
		})
		require.NoError(t, err)
		assert.True(t, applied)
	})

	t.Run("owner change clears listing", func(t *testing.T) {
		nft := mintTestNFT(t, store, createTestNFT(t, store, creator.ID), "104", txHash("6"))
		require.NoError(t, store.UpdateNFTListing(ctx, UpdateNFTListingInput{NFTID: nft.ID, IsForSale: true, Price: stringPtr("2")}))

		transfer := buildTestEvent(domain.NFTEventTypeTransfer, txHash("7"), 3, 120)
		transfer.FromAddress = stringPtr(testCreatorWallet)
		transfer.ToAddress = stringPtr(testBuyerWallet)
		transfer.PriceWei = stringPtr("2000000000000000000")
		transfer.PlatformFeeWei = stringPtr("50000000000000000")
		transfer.RoyaltyAmountWei = stringPtr("100000000000000000")
		transfer.RoyaltyReceiver = stringPtr(testCreatorWallet)

		applied, err := store.ApplyNFTEvent(ctx, ApplyNFTEventInput{
			NFTID:      nft.ID,
			Event:      transfer,
			Projection: NFTProjectionUpdate{OwnerID: uint64Ptr(buyer.ID)},
		})
		require.NoError(t, err)
		assert.True(t, applied)

		found, err := store.GetNFTByID(ctx, nft.ID)
		require.NoError(t, err)
		assert.Equal(t, buyer.ID, found.OwnerID)
		assert.False(t, found.IsForSale)
		assert.Equal(t, "2", *found.Price)
	})

	t.Run("stale expected owner is rejected", func(t *testing.T) {
		nft := mintTestNFT(t, store, createTestNFT(t, store, creator.ID), "105", pairTxHash("a1"))

		// A sale to the buyer commits first
		sale := buildTestEvent(domain.NFTEventTypeTransfer, pairTxHash("a2"), 0, 130)
		applied, err := store.ApplyNFTEvent(ctx, ApplyNFTEventInput{
			NFTID:      nft.ID,
			Event:      sale,
			Projection: NFTProjectionUpdate{OwnerID: uint64Ptr(buyer.ID), IsForSale: boolPtr(false)},
			Expect:     NFTPrecondition{OwnerID: uint64Ptr(creator.ID)},
		})
		require.NoError(t, err)
		require.True(t, applied)

		// The creator's listing was verified against the old owner
		listed := buildTestEvent(domain.NFTEventTypeListed, pairTxHash("a3"), 0, 129)
		applied, err = store.ApplyNFTEvent(ctx, ApplyNFTEventInput{
			NFTID:      nft.ID,
			Event:      listed,
			Projection: NFTProjectionUpdate{IsForSale: boolPtr(true), Price: stringPtr("3")},
			Expect:     NFTPrecondition{OwnerID: uint64Ptr(creator.ID)},
		})
		require.Error(t, err)
		assert.False(t, applied)
		assert.Equal(t, domain.ErrorKindPreconditionFailed, domain.KindOf(err))

		found, err := store.GetNFTByID(ctx, nft.ID)
		require.NoError(t, err)
		assert.Equal(t, buyer.ID, found.OwnerID)
		assert.False(t, found.IsForSale)

		event, err := store.GetNFTEventByTxHashAndLogIndex(ctx, pairTxHash("a3"), 0)
		require.NoError(t, err)
		assert.Nil(t, event)
	})

	t.Run("second mint of a draft is rejected", func(t *testing.T) {
		nft := createTestNFT(t, store, creator.ID)
		expectDraft := NFTPrecondition{Draft: true}

		first := buildTestEvent(domain.NFTEventTypeMint, pairTxHash("b1"), 0, 140)
		applied, err := store.ApplyNFTEvent(ctx, ApplyNFTEventInput{
			NFTID:      nft.ID,
			Event:      first,
			Projection: NFTProjectionUpdate{TokenID: stringPtr("106"), ContractAddress: stringPtr(testContract)},
			Expect:     expectDraft,
		})
		require.NoError(t, err)
		require.True(t, applied)

		second := buildTestEvent(domain.NFTEventTypeMint, pairTxHash("b2"), 0, 141)
		applied, err = store.ApplyNFTEvent(ctx, ApplyNFTEventInput{
			NFTID:      nft.ID,
			Event:      second,
			Projection: NFTProjectionUpdate{TokenID: stringPtr("107"), ContractAddress: stringPtr(testContract)},
			Expect:     expectDraft,
		})
		require.Error(t, err)
		assert.False(t, applied)
		assert.Equal(t, domain.ErrorKindPreconditionFailed, domain.KindOf(err))

		found, err := store.GetNFTByID(ctx, nft.ID)
		require.NoError(t, err)
		assert.Equal(t, "106", *found.TokenID)

		_, total, err := store.GetNFTEvents(ctx, NFTEventFilter{NFTID: &nft.ID, EventType: eventTypePtr(domain.NFTEventTypeMint)})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)

		// Replaying the first mint stays a no-op even though the NFT is no longer a draft
		applied, err = store.ApplyNFTEvent(ctx, ApplyNFTEventInput{
			NFTID:      nft.ID,
			Event:      first,
			Projection: NFTProjectionUpdate{TokenID: stringPtr("106"), ContractAddress: stringPtr(testContract)},
			Expect:     expectDraft,
		})
		require.NoError(t, err)
		assert.False(t, applied)
	})

	t.Run("entry recorded for another nft", func(t *testing.T) {
		nft := mintTestNFT(t, store, createTestNFT(t, store, creator.ID), "108", pairTxHash("c1"))
		other := mintTestNFT(t, store, createTestNFT(t, store, creator.ID), "109", pairTxHash("c2"))

		applied, err := store.ApplyNFTEvent(ctx, ApplyNFTEventInput{
			NFTID: other.ID,
			Event: buildTestEvent(domain.NFTEventTypeMint, pairTxHash("c1"), 0, 100),
		})
		require.Error(t, err)
		assert.False(t, applied)
		assert.Equal(t, domain.ErrorKindDataIntegrityConflict, domain.KindOf(err))

		event, err := store.GetNFTEventByTxHashAndLogIndex(ctx, pairTxHash("c1"), 0)
		require.NoError(t, err)
		require.NotNil(t, event)
		assert.Equal(t, nft.ID, event.NFTID)
	})

	t.Run("malformed wei amount is rejected", func(t *testing.T) {
		nft := mintTestNFT(t, store, createTestNFT(t, store, creator.ID), "110", pairTxHash("d1"))

		listed := buildTestEvent(domain.NFTEventTypeListed, pairTxHash("d2"), 0, 150)
		listed.PriceWei = stringPtr("1.5")
		applied, err := store.ApplyNFTEvent(ctx, ApplyNFTEventInput{
			NFTID:      nft.ID,
			Event:      listed,
			Projection: NFTProjectionUpdate{IsForSale: boolPtr(true), Price: stringPtr("1.5")},
		})
		require.Error(t, err)
		assert.False(t, applied)
		assert.Equal(t, domain.ErrorKindInvalidInput, domain.KindOf(err))

		event, err := store.GetNFTEventByTxHashAndLogIndex(ctx, pairTxHash("d2"), 0)
		require.NoError(t, err)
		assert.Nil(t, event)
	})

	t.Run("missing nft", func(t *testing.T) {
		applied, err := store.ApplyNFTEvent(ctx, ApplyNFTEventInput{
			NFTID: 999_999,
			Event: buildTestEvent(domain.NFTEventTypeUnlisted, txHash("8"), 0, 1),
		})
		require.Error(t, err)
		assert.False(t, applied)
		assert.Equal(t, domain.ErrorKindNotFound, domain.KindOf(err))

		event, err := store.GetNFTEventByTxHashAndLogIndex(ctx, txHash("8"), 0)
		require.NoError(t, err)
		assert.Nil(t, event)
	})

	t.Run("rejected projection leaves no ledger entry", func(t *testing.T) {
		nft := createTestNFT(t, store, creator.ID)

		// Listing an unminted NFT violates the projection constraints
		applied, err := store.ApplyNFTEvent(ctx, ApplyNFTEventInput{
			NFTID:      nft.ID,
			Event:      buildTestEvent(domain.NFTEventTypeListed, txHash("9"), 0, 1),
			Projection: NFTProjectionUpdate{IsForSale: boolPtr(true), Price: stringPtr("1")},
		})
		require.Error(t, err)
		assert.False(t, applied)

		event, err := store.GetNFTEventByTxHashAndLogIndex(ctx, txHash("9"), 0)
		require.NoError(t, err)
		assert.Nil(t, event)

		found, err := store.GetNFTByID(ctx, nft.ID)
		require.NoError(t, err)
		assert.False(t, found.IsForSale)
	})
}

func eventTypePtr(eventType domain.NFTEventType) *domain.NFTEventType {
	return &eventType
}

// =============================================================================
// Test: Ledger queries
// =============================================================================

func testGetNFTEvents(t *testing.T, store Store) {
	ctx := context.Background()
	creator := createTestUser(t, store, testCreatorWallet)
	buyer := createTestUser(t, store, testBuyerWallet)
	nft := mintTestNFT(t, store, createTestNFT(t, store, creator.ID), "201", txHash("a"))

	listed := buildTestEvent(domain.NFTEventTypeListed, txHash("b"), 0, 200)
	listed.FromAddress = stringPtr(testCreatorWallet)
	listed.PriceWei = stringPtr("1000000000000000000")
	_, err := store.ApplyNFTEvent(ctx, ApplyNFTEventInput{
		NFTID:      nft.ID,
		Event:      listed,
		Projection: NFTProjectionUpdate{IsForSale: boolPtr(true), Price: stringPtr("1")},
	})
	require.NoError(t, err)

	transfer := buildTestEvent(domain.NFTEventTypeTransfer, txHash("c"), 4, 300)
	transfer.FromAddress = stringPtr(testCreatorWallet)
	transfer.ToAddress = stringPtr(testBuyerWallet)
	transfer.PriceWei = stringPtr("1000000000000000000")
	_, err = store.ApplyNFTEvent(ctx, ApplyNFTEventInput{
		NFTID:      nft.ID,
		Event:      transfer,
		Projection: NFTProjectionUpdate{OwnerID: uint64Ptr(buyer.ID)},
	})
	require.NoError(t, err)

	t.Run("by nft newest first", func(t *testing.T) {
		events, total, err := store.GetNFTEvents(ctx, NFTEventFilter{NFTID: &nft.ID})
		require.NoError(t, err)
		assert.Equal(t, uint64(3), total)
		require.Len(t, events, 3)
		assert.Equal(t, domain.NFTEventTypeTransfer, events[0].EventType)
		assert.Equal(t, domain.NFTEventTypeListed, events[1].EventType)
		assert.Equal(t, domain.NFTEventTypeMint, events[2].EventType)
	})

	t.Run("by address matches either side", func(t *testing.T) {
		events, total, err := store.GetNFTEvents(ctx, NFTEventFilter{Address: stringPtr(strings.ToUpper("0x" + testBuyerWallet[2:]))})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)
		require.Len(t, events, 1)
		assert.Equal(t, domain.NFTEventTypeTransfer, events[0].EventType)

		_, total, err = store.GetNFTEvents(ctx, NFTEventFilter{Address: stringPtr(testCreatorWallet)})
		require.NoError(t, err)
		assert.Equal(t, uint64(3), total)
	})

	t.Run("by type", func(t *testing.T) {
		events, total, err := store.GetNFTEvents(ctx, NFTEventFilter{EventType: eventTypePtr(domain.NFTEventTypeMint), NFTID: &nft.ID})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)
		require.Len(t, events, 1)

		var raw map[string]interface{}
		require.NoError(t, json.Unmarshal(events[0].Raw, &raw))
		assert.Equal(t, txHash("a"), raw["tx_hash"])
	})

	t.Run("pagination", func(t *testing.T) {
		events, total, err := store.GetNFTEvents(ctx, NFTEventFilter{NFTID: &nft.ID, Limit: 1, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, uint64(3), total)
		require.Len(t, events, 1)
		assert.Equal(t, domain.NFTEventTypeListed, events[0].EventType)
	})

	t.Run("offset beyond int64 is rejected", func(t *testing.T) {
		_, _, err := store.GetNFTEvents(ctx, NFTEventFilter{NFTID: &nft.ID, Offset: uint64(math.MaxInt64) + 1})
		require.Error(t, err)
		assert.Equal(t, domain.ErrorKindInvalidInput, domain.KindOf(err))
	})
}

// =============================================================================
// Test: Platform revenue
// =============================================================================

func testGetPlatformRevenueWei(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("no sales", func(t *testing.T) {
		revenue, err := store.GetPlatformRevenueWei(ctx)
		require.NoError(t, err)
		assert.Equal(t, "0", revenue)
	})

	t.Run("recorded fee and fallback", func(t *testing.T) {
		creator := createTestUser(t, store, testCreatorWallet)
		buyer := createTestUser(t, store, testBuyerWallet)

		first := mintTestNFT(t, store, createTestNFT(t, store, creator.ID), "301", txHash("d"))
		sale := buildTestEvent(domain.NFTEventTypeTransfer, txHash("e"), 0, 400)
		sale.PriceWei = stringPtr("2000000000000000000")
		sale.PlatformFeeWei = stringPtr("50000000000000000")
		_, err := store.ApplyNFTEvent(ctx, ApplyNFTEventInput{NFTID: first.ID, Event: sale, Projection: NFTProjectionUpdate{OwnerID: uint64Ptr(buyer.ID)}})
		require.NoError(t, err)

		second := mintTestNFT(t, store, createTestNFT(t, store, creator.ID), "302", txHash("f"))
		legacy := buildTestEvent(domain.NFTEventTypeTransfer, txHash("0"), 0, 401)
		legacy.PriceWei = stringPtr("1000000000000000000")
		_, err = store.ApplyNFTEvent(ctx, ApplyNFTEventInput{NFTID: second.ID, Event: legacy, Projection: NFTProjectionUpdate{OwnerID: uint64Ptr(buyer.ID)}})
		require.NoError(t, err)

		// 0.05 recorded + 2.5% of 1
		revenue, err := store.GetPlatformRevenueWei(ctx)
		require.NoError(t, err)
		assert.Equal(t, "75000000000000000", revenue)
	})
}

// =============================================================================
// Test: Key-value store
// =============================================================================

func testKeyValueStore(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		err := store.SetKeyValue(ctx, domain.LISTING_SWEEPER_CHECKPOINT_KEY, "2026-01-01T00:00:00Z")
		require.NoError(t, err)

		value, err := store.GetKeyValue(ctx, domain.LISTING_SWEEPER_CHECKPOINT_KEY)
		require.NoError(t, err)
		assert.Equal(t, "2026-01-01T00:00:00Z", value)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, store.SetKeyValue(ctx, "test:key", "value1"))
		require.NoError(t, store.SetKeyValue(ctx, "test:key", "value2"))

		value, err := store.GetKeyValue(ctx, "test:key")
		require.NoError(t, err)
		assert.Equal(t, "value2", value)
	})

	t.Run("missing key", func(t *testing.T) {
		value, err := store.GetKeyValue(ctx, "nonexistent:key")
		require.NoError(t, err)
		assert.Equal(t, "", value)
	})
}

// RunStoreTests runs every store test case against a fresh store
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"Users", testUsers},
		{"NFTs", testNFTs},
		{"ApplyNFTEvent", testApplyNFTEvent},
		{"GetNFTEvents", testGetNFTEvents},
		{"GetPlatformRevenueWei", testGetPlatformRevenueWei},
		{"KeyValueStore", testKeyValueStore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
