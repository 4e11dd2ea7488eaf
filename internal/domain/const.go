package domain

const (
	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"

	// DEFAULT_PLATFORM_FEE_BPS is the marketplace fee assumed for sales recorded without an explicit fee
	DEFAULT_PLATFORM_FEE_BPS = 250

	// LISTING_SWEEPER_CHECKPOINT_KEY holds the completion time of the last full listing sweep
	LISTING_SWEEPER_CHECKPOINT_KEY = "listing_sweeper:last_completed_at"

	// Pagination constants
	DEFAULT_PAGE_LIMIT = 20
	MAX_PAGE_LIMIT     = 100
)
