package reconciler

import (
	"context"
	"fmt"

	"github.com/feral-file/ff-marketplace-mirror/internal/domain"
	"github.com/feral-file/ff-marketplace-mirror/internal/store"
)

// Identity is the resolved identity of a user
type Identity struct {
	UserID        uint64
	WalletAddress string
	Role          domain.UserRole
}

// IdentityResolver resolves an authenticated user id to a wallet address and role
//
//go:generate mockgen -source=identity.go -destination=../mocks/identity_resolver.go -package=mocks -mock_names=IdentityResolver=MockIdentityResolver
type IdentityResolver interface {
	// ResolveIdentity returns the identity of a user, NotFound if the user does not exist
	ResolveIdentity(ctx context.Context, userID uint64) (*Identity, error)
}

type storeIdentityResolver struct {
	store store.Store
}

// NewStoreIdentityResolver creates an IdentityResolver backed by the users table
func NewStoreIdentityResolver(store store.Store) IdentityResolver {
	return &storeIdentityResolver{store: store}
}

func (r *storeIdentityResolver) ResolveIdentity(ctx context.Context, userID uint64) (*Identity, error) {
	user, err := r.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.NewError(domain.ErrorKindNotFound, "user not found")
	}

	return &Identity{
		UserID:        user.ID,
		WalletAddress: domain.NormalizeAddress(user.WalletAddress),
		Role:          user.Role,
	}, nil
}
