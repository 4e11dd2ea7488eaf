package schema

import (
	"time"

	"github.com/feral-file/ff-marketplace-mirror/internal/domain"
)

// User represents the users table - the identity of a marketplace participant
type User struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// WalletAddress is the user's wallet, stored lower-case
	WalletAddress string `gorm:"column:wallet_address;not null;uniqueIndex;type:text"`
	// Username is an optional display name
	Username *string `gorm:"column:username;type:text"`
	// Role is the user's role (user, admin)
	Role domain.UserRole `gorm:"column:role;not null;default:user;type:text"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
