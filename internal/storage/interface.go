package storage

import (
	"context"

	"github.com/goodluckfit/fitauth/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// UpdateUser applies a partial update. Nil fields in the update are
	// left unchanged. Returns model.ErrUserNotFound for unknown IDs.
	UpdateUser(ctx context.Context, id model.UserID, update model.UserUpdate) error

	// Login audit operations, append-only
	AppendLoginRecord(ctx context.Context, record *model.LoginRecord) error
	LoginRecords(ctx context.Context, userID model.UserID) ([]model.LoginRecord, error)
}
