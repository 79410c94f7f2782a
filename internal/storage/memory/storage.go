package memory

import (
	"context"
	"sync"

	"github.com/goodluckfit/fitauth/internal/model"
	"github.com/goodluckfit/fitauth/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users         map[model.UserID]*model.User
	usernameIndex map[string]model.UserID
	loginRecords  map[model.UserID][]model.LoginRecord
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:         make(map[model.UserID]*model.User),
		usernameIndex: make(map[string]model.UserID),
		loginRecords:  make(map[model.UserID][]model.LoginRecord),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if owner, taken := s.usernameIndex[user.Username]; taken && owner != user.ID {
		return model.ErrUsernameExists
	}
	copied := *user
	s.users[user.ID] = &copied
	s.usernameIndex[user.Username] = user.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *Storage) UpdateUser(ctx context.Context, id model.UserID, update model.UserUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return model.ErrUserNotFound
	}

	if update.Username != nil && *update.Username != user.Username {
		if _, taken := s.usernameIndex[*update.Username]; taken {
			return model.ErrUsernameExists
		}
		delete(s.usernameIndex, user.Username)
		user.Username = *update.Username
		s.usernameIndex[user.Username] = id
	}
	if update.PasswordHash != nil {
		user.PasswordHash = *update.PasswordHash
	}
	if update.Height != nil {
		user.Height = *update.Height
	}
	if update.Weight != nil {
		user.Weight = *update.Weight
	}
	if !update.UpdatedAt.IsZero() {
		user.UpdatedAt = update.UpdatedAt
	}

	return nil
}

// Login audit operations

func (s *Storage) AppendLoginRecord(ctx context.Context, record *model.LoginRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loginRecords[record.UserID] = append(s.loginRecords[record.UserID], *record)
	return nil
}

func (s *Storage) LoginRecords(ctx context.Context, userID model.UserID) ([]model.LoginRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.loginRecords[userID]
	result := make([]model.LoginRecord, len(records))
	copy(result, records)
	return result, nil
}
