package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/goodluckfit/fitauth/internal/dependencies/clock"
	"github.com/goodluckfit/fitauth/internal/model"
	"github.com/goodluckfit/fitauth/internal/storage"
	"github.com/goodluckfit/fitauth/internal/token"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrOperationFailed    = errors.New("operation failed")
)

// Service handles account registration, credential verification and the
// session-token lifecycle
type Service struct {
	storage storage.Storage
	tokens  *token.Issuer
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new auth service
func New(store storage.Storage, tokens *token.Issuer, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		tokens:  tokens,
		clock:   clk,
		logger:  logger,
	}
}

// Register creates a new user account with a hashed password.
// The caller is responsible for trimming and field-level validation;
// username uniqueness is enforced here.
func (s *Service) Register(ctx context.Context, username, password string, height, weight float64) (*model.User, error) {
	_, err := s.storage.GetUserByUsername(ctx, username)
	if err == nil {
		return nil, model.ErrUsernameExists
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user := &model.User{
		ID:           model.UserID(uuid.NewString()),
		Username:     username,
		PasswordHash: hash,
		Role:         model.RoleUser,
		Height:       height,
		Weight:       weight,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		// Storage re-checks the username index on save
		if errors.Is(err, model.ErrUsernameExists) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}

	s.logger.Info("user registered", slog.String("user_id", string(user.ID)))

	return user, nil
}

// Login verifies credentials, appends a login record and issues a session
// token. An unknown username yields model.ErrUserNotFound; a wrong password
// yields ErrInvalidCredentials without hinting how close it was.
func (s *Service) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, "", err
	}

	if !verifyPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	record := &model.LoginRecord{
		UserID: user.ID,
		At:     s.clock.Now(),
	}
	if err := s.storage.AppendLoginRecord(ctx, record); err != nil {
		return nil, "", err
	}

	signed, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user logged in", slog.String("user_id", string(user.ID)))

	return user, signed, nil
}

// GetProfile returns the user for the given ID
func (s *Service) GetProfile(ctx context.Context, id model.UserID) (*model.User, error) {
	return s.storage.GetUser(ctx, id)
}

// ChangePassword hashes the new password and updates only that field,
// leaving the rest of the profile untouched. Existing tokens stay valid
// until natural expiry.
func (s *Service) ChangePassword(ctx context.Context, id model.UserID, newPassword string) error {
	if _, err := s.storage.GetUser(ctx, id); err != nil {
		return err
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	update := model.UserUpdate{
		PasswordHash: &hash,
		UpdatedAt:    s.clock.Now(),
	}
	if err := s.storage.UpdateUser(ctx, id, update); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}

	s.logger.Info("password changed", slog.String("user_id", string(id)))

	return nil
}

// UpdateProfile applies a partial profile update. Nil fields are left
// unchanged; the password is never touched through this path.
func (s *Service) UpdateProfile(ctx context.Context, id model.UserID, update model.UserUpdate) error {
	if _, err := s.storage.GetUser(ctx, id); err != nil {
		return err
	}

	update.PasswordHash = nil

	// Nothing to write; don't touch UpdatedAt
	if update.IsEmpty() {
		return nil
	}

	update.UpdatedAt = s.clock.Now()

	if err := s.storage.UpdateUser(ctx, id, update); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}

	return nil
}

// Refresh issues a fresh token for an already-authenticated subject.
// The subject must still resolve to an existing user. The old token is not
// invalidated; it remains valid until it expires.
func (s *Service) Refresh(ctx context.Context, id model.UserID) (string, error) {
	if _, err := s.storage.GetUser(ctx, id); err != nil {
		return "", err
	}

	return s.tokens.Issue(id)
}

// hashPassword hashes a plaintext password for storage
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// verifyPassword compares a submitted password against the stored hash
func verifyPassword(password, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
}
