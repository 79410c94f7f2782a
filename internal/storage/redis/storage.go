package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/goodluckfit/fitauth/internal/model"
	"github.com/goodluckfit/fitauth/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Users are stored as JSON blobs with a username index key; login records
// live in an append-only list per user.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	// The username index must not already point at another user
	owner, err := s.client.Get(ctx, usernameIndexKey(user.Username)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if err == nil && owner != string(user.ID) {
		return model.ErrUsernameExists
	}

	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(user.ID), data, 0)
	pipe.Set(ctx, usernameIndexKey(user.Username), string(user.ID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	// Look up user ID from username index
	userIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	return s.GetUser(ctx, model.UserID(userIDStr))
}

func (s *Storage) UpdateUser(ctx context.Context, id model.UserID, update model.UserUpdate) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}

	oldUsername := user.Username

	if update.Username != nil && *update.Username != oldUsername {
		// New username must not already be indexed to another user
		owner, err := s.client.Get(ctx, usernameIndexKey(*update.Username)).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if err == nil && owner != string(id) {
			return model.ErrUsernameExists
		}
		user.Username = *update.Username
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

	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	// Use pipeline so the blob and the username index move together
	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(user.ID), data, 0)
	if user.Username != oldUsername {
		pipe.Del(ctx, usernameIndexKey(oldUsername))
		pipe.Set(ctx, usernameIndexKey(user.Username), string(user.ID), 0)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// Login audit operations

func (s *Storage) AppendLoginRecord(ctx context.Context, record *model.LoginRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	return s.client.RPush(ctx, loginRecordsKey(record.UserID), data).Err()
}

func (s *Storage) LoginRecords(ctx context.Context, userID model.UserID) ([]model.LoginRecord, error) {
	entries, err := s.client.LRange(ctx, loginRecordsKey(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	records := make([]model.LoginRecord, 0, len(entries))
	for _, entry := range entries {
		var record model.LoginRecord
		if err := json.Unmarshal([]byte(entry), &record); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
