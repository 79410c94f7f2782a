package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/goodluckfit/fitauth/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) testUser() *model.User {
	return &model.User{
		ID:           "user-1",
		Username:     "alice",
		PasswordHash: "hash123",
		Role:         model.RoleUser,
		Height:       170,
		Weight:       65,
		CreatedAt:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// User tests

func (s *StorageSuite) TestSaveAndGetUser() {
	err := s.storage.SaveUser(s.ctx, s.testUser())
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUser(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal("alice", retrieved.Username)
	s.Equal("hash123", retrieved.PasswordHash)
}

func (s *StorageSuite) TestSaveUserRejectsTakenUsername() {
	err := s.storage.SaveUser(s.ctx, s.testUser())
	s.Require().NoError(err)

	other := s.testUser()
	other.ID = "user-2"
	err = s.storage.SaveUser(s.ctx, other)
	s.ErrorIs(err, model.ErrUsernameExists)

	retrieved, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.UserID("user-1"), retrieved.ID)
}

func (s *StorageSuite) TestSaveUserOverwritesSameUser() {
	err := s.storage.SaveUser(s.ctx, s.testUser())
	s.Require().NoError(err)

	updated := s.testUser()
	updated.Weight = 70
	s.Require().NoError(s.storage.SaveUser(s.ctx, updated))

	retrieved, err := s.storage.GetUser(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(70.0, retrieved.Weight)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserByUsername() {
	err := s.storage.SaveUser(s.ctx, s.testUser())
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.UserID("user-1"), retrieved.ID)
}

func (s *StorageSuite) TestGetUserByUsernameNotFound() {
	_, err := s.storage.GetUserByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}

// UpdateUser tests

func (s *StorageSuite) TestUpdateUserPartial() {
	err := s.storage.SaveUser(s.ctx, s.testUser())
	s.Require().NoError(err)

	weight := 70.0
	err = s.storage.UpdateUser(s.ctx, "user-1", model.UserUpdate{Weight: &weight})
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUser(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(70.0, retrieved.Weight)
	s.Equal("alice", retrieved.Username)
	s.Equal(170.0, retrieved.Height)
}

func (s *StorageSuite) TestUpdateUserMovesUsernameIndex() {
	err := s.storage.SaveUser(s.ctx, s.testUser())
	s.Require().NoError(err)

	username := "alicia"
	err = s.storage.UpdateUser(s.ctx, "user-1", model.UserUpdate{Username: &username})
	s.Require().NoError(err)

	s.False(s.mini.Exists(usernameIndexKey("alice")))

	retrieved, err := s.storage.GetUserByUsername(s.ctx, "alicia")
	s.Require().NoError(err)
	s.Equal(model.UserID("user-1"), retrieved.ID)
}

func (s *StorageSuite) TestUpdateUserRejectsTakenUsername() {
	err := s.storage.SaveUser(s.ctx, s.testUser())
	s.Require().NoError(err)

	other := s.testUser()
	other.ID = "user-2"
	other.Username = "bob"
	s.Require().NoError(s.storage.SaveUser(s.ctx, other))

	username := "alice"
	err = s.storage.UpdateUser(s.ctx, "user-2", model.UserUpdate{Username: &username})
	s.ErrorIs(err, model.ErrUsernameExists)

	retrieved, err := s.storage.GetUserByUsername(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(model.UserID("user-2"), retrieved.ID)
}

func (s *StorageSuite) TestUpdateUserNotFound() {
	weight := 70.0
	err := s.storage.UpdateUser(s.ctx, "nonexistent", model.UserUpdate{Weight: &weight})
	s.ErrorIs(err, model.ErrUserNotFound)
}

// Login record tests

func (s *StorageSuite) TestAppendAndReadLoginRecords() {
	first := &model.LoginRecord{UserID: "user-1", At: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	second := &model.LoginRecord{UserID: "user-1", At: time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC)}

	s.Require().NoError(s.storage.AppendLoginRecord(s.ctx, first))
	s.Require().NoError(s.storage.AppendLoginRecord(s.ctx, second))

	records, err := s.storage.LoginRecords(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Len(records, 2)
	s.True(records[0].At.Equal(first.At))
	s.True(records[1].At.Equal(second.At))
}

func (s *StorageSuite) TestLoginRecordsEmptyForUnknownUser() {
	records, err := s.storage.LoginRecords(s.ctx, "nonexistent")
	s.Require().NoError(err)
	s.Empty(records)
}
