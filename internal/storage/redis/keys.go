package redis

import (
	"fmt"

	"github.com/goodluckfit/fitauth/internal/model"
)

// Key prefix for all auth-related data
const keyPrefix = "fitauth"

// Key generation functions for each entity type

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// loginRecordsKey returns the Redis key for a user's login record list
func loginRecordsKey(userID model.UserID) string {
	return fmt.Sprintf("%s:logins:%s", keyPrefix, userID)
}
