package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/goodluckfit/fitauth/internal/dependencies/clock"
	"github.com/goodluckfit/fitauth/internal/model"
)

// Errors
var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is malformed or has an invalid signature")
)

// Issuer mints and verifies signed session tokens. Tokens are stateless:
// validity is determined purely by signature and expiry, so an issued token
// stays valid until it expires naturally.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

// New creates a token issuer with the given signing secret and TTL
func New(secret []byte, ttl time.Duration, clk clock.Clock) *Issuer {
	return &Issuer{
		secret: secret,
		ttl:    ttl,
		clock:  clk,
	}
}

// Issue produces a signed token whose subject is the given user ID,
// valid from now until now plus the configured TTL
func (i *Issuer) Issue(userID model.UserID) (string, error) {
	now := i.clock.Now()

	claims := jwt.RegisteredClaims{
		Subject:   string(userID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verify checks a token's signature and expiry and returns its subject.
// Expired tokens yield ErrTokenExpired; anything else that fails to parse
// or validate yields ErrTokenInvalid.
func (i *Issuer) Verify(tokenString string) (model.UserID, error) {
	claims := &jwt.RegisteredClaims{}

	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	if !tok.Valid || claims.Subject == "" {
		return "", ErrTokenInvalid
	}

	return model.UserID(claims.Subject), nil
}
