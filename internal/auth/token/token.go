package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed payload, expired token. Callers must treat all of them
// the same as "no credential provided".
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the identity assertion carried by a session token.
type Claims struct {
	UserID    string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type jwtClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Manager issues and verifies signed session tokens. It is stateless:
// expiry is enforced by the signature-protected exp claim, never by a
// lookup, so revocation before natural expiry is not possible.
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewManager(secret, issuer string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// Issue produces a signed HS256 token for the given user with a fixed
// TTL from the moment of issuance.
func (m *Manager) Issue(userID, email string) (string, Claims, error) {
	now := time.Now().UTC()
	exp := now.Add(m.ttl)

	cl := jwtClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, cl)
	raw, err := t.SignedString(m.secret)
	if err != nil {
		return "", Claims{}, err
	}

	return raw, Claims{
		UserID:    userID,
		Email:     email,
		IssuedAt:  now,
		ExpiresAt: exp,
	}, nil
}

// Parse validates the signature and expiry and returns the claims.
// Verification is all-or-nothing: any failure yields ErrInvalidToken.
func (m *Manager) Parse(raw string) (Claims, error) {
	var out jwtClaims
	tkn, err := jwt.ParseWithClaims(raw, &out, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tkn.Valid {
		return Claims{}, ErrInvalidToken
	}
	if out.UserID == "" {
		return Claims{}, ErrInvalidToken
	}

	return Claims{
		UserID:    out.UserID,
		Email:     out.Email,
		IssuedAt:  out.IssuedAt.Time,
		ExpiresAt: out.ExpiresAt.Time,
	}, nil
}
