package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidEntry is returned when a session cookie fails signature or
	// claim validation
	ErrInvalidEntry = errors.New("invalid session entry")
	// ErrExpiredEntry is returned when a session cookie has expired
	ErrExpiredEntry = errors.New("session entry expired")
)

// entryClaims wraps a JSON-serialized session value in a signed JWT.
// The cookie name is bound into the subject so a value signed for one
// cookie cannot be replayed under another.
type entryClaims struct {
	Value json.RawMessage `json:"val"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session cookie values using HMAC-SHA256.
type Codec struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewCodec creates a session codec. The secret must be non-empty.
func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("session secret is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "backoffice-gateway",
	}, nil
}

// Encode signs a session value for the named cookie.
func (c *Codec) Encode(name string, value any) (string, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("marshaling session value: %w", err)
	}

	now := time.Now()
	claims := entryClaims{
		Value: raw,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   name,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("signing session value: %w", err)
	}
	return signed, nil
}

// Decode verifies a signed cookie value and unmarshals it into out.
func (c *Codec) Decode(name, signed string, out any) error {
	claims := &entryClaims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithIssuer(c.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrExpiredEntry
		}
		return fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	if !token.Valid {
		return ErrInvalidEntry
	}
	if claims.Subject != name {
		return fmt.Errorf("%w: entry signed for %q, read as %q", ErrInvalidEntry, claims.Subject, name)
	}
	if err := json.Unmarshal(claims.Value, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	return nil
}
