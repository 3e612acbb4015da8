package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the lifetime of an access token.
const DefaultTTL = time.Hour

// ErrInvalidToken covers every verification failure: bad signature, wrong
// algorithm, malformed input, missing or passed expiry.
var ErrInvalidToken = errors.New("invalid token")

// Claims carried by an access token.
type Claims struct {
	ClientName string `json:"clientName"`
	Domain     string `json:"domain"`
	jwt.RegisteredClaims
}

// Issue creates a signed HS256 access token for the client, valid for ttl from now.
func Issue(secret, clientName, domain string, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", errors.New("signing secret is empty")
	}
	claims := Claims{
		ClientName: clientName,
		Domain:     domain,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := jt.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses raw and checks its signature against secret and its expiry against now.
func Verify(raw, secret string, now time.Time) (*Claims, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tok.Valid {
		return nil, ErrInvalidToken
	}
	// tokens without exp would never expire
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: exp claim missing", ErrInvalidToken)
	}
	return &claims, nil
}

// Verifier binds a secret and clock so middleware can verify tokens without
// knowing either.
type Verifier struct {
	Secret string
	Now    func() time.Time
}

// NewVerifier returns a Verifier using the wall clock.
func NewVerifier(secret string) *Verifier {
	return &Verifier{Secret: secret, Now: time.Now}
}

func (v *Verifier) Verify(raw string) (*Claims, error) {
	now := time.Now
	if v.Now != nil {
		now = v.Now
	}
	return Verify(raw, v.Secret, now())
}
