package utils // package utils provides token issuance/verification and hashing helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// Token verification failures, ordered from "could not even parse it" to
// "parsed fine but no longer usable". Middleware maps all three to HTTP 401;
// the distinction only matters for logging and tests.
var (
	// ErrTokenMalformed means the string is not a JWT at all.
	ErrTokenMalformed = errors.New("malformed token")
	// ErrTokenInvalid means the signature does not verify against our key.
	ErrTokenInvalid = errors.New("invalid token signature")
	// ErrTokenExpired means the signature is fine but the expiry has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrSigningKey means the service was built without a usable key.
	ErrSigningKey = errors.New("signing key unavailable")
)

// TokenService issues and verifies stateless HS256 bearer tokens whose
// subject is the account email. Validity is purely computational: a token is
// good iff its signature verifies and the current time is before its expiry.
// There is no revocation list; logout is a client-side affair. The service
// is immutable after construction and safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService builds a TokenService signing with the given secret and
// issuing tokens valid for ttl. The secret is loaded once from configuration
// at startup and never changes afterwards.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock returns a copy of the service reading time from now instead of
// the wall clock. Used by tests to step past the expiry deterministically.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	cp := *s
	cp.now = now
	return &cp
}

// Issue signs a token for the given account email. The claims carry the
// subject, issued-at and expiry; roles deliberately stay out of the token,
// permission checks always consult the account directory instead.
func (s *TokenService) Issue(email string) (string, time.Time, error) {
	if len(s.secret) == 0 {
		return "", time.Time{}, ErrSigningKey
	}
	now := s.now().UTC()
	exp := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify parses and checks a token string and returns its subject (the
// account email). The caller is responsible for resolving the subject into
// an account; Verify itself is pure and never touches storage.
func (s *TokenService) Verify(raw string) (string, error) {
	tok, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		// Reject any algorithm other than the HMAC family we sign with.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		default:
			return "", ErrTokenInvalid
		}
	}
	claims, ok := tok.Claims.(*jwt.RegisteredClaims)
	if !ok || !tok.Valid || claims.Subject == "" {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}
