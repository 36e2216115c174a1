package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenMalformed is returned when the token cannot be parsed.
	ErrTokenMalformed = errors.New("token is malformed")
	// ErrTokenSignature is returned when the signature does not verify.
	ErrTokenSignature = errors.New("token signature is invalid")
	// ErrTokenExpired is returned when the token is past its expiry.
	ErrTokenExpired = errors.New("token has expired")
)

// Claims defines the information stored in the access token.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-limited access tokens.
// Verification is pure computation over (token, secret, now); the clock
// is injectable so expiry behavior can be tested deterministically.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService signing with the given secret.
func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock overrides the time source. Used in tests.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// Issue creates an HS256-signed token for the subject, expiring at now+ttl.
func (s *TokenService) Issue(subject string) (string, error) {
	now := s.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks the token signature and expiry and returns the subject.
// Failures are classified as ErrTokenMalformed, ErrTokenSignature or
// ErrTokenExpired; callers must reject the request on any of them.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignature
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))

	switch {
	case err == nil && token.Valid:
		return claims.Subject, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "", ErrTokenSignature
	default:
		return "", ErrTokenMalformed
	}
}
