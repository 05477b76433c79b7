// Package token mints and verifies the stateless bearer credentials used on
// every API request. Verification is signature + expiry only; it never reads
// storage. The embedded role and email are a snapshot at issuance and may
// drift until re-issuance — the authentication middleware closes that window
// by re-resolving the user per request.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dhanuj00123/HeadlessCms/internal/identity/models"
	dErrors "github.com/dhanuj00123/HeadlessCms/pkg/domainerrors"
)

// Claims carried by an access token.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Service handles JWT creation and validation. The signing key is explicit
// constructor state, not ambient process state, so multiple configurations
// can coexist (tests sign with throwaway keys).
type Service struct {
	signingKey []byte
	ttl        time.Duration
	clock      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock function for testability.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func New(signingKey string, ttl time.Duration, opts ...Option) *Service {
	s := &Service{
		signingKey: []byte(signingKey),
		ttl:        ttl,
		clock:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Mint issues a signed token for the user with the configured TTL.
func (s *Service) Mint(user *models.User) (string, error) {
	now := s.clock()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: user.Email,
		Role:  user.Role.String(),
		Name:  user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := t.SignedString(s.signingKey)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign token")
	}
	return signed, nil
}

// Verify parses and validates a raw token. Signature failure and expiry both
// collapse into the same unauthorized error so callers cannot probe which
// check failed.
func (s *Service) Verify(raw string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, jwt.WithTimeFunc(s.clock))
	if err != nil || !parsed.Valid {
		return nil, errInvalidToken()
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, errInvalidToken()
	}
	return claims, nil
}

func errInvalidToken() error {
	return dErrors.New(dErrors.CodeUnauthorized, "invalid or expired token")
}
