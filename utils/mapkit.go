package utils

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt"
)

// ErrMapKitNotConfigured means the team ID, key ID or private key is missing.
var ErrMapKitNotConfigured = errors.New("mapkit token signing is not configured")

// tokenRenewMargin is how close to expiry a cached token is still handed out.
const tokenRenewMargin = time.Minute

// MapKitSigner issues ES256 tokens for MapKit JS and reuses one until it nears expiry.
type MapKitSigner struct {
	teamID string
	keyID  string
	origin string
	ttl    time.Duration
	key    *ecdsa.PrivateKey
	now    func() time.Time

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewMapKitSigner parses the .p8 private key. privateKeyPEM may carry literal
// "\n" sequences, as it does when passed through an environment variable.
func NewMapKitSigner(teamID, keyID, privateKeyPEM, origin string, ttl time.Duration) (*MapKitSigner, error) {
	if teamID == "" || keyID == "" || strings.TrimSpace(privateKeyPEM) == "" {
		return nil, ErrMapKitNotConfigured
	}
	pem := strings.ReplaceAll(privateKeyPEM, `\n`, "\n")
	key, err := jwt.ParseECPrivateKeyFromPEM([]byte(pem))
	if err != nil {
		return nil, fmt.Errorf("parsing mapkit private key: %w", err)
	}
	if ttl <= tokenRenewMargin {
		ttl = 30 * time.Minute
	}
	return &MapKitSigner{
		teamID: teamID,
		keyID:  keyID,
		origin: origin,
		ttl:    ttl,
		key:    key,
		now:    time.Now,
	}, nil
}

// Token returns a valid token and its expiry.
func (s *MapKitSigner) Token() (string, time.Time, error) {
	if s == nil {
		return "", time.Time{}, ErrMapKitNotConfigured
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.token != "" && now.Add(tokenRenewMargin).Before(s.expires) {
		return s.token, s.expires, nil
	}

	expires := now.Add(s.ttl)
	claims := jwt.MapClaims{
		"iss": s.teamID,
		"iat": now.Unix(),
		"exp": expires.Unix(),
	}
	if s.origin != "" {
		claims["origin"] = s.origin
	}
	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	token.Header["kid"] = s.keyID

	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing mapkit token: %w", err)
	}
	s.token, s.expires = signed, expires
	return signed, expires, nil
}
