// Package auth guards admin operations with a single shared passphrase. The
// passphrase is exchanged for a short-lived signed token; this is a
// convenience lock, not user authentication.
package auth

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/xtanyr/lunch/internal/calendar"
)

var (
	ErrInvalidPassphrase = errors.New("invalid passphrase")
	ErrInvalidToken      = errors.New("invalid token")
	ErrGateDisabled      = errors.New("admin passphrase not configured")
)

type Gate struct {
	hash   []byte
	secret []byte
	ttl    time.Duration
	clock  calendar.Clock
}

// NewGate hashes passphrase for later comparison. An empty passphrase gives
// a disabled gate that lets every request through.
func NewGate(
	passphrase string,
	secret string,
	ttl time.Duration,
	clock calendar.Clock,
) (*Gate, error) {

	g := &Gate{ttl: ttl, clock: clock}
	if passphrase == "" {
		return g, nil
	}
	if secret == "" {
		return nil, errors.New("JWT_SECRET is required when ADMIN_PASSPHRASE is set")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	g.hash = hash
	g.secret = []byte(secret)
	return g, nil
}

// Enabled reports whether admin routes require a token.
func (g *Gate) Enabled() bool {
	return g != nil && g.hash != nil
}

// Login exchanges the passphrase for a session token.
func (g *Gate) Login(passphrase string) (string, time.Time, error) {
	if !g.Enabled() {
		return "", time.Time{}, ErrGateDisabled
	}
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(passphrase)); err != nil {
		return "", time.Time{}, ErrInvalidPassphrase
	}
	return g.issueToken(g.clock.Now())
}
