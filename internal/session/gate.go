package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

var (
	ErrBadPassword     = errors.New("bad password")
	ErrTooManyAttempts = errors.New("too many login attempts")
)

// Gate checks the shared operator password and flips the session
// flag. Attempts are rate limited to blunt brute forcing.
type Gate struct {
	password string
	sessions Store
	limiter  *rate.Limiter
	logger   *zerolog.Logger
}

func NewGate(password string, sessions Store, logger *zerolog.Logger) *Gate {
	return &Gate{
		password: password,
		sessions: sessions,
		limiter:  rate.NewLimiter(rate.Every(time.Second), 5),
		logger:   logger,
	}
}

// Login validates the password. On success the session is marked
// authenticated and stays so until the process or session store
// resets.
func (g *Gate) Login(ctx context.Context, password string) error {
	if !g.limiter.Allow() {
		g.logger.Warn().Msg("login throttled")
		return ErrTooManyAttempts
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(g.password)) != 1 {
		g.logger.Warn().Msg("login rejected")
		return ErrBadPassword
	}
	if err := g.sessions.SetAuthenticated(ctx, true); err != nil {
		return err
	}
	g.logger.Info().Msg("operator logged in")
	return nil
}

// Authenticated reports the current session state. Store errors
// degrade to unauthenticated.
func (g *Gate) Authenticated(ctx context.Context) bool {
	ok, err := g.sessions.Authenticated(ctx)
	if err != nil {
		g.logger.Error().Err(err).Msg("session check failed")
		return false
	}
	return ok
}
