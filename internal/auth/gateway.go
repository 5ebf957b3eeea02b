// Package auth is the gateway between transport-level requests and the
// credential store / session registry. It owns the login, logout and
// change-password flows and the redirect-on-deny guard used by every
// protected endpoint.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"portfolio/internal/identity"
	"portfolio/internal/session"
)

// Config controls gateway behavior.
type Config struct {
	// SessionTTL is the lifetime of issued sessions. Zero means
	// session.DefaultTTL (24h).
	SessionTTL time.Duration

	// CookieSecure forces the Secure attribute on the session cookie.
	// When nil, Secure is derived per request from TLS / X-Forwarded-Proto.
	CookieSecure *bool
}

// Gateway mediates between inbound requests and the two stores.
type Gateway struct {
	log      *slog.Logger
	cfg      Config
	store    identity.Store
	sessions *session.Registry
}

// NewGateway constructs a Gateway. The registry is owned by the composition
// root; the gateway only holds a reference.
func NewGateway(log *slog.Logger, cfg Config, store identity.Store, sessions *session.Registry) *Gateway {
	if log == nil {
		log = slog.Default()
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = session.DefaultTTL
	}
	return &Gateway{log: log, cfg: cfg, store: store, sessions: sessions}
}

// Login verifies credentials and issues a session token.
//
// Every failure surfaces as ErrInvalidCredentials; the caller learns nothing
// about whether the username exists. Storage failures propagate as-is.
func (g *Gateway) Login(ctx context.Context, username, password string) (token string, expiresAt time.Time, err error) {
	adm, err := identity.Verify(ctx, g.store, username, password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			g.log.Info("auth.login.fail", "reason", "bad_credentials")
			return "", time.Time{}, identity.ErrInvalidCredentials
		}
		g.log.Error("auth.login.store_fail", "err", err)
		return "", time.Time{}, err
	}

	token, expiresAt, err = g.sessions.Create(adm.Username, g.cfg.SessionTTL, time.Now().UTC())
	if err != nil {
		return "", time.Time{}, err
	}

	g.log.Info("auth.login.ok", "username", adm.Username)
	return token, expiresAt, nil
}

// Authenticate resolves a session token to its admin. A missing token is
// treated exactly like an invalid one.
func (g *Gateway) Authenticate(ctx context.Context, token string) (identity.Admin, error) {
	username, err := g.sessions.Validate(token, time.Now().UTC())
	if err != nil {
		return identity.Admin{}, ErrUnauthenticated
	}

	adm, err := g.store.GetByUsername(ctx, username)
	if err != nil {
		if identity.IsNotFound(err) {
			// Session outlived its admin record. Drop it.
			g.sessions.Revoke(token)
			return identity.Admin{}, ErrUnauthenticated
		}
		return identity.Admin{}, err
	}
	return adm, nil
}

// Logout revokes the session for token. Always succeeds from the caller's
// point of view.
func (g *Gateway) Logout(token string) {
	g.sessions.Revoke(token)
}

// ChangePassword rotates the admin's credential and invalidates every session
// owned by that identity, including the one performing the change.
//
// Validation runs in a fixed order, each rule with its own user-facing error:
// minimum length, confirmation match, current-password check.
func (g *Gateway) ChangePassword(ctx context.Context, token, current, newPassword, confirm string) error {
	adm, err := g.Authenticate(ctx, token)
	if err != nil {
		return err
	}

	if len(newPassword) < identity.MinPasswordLength {
		return ErrPasswordTooShort
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}
	if _, err := identity.Verify(ctx, g.store, adm.Username, current); err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return ErrWrongPassword
		}
		return err
	}

	if err := g.store.SetPassword(ctx, adm.Username, newPassword); err != nil {
		g.log.Error("auth.change_password.store_fail", "err", err)
		return err
	}

	// No token issued under the old password may remain usable.
	g.sessions.RevokeAll(adm.Username)
	g.log.Info("auth.change_password.ok", "username", adm.Username)
	return nil
}
