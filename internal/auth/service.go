// Package auth gates the checkout and the admin back-office. There is no
// user database: credentials are compared against configured values, and the
// resulting session is persisted under a fixed key like the rest of the
// storefront state.
package auth

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	pkgauth "github.com/streetcaps511-a11y/gmcaps-backend/pkg/auth"
	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/config"
	pkgerrors "github.com/streetcaps511-a11y/gmcaps-backend/pkg/errors"
	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/kv"
	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/logger"
)

const sessionKeyPrefix = "session:"

// Session is the persisted record of a logged-in user.
type Session struct {
	Email    string       `json:"email"`
	Role     pkgauth.Role `json:"role"`
	IssuedAt time.Time    `json:"issued_at"`
}

// LoginResult carries the minted token alongside the session it represents.
type LoginResult struct {
	Token   string  `json:"token"`
	Session Session `json:"session"`
}

// Service implements login, logout, and session lookup.
type Service interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, email string) error
	Current(ctx context.Context, email string) (*Session, error)
}

type service struct {
	kv       kv.Store
	jwt      config.JWTConfig
	accounts config.AccountsConfig
	logg     *logger.Logger
	now      func() time.Time
}

// NewService wires the auth service.
func NewService(store kv.Store, jwtCfg config.JWTConfig, accounts config.AccountsConfig, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("kv store required")
	}
	if jwtCfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret required")
	}
	return &service{
		kv:       store,
		jwt:      jwtCfg,
		accounts: accounts,
		logg:     logg,
		now:      time.Now,
	}, nil
}

// Login validates the credential pair, persists the session, and mints a JWT.
func (s *service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	role, ok := s.matchCredentials(email, password)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	now := s.now()
	session := Session{Email: email, Role: role, IssuedAt: now}

	payload, err := json.Marshal(session)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "serialize session")
	}
	if err := s.kv.Set(ctx, sessionKey(email), payload); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist session")
	}

	token, err := pkgauth.MintAccessToken(s.jwt, now, pkgauth.AccessTokenPayload{Email: email, Role: role})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithActorRole(s.logg.WithOwner(ctx, email), string(role)), "auth.login")
	}
	return &LoginResult{Token: token, Session: session}, nil
}

// Logout removes the persisted session. Unknown emails are a no-op.
func (s *service) Logout(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if err := s.kv.Delete(ctx, sessionKey(email)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete session")
	}
	return nil
}

// Current loads the persisted session for the email. A malformed record is
// discarded and reported as absent, mirroring the cart store's reset policy.
func (s *service) Current(ctx context.Context, email string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "no session")
	}

	raw, err := s.kv.Get(ctx, sessionKey(email))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "no session")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read session")
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithOwner(ctx, email), "session.reset_malformed")
		}
		if delErr := s.kv.Delete(ctx, sessionKey(email)); delErr != nil && s.logg != nil {
			s.logg.Error(ctx, "session.clear_malformed_failed", delErr)
		}
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "no session")
	}
	return &session, nil
}

func (s *service) matchCredentials(email, password string) (pkgauth.Role, bool) {
	if constantTimeEqual(email, strings.ToLower(s.accounts.AdminEmail)) &&
		constantTimeEqual(password, s.accounts.AdminPassword) {
		return pkgauth.RoleAdmin, true
	}
	if constantTimeEqual(email, strings.ToLower(s.accounts.CustomerEmail)) &&
		constantTimeEqual(password, s.accounts.CustomerPassword) {
		return pkgauth.RoleCustomer, true
	}
	return "", false
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func sessionKey(email string) string {
	return sessionKeyPrefix + email
}
