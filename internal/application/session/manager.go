// Package session signs the user in and out and keeps the bearer token that
// every backend call carries.
package session

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"supportdesk/internal/domain/user"
	"supportdesk/internal/infrastructure/gateway"
	"supportdesk/internal/infrastructure/tokenstore"
	"supportdesk/internal/shared/errors"
	"supportdesk/internal/shared/logger"
	"supportdesk/internal/shared/utils"
)

// ErrNoSession means there is no usable session; callers treat it as signed out.
var ErrNoSession = stderrors.New("no active session")

// Gateway is the slice of the backend client the manager needs.
type Gateway interface {
	Register(ctx context.Context, body gateway.RegisterRequest) gateway.Result
	Login(ctx context.Context, body gateway.LoginRequest) gateway.Result
	GetSession(ctx context.Context) gateway.Result
}

// AuthResult is a successful login or registration. Message is the backend's
// message, passed through unmodified.
type AuthResult struct {
	User    *user.User
	Message string
}

type authResponse struct {
	Token   string     `json:"token"`
	User    *user.User `json:"user"`
	Message string     `json:"message"`
}

type sessionResponse struct {
	User    *user.User `json:"user"`
	Message string     `json:"message"`
}

type Manager struct {
	gw    Gateway
	state *State
	store tokenstore.Store
	log   logger.Interface
}

func NewManager(gw Gateway, state *State, store tokenstore.Store, log logger.Interface) *Manager {
	return &Manager{
		gw:    gw,
		state: state,
		store: store,
		log:   log.Named("session"),
	}
}

// Restore loads a persisted token into memory. It does not contact the
// backend; use ProbeSession to find out whether the token is still accepted.
// A store that cannot be read leaves the user signed out.
func (m *Manager) Restore(ctx context.Context) error {
	token, err := m.store.Get(ctx)
	if err != nil {
		m.log.Warnw("failed to restore session token", "error", err)
		return nil
	}
	if token != "" {
		m.state.setToken(token)
		m.log.Debugw("session token restored", "token", utils.MaskSecret(token))
	}
	return nil
}

// Session returns the current session.
func (m *Manager) Session() user.Session {
	return m.state.Snapshot()
}

func (m *Manager) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	res := m.gw.Register(ctx, gateway.RegisterRequest{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
	})
	return m.completeAuth(ctx, res, "Registration failed", in.Email)
}

func (m *Manager) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	res := m.gw.Login(ctx, gateway.LoginRequest{
		Email:    in.Email,
		Password: in.Password,
	})
	return m.completeAuth(ctx, res, "Login failed", in.Email)
}

// completeAuth captures the token from any successful auth response, then
// requires a user payload for the call to count as signed in.
func (m *Manager) completeAuth(ctx context.Context, res gateway.Result, fallback, email string) (*AuthResult, error) {
	if !res.Success {
		m.log.Warnw("authentication rejected", "email", utils.MaskEmail(email), "status", res.StatusCode, "message", res.Message)
		return nil, res.AsError(fallback)
	}

	body, err := gateway.Decode[authResponse](res)
	if err != nil {
		m.log.Errorw("malformed auth response", "error", err)
		return nil, errors.NewRemoteError(res.StatusCode, fallback, err.Error())
	}

	if body.Token != "" {
		m.state.setToken(body.Token)
		if err := m.store.Set(ctx, body.Token); err != nil {
			// The in-memory session still works for this run.
			m.log.Warnw("failed to persist session token", "error", err)
		}
	}

	if body.User == nil {
		return nil, errors.NewRemoteError(res.StatusCode, fallback)
	}

	m.state.setUser(body.User)
	m.log.Infow("signed in", "email", utils.MaskEmail(body.User.Email))
	return &AuthResult{User: body.User, Message: body.Message}, nil
}

// ProbeSession asks the backend who the current token belongs to. Any failure
// is logged and reported as ErrNoSession. A token the backend rejects with 401
// is discarded.
func (m *Manager) ProbeSession(ctx context.Context) (*user.User, error) {
	res := m.gw.GetSession(ctx)
	if !res.Success {
		m.log.Debugw("session check failed", "status", res.StatusCode, "message", res.Message)
		if res.StatusCode == http.StatusUnauthorized {
			m.discard(ctx)
		}
		return nil, fmt.Errorf("%w: %s", ErrNoSession, res.Message)
	}

	body, err := gateway.Decode[sessionResponse](res)
	if err != nil || body.User == nil {
		m.log.Debugw("session check returned no user", "error", err)
		return nil, ErrNoSession
	}

	m.state.setUser(body.User)
	return body.User, nil
}

// Logout clears the token from memory and from durable storage. It makes no
// backend call; the in-memory session is gone even if the store fails.
func (m *Manager) Logout(ctx context.Context) error {
	m.state.clear()
	if err := m.store.Delete(ctx); err != nil {
		return fmt.Errorf("failed to clear stored session: %w", err)
	}
	m.log.Infow("signed out")
	return nil
}

// TokenExpiry reads the exp claim when the token happens to be a JWT. The
// signature is not checked; this is informational only.
func (m *Manager) TokenExpiry() (time.Time, bool) {
	token := m.state.Token()
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (m *Manager) discard(ctx context.Context) {
	m.state.clear()
	if err := m.store.Delete(ctx); err != nil {
		m.log.Warnw("failed to clear rejected session token", "error", err)
	}
}
