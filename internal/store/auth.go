package store

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/Lamecke/frontend-ecommerce/internal/domain"
)

type UserGateway interface {
	Login(ctx context.Context, creds domain.Credentials) (domain.User, error)
	Register(ctx context.Context, reg domain.Registration) (domain.User, error)
	Profile(ctx context.Context) (domain.User, error)
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// Auth owns the session: the signed-in user and their bearer token. The token
// is opaque to this client except for its expiry claim, which is read without
// verification so the session can be dropped once it is stale. Verification is
// the server's job.
type Auth struct {
	mu     sync.RWMutex
	gw     UserGateway
	logger *zap.Logger
	user   *domain.User

	Users Slot[[]domain.User]
}

func NewAuth(gw UserGateway, logger *zap.Logger) *Auth {
	return &Auth{gw: gw, logger: logger}
}

func (a *Auth) Login(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	user, err := a.gw.Login(ctx, creds)
	if err != nil {
		return domain.User{}, err
	}

	a.mu.Lock()
	a.user = &user
	a.mu.Unlock()
	a.logger.Info("session started", zap.String("user_id", user.ID), zap.Bool("admin", user.IsAdmin))
	return user, nil
}

func (a *Auth) Register(ctx context.Context, reg domain.Registration) (domain.User, error) {
	user, err := a.gw.Register(ctx, reg)
	if err != nil {
		return domain.User{}, err
	}

	a.mu.Lock()
	a.user = &user
	a.mu.Unlock()
	return user, nil
}

// Logout drops the session. The cart mirror is untouched: signing out does not
// lose a pending cart.
func (a *Auth) Logout() {
	a.mu.Lock()
	a.user = nil
	a.mu.Unlock()
}

// Current returns the session user, or false when anonymous or expired.
func (a *Auth) Current() (domain.User, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil || tokenExpired(a.user.Token) {
		return domain.User{}, false
	}
	return *a.user, true
}

// Token implements api.TokenFunc.
func (a *Auth) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		return ""
	}
	return a.user.Token
}

func (a *Auth) IsAdmin() bool {
	user, ok := a.Current()
	return ok && user.IsAdmin
}

// RefreshProfile re-fetches the profile, keeping the existing token.
func (a *Auth) RefreshProfile(ctx context.Context) (domain.User, error) {
	profile, err := a.gw.Profile(ctx)
	if err != nil {
		return domain.User{}, err
	}

	a.mu.Lock()
	if a.user != nil {
		profile.Token = a.user.Token
		a.user = &profile
	}
	a.mu.Unlock()
	return profile, nil
}

// UpdateProfile edits the session user's account. Some backends issue a fresh
// token with the updated profile; when the response carries none the existing
// token stays.
func (a *Auth) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (domain.User, error) {
	updated, err := a.gw.UpdateProfile(ctx, update)
	if err != nil {
		return domain.User{}, err
	}

	a.mu.Lock()
	if a.user != nil {
		if updated.Token == "" {
			updated.Token = a.user.Token
		}
		a.user = &updated
	}
	a.mu.Unlock()
	return updated, nil
}

// LoadUsers lists all accounts into the Users slot (admin).
func (a *Auth) LoadUsers(ctx context.Context) ([]domain.User, error) {
	gen := a.Users.Begin()
	users, err := a.gw.ListUsers(ctx)
	if err != nil {
		a.Users.Fail(gen, err)
		return nil, err
	}
	a.Users.Resolve(gen, users)
	return users, nil
}

// RemoveUser deletes an account (admin).
func (a *Auth) RemoveUser(ctx context.Context, id string) error {
	return a.gw.DeleteUser(ctx, id)
}

// tokenExpired reads the exp claim without verifying the signature. A token
// that cannot be parsed or has no expiry is treated as still usable.
func tokenExpired(token string) bool {
	if token == "" {
		return false
	}
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}
