package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Lamecke/frontend-ecommerce/internal/domain"
)

// Login exchanges credentials for a session user with a bearer token.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	var user domain.User
	err := c.do(ctx, http.MethodPost, "/users/login", creds, &user, "invalid email or password")
	return user, err
}

// Register creates an account and logs it in.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (domain.User, error) {
	var user domain.User
	err := c.do(ctx, http.MethodPost, "/users", reg, &user, "failed to register")
	return user, err
}

// Profile fetches the session user's profile.
func (c *Client) Profile(ctx context.Context) (domain.User, error) {
	var user domain.User
	err := c.do(ctx, http.MethodGet, "/users/profile", nil, &user, "failed to load profile")
	return user, err
}

// UpdateProfile edits the session user's profile.
func (c *Client) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (domain.User, error) {
	var user domain.User
	err := c.do(ctx, http.MethodPut, "/users/profile", update, &user, "failed to update profile")
	return user, err
}

// ListUsers lists all accounts. Admin only.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := c.do(ctx, http.MethodGet, "/users", nil, &users, "failed to load users")
	return users, err
}

// DeleteUser removes an account. Admin only.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil, "failed to delete user")
}
