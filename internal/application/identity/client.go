// Package identity is the feature client for the user endpoints: sign-in,
// the operator's own account and user administration.
package identity

import (
	"context"
	"encoding/json"

	"github.com/secondhand/console/internal/domain/session"
	"github.com/secondhand/console/internal/infrastructure/httpclient"
)

var _ session.Authenticator = (*Client)(nil)

// Credentials is the login and registration body.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AddressRequest adds a delivery address to the operator's account.
type AddressRequest struct {
	Consignee    string `json:"consignee" validate:"required"`
	Region       string `json:"region" validate:"required"`
	Detail       string `json:"detail" validate:"required"`
	ContactPhone string `json:"contactPhone" validate:"required"`
	IsDefault    bool   `json:"isDefault"`
}

// UpdateInfoRequest changes contact details. Nil fields are left alone.
type UpdateInfoRequest struct {
	Phone  *string `json:"phone,omitempty"`
	Email  *string `json:"email,omitempty" validate:"omitempty,email"`
	Avatar *string `json:"avatar,omitempty"`
}

// PasswordRequest changes the operator's password.
type PasswordRequest struct {
	OldPassword     string `json:"oldPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

// RoleRequest assigns a role to another user.
type RoleRequest struct {
	TargetUserID int64  `json:"targetUserId" validate:"required"`
	Role         string `json:"role" validate:"required"`
}

// BanRequest bans a user.
type BanRequest struct {
	TargetUserID int64  `json:"targetUserId" validate:"required"`
	BanReason    string `json:"banReason,omitempty"`
}

type unbanRequest struct {
	TargetUserID int64 `json:"targetUserId" validate:"required"`
}

type adminLoginData struct {
	Token string `json:"token"`
}

// Client calls the user endpoints.
type Client struct {
	doer httpclient.Doer
}

// NewClient creates a Client.
func NewClient(doer httpclient.Doer) *Client {
	return &Client{doer: doer}
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, username, password string) error {
	return httpclient.Exec(ctx, c.doer, httpclient.Post("/user/register", Credentials{username, password}))
}

// Login returns the session token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	return httpclient.Call[string](ctx, c.doer, httpclient.Post("/user/login", Credentials{username, password}))
}

// AdminLogin returns the session token from the administrator endpoint,
// which nests it one level deeper.
func (c *Client) AdminLogin(ctx context.Context, username, password string) (string, error) {
	data, err := httpclient.Call[adminLoginData](ctx, c.doer, httpclient.Post("/user/admin", Credentials{username, password}))
	if err != nil {
		return "", err
	}
	return data.Token, nil
}

// GetUserInfo returns the signed-in operator's profile.
func (c *Client) GetUserInfo(ctx context.Context) (*session.Profile, error) {
	return httpclient.Call[*session.Profile](ctx, c.doer, httpclient.Get("/user/info", nil))
}

// UpdateUserInfo changes contact details.
func (c *Client) UpdateUserInfo(ctx context.Context, req UpdateInfoRequest) error {
	return httpclient.Exec(ctx, c.doer, httpclient.Put("/user/info", req))
}

// UpdatePassword changes the password.
func (c *Client) UpdatePassword(ctx context.Context, req PasswordRequest) error {
	return httpclient.Exec(ctx, c.doer, httpclient.Put("/user/password", req))
}

// GetUserRole returns the operator's role record as sent by the backend.
func (c *Client) GetUserRole(ctx context.Context) (json.RawMessage, error) {
	return httpclient.Call[json.RawMessage](ctx, c.doer, httpclient.Get("/user/role", nil))
}

// AddUserAddress adds a delivery address.
func (c *Client) AddUserAddress(ctx context.Context, req AddressRequest) error {
	return httpclient.Exec(ctx, c.doer, httpclient.Post("/user/address", req))
}

// UpdateUserRole assigns a role to another user.
func (c *Client) UpdateUserRole(ctx context.Context, req RoleRequest) error {
	return httpclient.Exec(ctx, c.doer, httpclient.Put("/admin/user/role", req))
}

// BanUser bans a user.
func (c *Client) BanUser(ctx context.Context, req BanRequest) error {
	return httpclient.Exec(ctx, c.doer, httpclient.Put("/admin/user/ban", req))
}

// UnbanUser lifts a ban.
func (c *Client) UnbanUser(ctx context.Context, targetUserID int64) error {
	return httpclient.Exec(ctx, c.doer, httpclient.Put("/admin/user/unban", unbanRequest{targetUserID}))
}
