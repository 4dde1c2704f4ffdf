// Package session holds the signed-in operator: the bearer token, the cached
// profile and the flows that change them.
package session

import "github.com/shopspring/decimal"

// DefaultAdminRole is the role string the backend gives administrators.
const DefaultAdminRole = "系统管理员"

// Profile is the operator record returned by the user info endpoint.
type Profile struct {
	UserID     int64           `json:"userId"`
	Username   string          `json:"username"`
	Phone      *string         `json:"phone"`
	Email      *string         `json:"email"`
	Avatar     *string         `json:"avatar"`
	Role       string          `json:"role"`
	Balance    decimal.Decimal `json:"balance"`
	IsLocked   bool            `json:"isLocked"`
	CreateTime string          `json:"createTime"`
}

// Snapshot is a point-in-time copy of the session.
type Snapshot struct {
	Token   string   `json:"token,omitempty"`
	Profile *Profile `json:"profile,omitempty"`
}

// LoggedIn reports whether the snapshot carries a token.
func (s Snapshot) LoggedIn() bool {
	return s.Token != ""
}
