package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleSystemAdmin Role = "SYSTEM_ADMIN"
)

// PersonModelView is the read-optimized projection of a person. Pointer fields are
// nil when the loading query did not select them, so an unloaded value is never
// mistaken for (or serialized as) a real one.
type PersonModelView struct {
	ID             int64  `json:"id"`
	AccountID      string `json:"account_id"`
	Commentable    bool   `json:"commentable"`
	StreamPostable bool   `json:"stream_postable"`
	AccountLocked  bool   `json:"account_locked"`
	Roles          []Role `json:"roles,omitempty"`

	DisplayName          *string    `json:"display_name,omitempty"`
	Email                *string    `json:"email,omitempty"`
	Title                *string    `json:"title,omitempty"`
	AvatarID             *string    `json:"avatar_id,omitempty"`
	ParentOrganizationID *int64     `json:"parent_organization_id,omitempty"`
	FollowersCount       *int       `json:"followers_count,omitempty"`
	FollowingCount       *int       `json:"following_count,omitempty"`
	DateAdded            *time.Time `json:"date_added,omitempty"`
}

// MatchesAccount reports whether accountID names this person, ignoring case and
// surrounding whitespace.
func (p *PersonModelView) MatchesAccount(accountID string) bool {
	return p != nil && NormalizeKey(p.AccountID) == NormalizeKey(accountID)
}

// HasRole reports whether the person holds the role.
func (p *PersonModelView) HasRole(role Role) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// NormalizeKey lower-cases and trims an account id or group short name.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// StringValue returns the pointed-to string, or "" when it was not loaded.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
