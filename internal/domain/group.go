package domain

import "time"

type DomainGroupModelView struct {
	ID             int64  `json:"id"`
	ShortName      string `json:"short_name"`
	Name           string `json:"name"`
	Public         bool   `json:"public"`
	Commentable    bool   `json:"commentable"`
	StreamPostable bool   `json:"stream_postable"`
	Pending        bool   `json:"pending"`

	Description          *string    `json:"description,omitempty"`
	AvatarID             *string    `json:"avatar_id,omitempty"`
	ParentOrganizationID *int64     `json:"parent_organization_id,omitempty"`
	FollowersCount       *int       `json:"followers_count,omitempty"`
	CreatedByAccountID   *string    `json:"created_by_account_id,omitempty"`
	DateAdded            *time.Time `json:"date_added,omitempty"`
}
