package repository

import (
	"context"
	"time"

	"eurekastreams-backend/internal/domain"
)

// Lookups that return a single entity yield (nil, nil) when it does not exist.
// Id lists are ordered by id descending.

type PersonRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.PersonModelView, error)
	GetByAccountIDs(ctx context.Context, accountIDs []string) ([]*domain.PersonModelView, error)
	GetByAccountID(ctx context.Context, accountID string) (*domain.PersonModelView, error)
	GetFollowerIDs(ctx context.Context, personID int64) ([]int64, error)
	GetSystemAdminIDs(ctx context.Context) ([]int64, error)
}

type GroupRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.DomainGroupModelView, error)
	GetByShortNames(ctx context.Context, shortNames []string) ([]*domain.DomainGroupModelView, error)
	GetCoordinatorIDs(ctx context.Context, groupID int64) ([]int64, error)

	// Followers who asked to hear about new activity in the group stream.
	GetSubscriberIDs(ctx context.Context, groupID int64) ([]int64, error)
	// Subscribers who also want posts by non-coordinators.
	GetUnrestrictedSubscriberIDs(ctx context.Context, groupID int64) ([]int64, error)
}

// CoordinatorRepository answers coordinator questions up the organization tree.
type CoordinatorRepository interface {
	HasGroupCoordinatorAccessRecursively(ctx context.Context, personID, groupID int64) (bool, error)
	IsOrgCoordinatorRecursively(ctx context.Context, personID, orgID int64) (bool, error)
}

type ActivityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ActivityDTO, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.ActivityDTO, error)
	GetCommentByID(ctx context.Context, id int64) (*domain.CommentDTO, error)
	GetCommenterIDs(ctx context.Context, activityID int64) ([]int64, error)
	GetSaverIDs(ctx context.Context, activityID int64) ([]int64, error)
	GetStarredActivityIDs(ctx context.Context, personID int64) ([]int64, error)
	GetLikedActivityIDs(ctx context.Context, personID int64) ([]int64, error)
	GetLikerIDs(ctx context.Context, activityIDs []int64) (map[int64][]int64, error)
	GetStreamActivityIDs(ctx context.Context, stream domain.StreamKey) ([]int64, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.InAppNotification) error
	// FindUnread returns the recipient's newest unread notification of the type
	// pointing at url, or nil.
	FindUnread(ctx context.Context, recipientID int64, t domain.NotificationType, url string) (*domain.InAppNotification, error)
	// Update rewrites the message, priority, event, aggregation count and
	// timestamp of an existing notification.
	Update(ctx context.Context, n *domain.InAppNotification) error
	List(ctx context.Context, recipientID int64, limit, offset int32) ([]domain.InAppNotification, int32, error)
	MarkAsRead(ctx context.Context, id, recipientID int64) error
	CountUnread(ctx context.Context, recipientID int64) (int32, error)
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type PreferenceRepository interface {
	GetByPersonIDs(ctx context.Context, personIDs []int64) ([]domain.NotificationFilterPreference, error)
}

type DeviceRepository interface {
	GetPushTokens(ctx context.Context, personIDs []int64) (map[int64][]string, error)
}
