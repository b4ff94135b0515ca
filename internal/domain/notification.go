package domain

import "time"

// NotificationType is the kind of message a recipient receives.
type NotificationType string

const (
	NotificationPostToPersonalStream       NotificationType = "POST_TO_PERSONAL_STREAM"
	NotificationPostToFollowedStream       NotificationType = "POST_TO_FOLLOWED_STREAM"
	NotificationPostToGroupStream          NotificationType = "POST_TO_GROUP_STREAM"
	NotificationCommentToPersonalStream    NotificationType = "COMMENT_TO_PERSONAL_STREAM"
	NotificationCommentToPersonalPost      NotificationType = "COMMENT_TO_PERSONAL_POST"
	NotificationCommentToCommentedPost     NotificationType = "COMMENT_TO_COMMENTED_POST"
	NotificationCommentToSavedPost         NotificationType = "COMMENT_TO_SAVED_POST"
	NotificationCommentToGroupStream       NotificationType = "COMMENT_TO_GROUP_STREAM"
	NotificationFollowPerson               NotificationType = "FOLLOW_PERSON"
	NotificationFollowGroup                NotificationType = "FOLLOW_GROUP"
	NotificationLikeActivity               NotificationType = "LIKE_ACTIVITY"
	NotificationFlagActivity               NotificationType = "FLAG_ACTIVITY"
	NotificationRequestNewGroup            NotificationType = "REQUEST_NEW_GROUP"
	NotificationRequestNewGroupApproved    NotificationType = "REQUEST_NEW_GROUP_APPROVED"
	NotificationRequestNewGroupDenied      NotificationType = "REQUEST_NEW_GROUP_DENIED"
	NotificationRequestGroupAccess         NotificationType = "REQUEST_GROUP_ACCESS"
	NotificationRequestGroupAccessApproved NotificationType = "REQUEST_GROUP_ACCESS_APPROVED"
	NotificationRequestGroupAccessDenied   NotificationType = "REQUEST_GROUP_ACCESS_DENIED"
	NotificationPassThrough                NotificationType = "PASS_THROUGH"
)

// Category groups notification types for per-user opt-out preferences.
type Category string

const (
	CategoryNone                 Category = ""
	CategoryPostToPersonalStream Category = "POST_TO_PERSONAL_STREAM"
	CategoryPostToFollowedStream Category = "POST_TO_FOLLOWED_STREAM"
	CategoryComment              Category = "COMMENT"
	CategoryLike                 Category = "LIKE"
	CategoryFollowPerson         Category = "FOLLOW_PERSON"
	CategoryFollowGroup          Category = "FOLLOW_GROUP"
	CategoryAdmin                Category = "ADMIN"
)

var notificationCategories = map[NotificationType]Category{
	NotificationPostToPersonalStream:    CategoryPostToPersonalStream,
	NotificationPostToFollowedStream:    CategoryPostToFollowedStream,
	NotificationPostToGroupStream:       CategoryPostToFollowedStream,
	NotificationCommentToPersonalStream: CategoryComment,
	NotificationCommentToPersonalPost:   CategoryComment,
	NotificationCommentToCommentedPost:  CategoryComment,
	NotificationCommentToSavedPost:      CategoryComment,
	NotificationCommentToGroupStream:    CategoryComment,
	NotificationLikeActivity:            CategoryLike,
	NotificationFollowPerson:            CategoryFollowPerson,
	NotificationFollowGroup:             CategoryFollowGroup,
	NotificationFlagActivity:            CategoryAdmin,
	NotificationRequestNewGroup:         CategoryAdmin,
}

// Category returns the preference category of the type. Types without a category
// cannot be opted out of.
func (t NotificationType) Category() Category {
	return notificationCategories[t]
}

// RequestType names the domain event a NotificationRequest describes.
type RequestType string

const (
	RequestComment             RequestType = "COMMENT"
	RequestGroupComment        RequestType = "GROUP_COMMENT"
	RequestFollowPerson        RequestType = "FOLLOW_PERSON"
	RequestFollowGroup         RequestType = "FOLLOW_GROUP"
	RequestFollower            RequestType = "FOLLOWER"
	RequestGroupFollower       RequestType = "GROUP_FOLLOWER"
	RequestLikeActivity        RequestType = "LIKE_ACTIVITY"
	RequestPostPersonStream    RequestType = "POST_PERSON_STREAM"
	RequestPostGroupStream     RequestType = "POST_GROUP_STREAM"
	RequestStreamPost          RequestType = "STREAM_POST"
	RequestGroupStreamPost     RequestType = "GROUP_STREAM_POST"
	RequestGroupAccess         RequestType = "REQUEST_GROUP_ACCESS"
	RequestNewGroup            RequestType = "REQUEST_NEW_GROUP"
	RequestNewGroupApproved    RequestType = "REQUEST_NEW_GROUP_APPROVED"
	RequestNewGroupDenied      RequestType = "REQUEST_NEW_GROUP_DENIED"
	RequestGroupAccessApproved RequestType = "REQUEST_GROUP_ACCESS_APPROVED"
	RequestGroupAccessDenied   RequestType = "REQUEST_GROUP_ACCESS_DENIED"
	RequestPrebuilt            RequestType = "PREBUILT"
	RequestFlagActivity        RequestType = "FLAG_ACTIVITY"
)

// NotificationRequest describes "who did what to what". Zero ids mean "not set".
type NotificationRequest struct {
	Type            RequestType `json:"type"`
	ActorID         int64       `json:"actor_id"`
	DestinationID   int64       `json:"destination_id"`
	DestinationType EntityType  `json:"destination_type,omitempty"`
	ActivityID      int64       `json:"activity_id,omitempty"`
	CommentID       int64       `json:"comment_id,omitempty"`
	RequestorID     int64       `json:"requestor_id,omitempty"`  // Person whose group access request was answered
	GroupName       string      `json:"group_name,omitempty"`    // For groups that no longer exist
	RecipientIDs    []int64     `json:"recipient_ids,omitempty"` // Captured before the group was removed
	Message         string      `json:"message,omitempty"`
	URL             string      `json:"url,omitempty"`
	HighPriority    bool        `json:"high_priority,omitempty"`
}

// NotifierType names a delivery channel.
type NotifierType string

const (
	NotifierEmail NotifierType = "EMAIL"
	NotifierInApp NotifierType = "IN_APP"
	NotifierPush  NotifierType = "PUSH"
)

// NotificationFilterPreference records that a person opted out of a category on a
// notifier.
type NotificationFilterPreference struct {
	PersonID int64        `json:"person_id"`
	Notifier NotifierType `json:"notifier"`
	Category Category     `json:"category"`
}

// InAppNotification is the stored form of a notification shown in the web client.
type InAppNotification struct {
	ID           int64            `json:"id"`
	EventID      string           `json:"event_id"`
	RecipientID  int64            `json:"recipient_id"`
	Type         NotificationType `json:"type"`
	Message      string           `json:"message"`
	URL          string           `json:"url,omitempty"`
	HighPriority bool             `json:"high_priority"`
	IsRead       bool             `json:"is_read"`
	CreatedOn    time.Time        `json:"created_on"`

	// Number of events folded into this notification; 1 when not aggregated.
	AggregationCount int32 `json:"aggregation_count"`
}
