package translator

import (
	"context"
	"testing"

	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/mapper"
	"eurekastreams-backend/internal/mapper/mappertest"
	"eurekastreams-backend/internal/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreBuiltNotificationTranslator_Translate(t *testing.T) {
	req := &domain.NotificationRequest{
		Type:          domain.RequestPrebuilt,
		ActorID:       actorID,
		DestinationID: actorID,
		Message:       "Your export is ready",
		URL:           "http://example.com/export",
		HighPriority:  true,
	}

	batch, err := NewPreBuiltNotificationTranslator().Translate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, map[domain.NotificationType][]int64{
		domain.NotificationPassThrough: {actorID},
	}, batch.Recipients)
	assert.Equal(t, notification.Literal("Your export is ready"), batch.Properties[notification.PropMessage])
	assert.Equal(t, notification.Literal("http://example.com/export"), batch.Properties[notification.PropURL])
	assert.Equal(t, notification.Literal(true), batch.Properties[notification.PropHighPriority])
}

func TestPreBuiltNotificationTranslator_NoRecipient(t *testing.T) {
	batch, err := NewPreBuiltNotificationTranslator().Translate(context.Background(), &domain.NotificationRequest{Message: "hi"})
	assert.NoError(t, err)
	assert.Nil(t, batch)
}

func TestFlagTranslator_Translate(t *testing.T) {
	activity := personalActivity()
	activities := mappertest.New[int64, *domain.ActivityDTO]()
	activities.Returns(activityID, activity)
	admins := mappertest.New[mapper.NoKey, []int64]()
	admins.Returns(mapper.NoKey{}, []int64{3, 1, actorID})

	batch, err := NewFlagTranslator(activities, admins).Translate(context.Background(), likeRequest())
	require.NoError(t, err)

	assert.Equal(t, map[domain.NotificationType][]int64{
		domain.NotificationFlagActivity: {1, 3},
	}, batch.Recipients)
	assert.Equal(t, notification.Literal(activity), batch.Properties[notification.PropActivity])
	assert.Equal(t, notification.Placeholder(domain.EntityTypePerson, streamOwnerID), batch.Properties[notification.PropStream])
}

func TestFlagTranslator_MissingActivity(t *testing.T) {
	activities := mappertest.New[int64, *domain.ActivityDTO]()
	activities.Returns(activityID, nil)
	admins := mappertest.New[mapper.NoKey, []int64]()

	batch, err := NewFlagTranslator(activities, admins).Translate(context.Background(), likeRequest())
	assert.NoError(t, err)
	assert.Nil(t, batch)
	admins.AssertNumberOfCalls(t, "Execute", 0)
}

func TestNewRegistry_CoversEveryRequestType(t *testing.T) {
	registry := NewRegistry(Mappers{})

	for _, rt := range []domain.RequestType{
		domain.RequestComment, domain.RequestGroupComment, domain.RequestFollowPerson,
		domain.RequestFollowGroup, domain.RequestFollower, domain.RequestGroupFollower,
		domain.RequestLikeActivity, domain.RequestPostPersonStream, domain.RequestPostGroupStream,
		domain.RequestStreamPost, domain.RequestGroupStreamPost, domain.RequestGroupAccess,
		domain.RequestNewGroup, domain.RequestNewGroupApproved, domain.RequestNewGroupDenied,
		domain.RequestGroupAccessApproved, domain.RequestGroupAccessDenied, domain.RequestPrebuilt,
		domain.RequestFlagActivity,
	} {
		_, ok := registry.Lookup(rt)
		assert.True(t, ok, "no translator for %s", rt)
	}

	_, ok := registry.Lookup("UNKNOWN")
	assert.False(t, ok)
}
