package translator

import (
	"context"
	"testing"

	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/mapper/mappertest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func likeRequest() *domain.NotificationRequest {
	return &domain.NotificationRequest{Type: domain.RequestLikeActivity, ActorID: actorID, ActivityID: activityID}
}

func TestLikeTranslator_Translate(t *testing.T) {
	activities := mappertest.New[int64, *domain.ActivityDTO]()
	activities.Returns(activityID, personalActivity())

	batch, err := NewLikeTranslator(activities).Translate(context.Background(), likeRequest())
	require.NoError(t, err)

	assert.Equal(t, map[domain.NotificationType][]int64{
		domain.NotificationLikeActivity: {streamOwnerID},
	}, batch.Recipients)
}

func TestLikeTranslator_Reshare(t *testing.T) {
	activity := personalActivity()
	activity.OriginalActor = &domain.StreamEntityDTO{ID: 3333, Type: domain.EntityTypePerson}
	activities := mappertest.New[int64, *domain.ActivityDTO]()
	activities.Returns(activityID, activity)

	batch, err := NewLikeTranslator(activities).Translate(context.Background(), likeRequest())
	require.NoError(t, err)

	assert.Equal(t, []int64{streamOwnerID, 3333}, batch.Recipients[domain.NotificationLikeActivity])
}

func TestLikeTranslator_ResharedByActor(t *testing.T) {
	activity := personalActivity()
	activity.Actor.ID = actorID
	activity.OriginalActor = &domain.StreamEntityDTO{ID: 3333, Type: domain.EntityTypePerson}
	activities := mappertest.New[int64, *domain.ActivityDTO]()
	activities.Returns(activityID, activity)

	batch, err := NewLikeTranslator(activities).Translate(context.Background(), likeRequest())
	require.NoError(t, err)

	assert.Equal(t, []int64{3333}, batch.Recipients[domain.NotificationLikeActivity])
}

func TestLikeTranslator_SelfLike(t *testing.T) {
	activity := personalActivity()
	activity.Actor.ID = actorID
	activities := mappertest.New[int64, *domain.ActivityDTO]()
	activities.Returns(activityID, activity)

	batch, err := NewLikeTranslator(activities).Translate(context.Background(), likeRequest())
	require.NoError(t, err)

	require.NotNil(t, batch)
	assert.True(t, batch.IsEmpty())
}

func TestLikeTranslator_GroupAuthor(t *testing.T) {
	activity := personalActivity()
	activity.Actor = &domain.StreamEntityDTO{ID: groupID, Type: domain.EntityTypeGroup}
	activities := mappertest.New[int64, *domain.ActivityDTO]()
	activities.Returns(activityID, activity)

	batch, err := NewLikeTranslator(activities).Translate(context.Background(), likeRequest())
	require.NoError(t, err)

	require.NotNil(t, batch)
	assert.True(t, batch.IsEmpty())
}

func TestLikeTranslator_MissingActivity(t *testing.T) {
	activities := mappertest.New[int64, *domain.ActivityDTO]()
	activities.Returns(activityID, nil)

	batch, err := NewLikeTranslator(activities).Translate(context.Background(), likeRequest())

	assert.NoError(t, err)
	assert.Nil(t, batch)
}
