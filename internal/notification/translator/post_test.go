package translator

import (
	"context"
	"testing"

	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/mapper/mappertest"
	"eurekastreams-backend/internal/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	coordinator1ID int64 = 42
	coordinator2ID int64 = 43
	subscriber1ID  int64 = 111
	subscriber2ID  int64 = 98
)

func postRequest(destinationID int64, destinationType domain.EntityType) *domain.NotificationRequest {
	return &domain.NotificationRequest{
		ActorID:         actorID,
		DestinationID:   destinationID,
		DestinationType: destinationType,
		ActivityID:      activityID,
	}
}

func TestPostPersonStreamTranslator_Translate(t *testing.T) {
	followers := mappertest.New[int64, []int64]()
	followers.Returns(streamOwnerID, []int64{actorID, streamOwnerID, 5, 6, 7})

	batch, err := NewPostPersonStreamTranslator(followers).Translate(context.Background(), postRequest(streamOwnerID, domain.EntityTypePerson))
	require.NoError(t, err)

	assert.Equal(t, map[domain.NotificationType][]int64{
		domain.NotificationPostToPersonalStream: {streamOwnerID},
		domain.NotificationPostToFollowedStream: {5, 6, 7},
	}, batch.Recipients)

	props := batch.Properties
	assert.Len(t, props, 5)
	assert.Equal(t, notification.Placeholder(domain.EntityTypePerson, actorID), props[notification.PropActor])
	assert.Equal(t, notification.Placeholder(domain.EntityTypePerson, streamOwnerID), props[notification.PropStream])
	assert.Equal(t, notification.Alias(notification.PropStream), props[notification.PropSource])
	assert.Equal(t, notification.Placeholder(notification.PlaceholderActivity, activityID), props[notification.PropActivity])
	assert.Equal(t, notification.Literal("#activity/4444"), props[notification.PropURL])
}

func TestPostPersonStreamTranslator_OwnStreamNoFollowers(t *testing.T) {
	followers := mappertest.New[int64, []int64]()
	followers.Returns(actorID, []int64{})

	batch, err := NewPostPersonStreamTranslator(followers).Translate(context.Background(), postRequest(actorID, domain.EntityTypePerson))

	assert.NoError(t, err)
	assert.Nil(t, batch)
}

func TestPostGroupStreamTranslator_NonCoordinator(t *testing.T) {
	coordinators := mappertest.New[int64, []int64]()
	all := mappertest.New[int64, []int64]()
	unrestricted := mappertest.New[int64, []int64]()
	coordinators.Returns(groupID, []int64{coordinator1ID, coordinator2ID})
	unrestricted.Returns(groupID, []int64{subscriber1ID, actorID, subscriber2ID})

	sut := NewPostGroupStreamTranslator(coordinators, all, unrestricted)
	batch, err := sut.Translate(context.Background(), postRequest(groupID, domain.EntityTypeGroup))
	require.NoError(t, err)

	assert.Equal(t, map[domain.NotificationType][]int64{
		domain.NotificationPostToFollowedStream: {subscriber2ID, subscriber1ID},
	}, batch.Recipients)
	assert.Equal(t, notification.Placeholder(domain.EntityTypeGroup, groupID), batch.Properties[notification.PropStream])
	all.AssertNumberOfCalls(t, "Execute", 0)
}

func TestPostGroupStreamTranslator_Coordinator(t *testing.T) {
	coordinators := mappertest.New[int64, []int64]()
	all := mappertest.New[int64, []int64]()
	unrestricted := mappertest.New[int64, []int64]()
	coordinators.Returns(groupID, []int64{coordinator1ID, coordinator2ID})
	all.Returns(groupID, []int64{subscriber1ID, subscriber2ID, coordinator2ID})

	req := postRequest(groupID, domain.EntityTypeGroup)
	req.ActorID = coordinator2ID
	batch, err := NewPostGroupStreamTranslator(coordinators, all, unrestricted).Translate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, []int64{subscriber2ID, subscriber1ID}, batch.Recipients[domain.NotificationPostToFollowedStream])
	unrestricted.AssertNumberOfCalls(t, "Execute", 0)
}

func TestPostGroupStreamTranslator_NoMembers(t *testing.T) {
	coordinators := mappertest.New[int64, []int64]()
	unrestricted := mappertest.New[int64, []int64]()
	coordinators.Returns(groupID, []int64{coordinator1ID})
	unrestricted.Returns(groupID, []int64{})

	sut := NewPostGroupStreamTranslator(coordinators, mappertest.New[int64, []int64](), unrestricted)
	batch, err := sut.Translate(context.Background(), postRequest(groupID, domain.EntityTypeGroup))

	assert.NoError(t, err)
	assert.Nil(t, batch)
}

func TestGroupStreamPostTranslator_Translate(t *testing.T) {
	coordinators := mappertest.New[int64, []int64]()
	unrestricted := mappertest.New[int64, []int64]()
	coordinators.Returns(groupID, []int64{coordinator1ID, actorID})
	unrestricted.Returns(groupID, []int64{coordinator1ID, subscriber1ID, actorID})

	sut := NewGroupStreamPostTranslator(coordinators, unrestricted)
	batch, err := sut.Translate(context.Background(), postRequest(groupID, domain.EntityTypeGroup))
	require.NoError(t, err)

	assert.Equal(t, map[domain.NotificationType][]int64{
		domain.NotificationPostToGroupStream:    {coordinator1ID},
		domain.NotificationPostToFollowedStream: {subscriber1ID},
	}, batch.Recipients)
}

func TestStreamPostTranslator_Routes(t *testing.T) {
	followers := mappertest.New[int64, []int64]()
	followers.Returns(streamOwnerID, []int64{5})
	coordinators := mappertest.New[int64, []int64]()
	unrestricted := mappertest.New[int64, []int64]()
	coordinators.Returns(groupID, []int64{coordinator1ID})
	unrestricted.Returns(groupID, []int64{})

	sut := NewStreamPostTranslator(NewPostPersonStreamTranslator(followers), NewGroupStreamPostTranslator(coordinators, unrestricted))

	batch, err := sut.Translate(context.Background(), postRequest(streamOwnerID, domain.EntityTypePerson))
	require.NoError(t, err)
	assert.Equal(t, []int64{streamOwnerID}, batch.Recipients[domain.NotificationPostToPersonalStream])

	batch, err = sut.Translate(context.Background(), postRequest(groupID, domain.EntityTypeGroup))
	require.NoError(t, err)
	assert.Equal(t, []int64{coordinator1ID}, batch.Recipients[domain.NotificationPostToGroupStream])

	_, err = sut.Translate(context.Background(), postRequest(1, domain.EntityTypeResource))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
