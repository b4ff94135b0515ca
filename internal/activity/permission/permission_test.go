package permission

import (
	"context"
	"errors"
	"testing"

	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/mapper"
	"eurekastreams-backend/internal/mapper/mappertest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCoordinatorAccess struct {
	mock.Mock
}

func (m *MockCoordinatorAccess) HasGroupCoordinatorAccessRecursively(ctx context.Context, personID, groupID int64) (bool, error) {
	args := m.Called(ctx, personID, groupID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCoordinatorAccess) IsOrgCoordinatorRecursively(ctx context.Context, personID, orgID int64) (bool, error) {
	args := m.Called(ctx, personID, orgID)
	return args.Bool(0), args.Error(1)
}

const (
	viewerID int64 = 99
	groupID  int64 = 38982
	orgID    int64 = 7
)

func viewer() *domain.PersonModelView {
	return &domain.PersonModelView{ID: viewerID, AccountID: "smithers"}
}

func activityOn(actor, stream *domain.StreamEntityDTO) *domain.ActivityDTO {
	return &domain.ActivityDTO{ID: 1, Actor: actor, DestinationStream: stream}
}

func person(id int64, account string) *domain.StreamEntityDTO {
	return &domain.StreamEntityDTO{ID: id, Type: domain.EntityTypePerson, UniqueID: account}
}

func group() *domain.StreamEntityDTO {
	return &domain.StreamEntityDTO{ID: groupID, Type: domain.EntityTypeGroup, UniqueID: "groupShortName"}
}

func TestActivityDeleteStrategy(t *testing.T) {
	tests := []struct {
		name        string
		viewer      *domain.PersonModelView
		activity    *domain.ActivityDTO
		coordinator bool
		admins      []int64
		expected    bool
	}{
		{"no viewer", nil, activityOn(person(99, "smithers"), person(99, "smithers")), false, nil, false},
		{"author", viewer(), activityOn(person(99, " SMITHERS "), person(5, "mrburns")), false, nil, true},
		{"stream owner", viewer(), activityOn(person(5, "homer"), person(99, "smithers")), false, nil, true},
		{"group coordinator", viewer(), activityOn(person(5, "homer"), group()), true, nil, true},
		{"system admin", viewer(), activityOn(person(5, "homer"), person(6, "mrburns")), false, []int64{1, viewerID}, true},
		{"nobody", viewer(), activityOn(person(5, "homer"), group()), false, []int64{1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			access := new(MockCoordinatorAccess)
			access.On("HasGroupCoordinatorAccessRecursively", mock.Anything, viewerID, groupID).Return(tt.coordinator, nil)
			admins := mappertest.New[mapper.NoKey, []int64]()
			admins.Returns(mapper.NoKey{}, tt.admins)

			sut := NewActivityDeleteStrategy(access, admins)
			require.NoError(t, sut.Execute(context.Background(), tt.viewer, tt.activity))
			assert.Equal(t, tt.expected, tt.activity.Deletable)
		})
	}
}

func TestActivityDeleteStrategy_SystemAdminRoleSkipsLookup(t *testing.T) {
	admins := mappertest.New[mapper.NoKey, []int64]()
	v := viewer()
	v.Roles = []domain.Role{domain.RoleSystemAdmin}
	activity := activityOn(person(5, "homer"), person(6, "mrburns"))

	sut := NewActivityDeleteStrategy(new(MockCoordinatorAccess), admins)
	require.NoError(t, sut.Execute(context.Background(), v, activity))

	assert.True(t, activity.Deletable)
	admins.AssertNumberOfCalls(t, "Execute", 0)
}

func TestActivityDeleteStrategy_AccessCheckFails(t *testing.T) {
	boom := errors.New("db down")
	access := new(MockCoordinatorAccess)
	access.On("HasGroupCoordinatorAccessRecursively", mock.Anything, viewerID, groupID).Return(false, boom)

	sut := NewActivityDeleteStrategy(access, mappertest.New[mapper.NoKey, []int64]())
	err := sut.Execute(context.Background(), viewer(), activityOn(person(5, "homer"), group()))

	assert.ErrorIs(t, err, boom)
}

func comments() []*domain.CommentDTO {
	return []*domain.CommentDTO{{ID: 1, AuthorID: viewerID}, {ID: 2, AuthorID: 5}}
}

func TestCommentDeleteStrategy_NoViewer(t *testing.T) {
	cs := comments()
	cs[0].Deletable = true

	sut := NewCommentDeleteStrategy(new(MockCoordinatorAccess), mappertest.New[mapper.NoKey, []int64](), mappertest.New[string, *domain.PersonModelView]())
	require.NoError(t, sut.Execute(context.Background(), nil, activityOn(nil, group()), cs))

	assert.False(t, cs[0].Deletable)
	assert.False(t, cs[1].Deletable)
}

func TestCommentDeleteStrategy_StreamOwner(t *testing.T) {
	cs := comments()

	sut := NewCommentDeleteStrategy(new(MockCoordinatorAccess), mappertest.New[mapper.NoKey, []int64](), mappertest.New[string, *domain.PersonModelView]())
	require.NoError(t, sut.Execute(context.Background(), viewer(), activityOn(nil, person(viewerID, "Smithers")), cs))

	assert.True(t, cs[0].Deletable)
	assert.True(t, cs[1].Deletable)
}

func TestCommentDeleteStrategy_GroupCoordinator(t *testing.T) {
	cs := comments()
	access := new(MockCoordinatorAccess)
	access.On("HasGroupCoordinatorAccessRecursively", mock.Anything, viewerID, groupID).Return(true, nil)

	sut := NewCommentDeleteStrategy(access, mappertest.New[mapper.NoKey, []int64](), mappertest.New[string, *domain.PersonModelView]())
	require.NoError(t, sut.Execute(context.Background(), viewer(), activityOn(nil, group()), cs))

	assert.True(t, cs[1].Deletable)
	access.AssertExpectations(t)
}

func TestCommentDeleteStrategy_OrgCoordinator(t *testing.T) {
	cs := comments()
	parent := orgID
	owners := mappertest.New[string, *domain.PersonModelView]()
	owners.Returns("mrburns", &domain.PersonModelView{ID: 6, AccountID: "mrburns", ParentOrganizationID: &parent})
	access := new(MockCoordinatorAccess)
	access.On("IsOrgCoordinatorRecursively", mock.Anything, viewerID, orgID).Return(true, nil)

	sut := NewCommentDeleteStrategy(access, mappertest.New[mapper.NoKey, []int64](), owners)
	require.NoError(t, sut.Execute(context.Background(), viewer(), activityOn(nil, person(6, "MrBurns")), cs))

	assert.True(t, cs[0].Deletable)
	assert.True(t, cs[1].Deletable)
}

func TestCommentDeleteStrategy_AuthorOnly(t *testing.T) {
	cs := comments()
	owners := mappertest.New[string, *domain.PersonModelView]()
	owners.Returns("mrburns", &domain.PersonModelView{ID: 6, AccountID: "mrburns"})
	admins := mappertest.New[mapper.NoKey, []int64]()
	admins.Returns(mapper.NoKey{}, []int64{1})

	sut := NewCommentDeleteStrategy(new(MockCoordinatorAccess), admins, owners)
	require.NoError(t, sut.Execute(context.Background(), viewer(), activityOn(nil, person(6, "mrburns")), cs))

	assert.True(t, cs[0].Deletable)
	assert.False(t, cs[1].Deletable)
}
