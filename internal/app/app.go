// Package app assembles services from the PostgreSQL store.
package app

import (
	"context"
	"time"

	"eurekastreams-backend/internal/activity/filter"
	"eurekastreams-backend/internal/activity/permission"
	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/mapper"
	"eurekastreams-backend/internal/notification/translator"
	"eurekastreams-backend/internal/notifier"
	"eurekastreams-backend/internal/repository/postgres"
	"eurekastreams-backend/internal/service"
)

func systemAdmins(store *postgres.Store) mapper.DomainMapper[mapper.NoKey, []int64] {
	return mapper.Func[mapper.NoKey, []int64](func(ctx context.Context, _ mapper.NoKey) ([]int64, error) {
		return store.GetSystemAdminIDs(ctx)
	})
}

func peopleByID(store *postgres.Store) mapper.DomainMapper[[]int64, []*domain.PersonModelView] {
	return mapper.Func[[]int64, []*domain.PersonModelView](store.PersonRepository.GetByIDs)
}

// TranslatorMappers binds every translator lookup to the store.
func TranslatorMappers(store *postgres.Store) translator.Mappers {
	return translator.Mappers{
		Comments:                mapper.Func[int64, *domain.CommentDTO](store.GetCommentByID),
		Activities:              mapper.Func[int64, *domain.ActivityDTO](store.ActivityRepository.GetByID),
		Groups:                  mapper.Func[int64, *domain.DomainGroupModelView](store.GroupRepository.GetByID),
		Commenters:              mapper.Func[int64, []int64](store.GetCommenterIDs),
		Savers:                  mapper.Func[int64, []int64](store.GetSaverIDs),
		Followers:               mapper.Func[int64, []int64](store.GetFollowerIDs),
		Coordinators:            mapper.Func[int64, []int64](store.GetCoordinatorIDs),
		GroupSubscribers:        mapper.Func[int64, []int64](store.GetSubscriberIDs),
		UnrestrictedSubscribers: mapper.Func[int64, []int64](store.GetUnrestrictedSubscriberIDs),
		SystemAdmins:            systemAdmins(store),
	}
}

// NewNotificationService wires translation, placeholder loading and preference
// filtering to the store. notifiers may be empty when only the in-app store is
// maintained.
func NewNotificationService(store *postgres.Store, notifiers map[domain.NotifierType]notifier.Notifier) service.NotificationService {
	m := TranslatorMappers(store)
	return service.NewNotificationService(
		translator.NewRegistry(m),
		service.NewPlaceholderLoader(peopleByID(store), m.Groups, m.Activities),
		peopleByID(store),
		mapper.Func[[]int64, []domain.NotificationFilterPreference](store.PreferenceRepository.GetByPersonIDs),
		notifiers,
		store.NotificationRepository,
	)
}

// NewFilterChain assembles the read path filters in their default order.
func NewFilterChain(store *postgres.Store, likerLimit int, now func() time.Time) (*filter.Chain, error) {
	people := peopleByID(store)
	admins := systemAdmins(store)
	peopleByAccount := mapper.Func[[]string, []*domain.PersonModelView](store.GetByAccountIDs)
	groupsByShortName := mapper.Func[[]string, []*domain.DomainGroupModelView](store.GetByShortNames)

	return filter.NewDefaultChain(map[string]filter.Filter{
		filter.StageIsAuthorLocked:        filter.NewIsAuthorLockedFilter(peopleByAccount),
		filter.StageIsCommentAuthorLocked: filter.NewIsCommentAuthorLockedFilter(people),
		filter.StageCanComment:            filter.NewCanCommentFilter(peopleByAccount, groupsByShortName, store.CoordinatorRepository),
		filter.StageCanShare:              filter.NewCanShareFilter(groupsByShortName),
		filter.StageDeletability: filter.NewDeletabilityFilter(
			permission.NewActivityDeleteStrategy(store.CoordinatorRepository, admins),
			permission.NewCommentDeleteStrategy(
				store.CoordinatorRepository,
				admins,
				mapper.Func[string, *domain.PersonModelView](store.GetByAccountID),
			),
		),
		filter.StageLikeData: filter.NewLikeDataFilter(
			mapper.Func[int64, []int64](store.GetLikedActivityIDs),
			mapper.Func[[]int64, map[int64][]int64](store.GetLikerIDs),
			people,
			likerLimit,
		),
		filter.StageSavedData:      filter.NewSavedDataFilter(mapper.Func[int64, []int64](store.GetStarredActivityIDs)),
		filter.StageServerDateTime: filter.NewServerDateTimeFilter(now),
	})
}

// NewActivityService serves filtered activities and streams from the store.
func NewActivityService(store *postgres.Store, likerLimit int) (service.ActivityService, error) {
	chain, err := NewFilterChain(store, likerLimit, time.Now)
	if err != nil {
		return nil, err
	}
	return service.NewActivityService(
		mapper.Func[[]int64, []*domain.ActivityDTO](store.ActivityRepository.GetByIDs),
		mapper.Func[domain.StreamKey, []int64](store.GetStreamActivityIDs),
		mapper.Func[int64, []int64](store.GetStarredActivityIDs),
		chain,
	), nil
}
