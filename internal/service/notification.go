package service

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/logger"
	"eurekastreams-backend/internal/mapper"
	"eurekastreams-backend/internal/metrics"
	"eurekastreams-backend/internal/notification"
	"eurekastreams-backend/internal/notification/translator"
	"eurekastreams-backend/internal/notifier"
	"eurekastreams-backend/internal/repository"
)

type notificationService struct {
	translators translator.Registry
	loader      notification.PlaceholderLoader
	people      mapper.DomainMapper[[]int64, []*domain.PersonModelView]
	preferences mapper.DomainMapper[[]int64, []domain.NotificationFilterPreference]
	notifiers   map[domain.NotifierType]notifier.Notifier
	noteRepo    repository.NotificationRepository
	now         func() time.Time
}

func NewNotificationService(
	translators translator.Registry,
	loader notification.PlaceholderLoader,
	people mapper.DomainMapper[[]int64, []*domain.PersonModelView],
	preferences mapper.DomainMapper[[]int64, []domain.NotificationFilterPreference],
	notifiers map[domain.NotifierType]notifier.Notifier,
	noteRepo repository.NotificationRepository,
) NotificationService {
	return &notificationService{
		translators: translators,
		loader:      loader,
		people:      people,
		preferences: preferences,
		notifiers:   notifiers,
		noteRepo:    noteRepo,
		now:         time.Now,
	}
}

func (s *notificationService) CreateNotifications(ctx context.Context, req *domain.NotificationRequest) (bool, error) {
	logger.EnterMethod("notificationService.CreateNotifications", "type", req.Type, "actorID", req.ActorID, "destinationID", req.DestinationID, "activityID", req.ActivityID)
	start := time.Now()
	defer func() {
		metrics.DispatchDuration.WithLabelValues(string(req.Type)).Observe(time.Since(start).Seconds())
	}()

	tr, ok := s.translators.Lookup(req.Type)
	if !ok {
		logger.Info("Notifications disabled for request type", "type", req.Type)
		metrics.RequestsTranslated.WithLabelValues(string(req.Type), metrics.ResultDisabled).Inc()
		logger.ExitMethod("notificationService.CreateNotifications", "enabled", false)
		return false, nil
	}

	batch, err := tr.Translate(ctx, req)
	if err != nil {
		metrics.RequestsTranslated.WithLabelValues(string(req.Type), metrics.ResultError).Inc()
		logger.ExitMethodWithError("notificationService.CreateNotifications", err, "type", req.Type)
		return false, fmt.Errorf("translate %s request: %w", req.Type, err)
	}
	if batch == nil || batch.IsEmpty() {
		metrics.RequestsTranslated.WithLabelValues(string(req.Type), metrics.ResultNone).Inc()
		logger.ExitMethod("notificationService.CreateNotifications", "recipients", 0)
		return true, nil
	}
	metrics.RequestsTranslated.WithLabelValues(string(req.Type), metrics.ResultBatch).Inc()

	if err := s.dispatch(ctx, batch); err != nil {
		logger.ExitMethodWithError("notificationService.CreateNotifications", err, "type", req.Type)
		return false, err
	}
	logger.ExitMethod("notificationService.CreateNotifications", "types", len(batch.Recipients))
	return true, nil
}

// dispatch sends each notification type of the batch through every notifier, to
// the recipients who have not opted out of its category on that notifier. A
// failing notifier does not stop the others.
func (s *notificationService) dispatch(ctx context.Context, batch *notification.Batch) error {
	properties, err := batch.Properties.Resolve(ctx, s.loader)
	if err != nil {
		return fmt.Errorf("resolve notification properties: %w", err)
	}

	recipients := batch.AllRecipients()
	people, err := s.people.Execute(ctx, recipients)
	if err != nil {
		return fmt.Errorf("load recipients: %w", err)
	}
	index := make(map[int64]*domain.PersonModelView, len(people))
	for _, p := range people {
		if p != nil {
			index[p.ID] = p
		}
	}

	prefs, err := s.preferences.Execute(ctx, recipients)
	if err != nil {
		return fmt.Errorf("load notification preferences: %w", err)
	}
	optOuts := indexOptOuts(prefs)

	notifierTypes := slices.Sorted(maps.Keys(s.notifiers))
	for _, t := range batch.Types() {
		category := t.Category()
		for _, nt := range notifierTypes {
			var optedOut map[int64]bool
			if category != domain.CategoryNone {
				optedOut = optOuts[optOutKey{nt, category}]
			}
			filtered := filterRecipients(batch.Recipients[t], optedOut)
			if len(filtered) == 0 {
				continue
			}

			logger.InfoContext(ctx, "Sending notification", "type", t, "notifier", nt, "recipients", len(filtered))
			if err := s.notifiers[nt].Notify(ctx, t, filtered, properties, index); err != nil {
				logger.ErrorContext(ctx, "Failed to send notifications", "type", t, "notifier", nt, "error", err)
				metrics.NotifierFailures.WithLabelValues(string(nt), string(t)).Inc()
				continue
			}
			metrics.NotificationsDispatched.WithLabelValues(string(nt), string(t)).Add(float64(len(filtered)))
		}
	}
	return nil
}

type optOutKey struct {
	notifier domain.NotifierType
	category domain.Category
}

func indexOptOuts(prefs []domain.NotificationFilterPreference) map[optOutKey]map[int64]bool {
	out := make(map[optOutKey]map[int64]bool)
	for _, p := range prefs {
		key := optOutKey{p.Notifier, p.Category}
		if out[key] == nil {
			out[key] = make(map[int64]bool)
		}
		out[key][p.PersonID] = true
	}
	return out
}

// filterRecipients drops the people who opted out.
func filterRecipients(recipients []int64, optedOut map[int64]bool) []int64 {
	if len(optedOut) == 0 {
		return recipients
	}
	filtered := make([]int64, 0, len(recipients))
	for _, id := range recipients {
		if !optedOut[id] {
			filtered = append(filtered, id)
		}
	}
	return filtered
}

func (s *notificationService) GetNotifications(ctx context.Context, recipientID int64, page, pageSize int32) ([]domain.InAppNotification, int32, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize
	return s.noteRepo.List(ctx, recipientID, pageSize, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, recipientID, notificationID int64) error {
	return s.noteRepo.MarkAsRead(ctx, notificationID, recipientID)
}

func (s *notificationService) CountUnread(ctx context.Context, recipientID int64) (int32, error) {
	return s.noteRepo.CountUnread(ctx, recipientID)
}

func (s *notificationService) PurgeExpired(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, fmt.Errorf("retention must be positive, got %s: %w", retention, domain.ErrInvalidArgument)
	}
	cutoff := s.now().UTC().Add(-retention)
	logger.Info("Purging in-app notifications", "cutoff", cutoff.Format(time.RFC3339), "retention", retention.String())
	purged, err := s.noteRepo.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	metrics.InAppPurged.Add(float64(purged))
	return purged, nil
}
