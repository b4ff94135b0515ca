package service

import (
	"context"
	"time"

	"eurekastreams-backend/internal/domain"
)

type NotificationService interface {
	// CreateNotifications translates the request and hands the result to every
	// notifier. It reports false when notifications for the request type are
	// disabled.
	CreateNotifications(ctx context.Context, req *domain.NotificationRequest) (bool, error)

	GetNotifications(ctx context.Context, recipientID int64, page, pageSize int32) ([]domain.InAppNotification, int32, error)
	MarkAsRead(ctx context.Context, recipientID, notificationID int64) error
	CountUnread(ctx context.Context, recipientID int64) (int32, error)
	PurgeExpired(ctx context.Context, retention time.Duration) (int64, error)
}

type ActivityService interface {
	GetActivity(ctx context.Context, viewer *domain.PersonModelView, id int64) (*domain.ActivityDTO, error)
	GetActivities(ctx context.Context, viewer *domain.PersonModelView, ids []int64) ([]*domain.ActivityDTO, error)
	// GetStream returns the newest activities posted to any of the streams.
	GetStream(ctx context.Context, viewer *domain.PersonModelView, streams []domain.StreamKey, maxResults int) ([]*domain.ActivityDTO, error)
	// GetSavedInStreams returns the newest activities of the streams the viewer saved.
	GetSavedInStreams(ctx context.Context, viewer *domain.PersonModelView, streams []domain.StreamKey, maxResults int) ([]*domain.ActivityDTO, error)
}
