package service_test

import (
	"context"
	"time"

	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/notification"

	"github.com/stretchr/testify/mock"
)

type MockTranslator struct {
	mock.Mock
}

func (m *MockTranslator) Translate(ctx context.Context, req *domain.NotificationRequest) (*notification.Batch, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Batch), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, t domain.NotificationType, recipients []int64, properties map[string]any, recipientIndex map[int64]*domain.PersonModelView) error {
	args := m.Called(ctx, t, recipients, properties, recipientIndex)
	return args.Error(0)
}

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *domain.InAppNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
func (m *MockNotificationRepo) FindUnread(ctx context.Context, recipientID int64, t domain.NotificationType, url string) (*domain.InAppNotification, error) {
	args := m.Called(ctx, recipientID, t, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InAppNotification), args.Error(1)
}
func (m *MockNotificationRepo) Update(ctx context.Context, n *domain.InAppNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, recipientID int64, limit, offset int32) ([]domain.InAppNotification, int32, error) {
	args := m.Called(ctx, recipientID, limit, offset)
	return args.Get(0).([]domain.InAppNotification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, recipientID int64) error {
	args := m.Called(ctx, id, recipientID)
	return args.Error(0)
}
func (m *MockNotificationRepo) CountUnread(ctx context.Context, recipientID int64) (int32, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockNotificationRepo) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockFilter struct {
	mock.Mock
}

func (m *MockFilter) Filter(ctx context.Context, activities []*domain.ActivityDTO, viewer *domain.PersonModelView) error {
	args := m.Called(ctx, activities, viewer)
	return args.Error(0)
}
