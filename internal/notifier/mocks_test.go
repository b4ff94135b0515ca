package notifier_test

import (
	"context"
	"time"

	"eurekastreams-backend/internal/domain"

	"firebase.google.com/go/v4/messaging"
	"github.com/redis/go-redis/v9"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/mock"
)

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

type MockDeviceRepo struct {
	mock.Mock
}

func (m *MockDeviceRepo) GetPushTokens(ctx context.Context, personIDs []int64) (map[int64][]string, error) {
	args := m.Called(ctx, personIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64][]string), args.Error(1)
}

type MockEmailClient struct {
	mock.Mock
}

func (m *MockEmailClient) SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rest.Response), args.Error(1)
}

type MockPushClient struct {
	mock.Mock
}

func (m *MockPushClient) SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error) {
	// Tokens are re-sliced between calls, so record a copy.
	copied := *message
	copied.Tokens = append([]string(nil), message.Tokens...)
	args := m.Called(ctx, &copied)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*messaging.BatchResponse), args.Error(1)
}

type published struct {
	channel string
	payload []byte
}

type fakePublisher struct {
	messages []published
	err      error
}

func (p *fakePublisher) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	if p.err != nil {
		cmd.SetErr(p.err)
		return cmd
	}
	p.messages = append(p.messages, published{channel: channel, payload: message.([]byte)})
	cmd.SetVal(1)
	return cmd
}

func strPtr(s string) *string { return &s }

func person(id int64, account, name, email string) *domain.PersonModelView {
	p := &domain.PersonModelView{ID: id, AccountID: account}
	if name != "" {
		p.DisplayName = strPtr(name)
	}
	if email != "" {
		p.Email = strPtr(email)
	}
	return p
}
