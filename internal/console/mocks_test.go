package console

import (
	"context"
	"io"
	"sync"

	"github.com/stretchr/testify/mock"

	"adminconsole/internal/apiclient"
	"adminconsole/internal/models"
	"adminconsole/internal/service"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id int64, req service.UpdateUserRequest) error {
	return m.Called(ctx, id, req).Error(0)
}

func (m *MockUserService) Activate(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserService) PartnerRequests(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) ApprovePartner(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserService) DeclinePartner(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockRestaurantService struct {
	mock.Mock
}

func (m *MockRestaurantService) List(ctx context.Context, params service.RestaurantListParams) (*apiclient.Paged[models.Restaurant], error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apiclient.Paged[models.Restaurant]), args.Error(1)
}

func (m *MockRestaurantService) Approve(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRestaurantService) Decline(ctx context.Context, id int64, reason string) error {
	return m.Called(ctx, id, reason).Error(0)
}

func (m *MockRestaurantService) Update(ctx context.Context, id int64, req service.UpdateRestaurantRequest) error {
	return m.Called(ctx, id, req).Error(0)
}

func (m *MockRestaurantService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) List(ctx context.Context, params service.PostListParams) (*apiclient.Paged[models.Post], error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apiclient.Paged[models.Post]), args.Error(1)
}

func (m *MockPostService) Get(ctx context.Context, id int64) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) Update(ctx context.Context, id int64, req service.UpdatePostRequest) error {
	return m.Called(ctx, id, req).Error(0)
}

func (m *MockPostService) Approve(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPostService) Decline(ctx context.Context, id int64, reason string) error {
	return m.Called(ctx, id, reason).Error(0)
}

func (m *MockPostService) Remove(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPostService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockMoodService struct {
	mock.Mock
}

func (m *MockMoodService) List(ctx context.Context) ([]models.Mood, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Mood), args.Error(1)
}

func (m *MockMoodService) Create(ctx context.Context, req service.MoodRequest) (*models.Mood, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mood), args.Error(1)
}

func (m *MockMoodService) Update(ctx context.Context, id int64, req service.MoodRequest) error {
	return m.Called(ctx, id, req).Error(0)
}

func (m *MockMoodService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) List(ctx context.Context) ([]models.Notification, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationService) SendToUser(ctx context.Context, req service.SendNotificationRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockNotificationService) Broadcast(ctx context.Context, req service.BroadcastRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockNotificationService) Update(ctx context.Context, id int64, req service.UpdateNotificationRequest) error {
	return m.Called(ctx, id, req).Error(0)
}

func (m *MockNotificationService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadImage(ctx context.Context, postID int64, fileName string, file io.Reader, size int64) (string, string, error) {
	args := m.Called(ctx, postID, fileName, file, size)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockStorage) DeleteImage(ctx context.Context, objectName string) error {
	return m.Called(ctx, objectName).Error(0)
}

type toasts struct {
	mu      sync.Mutex
	success []string
	errors  []string
}

func (t *toasts) Success(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.success = append(t.success, message)
}

func (t *toasts) Error(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.errors = append(t.errors, message)
}

type mocks struct {
	users         *MockUserService
	restaurants   *MockRestaurantService
	posts         *MockPostService
	moods         *MockMoodService
	notifications *MockNotificationService
	storage       *MockStorage
	toasts        *toasts
}

func newMocks() *mocks {
	return &mocks{
		users:         new(MockUserService),
		restaurants:   new(MockRestaurantService),
		posts:         new(MockPostService),
		moods:         new(MockMoodService),
		notifications: new(MockNotificationService),
		storage:       new(MockStorage),
		toasts:        &toasts{},
	}
}

func (m *mocks) deps() Deps {
	return Deps{
		Services: &service.Service{
			User:         m.users,
			Restaurant:   m.restaurants,
			Post:         m.posts,
			Mood:         m.moods,
			Notification: m.notifications,
		},
		Storage:        m.storage,
		Notifier:       m.toasts,
		MasterPageSize: 1000,
	}
}
