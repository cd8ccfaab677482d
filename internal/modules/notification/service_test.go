package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"prodflow/internal/domain"
)

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	if n != nil {
		n.ID = 61
	}
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, notificationID, userID int64) error {
	args := m.Called(ctx, notificationID, userID)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserDirectory) GetByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Configured() bool {
	return m.Called().Bool(0)
}

func (m *MockEmailSender) Send(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

func newTestService() (*Service, *MockNotificationRepository, *MockUserDirectory, *MockEmailSender) {
	notifications := new(MockNotificationRepository)
	users := new(MockUserDirectory)
	mailer := new(MockEmailSender)
	svc := NewService(notifications, users, mailer, NewHub())
	return svc, notifications, users, mailer
}

func TestService_NotifyUser_PersistsInboxRow(t *testing.T) {
	svc, notifications, _, mailer := newTestService()

	notifications.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == 3 && n.ProjectID == 10 && n.Message == "stage advanced" && !n.Read
	})).Return(nil)
	mailer.On("Configured").Return(false)

	err := svc.NotifyUser(context.Background(), 3, 10, "stage advanced")

	assert.NoError(t, err)
	notifications.AssertExpectations(t)
	mailer.AssertNotCalled(t, "Send")
}

func TestService_NotifyUser_RepoFailureSurfaces(t *testing.T) {
	svc, notifications, _, _ := newTestService()

	notifications.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	err := svc.NotifyUser(context.Background(), 3, 10, "stage advanced")

	assert.Error(t, err)
}

func TestService_NotifyRole_FansOutToEveryHolder(t *testing.T) {
	svc, notifications, users, mailer := newTestService()

	users.On("GetByRole", mock.Anything, domain.RoleWarehouse).Return([]domain.User{
		{ID: 4, Name: "Wanda"},
		{ID: 5, Name: "Walter"},
	}, nil)
	notifications.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == 4 && n.ProjectID == 10
	})).Return(nil).Once()
	notifications.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == 5 && n.ProjectID == 10
	})).Return(nil).Once()
	mailer.On("Configured").Return(false)

	err := svc.NotifyRole(context.Background(), domain.RoleWarehouse, 10, "materials arrived")

	assert.NoError(t, err)
	notifications.AssertExpectations(t)
}

func TestService_NotifyRole_OneFailureDoesNotStopFanOut(t *testing.T) {
	svc, notifications, users, mailer := newTestService()

	users.On("GetByRole", mock.Anything, domain.RoleSuperadmin).Return([]domain.User{
		{ID: 8}, {ID: 9},
	}, nil)
	notifications.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == 8
	})).Return(errors.New("db hiccup")).Once()
	notifications.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == 9
	})).Return(nil).Once()
	mailer.On("Configured").Return(false)

	err := svc.NotifyRole(context.Background(), domain.RoleSuperadmin, 10, "project completed")

	assert.NoError(t, err)
	notifications.AssertExpectations(t)
}

func TestService_ListAndMarkRead_Delegate(t *testing.T) {
	svc, notifications, _, _ := newTestService()

	notifications.On("ListByUser", mock.Anything, int64(3), 50).Return([]domain.Notification{
		{ID: 61, UserID: 3, Message: "stage advanced"},
	}, nil)
	notifications.On("MarkRead", mock.Anything, int64(61), int64(3)).Return(nil)
	notifications.On("CountUnread", mock.Anything, int64(3)).Return(int64(1), nil)

	list, err := svc.ListByUser(context.Background(), 3, 50)
	assert.NoError(t, err)
	assert.Len(t, list, 1)

	count, err := svc.CountUnread(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	assert.NoError(t, svc.MarkRead(context.Background(), 61, 3))
	notifications.AssertExpectations(t)
}
