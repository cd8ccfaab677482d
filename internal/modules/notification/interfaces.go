package notification

import (
	"context"

	"prodflow/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, notificationID, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
}

type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error)
}

type EmailSender interface {
	Configured() bool
	Send(to, subject, body string) error
}
