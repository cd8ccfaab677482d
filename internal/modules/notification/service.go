package notification

import (
	"context"
	"log"

	"prodflow/internal/domain"
)

// Service persists notifications and pushes them out over email and the
// websocket hub. Delivery beyond the inbox row is best effort: email and
// socket failures are logged, never returned to the caller.
type Service struct {
	notifications NotificationRepository
	users         UserDirectory
	mailer        EmailSender
	hub           *Hub
}

func NewService(notifications NotificationRepository, users UserDirectory, mailer EmailSender, hub *Hub) *Service {
	return &Service{notifications: notifications, users: users, mailer: mailer, hub: hub}
}

// NotifyUser writes the inbox row, then fans out to the hub and email.
func (s *Service) NotifyUser(ctx context.Context, userID, projectID int64, message string) error {
	n := &domain.Notification{
		UserID:    userID,
		ProjectID: projectID,
		Message:   message,
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return err
	}

	s.hub.SendToUser(userID, n)

	if s.mailer.Configured() {
		go s.sendEmail(userID, message)
	}
	return nil
}

// NotifyRole fans a message out to every user holding the role.
func (s *Service) NotifyRole(ctx context.Context, role domain.UserRole, projectID int64, message string) error {
	users, err := s.users.GetByRole(ctx, role)
	if err != nil {
		return err
	}

	for _, u := range users {
		if err := s.NotifyUser(ctx, u.ID, projectID, message); err != nil {
			log.Printf("notification: notify user %d failed: %v", u.ID, err)
		}
	}
	return nil
}

func (s *Service) sendEmail(userID int64, message string) {
	u, err := s.users.GetByID(context.Background(), userID)
	if err != nil || u.Email == "" {
		return
	}
	if err := s.mailer.Send(u.Email, "Project update", message); err != nil {
		log.Printf("notification: email to %s failed: %v", u.Email, err)
	}
}

func (s *Service) ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	return s.notifications.ListByUser(ctx, userID, limit)
}

func (s *Service) CountUnread(ctx context.Context, userID int64) (int64, error) {
	return s.notifications.CountUnread(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, notificationID, userID int64) error {
	return s.notifications.MarkRead(ctx, notificationID, userID)
}

func (s *Service) MarkAllRead(ctx context.Context, userID int64) error {
	return s.notifications.MarkAllRead(ctx, userID)
}
