package observation

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"prodflow/internal/domain"
)

type Service struct {
	observations ObservationRepository
	projects     ProjectReader
	users        UserDirectory
	notifier     NotificationSender
}

func NewService(observations ObservationRepository, projects ProjectReader, users UserDirectory, notifier NotificationSender) *Service {
	return &Service{observations: observations, projects: projects, users: users, notifier: notifier}
}

type CreateInput struct {
	ProjectID  int64
	Content    string
	Recipients []int64
	CreatedBy  int64
	Role       domain.UserRole
}

// Create records an observation against the project's current stage and
// notifies each listed recipient. The author never notifies themselves.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Observation, error) {
	p, err := s.projects.GetByID(ctx, in.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectGone
		}
		return nil, err
	}

	authorName := ""
	if u, err := s.users.GetByID(ctx, in.CreatedBy); err == nil {
		authorName = u.Name
	}

	o := &domain.Observation{
		ProjectID:     in.ProjectID,
		Stage:         string(p.Status),
		Content:       in.Content,
		CreatedBy:     in.CreatedBy,
		CreatedByName: authorName,
		CreatedByRole: string(in.Role),
	}
	for _, userID := range in.Recipients {
		if userID == in.CreatedBy {
			continue
		}
		o.Recipients = append(o.Recipients, domain.ObservationRecipient{UserID: userID})
	}

	if err := s.observations.Create(ctx, o); err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("New observation on project '%s' from %s", p.Name, authorName)
	for _, r := range o.Recipients {
		if err := s.notifier.NotifyUser(ctx, r.UserID, in.ProjectID, msg); err != nil {
			log.Printf("observation: notify user %d failed: %v", r.UserID, err)
		}
	}

	return o, nil
}

func (s *Service) ListByProject(ctx context.Context, projectID int64) ([]domain.Observation, error) {
	return s.observations.ListByProject(ctx, projectID)
}

// MyMentions lists observations where the user is a recipient.
func (s *Service) MyMentions(ctx context.Context, userID int64, limit int) ([]domain.Observation, error) {
	return s.observations.ListByRecipient(ctx, userID, limit)
}
