package postgres

import (
	"context"
	"fmt"
	"time"

	"jobboard/internal/domain/newsletter"
	"jobboard/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
)

type NewsletterRepository struct {
	db *DB
}

func NewNewsletterRepository(db *DB) newsletter.Repository {
	return &NewsletterRepository{db: db}
}

func (r *NewsletterRepository) Subscribe(ctx context.Context, s *newsletter.Subscriber) error {
	s.ID = uuid.New()
	s.IsActive = true
	s.SubscribedAt = time.Now()

	dbModel := &models.SubscriberModel{
		ID:           s.ID,
		Email:        s.Email,
		IsActive:     s.IsActive,
		SubscribedAt: s.SubscribedAt,
	}
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if isUniqueViolation(err, "idx_subscribers_email") {
			return newsletter.ErrAlreadySubscribed
		}
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	return nil
}

func (r *NewsletterRepository) CreateContactMessage(ctx context.Context, m *newsletter.ContactMessage) error {
	m.ID = uuid.New()
	m.CreatedAt = time.Now()

	dbModel := &models.ContactMessageModel{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to store contact message: %w", err)
	}
	return nil
}
