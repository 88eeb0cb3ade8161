package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"jobboard/internal/domain/newsletter"

	"github.com/google/uuid"
)

type NewsletterRepository struct {
	mu          sync.Mutex
	subscribers map[string]*newsletter.Subscriber
	messages    []*newsletter.ContactMessage
}

func NewNewsletterRepository() *NewsletterRepository {
	return &NewsletterRepository{subscribers: make(map[string]*newsletter.Subscriber)}
}

var _ newsletter.Repository = (*NewsletterRepository)(nil)

func (r *NewsletterRepository) Subscribe(_ context.Context, s *newsletter.Subscriber) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(s.Email)
	if _, exists := r.subscribers[key]; exists {
		return newsletter.ErrAlreadySubscribed
	}

	s.ID = uuid.New()
	s.IsActive = true
	s.SubscribedAt = time.Now()
	cp := *s
	r.subscribers[key] = &cp
	return nil
}

func (r *NewsletterRepository) CreateContactMessage(_ context.Context, m *newsletter.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	cp := *m
	r.messages = append(r.messages, &cp)
	return nil
}
