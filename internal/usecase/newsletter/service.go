package newsletter

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	domainNewsletter "jobboard/internal/domain/newsletter"
	"jobboard/internal/logger"
	appErrors "jobboard/pkg/errors"
	"jobboard/pkg/utils"

	"go.uber.org/zap"
)

const (
	minContactNameLength    = 2
	minContactMessageLength = 10
)

type SubscribeRequest struct {
	Email string `json:"email"`
}

type ContactRequest struct {
	Name    string `json:"name" validate:"max=200"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Message string `json:"message" validate:"max=5000"`
}

type Service struct {
	repo domainNewsletter.Repository
}

func NewService(repo domainNewsletter.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Subscribe(ctx context.Context, req *SubscribeRequest) error {
	email, err := utils.ValidateAndSanitizeEmail(req.Email)
	if err != nil {
		return appErrors.NewAppError(appErrors.CodeValidation, "A valid email address is required", err).
			WithDetails(map[string]string{"email": "email"})
	}

	if err := s.repo.Subscribe(ctx, &domainNewsletter.Subscriber{Email: email}); err != nil {
		if errors.Is(err, domainNewsletter.ErrAlreadySubscribed) {
			return appErrors.NewAppError(appErrors.CodeAlreadySubscribed, "This email is already subscribed", err)
		}
		return err
	}

	logger.Info("Newsletter subscription created",
		zap.String("event", "newsletter_subscribed"),
	)
	return nil
}

func (s *Service) Contact(ctx context.Context, req *ContactRequest) error {
	req.Email = utils.SanitizeEmail(req.Email)
	name := strings.TrimSpace(req.Name)
	message := strings.TrimSpace(req.Message)

	details := map[string]string{}
	if err := utils.ValidateStruct(req); err != nil {
		for field, rule := range utils.ValidationDetails(err) {
			details[field] = rule
		}
	}
	if utf8.RuneCountInString(name) < minContactNameLength {
		details["name"] = "min"
	}
	if utf8.RuneCountInString(message) < minContactMessageLength {
		details["message"] = "min"
	}
	if len(details) > 0 {
		return appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", nil).WithDetails(details)
	}

	msg := &domainNewsletter.ContactMessage{
		Name:    utils.SanitizeString(name),
		Email:   req.Email,
		Message: utils.SanitizeText(message),
	}
	if err := s.repo.CreateContactMessage(ctx, msg); err != nil {
		return err
	}

	logger.Info("Contact message received",
		zap.String("message_id", msg.ID.String()),
		zap.String("event", "contact_message_received"),
	)
	return nil
}
