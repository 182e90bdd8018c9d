package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
)

type ContactService struct {
	repo ContactRepository
	now  func() time.Time
}

func NewContactService(repo ContactRepository) *ContactService {
	return &ContactService{repo: repo, now: time.Now}
}

// Submit validates and stores a contact form message.
func (s *ContactService) Submit(ctx context.Context, m entities.ContactMessage) error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Message = strings.TrimSpace(m.Message)

	switch {
	case m.Name == "" || m.Email == "" || m.Message == "":
		return ErrMissingFields
	case utf8.RuneCountInString(m.Name) < minNameLength:
		return ErrNameTooShort
	case !ValidEmail(m.Email):
		return ErrInvalidEmail
	}

	m.CreatedAt = s.now().UTC()
	return s.repo.Save(ctx, m)
}
