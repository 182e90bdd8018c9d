package repository

import (
	"context"
	"fmt"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
	"github.com/aliskhannn/batyr-bol/internal/infra/postgres"
)

type ContactRepository struct {
	db postgres.DBTX
}

func NewContactRepository(db postgres.DBTX) *ContactRepository {
	return &ContactRepository{db: db}
}

// Save stores a contact form message.
func (r *ContactRepository) Save(ctx context.Context, m entities.ContactMessage) error {
	query := `INSERT INTO contacts (name, email, message, ip, created_at) VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.db.Exec(ctx, query, m.Name, m.Email, m.Message, m.IP, m.CreatedAt); err != nil {
		return fmt.Errorf("save contact: %w", err)
	}

	return nil
}
