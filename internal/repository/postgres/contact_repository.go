package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/portoo/portoo-backend/internal/domain"
	"github.com/portoo/portoo-backend/internal/repository"
)

type contactRepository struct {
	db sqlx.ExtContext
}

func NewContactRepository(db sqlx.ExtContext) repository.ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (portfolio_id, sender_name, sender_email, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.db.QueryRowxContext(
		ctx, query,
		msg.PortfolioID, msg.SenderName, msg.SenderEmail, msg.Message,
	).Scan(&msg.ID, &msg.CreatedAt)
}
