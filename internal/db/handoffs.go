package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	HandoffOpen  = "open"
	HandoffTaken = "taken"
)

// Handoff is a request from a user to talk to a human operator.
type Handoff struct {
	ID         int64     `db:"id"`
	UserID     string    `db:"user_id"`
	ChatID     int64     `db:"chat_id"`
	Name       *string   `db:"name"`
	Document   *string   `db:"document"`
	PersonType *string   `db:"person_type"`
	IsCustomer *bool     `db:"is_customer"`
	Status     string    `db:"status"`
	TakenBy    *int64    `db:"taken_by"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type HandoffRepository struct {
	db *sqlx.DB
}

func NewHandoffRepository(db *sqlx.DB) *HandoffRepository {
	return &HandoffRepository{
		db: db,
	}
}

func (r *HandoffRepository) Create(ctx context.Context, h *Handoff) error {
	_, err := r.db.ExecContext(ctx, `
	    INSERT INTO handoffs
		(user_id, chat_id, name, document, person_type, is_customer, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'open')
	`,
		h.UserID,
		h.ChatID,
		h.Name,
		h.Document,
		h.PersonType,
		h.IsCustomer,
	)
	if err != nil {
		return fmt.Errorf("HandoffRepository.Create: %w", err)
	}

	return nil
}

// GetNextOpen returns the oldest open hand-off, or nil when the queue is empty.
func (r *HandoffRepository) GetNextOpen(ctx context.Context) (*Handoff, error) {
	var h Handoff

	err := r.db.GetContext(ctx, &h, `
	    SELECT * FROM handoffs
		WHERE status = 'open'
		ORDER BY created_at ASC, id ASC
		LIMIT 1
	`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("HandoffRepository.GetNextOpen: %w", err)
	}

	return &h, nil
}

func (r *HandoffRepository) GetByID(ctx context.Context, id int64) (*Handoff, error) {
	var h Handoff

	err := r.db.GetContext(ctx, &h, `
	    SELECT * FROM handoffs
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, fmt.Errorf("HandoffRepository.GetByID: %w", err)
	}

	return &h, nil
}

// Take assigns an open hand-off to an operator. It reports false when
// another operator took it first.
func (r *HandoffRepository) Take(ctx context.Context, id int64, operatorChatID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
	    UPDATE handoffs
		SET status = 'taken', taken_by = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND status = 'open'
	`, operatorChatID, id)
	if err != nil {
		return false, fmt.Errorf("HandoffRepository.Take: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("HandoffRepository.Take: %w", err)
	}

	return n == 1, nil
}
