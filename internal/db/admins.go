package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type Admin struct {
	ID        int64     `db:"id"`
	ChatID    int64     `db:"chat_id"`
	CreatedAt time.Time `db:"created_at"`
}

type AdminRepository struct {
	db *sqlx.DB
}

func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{
		db: db,
	}
}

func (r *AdminRepository) GetAll(ctx context.Context) ([]Admin, error) {
	var admins []Admin

	err := r.db.SelectContext(ctx, &admins, `
	    SELECT * FROM admins
		ORDER BY id
	`)

	if err != nil {
		return nil, fmt.Errorf("AdminRepository.GetAll: %w", err)
	}

	return admins, nil
}

func (r *AdminRepository) IsAdmin(ctx context.Context, chatID int64) (bool, error) {
	var exists bool

	err := r.db.GetContext(ctx, &exists, `
	    SELECT EXISTS (SELECT 1 FROM admins WHERE chat_id = $1)
	`, chatID)

	if err != nil {
		return false, fmt.Errorf("AdminRepository.IsAdmin: %w", err)
	}

	return exists, nil
}

func (r *AdminRepository) Create(ctx context.Context, chatID int64) error {
	_, err := r.db.ExecContext(ctx, `
	    INSERT INTO admins (chat_id) VALUES ($1)
		ON CONFLICT (chat_id) DO NOTHING
	`, chatID)

	if err != nil {
		return fmt.Errorf("AdminRepository.Create: %w", err)
	}

	return nil
}
