package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AlekSi/pointer"
	"github.com/jmoiron/sqlx"

	"github.com/gratefultolord/intake_bot/internal/dialog"
)

type ConversationState struct {
	UserID     string    `db:"user_id"`
	Step       string    `db:"step"`
	Greeting   *string   `db:"greeting"`
	IsCustomer *bool     `db:"is_customer"`
	PersonType *string   `db:"person_type"`
	Document   *string   `db:"document"`
	Name       *string   `db:"name"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type ConversationRepository struct {
	db *sqlx.DB
}

func NewConversationRepository(db *sqlx.DB) *ConversationRepository {
	return &ConversationRepository{
		db: db,
	}
}

func (r *ConversationRepository) Load(ctx context.Context, userID string) (dialog.State, bool, error) {
	var row ConversationState

	err := r.db.GetContext(ctx, &row, `
	    SELECT * FROM conversation_states
		WHERE user_id = $1
	`, userID)

	if errors.Is(err, sql.ErrNoRows) {
		return dialog.State{}, false, nil
	}
	if err != nil {
		return dialog.State{}, false, fmt.Errorf("ConversationRepository.Load: %w", err)
	}

	return row.toState(), true, nil
}

func (r *ConversationRepository) Save(ctx context.Context, userID string, st dialog.State) error {
	row := fromState(userID, st)

	_, err := r.db.NamedExecContext(ctx, `
	    INSERT INTO conversation_states
		(user_id, step, greeting, is_customer, person_type, document, name)
		VALUES (:user_id, :step, :greeting, :is_customer, :person_type, :document, :name)
		ON CONFLICT (user_id) DO UPDATE SET
		    step = EXCLUDED.step,
			greeting = EXCLUDED.greeting,
			is_customer = EXCLUDED.is_customer,
			person_type = EXCLUDED.person_type,
			document = EXCLUDED.document,
			name = EXCLUDED.name,
			updated_at = CURRENT_TIMESTAMP
	`, row)

	if err != nil {
		return fmt.Errorf("ConversationRepository.Save: %w", err)
	}

	return nil
}

func (c ConversationState) toState() dialog.State {
	st := dialog.State{
		Step:       dialog.Step(c.Step),
		Greeting:   c.Greeting,
		IsCustomer: c.IsCustomer,
		Document:   c.Document,
		Name:       c.Name,
	}
	if c.PersonType != nil {
		if pt := dialog.PersonType(*c.PersonType); pt.Valid() {
			st.PersonType = pointer.To(pt)
		}
	}

	return st
}

func fromState(userID string, st dialog.State) ConversationState {
	row := ConversationState{
		UserID:     userID,
		Step:       string(st.Step),
		Greeting:   st.Greeting,
		IsCustomer: st.IsCustomer,
		Document:   st.Document,
		Name:       st.Name,
	}
	if st.PersonType != nil {
		row.PersonType = pointer.ToString(string(*st.PersonType))
	}

	return row
}
