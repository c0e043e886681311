package adminbot

import (
	"context"
	"fmt"

	"github.com/AlekSi/pointer"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/gratefultolord/intake_bot/internal/db"
	"github.com/gratefultolord/intake_bot/internal/dialog"
)

const msgNewHandoff = "🔔 Novo pedido de atendimento. Toque em \"" + btnHandoffs + "\" para ver."

type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type HandoffStore interface {
	Create(ctx context.Context, h *db.Handoff) error
	GetNextOpen(ctx context.Context) (*db.Handoff, error)
	GetByID(ctx context.Context, id int64) (*db.Handoff, error)
	Take(ctx context.Context, id int64, operatorChatID int64) (bool, error)
}

type AdminStore interface {
	GetAll(ctx context.Context) ([]db.Admin, error)
	IsAdmin(ctx context.Context, chatID int64) (bool, error)
	Create(ctx context.Context, chatID int64) error
}

// Queue files hand-off requests coming from the intake bot and pings the operators.
type Queue struct {
	handoffs HandoffStore
	admins   AdminStore
	notifier Sender
	log      zerolog.Logger
}

// NewQueue builds a queue. notifier may be nil, in which case operators are
// not pinged and have to poll the queue.
func NewQueue(handoffs HandoffStore, admins AdminStore, notifier Sender, log zerolog.Logger) *Queue {
	return &Queue{
		handoffs: handoffs,
		admins:   admins,
		notifier: notifier,
		log:      log,
	}
}

func (q *Queue) RecordHandoff(ctx context.Context, userID string, chatID int64, st dialog.State) error {
	h := &db.Handoff{
		UserID:     userID,
		ChatID:     chatID,
		Name:       st.Name,
		Document:   st.Document,
		IsCustomer: st.IsCustomer,
	}
	if st.PersonType != nil {
		h.PersonType = pointer.ToString(string(*st.PersonType))
	}

	if err := q.handoffs.Create(ctx, h); err != nil {
		return fmt.Errorf("Queue.RecordHandoff: %w", err)
	}

	q.notifyAdmins(ctx)

	return nil
}

func (q *Queue) notifyAdmins(ctx context.Context) {
	if q.notifier == nil {
		return
	}

	admins, err := q.admins.GetAll(ctx)
	if err != nil {
		q.log.Error().Err(err).Msg("Queue.notifyAdmins: load admins")
		return
	}

	for _, admin := range admins {
		msg := tgbotapi.NewMessage(admin.ChatID, msgNewHandoff)
		if _, err := q.notifier.Send(msg); err != nil {
			q.log.Warn().Err(err).Int64("chat_id", admin.ChatID).Msg("Queue.notifyAdmins: send")
		}
	}
}
