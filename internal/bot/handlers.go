package bot

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gratefultolord/intake_bot/internal/dialog"
)

const msgUnexpectedError = "❌ Desculpe, ocorreu um erro. Tente novamente."

// Store persists one conversation state per user. Load reports false when
// the user has no state yet.
type Store interface {
	Load(ctx context.Context, userID string) (dialog.State, bool, error)
	Save(ctx context.Context, userID string, st dialog.State) error
}

type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type HandoffRecorder interface {
	RecordHandoff(ctx context.Context, userID string, chatID int64, st dialog.State) error
}

// Turn is the outcome of one inbound message.
type Turn struct {
	Text   string
	Step   dialog.Step
	Intent dialog.Intent
}

type BotService struct {
	sender          Sender
	store           Store
	machine         *dialog.Machine
	handoffs        HandoffRecorder
	resetOnFarewell bool
	log             zerolog.Logger
}

type Option func(*BotService)

func WithHandoffs(h HandoffRecorder) Option {
	return func(b *BotService) {
		b.handoffs = h
	}
}

// WithResetOnFarewell makes the end-of-session option start the next
// message from a fresh conversation.
func WithResetOnFarewell(reset bool) Option {
	return func(b *BotService) {
		b.resetOnFarewell = reset
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(b *BotService) {
		b.log = log
	}
}

func New(sender Sender, store Store, machine *dialog.Machine, opts ...Option) *BotService {
	b := &BotService{
		sender:  sender,
		store:   store,
		machine: machine,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}

	return b
}

// Start handles updates one at a time until ctx is done or updates is closed,
// so messages from the same user never overlap.
func (b *BotService) Start(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *BotService) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID

	defer func() {
		if r := recover(); r != nil {
			b.log.Error().Int64("chat_id", chatID).Str("panic", fmt.Sprint(r)).Msg("handleUpdate: recovered")
			b.send(tgbotapi.NewMessage(chatID, msgUnexpectedError))
		}
	}()

	turn := b.HandleText(ctx, strconv.FormatInt(chatID, 10), chatID, update.Message.Text)

	msg := tgbotapi.NewMessage(chatID, turn.Text)
	if markup := keyboardFor(turn.Step); markup != nil {
		msg.ReplyMarkup = markup
	}
	b.send(msg)
}

func (b *BotService) send(msg tgbotapi.MessageConfig) {
	if _, err := b.sender.Send(msg); err != nil {
		b.log.Error().Err(err).Int64("chat_id", msg.ChatID).Msg("send reply")
	}
}

// HandleText runs one conversation turn for userID: load, advance, save.
// Storage failures leave the stored state untouched and produce an apology.
func (b *BotService) HandleText(ctx context.Context, userID string, chatID int64, text string) Turn {
	log := b.log.With().
		Str("turn_id", uuid.NewString()).
		Str("user_id", userID).
		Logger()

	st, ok, err := b.store.Load(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("load state")
		return Turn{Text: msgUnexpectedError}
	}
	if !ok {
		st = dialog.NewState()
	}

	next, reply := b.machine.Advance(st, text)

	toSave := next
	if reply.Intent == dialog.IntentEndSession && b.resetOnFarewell {
		toSave = dialog.NewState()
	}

	if err := b.store.Save(ctx, userID, toSave); err != nil {
		log.Error().Err(err).Str("step", string(st.Step)).Msg("save state")
		return Turn{Text: msgUnexpectedError}
	}

	if reply.Intent == dialog.IntentHandoff && b.handoffs != nil {
		if err := b.handoffs.RecordHandoff(ctx, userID, chatID, next); err != nil {
			log.Error().Err(err).Msg("record handoff")
			return Turn{Text: msgUnexpectedError}
		}
	}

	log.Info().
		Str("step", string(st.Step)).
		Str("next_step", string(toSave.Step)).
		Str("intent", string(reply.Intent)).
		Msg("turn processed")

	return Turn{Text: reply.Text, Step: next.Step, Intent: reply.Intent}
}
