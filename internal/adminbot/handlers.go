package adminbot

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

const msgHandoffTaken = "👤 Um atendente assumiu seu atendimento e vai falar com você em instantes."

type BotService struct {
	botAPI      Sender
	userBot     Sender
	handoffs    HandoffStore
	admins      AdminStore
	adminStates map[int64]*AdminState
	log         zerolog.Logger
}

// New builds the operator bot. userBot sends messages to intake bot users.
func New(
	botAPI Sender,
	userBot Sender,
	handoffs HandoffStore,
	admins AdminStore,
	log zerolog.Logger,
) *BotService {
	return &BotService{
		botAPI:      botAPI,
		userBot:     userBot,
		handoffs:    handoffs,
		admins:      admins,
		adminStates: make(map[int64]*AdminState),
		log:         log,
	}
}

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
	text := update.Message.Text

	isAdmin, err := b.admins.IsAdmin(ctx, chatID)
	if err != nil || !isAdmin {
		if err != nil {
			b.log.Error().Err(err).Int64("chat_id", chatID).Msg("IsAdmin")
		}
		b.send(tgbotapi.NewMessage(chatID, "Acesso negado"))
		return
	}

	if _, exists := b.adminStates[chatID]; !exists {
		b.adminStates[chatID] = &AdminState{Step: StateMainMenu}
	}

	state := b.adminStates[chatID]

	switch state.Step {
	case StateMainMenu:
		switch text {
		case btnHandoffs:
			b.handleNextHandoff(ctx, chatID)
		case btnAddAdmin:
			b.handleAddAdmin(chatID)
		default:
			b.handleMainMenu(chatID)
		}

	case StateViewingHandoff:
		b.handleViewHandoff(ctx, chatID, text)

	case StateAddingAdmin:
		b.handleAddingAdmin(ctx, chatID, text)

	default:
		b.log.Warn().Str("step", state.Step).Int64("chat_id", chatID).Msg("unknown admin state")
		b.handleMainMenu(chatID)
	}
}

func (b *BotService) send(msg tgbotapi.MessageConfig) {
	if _, err := b.botAPI.Send(msg); err != nil {
		b.log.Error().Err(err).Int64("chat_id", msg.ChatID).Msg("send")
	}
}

func (b *BotService) handleMainMenu(chatID int64) {
	b.adminStates[chatID] = &AdminState{Step: StateMainMenu}

	msg := tgbotapi.NewMessage(chatID, "Menu principal:")
	msg.ReplyMarkup = AdminMainMenu()
	b.send(msg)
}

func (b *BotService) handleNextHandoff(ctx context.Context, chatID int64) {
	h, err := b.handoffs.GetNextOpen(ctx)
	if err != nil {
		b.log.Error().Err(err).Msg("GetNextOpen")
		b.send(tgbotapi.NewMessage(chatID, "Erro ao carregar atendimentos."))
		return
	}

	if h == nil {
		msg := tgbotapi.NewMessage(chatID, "Nenhum atendimento pendente")
		msg.ReplyMarkup = AdminMainMenu()
		b.send(msg)
		b.adminStates[chatID] = &AdminState{Step: StateMainMenu}
		return
	}

	b.adminStates[chatID] = &AdminState{
		Step:      StateViewingHandoff,
		HandoffID: h.ID,
	}

	msg := tgbotapi.NewMessage(chatID, HandoffSummary(h))
	msg.ReplyMarkup = HandoffActionButtons()
	b.send(msg)
}

func (b *BotService) handleViewHandoff(ctx context.Context, chatID int64, text string) {
	state := b.adminStates[chatID]

	switch text {
	case btnTake:
		taken, err := b.handoffs.Take(ctx, state.HandoffID, chatID)
		if err != nil {
			b.log.Error().Err(err).Int64("handoff_id", state.HandoffID).Msg("Take")
			b.handleMainMenu(chatID)
			return
		}

		if !taken {
			b.send(tgbotapi.NewMessage(chatID, "Este atendimento já foi assumido por outro atendente."))
			b.handleNextHandoff(ctx, chatID)
			return
		}

		b.send(tgbotapi.NewMessage(chatID, "Atendimento assumido"))

		b.notifyUser(ctx, state.HandoffID)
		b.handleNextHandoff(ctx, chatID)

	case btnMainMenu:
		b.handleMainMenu(chatID)

	default:
		msg := tgbotapi.NewMessage(chatID, "Escolha uma ação")
		msg.ReplyMarkup = HandoffActionButtons()
		b.send(msg)
	}
}

// notifyUser tells the intake bot user that an operator took the hand-off.
func (b *BotService) notifyUser(ctx context.Context, handoffID int64) {
	h, err := b.handoffs.GetByID(ctx, handoffID)
	if err != nil {
		b.log.Warn().Err(err).Int64("handoff_id", handoffID).Msg("notify user: GetByID")
		return
	}

	if _, err := b.userBot.Send(tgbotapi.NewMessage(h.ChatID, msgHandoffTaken)); err != nil {
		b.log.Warn().Err(err).Int64("chat_id", h.ChatID).Msg("notify user")
	}
}

func (b *BotService) handleAddAdmin(chatID int64) {
	b.adminStates[chatID].Step = StateAddingAdmin

	msg := tgbotapi.NewMessage(chatID, "Informe o chat_id do novo admin")
	msg.ReplyMarkup = CancelMenu()
	b.send(msg)
}

func (b *BotService) handleAddingAdmin(ctx context.Context, chatID int64, text string) {
	if text == btnCancel {
		b.handleMainMenu(chatID)
		return
	}

	newChatID, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		msg := tgbotapi.NewMessage(chatID, "chat_id inválido. Tente novamente")
		msg.ReplyMarkup = CancelMenu()
		b.send(msg)
		return
	}

	if err := b.admins.Create(ctx, newChatID); err != nil {
		b.log.Error().Err(err).Msg("AdminRepository.Create")
		b.send(tgbotapi.NewMessage(chatID, "Erro ao adicionar admin"))
	} else {
		b.send(tgbotapi.NewMessage(chatID, "Admin adicionado com sucesso"))
	}

	b.handleMainMenu(chatID)
}
