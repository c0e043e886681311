package adminbot

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AlekSi/pointer"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gratefultolord/intake_bot/internal/db"
	"github.com/gratefultolord/intake_bot/internal/dialog"
)

type fakeHandoffs struct {
	items     []*db.Handoff
	createErr error
	getErr    error
}

func (f *fakeHandoffs) Create(_ context.Context, h *db.Handoff) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *h
	cp.ID = int64(len(f.items) + 1)
	cp.Status = db.HandoffOpen
	cp.CreatedAt = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeHandoffs) GetNextOpen(_ context.Context) (*db.Handoff, error) {
	for _, h := range f.items {
		if h.Status == db.HandoffOpen {
			return h, nil
		}
	}
	return nil, nil
}

func (f *fakeHandoffs) GetByID(_ context.Context, id int64) (*db.Handoff, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, h := range f.items {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeHandoffs) Take(_ context.Context, id int64, operator int64) (bool, error) {
	for _, h := range f.items {
		if h.ID == id && h.Status == db.HandoffOpen {
			h.Status = db.HandoffTaken
			h.TakenBy = pointer.ToInt64(operator)
			return true, nil
		}
	}
	return false, nil
}

type fakeAdmins struct {
	chatIDs []int64
}

func (f *fakeAdmins) GetAll(_ context.Context) ([]db.Admin, error) {
	var admins []db.Admin
	for i, id := range f.chatIDs {
		admins = append(admins, db.Admin{ID: int64(i + 1), ChatID: id})
	}
	return admins, nil
}

func (f *fakeAdmins) IsAdmin(_ context.Context, chatID int64) (bool, error) {
	for _, id := range f.chatIDs {
		if id == chatID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAdmins) Create(_ context.Context, chatID int64) error {
	f.chatIDs = append(f.chatIDs, chatID)
	return nil
}

type recordingSender struct {
	sent []tgbotapi.MessageConfig
}

func (r *recordingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		r.sent = append(r.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func (r *recordingSender) last() tgbotapi.MessageConfig {
	return r.sent[len(r.sent)-1]
}

func (r *recordingSender) texts() []string {
	var out []string
	for _, m := range r.sent {
		out = append(out, m.Text)
	}
	return out
}

func message(chatID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}, Text: text}}
}

func TestQueue_RecordHandoff(t *testing.T) {
	handoffs := &fakeHandoffs{}
	admins := &fakeAdmins{chatIDs: []int64{100, 200}}
	notifier := &recordingSender{}
	q := NewQueue(handoffs, admins, notifier, zerolog.Nop())

	st := dialog.State{
		Step:       dialog.StepMenuCustomer,
		IsCustomer: pointer.ToBool(true),
		PersonType: pointer.To(dialog.PersonOrganization),
		Document:   pointer.ToString("11222333000181"),
		Name:       pointer.ToString("Empresa X"),
	}

	require.NoError(t, q.RecordHandoff(context.Background(), "42", 42, st))

	require.Len(t, handoffs.items, 1)
	h := handoffs.items[0]
	assert.Equal(t, "42", h.UserID)
	assert.Equal(t, int64(42), h.ChatID)
	assert.Equal(t, "organization", pointer.GetString(h.PersonType))
	assert.Equal(t, "11222333000181", pointer.GetString(h.Document))

	require.Len(t, notifier.sent, 2)
	assert.Equal(t, int64(100), notifier.sent[0].ChatID)
	assert.Equal(t, int64(200), notifier.sent[1].ChatID)
	assert.Contains(t, notifier.sent[0].Text, "Novo pedido de atendimento")
}

func TestQueue_RecordHandoffFailure(t *testing.T) {
	notifier := &recordingSender{}
	q := NewQueue(&fakeHandoffs{createErr: errors.New("db down")}, &fakeAdmins{chatIDs: []int64{1}}, notifier, zerolog.Nop())

	err := q.RecordHandoff(context.Background(), "42", 42, dialog.State{Step: dialog.StepMenuNonCustomer})

	assert.Error(t, err)
	assert.Empty(t, notifier.sent)
}

func TestQueue_WithoutNotifier(t *testing.T) {
	handoffs := &fakeHandoffs{}
	q := NewQueue(handoffs, &fakeAdmins{chatIDs: []int64{1}}, nil, zerolog.Nop())

	require.NoError(t, q.RecordHandoff(context.Background(), "42", 42, dialog.State{Step: dialog.StepMenuNonCustomer}))
	assert.Len(t, handoffs.items, 1)
}

func TestHandoffSummary(t *testing.T) {
	h := &db.Handoff{
		ID:         3,
		ChatID:     42,
		Name:       pointer.ToString("Ana"),
		Document:   pointer.ToString("11144477735"),
		PersonType: pointer.ToString("individual"),
		IsCustomer: pointer.ToBool(true),
		CreatedAt:  time.Date(2024, 5, 10, 9, 5, 0, 0, time.UTC),
	}

	assert.Equal(t,
		"Atendimento #3\nChat: 42\nNome: Ana\nDocumento: CPF 111.444.777-35\nCliente: Sim\nAberto em: 10/05/2024 09:05",
		HandoffSummary(h),
	)

	h.Name = nil
	h.Document = pointer.ToString("11222333000181")
	h.PersonType = pointer.ToString("organization")
	h.IsCustomer = nil
	summary := HandoffSummary(h)
	assert.Contains(t, summary, "Nome: -")
	assert.Contains(t, summary, "Documento: CNPJ 11.222.333/0001-81")
	assert.Contains(t, summary, "Cliente: Não")
}

func TestBotService_RejectsStrangers(t *testing.T) {
	sender := &recordingSender{}
	b := New(sender, &recordingSender{}, &fakeHandoffs{}, &fakeAdmins{}, zerolog.Nop())

	b.handleUpdate(context.Background(), message(5, "/start"))

	assert.Equal(t, []string{"Acesso negado"}, sender.texts())
}

func TestBotService_TakeHandoff(t *testing.T) {
	ctx := context.Background()
	handoffs := &fakeHandoffs{}
	require.NoError(t, handoffs.Create(ctx, &db.Handoff{UserID: "42", ChatID: 42, Name: pointer.ToString("Ana")}))

	sender := &recordingSender{}
	userBot := &recordingSender{}
	b := New(sender, userBot, handoffs, &fakeAdmins{chatIDs: []int64{7}}, zerolog.Nop())

	b.handleUpdate(ctx, message(7, "/start"))
	assert.Equal(t, "Menu principal:", sender.last().Text)

	b.handleUpdate(ctx, message(7, btnHandoffs))
	assert.Contains(t, sender.last().Text, "Atendimento #1")
	assert.Equal(t, StateViewingHandoff, b.adminStates[7].Step)

	b.handleUpdate(ctx, message(7, btnTake))
	assert.Contains(t, sender.texts(), "Atendimento assumido")
	assert.Equal(t, "Nenhum atendimento pendente", sender.last().Text)
	assert.Equal(t, StateMainMenu, b.adminStates[7].Step)

	require.Len(t, userBot.sent, 1)
	assert.Equal(t, int64(42), userBot.sent[0].ChatID)
	assert.Equal(t, msgHandoffTaken, userBot.sent[0].Text)
	assert.Equal(t, int64(7), pointer.GetInt64(handoffs.items[0].TakenBy))
}

func TestBotService_TakeHandoffLookupFails(t *testing.T) {
	ctx := context.Background()
	handoffs := &fakeHandoffs{}
	require.NoError(t, handoffs.Create(ctx, &db.Handoff{UserID: "42", ChatID: 42}))

	var logs bytes.Buffer
	sender := &recordingSender{}
	userBot := &recordingSender{}
	b := New(sender, userBot, handoffs, &fakeAdmins{chatIDs: []int64{7}}, zerolog.New(&logs))

	b.handleUpdate(ctx, message(7, btnHandoffs))
	handoffs.getErr = errors.New("connection reset")
	b.handleUpdate(ctx, message(7, btnTake))

	assert.Contains(t, sender.texts(), "Atendimento assumido")
	assert.Equal(t, "Nenhum atendimento pendente", sender.last().Text)
	assert.Empty(t, userBot.sent)
	assert.Equal(t, db.HandoffTaken, handoffs.items[0].Status)

	assert.Contains(t, logs.String(), `"level":"warn"`)
	assert.Contains(t, logs.String(), "connection reset")
	assert.Contains(t, logs.String(), `"handoff_id":1`)
}

func TestBotService_TakeAlreadyTaken(t *testing.T) {
	ctx := context.Background()
	handoffs := &fakeHandoffs{}
	require.NoError(t, handoffs.Create(ctx, &db.Handoff{UserID: "42", ChatID: 42}))

	sender := &recordingSender{}
	userBot := &recordingSender{}
	b := New(sender, userBot, handoffs, &fakeAdmins{chatIDs: []int64{7}}, zerolog.Nop())

	b.handleUpdate(ctx, message(7, btnHandoffs))
	_, err := handoffs.Take(ctx, 1, 8)
	require.NoError(t, err)

	b.handleUpdate(ctx, message(7, btnTake))

	assert.Contains(t, sender.texts(), "Este atendimento já foi assumido por outro atendente.")
	assert.Empty(t, userBot.sent)
}

func TestBotService_AddAdmin(t *testing.T) {
	ctx := context.Background()
	admins := &fakeAdmins{chatIDs: []int64{7}}
	sender := &recordingSender{}
	b := New(sender, &recordingSender{}, &fakeHandoffs{}, admins, zerolog.Nop())

	b.handleUpdate(ctx, message(7, btnAddAdmin))
	assert.Equal(t, StateAddingAdmin, b.adminStates[7].Step)

	b.handleUpdate(ctx, message(7, "abc"))
	assert.Equal(t, "chat_id inválido. Tente novamente", sender.last().Text)

	b.handleUpdate(ctx, message(7, "99"))
	assert.Contains(t, sender.texts(), "Admin adicionado com sucesso")
	assert.Equal(t, []int64{7, 99}, admins.chatIDs)
	assert.Equal(t, StateMainMenu, b.adminStates[7].Step)
}
