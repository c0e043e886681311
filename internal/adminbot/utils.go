package adminbot

import (
	"fmt"

	"github.com/AlekSi/pointer"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/gratefultolord/intake_bot/internal/db"
	"github.com/gratefultolord/intake_bot/internal/dialog"
	"github.com/gratefultolord/intake_bot/internal/document"
)

const (
	btnHandoffs = "Ver atendimentos"
	btnAddAdmin = "Adicionar admin"
	btnTake     = "Assumir"
	btnMainMenu = "Menu principal"
	btnCancel   = "Cancelar"
)

func AdminMainMenu() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnHandoffs),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnAddAdmin),
		),
	)
}

func HandoffActionButtons() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnTake),
			tgbotapi.NewKeyboardButton(btnMainMenu),
		),
	)
}

func CancelMenu() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
}

// HandoffSummary renders a hand-off for operators.
func HandoffSummary(h *db.Handoff) string {
	customer := "Não"
	if pointer.GetBool(h.IsCustomer) {
		customer = "Sim"
	}

	return fmt.Sprintf(
		"Atendimento #%d\nChat: %d\nNome: %s\nDocumento: %s\nCliente: %s\nAberto em: %s",
		h.ID,
		h.ChatID,
		valueOr(h.Name, "-"),
		formatDocument(h.PersonType, h.Document),
		customer,
		h.CreatedAt.Format("02/01/2006 15:04"),
	)
}

func formatDocument(personType, digits *string) string {
	if digits == nil {
		return "-"
	}

	kind := dialog.PersonType(pointer.GetString(personType)).Kind()
	if kind == document.KindOrganization {
		return kind.Label() + " " + document.FormatOrganizationID(*digits)
	}

	return kind.Label() + " " + document.FormatIndividualID(*digits)
}

func valueOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}

	return *s
}
