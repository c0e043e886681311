package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/gratefultolord/intake_bot/internal/dialog"
)

// keyboardFor returns the reply keyboard shown after moving to step, or nil
// to leave the current one in place.
func keyboardFor(step dialog.Step) any {
	switch step {
	case dialog.StepAskIsCustomer:
		return tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton("✅ Sou cliente"),
				tgbotapi.NewKeyboardButton("❌ Não sou cliente"),
			),
		)
	case dialog.StepAskPersonType:
		return tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton("👤 Pessoa Física"),
				tgbotapi.NewKeyboardButton("🏢 Pessoa Jurídica"),
			),
		)
	case dialog.StepAwaitingDocument, dialog.StepAwaitingName:
		return tgbotapi.NewRemoveKeyboard(true)
	case dialog.StepMenuCustomer:
		return optionsKeyboard(6)
	case dialog.StepMenuNonCustomer:
		return optionsKeyboard(4)
	default:
		return nil
	}
}

// optionsKeyboard lays out buttons "1".."n", three per row.
func optionsKeyboard(n int) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	var row []tgbotapi.KeyboardButton

	for i := 1; i <= n; i++ {
		row = append(row, tgbotapi.NewKeyboardButton(string(rune('0'+i))))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return tgbotapi.NewReplyKeyboard(rows...)
}
