package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/etodastandetka/bingo/config"
	"github.com/etodastandetka/bingo/internal/backend"
	"github.com/etodastandetka/bingo/internal/translations"
)

// Быстрые суммы для шага ввода суммы пополнения.
var quickAmounts = []string{"100", "500", "1000", "5000", "10000"}

func mainMenu(lang string) tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		[]tgbotapi.KeyboardButton{
			tgbotapi.NewKeyboardButton(translations.Text(lang, "menu.deposit")),
			tgbotapi.NewKeyboardButton(translations.Text(lang, "menu.withdraw")),
		},
		[]tgbotapi.KeyboardButton{
			tgbotapi.NewKeyboardButton(translations.Text(lang, "menu.instruction")),
			tgbotapi.NewKeyboardButton(translations.Text(lang, "menu.language")),
		},
	)
}

// cancelMenu - клавиатура с одной кнопкой отмены, опционально с
// подсказками (сохранённый ID, быстрые суммы).
func cancelMenu(lang string, hints ...string) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton

	var row []tgbotapi.KeyboardButton
	for _, h := range hints {
		row = append(row, tgbotapi.NewKeyboardButton(h))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows, []tgbotapi.KeyboardButton{
		tgbotapi.NewKeyboardButton(translations.Text(lang, "common.cancel")),
	})

	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.OneTimeKeyboard = true
	return kb
}

func languageKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, l := range translations.Languages {
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(l.Name, "lang_"+l.Code),
		})
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// casinoKeyboard строит инлайн-клавиатуру выбора казино: широкие бренды
// занимают ряд целиком, остальные по два в ряд.
func (b *Bot) casinoKeyboard(prefix string, settings *backend.PaymentSettings) (tgbotapi.InlineKeyboardMarkup, int) {
	var rows [][]tgbotapi.InlineKeyboardButton
	var pending []tgbotapi.InlineKeyboardButton
	count := 0

	for _, c := range b.profile.Casinos {
		if !settings.CasinoEnabled(c.ID) {
			continue
		}
		count++
		button := tgbotapi.NewInlineKeyboardButtonData(c.Name, prefix+c.ID)
		if b.profile.IsWideCasino(c.ID) {
			if len(pending) > 0 {
				rows = append(rows, pending)
				pending = nil
			}
			rows = append(rows, []tgbotapi.InlineKeyboardButton{button})
			continue
		}
		pending = append(pending, button)
		if len(pending) == 2 {
			rows = append(rows, pending)
			pending = nil
		}
	}
	if len(pending) > 0 {
		rows = append(rows, pending)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...), count
}

func bankKeyboard(banks []config.Bank, prefix string, enabled func(string) bool) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var pending []tgbotapi.InlineKeyboardButton

	for _, bank := range banks {
		if !enabled(bank.ID) {
			continue
		}
		pending = append(pending, tgbotapi.NewInlineKeyboardButtonData(bank.Name, prefix+bank.ID))
		if len(pending) == 2 {
			rows = append(rows, pending)
			pending = nil
		}
	}
	if len(pending) > 0 {
		rows = append(rows, pending)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// qrBankKeyboard - ссылки "оплатить в банке" под сообщением с QR, по две
// в ряд, плюс кнопка отмены.
func (b *Bot) qrBankKeyboard(lang string, urls map[string]string, settings *backend.PaymentSettings) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var pending []tgbotapi.InlineKeyboardButton

	for _, bank := range b.profile.DepositBanks {
		if !settings.DepositBankEnabled(bank.ID) {
			continue
		}
		url := urls[config.BankURLKeys[bank.ID]]
		if url == "" {
			continue
		}
		pending = append(pending, tgbotapi.NewInlineKeyboardButtonURL(bank.Name, url))
		if len(pending) == 2 {
			rows = append(rows, pending)
			pending = nil
		}
	}
	if len(pending) > 0 {
		rows = append(rows, pending)
	}

	rows = append(rows, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData(translations.Text(lang, "common.cancel"), "deposit_cancel"),
	})

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) sendMainMenu(chatID int64, lang, text string) {
	b.sendMessage(chatID, text, mainMenu(lang))
}

// isMenuButton сравнивает текст сообщения с кнопкой меню на любом из
// поддерживаемых языков.
func isMenuButton(text, key string) bool {
	for _, l := range translations.Languages {
		if text == translations.Text(l.Code, key) {
			return true
		}
	}
	return false
}
