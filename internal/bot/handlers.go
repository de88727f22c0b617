package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/etodastandetka/bingo/internal/session"
	"github.com/etodastandetka/bingo/internal/translations"
)

func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update, sess *session.Session) {
	if update.CallbackQuery != nil {
		b.handleCallback(ctx, update.CallbackQuery, sess)
		return
	}
	if update.Message != nil {
		b.handleMessage(ctx, update.Message, sess)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message, sess *session.Session) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)
	lang := sess.Language

	b.logger.Infof("Сообщение от %d (state=%s): %s", chatID, sess.State, text)

	if text == "/start" {
		b.handleStart(ctx, msg, sess)
		return
	}

	// Кнопки меню и отмена работают из любого состояния: начатый поток
	// сбрасывается.
	switch {
	case isMenuButton(text, "common.cancel"):
		b.resetFlow(chatID, sess)
		b.sendMainMenu(chatID, lang, translations.Text(lang, "common.cancelled"))
		return
	case isMenuButton(text, "menu.deposit"):
		b.resetFlow(chatID, sess)
		b.startDeposit(ctx, msg, sess)
		return
	case isMenuButton(text, "menu.withdraw"):
		b.resetFlow(chatID, sess)
		b.startWithdraw(ctx, msg, sess)
		return
	case isMenuButton(text, "menu.instruction"):
		b.resetFlow(chatID, sess)
		b.sendMainMenu(chatID, lang, translations.Text(lang, "instruction.text"))
		return
	case isMenuButton(text, "menu.language"):
		b.resetFlow(chatID, sess)
		sess.State = session.StateLanguage
		reply := tgbotapi.NewMessage(chatID, translations.Text(lang, "language.select"))
		reply.ReplyMarkup = languageKeyboard()
		if _, err := b.api.Send(reply); err != nil {
			b.logger.Errorf("Не удалось отправить выбор языка: %v", err)
		}
		return
	}

	switch sess.State {
	case session.StateDepositAccountID:
		b.handleDepositAccountID(ctx, msg, sess)
	case session.StateDepositAmount:
		b.handleDepositAmount(ctx, msg, sess)
	case session.StateDepositReceipt:
		b.handleDepositReceipt(ctx, msg, sess)
	case session.StateWithdrawPhone:
		b.handleWithdrawPhone(ctx, msg, sess)
	case session.StateWithdrawQRPhoto:
		b.handleWithdrawQRPhoto(ctx, msg, sess)
	case session.StateWithdrawAccountID:
		b.handleWithdrawAccountID(ctx, msg, sess)
	case session.StateWithdrawCode:
		b.handleWithdrawCode(ctx, msg, sess)
	default:
		b.sendMainMenu(chatID, lang, translations.Text(lang, "common.unknown"))
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, sess *session.Session) {
	if cb.Message == nil {
		b.answerCallback(cb.ID)
		return
	}
	chatID := cb.Message.Chat.ID
	data := cb.Data
	lang := sess.Language

	b.logger.Infof("Callback от %d: %s", chatID, data)
	b.answerCallback(cb.ID)

	switch {
	case data == "deposit_cancel":
		b.cancelDepositQR(chatID, sess)
	case data == subscriptionCheckData:
		b.handleSubscriptionCheck(ctx, cb, sess)
	case strings.HasPrefix(data, "lang_"):
		b.handleLanguageChoice(ctx, chatID, strings.TrimPrefix(data, "lang_"), sess)
	case strings.HasPrefix(data, "dep_casino_"):
		b.handleDepositCasino(ctx, cb, strings.TrimPrefix(data, "dep_casino_"), sess)
	case strings.HasPrefix(data, "dep_bank_"):
		b.handleDepositBank(ctx, cb, strings.TrimPrefix(data, "dep_bank_"), sess)
	case strings.HasPrefix(data, "wd_casino_"):
		b.handleWithdrawCasino(ctx, cb, strings.TrimPrefix(data, "wd_casino_"), sess)
	case strings.HasPrefix(data, "wd_bank_"):
		b.handleWithdrawBank(ctx, cb, strings.TrimPrefix(data, "wd_bank_"), sess)
	default:
		b.sendMainMenu(chatID, lang, translations.Text(lang, "common.unknown"))
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message, sess *session.Session) {
	chatID := msg.Chat.ID
	lang := sess.Language
	b.resetFlow(chatID, sess)

	if _, err := b.users.User(ctx, chatID); err != nil {
		b.logger.Errorf("Не удалось завести пользователя %d: %v", chatID, err)
	}

	settings := b.backend.PaymentSettings()
	if !b.ensureSubscribed(chatID, lang, settings) {
		return
	}

	name := translations.Text(lang, "start.default_name")
	if msg.From != nil && msg.From.FirstName != "" {
		name = msg.From.FirstName
	}

	text := translations.Text(lang, "start.greeting", name) + "\n\n" +
		translations.Text(lang, "start.auto_deposit") + "\n" +
		translations.Text(lang, "start.auto_withdraw") + "\n" +
		translations.Text(lang, "start.working") + "\n\n" +
		translations.Text(lang, "start.support", b.profile.Support)

	b.sendMainMenu(chatID, lang, text)
}

func (b *Bot) handleSubscriptionCheck(ctx context.Context, cb *tgbotapi.CallbackQuery, sess *session.Session) {
	chatID := cb.Message.Chat.ID
	lang := sess.Language

	settings := b.backend.PaymentSettings()
	channel := settings.Channel
	if channel == "" {
		channel = b.profile.Channel
	}

	if !settings.RequireChannelSubscription || channel == "" || b.isChannelMember(chatID, channel) {
		b.deleteMessage(chatID, cb.Message.MessageID)
		name := translations.Text(lang, "start.default_name")
		if cb.From != nil && cb.From.FirstName != "" {
			name = cb.From.FirstName
		}
		b.sendMainMenu(chatID, lang, translations.Text(lang, "start.greeting", name))
		return
	}

	b.sendMessage(chatID, translations.Text(lang, "start.not_subscribed"), nil)
}

func (b *Bot) handleLanguageChoice(ctx context.Context, chatID int64, code string, sess *session.Session) {
	known := false
	for _, l := range translations.Languages {
		if l.Code == code {
			known = true
			break
		}
	}
	if !known {
		return
	}

	if err := b.users.SetLanguage(ctx, chatID, code); err != nil {
		b.logger.Errorf("Не удалось сохранить язык пользователя %d: %v", chatID, err)
	}
	sess.Language = code
	sess.State = session.StateIdle
	b.sendMainMenu(chatID, code, translations.Text(code, "language.saved"))
}

// resetFlow снимает активный таймер QR, убирает сообщение с кодом и
// очищает состояние потока.
func (b *Bot) resetFlow(chatID int64, sess *session.Session) {
	if sess.QRMessageID != 0 {
		b.timers.Cancel(chatID, sess.QRMessageID)
		b.deleteMessage(chatID, sess.QRMessageID)
	}
	sess.Reset()
}
