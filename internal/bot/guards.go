package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/etodastandetka/bingo/internal/backend"
	"github.com/etodastandetka/bingo/internal/translations"
)

const subscriptionCheckData = "check_subscription"

// ensureNotPaused проверяет флаг паузы из админки. Возвращает false, если
// бот на паузе и пользователю уже отвечено.
func (b *Bot) ensureNotPaused(chatID int64, lang string, settings *backend.PaymentSettings) bool {
	if !settings.Pause {
		return true
	}
	text := settings.MaintenanceMessage
	if text == "" {
		text = translations.Text(lang, "start.bot_paused")
	}
	b.sendMainMenu(chatID, lang, text)
	return false
}

// ensureSubscribed проверяет подписку на канал, если админка её требует.
// Ошибки Telegram трактуются как "подписан": гард не должен блокировать
// платежи из-за недоступного API.
func (b *Bot) ensureSubscribed(chatID int64, lang string, settings *backend.PaymentSettings) bool {
	if !settings.RequireChannelSubscription {
		return true
	}
	channel := settings.Channel
	if channel == "" {
		channel = b.profile.Channel
	}
	if channel == "" {
		return true
	}

	if b.isChannelMember(chatID, channel) {
		return true
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonURL(
				translations.Text(lang, "start.subscribe_button"),
				"https://t.me/"+trimAt(channel),
			),
		},
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(
				translations.Text(lang, "start.check_subscription"),
				subscriptionCheckData,
			),
		},
	)

	msg := tgbotapi.NewMessage(chatID, translations.Text(lang, "start.subscribe_required", channel))
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Errorf("Не удалось отправить приглашение подписаться: %v", err)
	}
	return false
}

func (b *Bot) isChannelMember(userID int64, channel string) bool {
	member, err := b.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			SuperGroupUsername: "@" + trimAt(channel),
			UserID:             userID,
		},
	})
	if err != nil {
		b.logger.Warnf("Не удалось проверить подписку пользователя %d: %v", userID, err)
		return true
	}

	switch member.Status {
	case "member", "administrator", "creator":
		return true
	}
	return false
}

// ensureNotBlocked - мягкая проверка блокировки: если админка молчит,
// пользователь проходит.
func (b *Bot) ensureNotBlocked(chatID int64, lang, accountID string) bool {
	result, err := b.backend.CheckBlocked(chatIDString(chatID), accountID)
	if err != nil {
		b.logger.Warnf("Проверка блокировки недоступна для %d: %v", chatID, err)
		return true
	}
	if !result.Blocked {
		return true
	}

	text := result.Message
	if text == "" {
		text = translations.Text(lang, "common.error")
	}
	b.sendMainMenu(chatID, lang, text)
	return false
}

func trimAt(channel string) string {
	if len(channel) > 0 && channel[0] == '@' {
		return channel[1:]
	}
	return channel
}
