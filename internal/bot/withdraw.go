package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/etodastandetka/bingo/internal/backend"
	"github.com/etodastandetka/bingo/internal/session"
	"github.com/etodastandetka/bingo/internal/translations"
	"github.com/etodastandetka/bingo/utils"
)

func (b *Bot) startWithdraw(ctx context.Context, msg *tgbotapi.Message, sess *session.Session) {
	chatID := msg.Chat.ID
	lang := sess.Language

	settings := b.backend.PaymentSettings()
	if !b.ensureNotPaused(chatID, lang, settings) {
		return
	}
	if !b.ensureSubscribed(chatID, lang, settings) {
		return
	}
	if !settings.WithdrawalsEnabled {
		b.sendMainMenu(chatID, lang, translations.Text(lang, "withdraw.withdrawals_disabled"))
		return
	}
	if !b.ensureNotBlocked(chatID, lang, "") {
		return
	}

	keyboard, count := b.casinoKeyboard("wd_casino_", settings)
	if count == 0 {
		b.sendMainMenu(chatID, lang, translations.Text(lang, "deposit.no_casinos"))
		return
	}

	sess.Flow = session.FlowWithdraw
	sess.State = session.StateWithdrawCasino

	reply := tgbotapi.NewMessage(chatID, translations.Text(lang, "withdraw.select_casino"))
	reply.ReplyMarkup = keyboard
	if _, err := b.api.Send(reply); err != nil {
		b.logger.Errorf("Не удалось отправить выбор казино: %v", err)
	}
}

func (b *Bot) handleWithdrawCasino(ctx context.Context, cb *tgbotapi.CallbackQuery, casinoID string, sess *session.Session) {
	chatID := cb.Message.Chat.ID
	lang := sess.Language

	if sess.Flow != session.FlowWithdraw || sess.State != session.StateWithdrawCasino {
		return
	}

	casino, ok := b.profile.Casino(casinoID)
	if !ok || !b.backend.PaymentSettings().CasinoEnabled(casinoID) {
		b.sendMessage(chatID, translations.Text(lang, "deposit.casino_disabled"), nil)
		return
	}

	sess.CasinoID = casino.ID
	sess.CasinoName = casino.Name
	sess.State = session.StateWithdrawBank
	b.deleteMessage(chatID, cb.Message.MessageID)

	settings := b.backend.PaymentSettings()
	reply := tgbotapi.NewMessage(chatID, translations.Text(lang, "withdraw.select_bank", casino.Name))
	reply.ReplyMarkup = bankKeyboard(b.profile.WithdrawBanks, "wd_bank_", settings.WithdrawBankEnabled)
	if _, err := b.api.Send(reply); err != nil {
		b.logger.Errorf("Не удалось отправить выбор банка: %v", err)
	}
}

func (b *Bot) handleWithdrawBank(ctx context.Context, cb *tgbotapi.CallbackQuery, bankID string, sess *session.Session) {
	chatID := cb.Message.Chat.ID
	lang := sess.Language

	if sess.Flow != session.FlowWithdraw || sess.State != session.StateWithdrawBank {
		return
	}

	var found bool
	for _, bank := range b.profile.WithdrawBanks {
		if bank.ID == bankID {
			sess.BankID = bank.ID
			sess.BankName = bank.Name
			found = true
			break
		}
	}
	if !found {
		b.sendMessage(chatID, translations.Text(lang, "withdraw.invalid_bank"), nil)
		return
	}

	sess.State = session.StateWithdrawPhone
	b.deleteMessage(chatID, cb.Message.MessageID)

	b.sendMessage(chatID,
		translations.Text(lang, "withdraw.enter_phone", sess.CasinoName, sess.BankName),
		cancelMenu(lang, b.savedPhoneHints(ctx, chatID)...))
}

// savedPhoneHints - телефон из последней заявки на вывод как кнопка.
func (b *Bot) savedPhoneHints(ctx context.Context, chatID int64) []string {
	phone, err := b.backend.LastWithdrawPhone(chatIDString(chatID))
	if err != nil || phone == "" {
		if err != nil {
			b.logger.Warnf("Телефон последнего вывода недоступен в админке: %v", err)
		}
		phone, _ = b.users.LastPhone(ctx, chatID)
	}
	if phone == "" {
		return nil
	}
	return []string{phone}
}

func (b *Bot) handleWithdrawPhone(ctx context.Context, msg *tgbotapi.Message, sess *session.Session) {
	chatID := msg.Chat.ID
	lang := sess.Language
	phone := strings.ReplaceAll(strings.TrimSpace(msg.Text), " ", "")

	if !strings.HasPrefix(phone, "+996") {
		b.sendMessage(chatID, translations.Text(lang, "withdraw.invalid_phone"), nil)
		return
	}
	if len(phone) < 13 || len(phone) > 16 || !digitsOnly(phone[1:]) {
		b.sendMessage(chatID, translations.Text(lang, "withdraw.invalid_phone_format"), nil)
		return
	}

	sess.Phone = phone
	sess.State = session.StateWithdrawQRPhoto

	if err := b.users.SavePhone(ctx, chatID, phone); err != nil {
		b.logger.Warnf("Не удалось сохранить телефон пользователя %d: %v", chatID, err)
	}

	b.sendMessage(chatID, translations.Text(lang, "withdraw.send_qr_photo"), cancelMenu(lang))
}

func (b *Bot) handleWithdrawQRPhoto(ctx context.Context, msg *tgbotapi.Message, sess *session.Session) {
	chatID := msg.Chat.ID
	lang := sess.Language

	fileID, ok := largestPhoto(msg)
	if !ok {
		b.sendMessage(chatID, translations.Text(lang, "withdraw.invalid_photo"), nil)
		return
	}

	photo, err := b.downloadPhotoBase64(fileID)
	if err != nil {
		b.logger.Errorf("Не удалось скачать QR вывода из чата %d: %v", chatID, err)
		b.sendMessage(chatID, translations.Text(lang, "common.error"), nil)
		return
	}

	sess.QRPhoto = photo
	sess.State = session.StateWithdrawAccountID

	b.sendMessage(chatID,
		translations.Text(lang, "withdraw.enter_account_id", sess.CasinoName),
		cancelMenu(lang, b.savedAccountHints(ctx, chatID, sess.CasinoID)...))
}

func (b *Bot) handleWithdrawAccountID(ctx context.Context, msg *tgbotapi.Message, sess *session.Session) {
	chatID := msg.Chat.ID
	lang := sess.Language
	accountID := strings.TrimSpace(msg.Text)

	if !digitsOnly(accountID) || len(accountID) < 4 || len(accountID) > 15 {
		b.sendMessage(chatID, translations.Text(lang, "withdraw.invalid_account_id"), nil)
		return
	}

	// Блокировка может быть заведена на конкретный игровой счёт.
	if !b.ensureNotBlocked(chatID, lang, accountID) {
		sess.Reset()
		return
	}

	sess.AccountID = accountID
	sess.State = session.StateWithdrawCode

	if err := b.backend.SaveCasinoAccount(chatIDString(chatID), sess.CasinoID, accountID); err != nil {
		b.logger.Warnf("Не удалось сохранить ID счёта в админке: %v", err)
	}
	if err := b.users.SaveAccount(ctx, chatID, sess.CasinoID, accountID); err != nil {
		b.logger.Warnf("Не удалось сохранить ID счёта локально: %v", err)
	}

	b.sendMessage(chatID, translations.WithdrawInstructions(sess.CasinoID, lang), nil)
	b.sendMessage(chatID, translations.Text(lang, "withdraw.enter_code"), cancelMenu(lang))
}

func (b *Bot) handleWithdrawCode(ctx context.Context, msg *tgbotapi.Message, sess *session.Session) {
	chatID := msg.Chat.ID
	lang := sess.Language
	code := strings.TrimSpace(msg.Text)

	if code == "" {
		b.sendMessage(chatID, translations.Text(lang, "withdraw.amount_not_found"), nil)
		return
	}

	b.sendMessage(chatID, translations.Text(lang, "withdraw.checking_code"), nil)

	// Без подтверждённой суммы заявка не создаётся: код мог быть уже
	// использован или введён с ошибкой. Поток прерывается целиком.
	amount, err := b.backend.CheckWithdrawAmount(sess.CasinoID, chatIDString(chatID), code)
	if err != nil {
		b.logger.Errorf("Не удалось проверить код вывода для %d: %v", chatID, err)
		sess.Reset()
		b.sendMainMenu(chatID, lang, translations.Text(lang, "withdraw.amount_error"))
		return
	}
	if !amount.IsPositive() {
		sess.Reset()
		b.sendMainMenu(chatID, lang, translations.Text(lang, "withdraw.amount_not_found"))
		return
	}

	sess.Amount = amount

	username, firstName, lastName := senderName(msg)
	created, err := b.backend.CreateRequest(backend.RequestInput{
		TelegramUserID: chatIDString(chatID),
		Type:           "withdraw",
		Amount:         amount,
		Bookmaker:      sess.CasinoID,
		Bank:           sess.BankID,
		Phone:          sess.Phone,
		AccountID:      sess.AccountID,
		Username:       username,
		FirstName:      firstName,
		LastName:       lastName,
		ReceiptPhoto:   sess.QRPhoto,
		WithdrawalCode: code,
	})
	if err != nil {
		b.logger.Errorf("Не удалось создать заявку на вывод для %d: %v", chatID, err)
		sess.Reset()
		b.sendMainMenu(chatID, lang, translations.Text(lang, "withdraw.not_created"))
		return
	}
	if created.AlreadyExists {
		b.logger.Infof("Заявка на вывод для %d уже существует: %s", chatID, created.ID)
	}

	confirmation, serr := b.sendMessage(chatID,
		translations.Text(lang, "withdraw.request_created",
			utils.FormatAmount(amount), sess.CasinoName, sess.BankName,
			sess.Phone, sess.AccountID, b.profile.Support),
		mainMenu(lang))
	if serr == nil && confirmation.MessageID != 0 {
		if err := b.backend.UpdateRequestMessageID(created.ID, confirmation.MessageID); err != nil {
			b.logger.Warnf("Не удалось привязать message_id к заявке %s: %v", created.ID, err)
		}
	}

	sess.Reset()
}
