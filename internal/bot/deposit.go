package bot

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"github.com/etodastandetka/bingo/internal/backend"
	"github.com/etodastandetka/bingo/internal/session"
	"github.com/etodastandetka/bingo/internal/timer"
	"github.com/etodastandetka/bingo/internal/translations"
	"github.com/etodastandetka/bingo/utils"
)

func (b *Bot) startDeposit(ctx context.Context, msg *tgbotapi.Message, sess *session.Session) {
	chatID := msg.Chat.ID
	lang := sess.Language

	settings := b.backend.PaymentSettings()
	if !b.ensureNotPaused(chatID, lang, settings) {
		return
	}
	if !b.ensureSubscribed(chatID, lang, settings) {
		return
	}
	if !settings.DepositsEnabled {
		b.sendMainMenu(chatID, lang, translations.Text(lang, "deposit.deposits_disabled"))
		return
	}
	if !b.ensureNotBlocked(chatID, lang, "") {
		return
	}

	// Повторная заявка, пока первая в обработке, породила бы двойное
	// зачисление. Проверка мягкая: при недоступном бэкенде пропускаем.
	if active, err := b.backend.CheckActiveDeposit(chatIDString(chatID)); err != nil {
		b.logger.Warnf("Проверка активной заявки недоступна для %d: %v", chatID, err)
	} else if active.HasActive {
		b.sendMainMenu(chatID, lang,
			translations.Text(lang, "deposit.active_request", active.RequestID, active.MinutesAgo))
		return
	}

	keyboard, count := b.casinoKeyboard("dep_casino_", settings)
	if count == 0 {
		b.sendMainMenu(chatID, lang, translations.Text(lang, "deposit.no_casinos"))
		return
	}

	sess.Flow = session.FlowDeposit
	sess.State = session.StateDepositCasino

	reply := tgbotapi.NewMessage(chatID, translations.Text(lang, "deposit.select_casino"))
	reply.ReplyMarkup = keyboard
	if _, err := b.api.Send(reply); err != nil {
		b.logger.Errorf("Не удалось отправить выбор казино: %v", err)
	}
}

func (b *Bot) handleDepositCasino(ctx context.Context, cb *tgbotapi.CallbackQuery, casinoID string, sess *session.Session) {
	chatID := cb.Message.Chat.ID
	lang := sess.Language

	if sess.Flow != session.FlowDeposit || sess.State != session.StateDepositCasino {
		return
	}

	casino, ok := b.profile.Casino(casinoID)
	if !ok || !b.backend.PaymentSettings().CasinoEnabled(casinoID) {
		b.sendMessage(chatID, translations.Text(lang, "deposit.casino_disabled"), nil)
		return
	}

	sess.CasinoID = casino.ID
	sess.CasinoName = casino.Name
	sess.State = session.StateDepositAccountID
	b.deleteMessage(chatID, cb.Message.MessageID)

	b.sendMessage(chatID,
		translations.Text(lang, "deposit.enter_account_id", casino.Name),
		cancelMenu(lang, b.savedAccountHints(ctx, chatID, casino.ID)...))
}

// savedAccountHints возвращает последний использованный ID счёта как
// кнопку-подсказку. Сначала спрашиваем админку, при её недоступности
// берём локальный кеш.
func (b *Bot) savedAccountHints(ctx context.Context, chatID int64, casinoID string) []string {
	account, err := b.backend.SavedCasinoAccount(chatIDString(chatID), casinoID)
	if err != nil || account == "" {
		if err != nil {
			b.logger.Warnf("Сохранённый ID недоступен в админке: %v", err)
		}
		account, _ = b.users.LastAccount(ctx, chatID, casinoID)
	}
	if account == "" {
		return nil
	}
	return []string{account}
}

func (b *Bot) handleDepositAccountID(ctx context.Context, msg *tgbotapi.Message, sess *session.Session) {
	chatID := msg.Chat.ID
	lang := sess.Language
	accountID := strings.TrimSpace(msg.Text)

	if !digitsOnly(accountID) || len(accountID) < 4 || len(accountID) > 15 {
		b.sendMessage(chatID, translations.Text(lang, "deposit.invalid_account_id"), nil)
		return
	}

	// Блокировка может быть заведена на конкретный игровой счёт.
	if !b.ensureNotBlocked(chatID, lang, accountID) {
		sess.Reset()
		return
	}

	casino, _ := b.profile.Casino(sess.CasinoID)
	if !casino.SkipPlayerCheck {
		b.sendMessage(chatID, translations.Text(lang, "deposit.checking_player"), nil)
		check, err := b.backend.CheckPlayer(sess.CasinoID, accountID)
		if err != nil {
			// Недоступная проверка не должна останавливать пополнение.
			b.logger.Warnf("Проверка игрока %s/%s недоступна: %v", sess.CasinoID, accountID, err)
		} else if !check.Exists {
			b.sendMessage(chatID, translations.Text(lang, "deposit.player_not_found"), nil)
			return
		}
	}

	sess.AccountID = accountID
	sess.State = session.StateDepositAmount

	if err := b.backend.SaveCasinoAccount(chatIDString(chatID), sess.CasinoID, accountID); err != nil {
		b.logger.Warnf("Не удалось сохранить ID счёта в админке: %v", err)
	}
	if err := b.users.SaveAccount(ctx, chatID, sess.CasinoID, accountID); err != nil {
		b.logger.Warnf("Не удалось сохранить ID счёта локально: %v", err)
	}

	b.sendMessage(chatID,
		translations.Text(lang, "deposit.enter_amount",
			utils.FormatLimit(b.profile.DepositMin), utils.FormatLimit(b.profile.DepositMax)),
		cancelMenu(lang, quickAmounts...))
}

func (b *Bot) handleDepositAmount(ctx context.Context, msg *tgbotapi.Message, sess *session.Session) {
	chatID := msg.Chat.ID
	lang := sess.Language

	amount, err := utils.ParseAmount(msg.Text)
	if err != nil ||
		amount.LessThan(decimal.NewFromInt(b.profile.DepositMin)) ||
		amount.GreaterThan(decimal.NewFromInt(b.profile.DepositMax)) {
		b.sendMessage(chatID,
			translations.Text(lang, "deposit.invalid_amount",
				utils.FormatLimit(b.profile.DepositMin), utils.FormatLimit(b.profile.DepositMax)),
			nil)
		return
	}

	sess.Amount = amount

	if b.profile.DepositBankSelection {
		sess.State = session.StateDepositBank
		settings := b.backend.PaymentSettings()
		reply := tgbotapi.NewMessage(chatID, translations.Text(lang, "deposit.select_bank"))
		reply.ReplyMarkup = bankKeyboard(b.profile.DepositBanks, "dep_bank_", settings.DepositBankEnabled)
		if _, err := b.api.Send(reply); err != nil {
			b.logger.Errorf("Не удалось отправить выбор банка: %v", err)
		}
		return
	}

	b.sendDepositQR(ctx, msg.Chat.ID, msg.From, sess)
}

func (b *Bot) handleDepositBank(ctx context.Context, cb *tgbotapi.CallbackQuery, bankID string, sess *session.Session) {
	chatID := cb.Message.Chat.ID
	lang := sess.Language

	if sess.Flow != session.FlowDeposit || sess.State != session.StateDepositBank {
		return
	}

	for _, bank := range b.profile.DepositBanks {
		if bank.ID == bankID {
			sess.BankID = bank.ID
			sess.BankName = bank.Name
			b.deleteMessage(chatID, cb.Message.MessageID)
			// Автор callback-сообщения - сам бот, берём пользователя
			// из самого callback.
			b.sendDepositQR(ctx, chatID, cb.From, sess)
			return
		}
	}
	b.sendMessage(chatID, translations.Text(lang, "deposit.invalid_bank"), nil)
}

// sendDepositQR резервирует уникальную сумму, генерирует QR и запускает
// пятиминутный отсчёт под сообщением с кодом. from - пользователь,
// инициировавший шаг (для callback это не автор сообщения).
func (b *Bot) sendDepositQR(ctx context.Context, chatID int64, from *tgbotapi.User, sess *session.Session) {
	lang := sess.Language

	progress, _ := b.sendMessage(chatID, translations.Text(lang, "deposit.generating_qr"),
		tgbotapi.NewRemoveKeyboard(true))
	dropProgress := func() {
		if progress.MessageID != 0 {
			b.deleteMessage(chatID, progress.MessageID)
		}
	}

	reservation := b.backend.ReserveAmount(backend.ReserveInput{
		UserID:    chatIDString(chatID),
		AccountID: sess.AccountID,
		Amount:    sess.Amount,
		Bookmaker: sess.CasinoID,
		Bank:      sess.BankID,
	})
	sess.Amount = reservation.Amount
	if reservation.ClientFallback {
		b.logger.Warnf("Сумма для %d зарезервирована на стороне бота: %s",
			chatID, utils.FormatAmount(reservation.Amount))
	}

	qr, err := b.backend.GenerateQR(reservation.Amount, sess.BankID)
	if err != nil {
		b.logger.Errorf("Не удалось сгенерировать QR для %d: %v", chatID, err)
		dropProgress()
		b.abortDeposit(chatID, sess, translations.Text(lang, "deposit.qr_error"))
		return
	}

	image, err := b.backend.GenerateQRImage(reservation.Amount, sess.BankID, reservation.ReservationID)
	if err != nil {
		b.logger.Errorf("Не удалось получить картинку QR для %d: %v", chatID, err)
		dropProgress()
		b.abortDeposit(chatID, sess, translations.Text(lang, "deposit.qr_error"))
		return
	}

	settings := b.backend.PaymentSettings()
	keyboard := b.qrBankKeyboard(lang, qr.BankURLs, settings)
	duration := b.profile.QRDuration
	caption := b.qrCaption(lang, sess, int(duration.Seconds()))

	sent, err := b.sendQRPhoto(chatID, image, caption, keyboard)
	if err != nil {
		b.logger.Errorf("Не удалось отправить QR в чат %d: %v", chatID, err)
		dropProgress()
		b.abortDeposit(chatID, sess, translations.Text(lang, "deposit.qr_error"))
		return
	}

	dropProgress()

	now := time.Now()
	sess.State = session.StateDepositReceipt
	sess.QRMessageID = sent.MessageID
	sess.QRCreatedAt = now.Unix()
	sess.TimerDuration = int(duration.Seconds())

	username, firstName, lastName := userName(from)
	if id, err := b.backend.CreateUncreatedRequest(backend.UncreatedInput{
		UserID:    chatIDString(chatID),
		Bookmaker: sess.CasinoID,
		AccountID: sess.AccountID,
		Amount:    reservation.Amount,
		Bank:      sess.BankID,
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
	}); err != nil {
		b.logger.Warnf("Не удалось создать предварительную заявку для %d: %v", chatID, err)
	} else {
		sess.UncreatedRequestID = id
	}

	// Снимок данных для замыканий таймера: сессия после возврата из
	// обработчика может измениться.
	snapshot := *sess
	messageID := sent.MessageID
	b.timers.Start(timer.Task{
		ChatID:    chatID,
		MessageID: messageID,
		CreatedAt: now,
		Duration:  duration,
		Edit: func(remaining int) error {
			edit := tgbotapi.NewEditMessageCaption(chatID, messageID,
				b.qrCaption(lang, &snapshot, remaining))
			edit.ReplyMarkup = &keyboard
			if _, err := b.api.Send(edit); err != nil && !notModified(err) {
				return err
			}
			return nil
		},
		OnExpire: func() {
			b.expireDepositQR(chatID, messageID)
		},
	})
}

func (b *Bot) qrCaption(lang string, sess *session.Session, remainingSeconds int) string {
	return translations.Text(lang, "deposit.qr_payment_info",
		utils.FormatAmount(sess.Amount),
		sess.CasinoName,
		sess.AccountID,
		utils.FormatTimer(remainingSeconds))
}

// sendQRPhoto отправляет PNG с ретраями, на крайний случай документом.
func (b *Bot) sendQRPhoto(chatID int64, image []byte, caption string, keyboard tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error) {
	file := tgbotapi.FileBytes{Name: "qr.png", Bytes: image}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		photo := tgbotapi.NewPhoto(chatID, file)
		photo.Caption = caption
		photo.ReplyMarkup = keyboard
		sent, err := b.api.Send(photo)
		if err == nil {
			return sent, nil
		}
		lastErr = err
		b.logger.Warnf("Отправка QR не удалась (попытка %d): %v", attempt, err)
		time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
	}

	doc := tgbotapi.NewDocument(chatID, file)
	doc.Caption = caption
	doc.ReplyMarkup = keyboard
	sent, err := b.api.Send(doc)
	if err != nil {
		return tgbotapi.Message{}, lastErr
	}
	return sent, nil
}

func (b *Bot) abortDeposit(chatID int64, sess *session.Session, text string) {
	sess.Reset()
	b.sendMainMenu(chatID, sess.Language, text)
}

// expireDepositQR вызывается таймером при естественном истечении. Берёт
// блокировку чата: пользователь мог в этот момент отправлять чек.
func (b *Bot) expireDepositQR(chatID int64, messageID int) {
	lock := b.chatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := b.sessions.Get(chatID)
	if err != nil {
		b.logger.Errorf("Не удалось загрузить сессию %d при истечении таймера: %v", chatID, err)
		return
	}
	if sess.Flow != session.FlowDeposit || sess.QRMessageID != messageID {
		// Пользователь уже ушёл из потока или получил новый QR.
		return
	}

	lang := sess.Language
	b.deleteMessage(chatID, messageID)
	sess.Reset()
	if err := b.sessions.Put(chatID, sess); err != nil {
		b.logger.Errorf("Не удалось сохранить сессию %d: %v", chatID, err)
	}
	b.sendMainMenu(chatID, lang, translations.Text(lang, "deposit.timer_expired"))
}

// cancelDepositQR - кнопка отмены под сообщением с QR.
func (b *Bot) cancelDepositQR(chatID int64, sess *session.Session) {
	lang := sess.Language
	if sess.QRMessageID != 0 {
		b.timers.Cancel(chatID, sess.QRMessageID)
		b.deleteMessage(chatID, sess.QRMessageID)
	}
	sess.Reset()
	b.sendMainMenu(chatID, lang, translations.Text(lang, "common.cancelled"))
}

func (b *Bot) handleDepositReceipt(ctx context.Context, msg *tgbotapi.Message, sess *session.Session) {
	chatID := msg.Chat.ID
	lang := sess.Language

	fileID, ok := largestPhoto(msg)
	if !ok {
		b.sendMessage(chatID, translations.Text(lang, "deposit.invalid_receipt"), nil)
		return
	}

	receipt, err := b.downloadPhotoBase64(fileID)
	if err != nil {
		b.logger.Errorf("Не удалось скачать чек из чата %d: %v", chatID, err)
		b.sendMessage(chatID, translations.Text(lang, "common.error"), nil)
		return
	}

	if sess.QRMessageID != 0 {
		b.timers.Cancel(chatID, sess.QRMessageID)
		b.deleteMessage(chatID, sess.QRMessageID)
		sess.QRMessageID = 0
	}

	username, firstName, lastName := senderName(msg)
	created, err := b.backend.CreateRequest(backend.RequestInput{
		TelegramUserID:     chatIDString(chatID),
		Type:               "deposit",
		Amount:             sess.Amount,
		Bookmaker:          sess.CasinoID,
		Bank:               sess.BankID,
		AccountID:          sess.AccountID,
		Username:           username,
		FirstName:          firstName,
		LastName:           lastName,
		ReceiptPhoto:       receipt,
		UncreatedRequestID: sess.UncreatedRequestID,
	})
	if err != nil {
		// Заявка не создана, чек можно прислать повторно.
		b.logger.Errorf("Не удалось создать заявку на пополнение для %d: %v", chatID, err)
		b.sendMessage(chatID, translations.Text(lang, "common.error"), nil)
		return
	}
	if created.AlreadyExists {
		b.logger.Infof("Заявка для %d уже существует: %s", chatID, created.ID)
	}

	confirmation, serr := b.sendMessage(chatID,
		translations.Text(lang, "deposit.request_created",
			utils.FormatAmount(sess.Amount), sess.CasinoName, sess.AccountID),
		mainMenu(lang))
	if serr == nil && confirmation.MessageID != 0 {
		if err := b.backend.UpdateRequestMessageID(created.ID, confirmation.MessageID); err != nil {
			b.logger.Warnf("Не удалось привязать message_id к заявке %s: %v", created.ID, err)
		}
	}

	sess.Reset()
}
