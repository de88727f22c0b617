package bot

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/imroc/req"
	"github.com/shopspring/decimal"

	"github.com/etodastandetka/bingo/config"
	"github.com/etodastandetka/bingo/internal/backend"
	"github.com/etodastandetka/bingo/internal/models"
	"github.com/etodastandetka/bingo/internal/session"
	"github.com/etodastandetka/bingo/internal/timer"
	"github.com/etodastandetka/bingo/utils"
)

// Transport - используемое ботом подмножество tgbotapi.BotAPI.
type Transport interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
	GetChatMember(cfg tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error)
}

// Backend - операции админского API, нужные обработчикам.
type Backend interface {
	PaymentSettings() *backend.PaymentSettings
	CheckBlocked(userID, accountID string) (*backend.BlockedResult, error)
	CheckActiveDeposit(userID string) (*backend.ActiveDeposit, error)
	CheckPlayer(bookmaker, accountID string) (*backend.PlayerCheck, error)
	SavedCasinoAccount(userID, casinoID string) (string, error)
	SaveCasinoAccount(userID, casinoID, accountID string) error
	LastWithdrawPhone(userID string) (string, error)
	ReserveAmount(in backend.ReserveInput) backend.Reservation
	GenerateQR(amount decimal.Decimal, bank string) (*backend.QRResult, error)
	GenerateQRImage(amount decimal.Decimal, bank, uniqueID string) ([]byte, error)
	CreateUncreatedRequest(in backend.UncreatedInput) (string, error)
	CreateRequest(in backend.RequestInput) (*backend.CreatedRequest, error)
	UpdateRequestMessageID(requestID string, messageID int) error
	CheckWithdrawAmount(bookmaker, userID, code string) (decimal.Decimal, error)
}

// UserDirectory - локальная база пользователей (язык, автозаполнение).
type UserDirectory interface {
	User(ctx context.Context, telegramID int64) (*models.BotUser, error)
	SetLanguage(ctx context.Context, telegramID int64, language string) error
	SaveAccount(ctx context.Context, telegramID int64, casinoID, accountID string) error
	LastAccount(ctx context.Context, telegramID int64, casinoID string) (string, error)
	SavePhone(ctx context.Context, telegramID int64, phone string) error
	LastPhone(ctx context.Context, telegramID int64) (string, error)
}

const photoDownloadTimeout = 30 * time.Second

type Bot struct {
	api      Transport
	backend  Backend
	users    UserDirectory
	sessions session.Store
	timers   *timer.Registry
	profile  config.Profile
	logger   *utils.Logger

	// Обновления одного чата обрабатываются строго последовательно.
	locksMu sync.Mutex
	locks   map[int64]*sync.Mutex
}

func NewBot(
	api Transport,
	back Backend,
	users UserDirectory,
	sessions session.Store,
	timers *timer.Registry,
	profile config.Profile,
	logger *utils.Logger,
) *Bot {
	return &Bot{
		api:      api,
		backend:  back,
		users:    users,
		sessions: sessions,
		timers:   timers,
		profile:  profile,
		logger:   logger,
		locks:    make(map[int64]*sync.Mutex),
	}
}

func (b *Bot) Start(updates tgbotapi.UpdatesChannel) {
	b.logger.Info("Запуск бота...")
	for update := range updates {
		go b.dispatch(update)
	}
}

func (b *Bot) dispatch(update tgbotapi.Update) {
	chatID := updateChatID(update)
	if chatID == 0 {
		return
	}

	lock := b.chatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	ctx := context.Background()

	sess, err := b.sessions.Get(chatID)
	if err != nil {
		b.logger.Errorf("Не удалось загрузить сессию чата %d: %v", chatID, err)
		sess = &session.Session{}
	}
	if sess.Language == "" {
		if user, uerr := b.users.User(ctx, chatID); uerr == nil {
			sess.Language = user.Language
		} else {
			sess.Language = "ru"
		}
	}

	b.HandleUpdate(ctx, update, sess)

	if err := b.sessions.Put(chatID, sess); err != nil {
		b.logger.Errorf("Не удалось сохранить сессию чата %d: %v", chatID, err)
	}
}

func (b *Bot) chatLock(chatID int64) *sync.Mutex {
	b.locksMu.Lock()
	defer b.locksMu.Unlock()
	lock, ok := b.locks[chatID]
	if !ok {
		lock = &sync.Mutex{}
		b.locks[chatID] = lock
	}
	return lock
}

func updateChatID(update tgbotapi.Update) int64 {
	switch {
	case update.Message != nil:
		return update.Message.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		return update.CallbackQuery.Message.Chat.ID
	}
	return 0
}

// sendMessage отправляет текст, опционально с клавиатурой.
func (b *Bot) sendMessage(chatID int64, text string, keyboard interface{}) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	if keyboard != nil {
		msg.ReplyMarkup = keyboard
	}
	sent, err := b.api.Send(msg)
	if err != nil {
		b.logger.Errorf("Не удалось отправить сообщение в чат %d: %v", chatID, err)
	}
	return sent, err
}

func (b *Bot) answerCallback(id string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(id, "")); err != nil {
		b.logger.Warnf("Не удалось ответить на callback: %v", err)
	}
}

func (b *Bot) deleteMessage(chatID int64, messageID int) {
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		b.logger.Warnf("Не удалось удалить сообщение %d: %v", messageID, err)
	}
}

// downloadPhotoBase64 скачивает фото и возвращает его как data-url,
// в таком виде чеки и QR уходят в админку.
func (b *Bot) downloadPhotoBase64(fileID string) (string, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return "", fmt.Errorf("не удалось получить ссылку на файл: %w", err)
	}

	r := req.New()
	r.SetTimeout(photoDownloadTimeout)
	resp, err := r.Get(url)
	if err != nil {
		return "", fmt.Errorf("не удалось скачать файл: %w", err)
	}
	if code := resp.Response().StatusCode; code >= 300 {
		return "", fmt.Errorf("скачивание файла: статус %d", code)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(resp.Bytes()), nil
}

// largestPhoto выбирает самый крупный вариант фото из сообщения.
func largestPhoto(msg *tgbotapi.Message) (string, bool) {
	if msg == nil || len(msg.Photo) == 0 {
		return "", false
	}
	best := msg.Photo[0]
	for _, p := range msg.Photo[1:] {
		if p.FileSize > best.FileSize {
			best = p
		}
	}
	return best.FileID, true
}

func senderName(msg *tgbotapi.Message) (username, firstName, lastName string) {
	if msg == nil {
		return "", "", ""
	}
	return userName(msg.From)
}

func userName(u *tgbotapi.User) (username, firstName, lastName string) {
	if u == nil {
		return "", "", ""
	}
	return u.UserName, u.FirstName, u.LastName
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func chatIDString(chatID int64) string {
	return fmt.Sprintf("%d", chatID)
}

// notModified - ответ Telegram на редактирование без изменений, не ошибка.
func notModified(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
