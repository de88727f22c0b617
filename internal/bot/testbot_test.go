package bot

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"github.com/etodastandetka/bingo/config"
	"github.com/etodastandetka/bingo/internal/backend"
	"github.com/etodastandetka/bingo/internal/models"
	"github.com/etodastandetka/bingo/internal/session"
	"github.com/etodastandetka/bingo/internal/timer"
	"github.com/etodastandetka/bingo/utils"
)

// fakeTransport записывает всё отправленное и отвечает успехом.
type fakeTransport struct {
	mu      sync.Mutex
	sent    []tgbotapi.Chattable
	nextID  int
	fileURL string
}

func (f *fakeTransport) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	f.nextID++
	return tgbotapi.Message{MessageID: f.nextID}, nil
}

func (f *fakeTransport) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeTransport) GetFileDirectURL(fileID string) (string, error) {
	return f.fileURL, nil
}

func (f *fakeTransport) GetChatMember(cfg tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error) {
	return tgbotapi.ChatMember{Status: "member"}, nil
}

// texts возвращает тексты всех отправленных сообщений.
func (f *fakeTransport) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.sent {
		switch msg := c.(type) {
		case tgbotapi.MessageConfig:
			out = append(out, msg.Text)
		case tgbotapi.PhotoConfig:
			out = append(out, msg.Caption)
		case tgbotapi.DocumentConfig:
			out = append(out, msg.Caption)
		}
	}
	return out
}

func (f *fakeTransport) sentContains(substr string) bool {
	for _, text := range f.texts() {
		if strings.Contains(text, substr) {
			return true
		}
	}
	return false
}

func (f *fakeTransport) deleteCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.sent {
		if _, ok := c.(tgbotapi.DeleteMessageConfig); ok {
			n++
		}
	}
	return n
}

func (f *fakeTransport) photoCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.sent {
		if _, ok := c.(tgbotapi.PhotoConfig); ok {
			n++
		}
	}
	return n
}

type fakeBackend struct {
	mu sync.Mutex

	settings *backend.PaymentSettings

	blockedResult *backend.BlockedResult
	blockedErr    error
	activeDeposit *backend.ActiveDeposit
	playerExists  bool
	playerErr     error
	savedAccount  string
	lastPhone     string

	reservation backend.Reservation
	qrResult    *backend.QRResult
	qrErr       error
	qrImage     []byte
	qrImageErr  error

	uncreatedID string
	created     *backend.CreatedRequest
	createErr   error

	withdrawAmount decimal.Decimal
	withdrawErr    error

	requests  []backend.RequestInput
	uncreated []backend.UncreatedInput
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		settings:      backend.DefaultSettings(),
		blockedResult: &backend.BlockedResult{},
		activeDeposit: &backend.ActiveDeposit{},
		playerExists:  true,
		reservation: backend.Reservation{
			Amount:        decimal.RequireFromString("1000.37"),
			ReservationID: "r-1",
		},
		qrResult: &backend.QRResult{
			Hash:     "hash",
			BankURLs: map[string]string{"MBank": "https://mbank.example/pay"},
		},
		qrImage:        []byte("png-bytes"),
		uncreatedID:    "u-1",
		created:        &backend.CreatedRequest{ID: "req-1"},
		withdrawAmount: decimal.RequireFromString("500"),
	}
}

func (f *fakeBackend) PaymentSettings() *backend.PaymentSettings { return f.settings }

func (f *fakeBackend) CheckBlocked(userID, accountID string) (*backend.BlockedResult, error) {
	return f.blockedResult, f.blockedErr
}

func (f *fakeBackend) CheckActiveDeposit(userID string) (*backend.ActiveDeposit, error) {
	return f.activeDeposit, nil
}

func (f *fakeBackend) CheckPlayer(bookmaker, accountID string) (*backend.PlayerCheck, error) {
	if f.playerErr != nil {
		return nil, f.playerErr
	}
	return &backend.PlayerCheck{Exists: f.playerExists}, nil
}

func (f *fakeBackend) SavedCasinoAccount(userID, casinoID string) (string, error) {
	return f.savedAccount, nil
}

func (f *fakeBackend) SaveCasinoAccount(userID, casinoID, accountID string) error { return nil }

func (f *fakeBackend) LastWithdrawPhone(userID string) (string, error) { return f.lastPhone, nil }

func (f *fakeBackend) ReserveAmount(in backend.ReserveInput) backend.Reservation {
	return f.reservation
}

func (f *fakeBackend) GenerateQR(amount decimal.Decimal, bank string) (*backend.QRResult, error) {
	return f.qrResult, f.qrErr
}

func (f *fakeBackend) GenerateQRImage(amount decimal.Decimal, bank, uniqueID string) ([]byte, error) {
	return f.qrImage, f.qrImageErr
}

func (f *fakeBackend) CreateUncreatedRequest(in backend.UncreatedInput) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uncreated = append(f.uncreated, in)
	return f.uncreatedID, nil
}

func (f *fakeBackend) CreateRequest(in backend.RequestInput) (*backend.CreatedRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.requests = append(f.requests, in)
	return f.created, nil
}

func (f *fakeBackend) UpdateRequestMessageID(requestID string, messageID int) error { return nil }

func (f *fakeBackend) CheckWithdrawAmount(bookmaker, userID, code string) (decimal.Decimal, error) {
	return f.withdrawAmount, f.withdrawErr
}

func (f *fakeBackend) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeBackend) lastUncreated(t *testing.T) backend.UncreatedInput {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.uncreated) == 0 {
		t.Fatal("предварительные заявки не создавались")
	}
	return f.uncreated[len(f.uncreated)-1]
}

func (f *fakeBackend) lastRequest(t *testing.T) backend.RequestInput {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		t.Fatal("заявки не создавались")
	}
	return f.requests[len(f.requests)-1]
}

type fakeUsers struct {
	mu       sync.Mutex
	langs    map[int64]string
	accounts map[string]string
	phones   map[int64]string
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		langs:    map[int64]string{},
		accounts: map[string]string{},
		phones:   map[int64]string{},
	}
}

func (f *fakeUsers) User(ctx context.Context, id int64) (*models.BotUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lang := f.langs[id]
	if lang == "" {
		lang = "ru"
	}
	return &models.BotUser{TelegramID: id, Language: lang}, nil
}

func (f *fakeUsers) SetLanguage(ctx context.Context, id int64, lang string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.langs[id] = lang
	return nil
}

func (f *fakeUsers) SaveAccount(ctx context.Context, id int64, casinoID, accountID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[casinoID] = accountID
	return nil
}

func (f *fakeUsers) LastAccount(ctx context.Context, id int64, casinoID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accounts[casinoID], nil
}

func (f *fakeUsers) SavePhone(ctx context.Context, id int64, phone string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.phones[id] = phone
	return nil
}

func (f *fakeUsers) LastPhone(ctx context.Context, id int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phones[id], nil
}

type testEnv struct {
	bot       *Bot
	transport *fakeTransport
	backend   *fakeBackend
	users     *fakeUsers
	sessions  session.Store
	timers    *timer.Registry
}

func newTestEnv() *testEnv {
	transport := &fakeTransport{}
	back := newFakeBackend()
	users := newFakeUsers()
	sessions := session.NewMemoryStore()
	timers := timer.NewRegistry(utils.InitLogger())
	timers.Tick = 10 * time.Millisecond

	b := NewBot(transport, back, users, sessions, timers, config.MainProfile(), utils.InitLogger())
	return &testEnv{
		bot:       b,
		transport: transport,
		backend:   back,
		users:     users,
		sessions:  sessions,
		timers:    timers,
	}
}

const testChatID int64 = 100

func (e *testEnv) sendText(text string) {
	e.bot.dispatch(tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		Chat:      &tgbotapi.Chat{ID: testChatID},
		From:      &tgbotapi.User{ID: testChatID, FirstName: "Иван", UserName: "ivan"},
		Text:      text,
	}})
}

func (e *testEnv) sendPhoto(fileID string) {
	e.bot.dispatch(tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 2,
		Chat:      &tgbotapi.Chat{ID: testChatID},
		From:      &tgbotapi.User{ID: testChatID, FirstName: "Иван", UserName: "ivan"},
		Photo:     []tgbotapi.PhotoSize{{FileID: fileID, FileSize: 1024}},
	}})
}

func (e *testEnv) sendCallback(data string) {
	e.bot.dispatch(tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:   "cb-1",
		Data: data,
		From: &tgbotapi.User{ID: testChatID, FirstName: "Иван", UserName: "ivan"},
		Message: &tgbotapi.Message{
			MessageID: 3,
			Chat:      &tgbotapi.Chat{ID: testChatID},
		},
	}})
}

func (e *testEnv) session(t *testing.T) *session.Session {
	t.Helper()
	sess, err := e.sessions.Get(testChatID)
	if err != nil {
		t.Fatal(err)
	}
	return sess
}
