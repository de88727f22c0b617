package bot

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/etodastandetka/bingo/internal/backend"
	"github.com/etodastandetka/bingo/internal/session"
)

func receiptServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jpeg-bytes"))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestDepositHappyFlow(t *testing.T) {
	env := newTestEnv()
	env.transport.fileURL = receiptServer(t).URL

	env.sendText("💰 Пополнить")
	if sess := env.session(t); sess.State != session.StateDepositCasino {
		t.Fatalf("состояние %q, ожидалось выбор казино", sess.State)
	}

	env.sendCallback("dep_casino_1xbet")
	if sess := env.session(t); sess.State != session.StateDepositAccountID || sess.CasinoID != "1xbet" {
		t.Fatalf("состояние %q, казино %q", sess.State, sess.CasinoID)
	}

	env.sendText("12345")
	if sess := env.session(t); sess.State != session.StateDepositAmount {
		t.Fatalf("состояние %q, ожидался ввод суммы", sess.State)
	}

	env.sendText("1000")
	sess := env.session(t)
	if sess.State != session.StateDepositReceipt {
		t.Fatalf("состояние %q, ожидалось ожидание чека", sess.State)
	}
	if sess.Amount.String() != "1000.37" {
		t.Errorf("сумма %s, ожидалась зарезервированная 1000.37", sess.Amount)
	}
	if sess.QRMessageID == 0 {
		t.Error("QRMessageID не сохранён")
	}
	if sess.UncreatedRequestID != "u-1" {
		t.Errorf("UncreatedRequestID = %q", sess.UncreatedRequestID)
	}
	if env.transport.photoCount() != 1 {
		t.Errorf("отправлено %d фото, ожидалось 1", env.transport.photoCount())
	}
	if !env.timers.Active(testChatID, sess.QRMessageID) {
		t.Error("таймер не запущен")
	}

	env.sendPhoto("receipt-1")

	req := env.backend.lastRequest(t)
	if req.Type != "deposit" {
		t.Errorf("тип заявки %q", req.Type)
	}
	if req.Amount.String() != "1000.37" {
		t.Errorf("сумма заявки %s", req.Amount)
	}
	if req.Bookmaker != "1xbet" || req.AccountID != "12345" {
		t.Errorf("заявка: казино %q, счёт %q", req.Bookmaker, req.AccountID)
	}
	if !strings.HasPrefix(req.ReceiptPhoto, "data:image/jpeg;base64,") {
		t.Error("чек должен уходить как data-url")
	}
	if req.UncreatedRequestID != "u-1" {
		t.Errorf("предварительная заявка %q не привязана", req.UncreatedRequestID)
	}

	if sess := env.session(t); !sess.Idle() {
		t.Error("после создания заявки сессия должна быть пустой")
	}
	waitTimersEmpty(t, env)
}

func TestDepositQRFailureAbortsWithoutRequest(t *testing.T) {
	env := newTestEnv()
	env.backend.qrErr = errors.New("generate-qr: недоступен")

	env.sendText("💰 Пополнить")
	env.sendCallback("dep_casino_1xbet")
	env.sendText("12345")
	deletesBefore := env.transport.deleteCount()
	env.sendText("1000")

	if env.backend.requestCount() != 0 {
		t.Error("при ошибке QR заявка создаваться не должна")
	}
	if env.transport.photoCount() != 0 {
		t.Error("фото отправляться не должно")
	}
	if sess := env.session(t); !sess.Idle() {
		t.Errorf("сессия должна быть сброшена, состояние %q", sess.State)
	}
	if !env.transport.sentContains("Не удалось сгенерировать QR-код") {
		t.Error("пользователь не узнал об ошибке")
	}
	// Сообщение "генерирую QR" не должно повисать над ошибкой.
	if got := env.transport.deleteCount() - deletesBefore; got != 1 {
		t.Errorf("удалено %d сообщений, ожидалось одно (прогресс)", got)
	}
}

func TestDepositReceiptFailureLeavesSessionRetryable(t *testing.T) {
	env := newTestEnv()
	env.transport.fileURL = receiptServer(t).URL
	env.backend.createErr = errors.New("payment: статус 500")

	env.sendText("💰 Пополнить")
	env.sendCallback("dep_casino_1xbet")
	env.sendText("12345")
	env.sendText("1000")
	env.sendPhoto("receipt-1")

	if env.backend.requestCount() != 0 {
		t.Fatal("заявка не должна создаваться при отказе бэкенда")
	}
	// Чек уже провалидирован, пользователь может прислать его повторно.
	if sess := env.session(t); sess.State != session.StateDepositReceipt {
		t.Fatalf("состояние %q, ожидалось ожидание чека", sess.State)
	}

	env.backend.createErr = nil
	env.sendPhoto("receipt-1")

	if env.backend.requestCount() != 1 {
		t.Errorf("создано %d заявок, ожидалась ровно одна", env.backend.requestCount())
	}
	if sess := env.session(t); !sess.Idle() {
		t.Error("после успешной заявки сессия должна быть пустой")
	}
}

func TestDepositBankSelectionStampsCallbackSender(t *testing.T) {
	env := newTestEnv()
	env.bot.profile.DepositBankSelection = true

	env.sendText("💰 Пополнить")
	env.sendCallback("dep_casino_1xbet")
	env.sendText("12345")
	env.sendText("1000")
	if sess := env.session(t); sess.State != session.StateDepositBank {
		t.Fatalf("состояние %q, ожидался выбор банка", sess.State)
	}

	env.sendCallback("dep_bank_mbank")
	if sess := env.session(t); sess.State != session.StateDepositReceipt || sess.BankID != "mbank" {
		t.Fatalf("состояние %q, банк %q", sess.State, sess.BankID)
	}

	// В callback-сообщении отправитель - бот, имя должно браться из
	// самого callback.
	un := env.backend.lastUncreated(t)
	if un.Username != "ivan" || un.FirstName != "Иван" {
		t.Errorf("предварительная заявка от %q/%q, ожидался пользователь", un.Username, un.FirstName)
	}
	if un.Bank != "mbank" {
		t.Errorf("банк %q", un.Bank)
	}
}

func TestDepositPlayerNotFound(t *testing.T) {
	env := newTestEnv()
	env.backend.playerExists = false

	env.sendText("💰 Пополнить")
	env.sendCallback("dep_casino_1xbet")
	env.sendText("12345")

	if sess := env.session(t); sess.State != session.StateDepositAccountID {
		t.Errorf("состояние %q, ID должен запрашиваться повторно", sess.State)
	}
	if !env.transport.sentContains("не найден") {
		t.Error("нет сообщения о ненайденном игроке")
	}
}

func TestDepositPlayerCheckSkippedFor1win(t *testing.T) {
	env := newTestEnv()
	env.backend.playerExists = false

	env.sendText("💰 Пополнить")
	env.sendCallback("dep_casino_1win")
	env.sendText("12345")

	// Для 1win бэкенд не умеет проверять игрока, поток идёт дальше.
	if sess := env.session(t); sess.State != session.StateDepositAmount {
		t.Errorf("состояние %q, ожидался ввод суммы", sess.State)
	}
}

func TestDepositPlayerCheckFailOpen(t *testing.T) {
	env := newTestEnv()
	env.backend.playerErr = errors.New("check-player: таймаут")

	env.sendText("💰 Пополнить")
	env.sendCallback("dep_casino_1xbet")
	env.sendText("12345")

	if sess := env.session(t); sess.State != session.StateDepositAmount {
		t.Errorf("состояние %q: недоступная проверка не должна останавливать поток", sess.State)
	}
}

func TestDepositAmountValidation(t *testing.T) {
	env := newTestEnv()

	env.sendText("💰 Пополнить")
	env.sendCallback("dep_casino_1xbet")
	env.sendText("12345")

	for _, bad := range []string{"50", "999999", "abc"} {
		env.sendText(bad)
		if sess := env.session(t); sess.State != session.StateDepositAmount {
			t.Fatalf("после %q состояние %q, сумма должна запрашиваться повторно", bad, sess.State)
		}
	}
}

func TestDepositActiveRequestBlocksNewFlow(t *testing.T) {
	env := newTestEnv()
	env.backend.activeDeposit.HasActive = true
	env.backend.activeDeposit.RequestID = "55"
	env.backend.activeDeposit.MinutesAgo = 3

	env.sendText("💰 Пополнить")

	if sess := env.session(t); !sess.Idle() {
		t.Error("поток не должен начинаться при активной заявке")
	}
	if !env.transport.sentContains("#55") {
		t.Error("нет сообщения об активной заявке")
	}
}

func TestDepositBlockedUserStopsFlow(t *testing.T) {
	env := newTestEnv()
	env.backend.blockedResult = &backend.BlockedResult{Blocked: true, Message: "Вы заблокированы"}

	env.sendText("💰 Пополнить")

	if sess := env.session(t); !sess.Idle() {
		t.Error("заблокированный пользователь не должен входить в поток")
	}
	if !env.transport.sentContains("Вы заблокированы") {
		t.Error("нет сообщения о блокировке")
	}
}

func TestDepositBlockedCheckFailOpen(t *testing.T) {
	env := newTestEnv()
	env.backend.blockedErr = errors.New("check-blocked: таймаут")

	env.sendText("💰 Пополнить")

	// Недоступная проверка блокировки не должна останавливать поток.
	if sess := env.session(t); sess.State != session.StateDepositCasino {
		t.Errorf("состояние %q, ожидался выбор казино", sess.State)
	}
}

func TestDepositCancelCallbackStopsTimer(t *testing.T) {
	env := newTestEnv()

	env.sendText("💰 Пополнить")
	env.sendCallback("dep_casino_1xbet")
	env.sendText("12345")
	env.sendText("1000")

	env.sendCallback("deposit_cancel")

	if sess := env.session(t); !sess.Idle() {
		t.Error("после отмены сессия должна быть пустой")
	}
	waitTimersEmpty(t, env)
}

func TestDepositTimerExpiryResetsSession(t *testing.T) {
	env := newTestEnv()
	env.bot.profile.QRDuration = 30 * time.Millisecond

	env.sendText("💰 Пополнить")
	env.sendCallback("dep_casino_1xbet")
	env.sendText("12345")
	env.sendText("1000")

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if env.session(t).Idle() {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if !env.session(t).Idle() {
		t.Fatal("сессия не сброшена после истечения таймера")
	}
	if !env.transport.sentContains("Время на оплату истекло") {
		t.Error("нет сообщения об истечении времени")
	}
	if env.backend.requestCount() != 0 {
		t.Error("заявка не должна создаваться при истечении таймера")
	}
}

func TestSecondDepositCancelsFirstTimer(t *testing.T) {
	env := newTestEnv()
	env.transport.fileURL = receiptServer(t).URL

	env.sendText("💰 Пополнить")
	env.sendCallback("dep_casino_1xbet")
	env.sendText("12345")
	env.sendText("1000")
	firstQR := env.session(t).QRMessageID

	env.sendText("💰 Пополнить")
	if env.timers.Active(testChatID, firstQR) {
		t.Error("таймер первого QR должен быть снят при новом потоке")
	}
}

func waitTimersEmpty(t *testing.T, env *testEnv) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if env.timers.Count() == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("таймеры не остановились")
}
