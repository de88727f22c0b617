package session

import "github.com/shopspring/decimal"

type Flow string

const (
	FlowNone     Flow = ""
	FlowDeposit  Flow = "deposit"
	FlowWithdraw Flow = "withdraw"
)

type State string

// Состояния машин пополнения и вывода. Переходы только вперёд; любой
// сброс возвращает в StateIdle.
const (
	StateIdle State = ""

	StateDepositCasino    State = "deposit_casino"
	StateDepositAccountID State = "deposit_account_id"
	StateDepositAmount    State = "deposit_amount"
	StateDepositBank      State = "deposit_bank"
	StateDepositReceipt   State = "deposit_receipt"

	StateWithdrawCasino    State = "withdraw_casino"
	StateWithdrawBank      State = "withdraw_bank"
	StateWithdrawPhone     State = "withdraw_phone"
	StateWithdrawQRPhoto   State = "withdraw_qr_photo"
	StateWithdrawAccountID State = "withdraw_account_id"
	StateWithdrawCode      State = "withdraw_code"

	StateLanguage State = "language"
)

// Session - всё состояние диалога с одним чатом. Сериализуема в JSON:
// никаких живых хендлов, таймеры ищутся по ключу (chat, message).
type Session struct {
	Flow  Flow  `json:"flow"`
	State State `json:"state"`

	CasinoID   string `json:"casino_id,omitempty"`
	CasinoName string `json:"casino_name,omitempty"`
	AccountID  string `json:"account_id,omitempty"`
	BankID     string `json:"bank_id,omitempty"`
	BankName   string `json:"bank_name,omitempty"`

	Amount decimal.Decimal `json:"amount"`
	Phone  string          `json:"phone,omitempty"`

	// QRPhoto - base64 скриншота QR вывода, отправляется вместе с заявкой.
	QRPhoto string `json:"qr_photo,omitempty"`

	QRMessageID   int   `json:"qr_message_id,omitempty"`
	QRCreatedAt   int64 `json:"qr_created_at,omitempty"`
	TimerDuration int   `json:"timer_duration,omitempty"`

	UncreatedRequestID string `json:"uncreated_request_id,omitempty"`

	// Language переживает сбросы потока.
	Language string `json:"language,omitempty"`
}

// Reset очищает поток, сохраняя язык пользователя.
func (s *Session) Reset() {
	lang := s.Language
	*s = Session{Language: lang}
}

func (s *Session) Idle() bool {
	return s.Flow == FlowNone && s.State == StateIdle
}
