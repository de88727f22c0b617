package backend

import "github.com/shopspring/decimal"

type BlockedResult struct {
	Blocked bool
	Message string
}

type ActiveDeposit struct {
	HasActive  bool
	RequestID  string
	MinutesAgo int64
}

type PlayerCheck struct {
	Exists bool
}

// PaymentSettings - фичефлаги из админки. Нулевое значение непригодно,
// используйте DefaultSettings.
type PaymentSettings struct {
	Pause              bool
	MaintenanceMessage string

	DepositsEnabled    bool
	DepositBanks       []string
	WithdrawalsEnabled bool
	WithdrawBanks      []string

	// Casinos: id -> включено. Отсутствующее казино считается включённым.
	Casinos map[string]bool

	RequireChannelSubscription bool
	Channel                    string
	ChannelID                  string
}

// DefaultSettings - безопасные значения на случай недоступной админки:
// ничего не выключаем, подписку не требуем.
func DefaultSettings() *PaymentSettings {
	return &PaymentSettings{
		DepositsEnabled:    true,
		WithdrawalsEnabled: true,
		Casinos:            map[string]bool{},
	}
}

func (s *PaymentSettings) CasinoEnabled(id string) bool {
	enabled, ok := s.Casinos[id]
	if !ok {
		return true
	}
	return enabled
}

func (s *PaymentSettings) DepositBankEnabled(id string) bool {
	return bankEnabled(s.DepositBanks, id)
}

func (s *PaymentSettings) WithdrawBankEnabled(id string) bool {
	return bankEnabled(s.WithdrawBanks, id)
}

func bankEnabled(banks []string, id string) bool {
	// Пустой список означает "админка не ограничивает банки".
	if len(banks) == 0 {
		return true
	}
	for _, b := range banks {
		if b == id {
			return true
		}
	}
	return false
}

type QRResult struct {
	Hash     string
	BankURLs map[string]string
}

type Reservation struct {
	Amount         decimal.Decimal
	ReservationID  string
	ClientFallback bool
}

type ReserveInput struct {
	UserID    string
	AccountID string
	Amount    decimal.Decimal
	Bookmaker string
	Bank      string
}

type UncreatedInput struct {
	UserID    string
	Bookmaker string
	AccountID string
	Amount    decimal.Decimal
	Bank      string
	Username  string
	FirstName string
	LastName  string
}

type RequestInput struct {
	TelegramUserID     string
	Type               string
	Amount             decimal.Decimal
	Bookmaker          string
	Bank               string
	Phone              string
	AccountID          string
	Username           string
	FirstName          string
	LastName           string
	ReceiptPhoto       string
	WithdrawalCode     string
	UncreatedRequestID string
}

type CreatedRequest struct {
	ID            string
	AlreadyExists bool
}
