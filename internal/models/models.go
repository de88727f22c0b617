package models

// BotUser - локальная запись о пользователе бота. Бэкенд остаётся
// источником правды по заявкам, здесь храним только язык и подсказки
// автозаполнения, чтобы они переживали рестарт процесса.
type BotUser struct {
	TelegramID        int64  `gorm:"primaryKey" json:"telegram_id"`
	Language          string `gorm:"default:ru" json:"language"`
	LastWithdrawPhone string `json:"last_withdraw_phone"`

	Accounts []CasinoAccount `gorm:"foreignKey:UserID" json:"accounts"`
}

// CasinoAccount - последний использованный ID счёта в казино.
type CasinoAccount struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    int64  `json:"user_id" gorm:"uniqueIndex:idx_user_casino"`
	CasinoID  string `json:"casino_id" gorm:"uniqueIndex:idx_user_casino"`
	AccountID string `json:"account_id"`
}
