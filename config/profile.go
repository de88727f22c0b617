package config

import "time"

// Casino - букмекер, доступный в боте.
type Casino struct {
	ID   string
	Name string
	// SkipPlayerCheck - для этих брендов бэкенд не умеет проверять
	// существование игрока, проверку пропускаем.
	SkipPlayerCheck bool
}

type Bank struct {
	ID   string
	Name string
}

// Profile - параметры конкретного варианта бота. Раньше каждый бренд жил
// в своей копии кода, теперь все различия собраны здесь.
type Profile struct {
	BotType string

	Casinos       []Casino
	DepositBanks  []Bank
	WithdrawBanks []Bank

	DepositMin int64
	DepositMax int64

	// DepositBankSelection - спрашивать банк отдельным шагом после суммы.
	DepositBankSelection bool

	// WideCasinos - эти казино занимают целый ряд в клавиатуре выбора.
	WideCasinos []string

	QRDuration time.Duration

	Channel string
	Support string
}

// BankURLKeys - соответствие ID банка ключу в all_bank_urls ответа бэкенда.
var BankURLKeys = map[string]string{
	"mbank":   "MBank",
	"omoney":  "O!Money",
	"odengi":  "O!Money",
	"bakai":   "Bakai",
	"megapay": "MegaPay",
	"demir":   "DemirBank",
	"balance": "Balance.kg",
}

func MainProfile() Profile {
	return Profile{
		BotType: "main",
		Casinos: []Casino{
			{ID: "1xbet", Name: "1xBet"},
			{ID: "melbet", Name: "Melbet"},
			{ID: "1win", Name: "1win", SkipPlayerCheck: true},
			{ID: "mostbet", Name: "Mostbet", SkipPlayerCheck: true},
			{ID: "winwin", Name: "Winwin"},
			{ID: "888starz", Name: "888starz"},
			{ID: "1xcasino", Name: "1xCasino"},
			{ID: "betwinner", Name: "BetWinner"},
			{ID: "wowbet", Name: "WowBet"},
		},
		DepositBanks: []Bank{
			{ID: "mbank", Name: "MBank"},
			{ID: "demir", Name: "DemirBank"},
			{ID: "balance", Name: "Balance.kg"},
			{ID: "omoney", Name: "О!Деньги"},
			{ID: "megapay", Name: "MEGApay"},
			{ID: "bakai", Name: "BAKAI"},
		},
		WithdrawBanks: []Bank{
			{ID: "kompanion", Name: "Компаньон"},
			{ID: "odengi", Name: "O!Money"},
			{ID: "bakai", Name: "Bakai"},
			{ID: "balance", Name: "Balance.kg"},
			{ID: "megapay", Name: "MegaPay"},
			{ID: "mbank", Name: "MBank"},
		},
		DepositMin:  100,
		DepositMax:  100000,
		WideCasinos: []string{"1xbet"},
		QRDuration:  5 * time.Minute,
		Channel:     "@bingokg_news",
		Support:     "@helperbingo_bot",
	}
}

func (p Profile) Casino(id string) (Casino, bool) {
	for _, c := range p.Casinos {
		if c.ID == id {
			return c, true
		}
	}
	return Casino{}, false
}

func (p Profile) IsWideCasino(id string) bool {
	for _, w := range p.WideCasinos {
		if w == id {
			return true
		}
	}
	return false
}
