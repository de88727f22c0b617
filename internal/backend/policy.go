package backend

import "time"

// Criticality определяет поведение при отказе зависимости: soft - идём
// дальше с безопасным значением по умолчанию, hard - прерываем поток.
type Criticality int

const (
	Soft Criticality = iota
	Hard
)

type Policy struct {
	Timeout     time.Duration
	Criticality Criticality
}

// Таблица политик по эндпоинтам вместо разбросанных по обработчикам
// try/except. Финансовые проверки - hard, всё остальное - soft.
var policies = map[string]Policy{
	"check-blocked":         {2 * time.Second, Soft},
	"payment-settings":      {5 * time.Second, Soft},
	"check-active-deposit":  {1 * time.Second, Soft},
	"check-player":          {10 * time.Second, Soft},
	"user-casino-ids":       {2 * time.Second, Soft},
	"last-withdraw-phone":   {2 * time.Second, Soft},
	"unique-amount":         {5 * time.Second, Soft},
	"uncreated-requests":    {5 * time.Second, Soft},
	"request-message-id":    {3 * time.Second, Soft},
	"generate-qr":           {5 * time.Second, Hard},
	"generate-qr-image":     {10 * time.Second, Hard},
	"check-withdraw-amount": {10 * time.Second, Hard},
	"payment":               {15 * time.Second, Hard},
}

func PolicyFor(endpoint string) Policy {
	if p, ok := policies[endpoint]; ok {
		return p
	}
	return Policy{Timeout: 10 * time.Second, Criticality: Hard}
}
