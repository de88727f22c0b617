package backend

import (
	"math/rand"

	"github.com/etodastandetka/bingo/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// ReserveAmount запрашивает у бэкенда сумму с уникальным копеечным
// суффиксом. Никогда не падает: при недоступности бэкенда или нулевых
// копейках в ответе суффикс генерируется на стороне клиента.
func (c *Client) ReserveAmount(in ReserveInput) Reservation {
	payload := map[string]interface{}{
		"userId":      in.UserID,
		"accountId":   in.AccountID,
		"amount":      in.Amount.InexactFloat64(),
		"bookmaker":   in.Bookmaker,
		"bank":        in.Bank,
		"botType":     c.botType,
		"requestType": "deposit",
	}

	resp, err := c.do("unique-amount", "POST", "/public/unique-amount", payload)
	if err == nil {
		body := gjson.ParseBytes(resp.Bytes())
		if body.Get("success").Bool() {
			amount, aerr := decimal.NewFromString(body.Get("data.amount").String())
			if aerr == nil && !utils.Cents(amount).IsZero() {
				return Reservation{
					// Повторная проверка копеек: сумма с суффиксом .00
					// неотличима от чужого платежа.
					Amount:        EnsureCents(amount),
					ReservationID: body.Get("data.reservationId").String(),
				}
			}
			c.logger.Warnf("Бэкенд вернул сумму без копеек (%s), генерируем суффикс сами", body.Get("data.amount").String())
		}
	} else {
		c.logger.Warnf("Резервирование суммы недоступно: %v", err)
	}

	return Reservation{
		Amount:         EnsureCents(in.Amount.Floor().Add(RandomCents())),
		ReservationID:  uuid.NewString(),
		ClientFallback: true,
	}
}

// RandomCents - равномерно случайные копейки из [0.01, 0.99].
func RandomCents() decimal.Decimal {
	return decimal.New(int64(rand.Intn(99)+1), -2)
}

// EnsureCents гарантирует ненулевую дробную часть суммы.
func EnsureCents(d decimal.Decimal) decimal.Decimal {
	for utils.Cents(d).IsZero() {
		d = d.Floor().Add(RandomCents())
	}
	return d
}
