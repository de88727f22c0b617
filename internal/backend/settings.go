package backend

import (
	"sync"
	"time"

	"github.com/tidwall/gjson"
)

const settingsTTL = 30 * time.Second

type settingsCache struct {
	mu        sync.Mutex
	value     *PaymentSettings
	fetchedAt time.Time
}

// PaymentSettings возвращает настройки платежей. При любой ошибке -
// безопасные значения по умолчанию; короткий кеш гасит частые обращения
// из гардов. Мьютекс не держится на время сетевого вызова, чтобы один
// медленный запрос не сериализовал гарды всех чатов; параллельные
// обновления допустимы, побеждает последняя запись.
func (c *Client) PaymentSettings() *PaymentSettings {
	c.settings.mu.Lock()
	if c.settings.value != nil && time.Since(c.settings.fetchedAt) < settingsTTL {
		value := c.settings.value
		c.settings.mu.Unlock()
		return value
	}
	c.settings.mu.Unlock()

	resp, err := c.do("payment-settings", "GET", "/public/payment-settings", nil)
	if err != nil {
		c.logger.Warnf("Не удалось получить настройки платежей: %v", err)
		c.settings.mu.Lock()
		defer c.settings.mu.Unlock()
		if c.settings.value != nil {
			return c.settings.value
		}
		return DefaultSettings()
	}

	settings := ParseSettings(resp.Bytes())
	c.settings.mu.Lock()
	c.settings.value = settings
	c.settings.fetchedAt = time.Now()
	c.settings.mu.Unlock()
	return settings
}

// ParseSettings терпимо разбирает ответ админки: поля deposits/withdrawals
// исторически бывают и булевыми, и объектами {enabled, banks}.
func ParseSettings(raw []byte) *PaymentSettings {
	body := gjson.ParseBytes(raw)
	if !body.Get("success").Bool() {
		return DefaultSettings()
	}

	settings := DefaultSettings()
	settings.Pause = body.Get("pause").Bool()
	settings.MaintenanceMessage = body.Get("maintenance_message").String()

	settings.DepositsEnabled, settings.DepositBanks = parseSection(body.Get("deposits"))
	settings.WithdrawalsEnabled, settings.WithdrawBanks = parseSection(body.Get("withdrawals"))

	body.Get("casinos").ForEach(func(key, value gjson.Result) bool {
		settings.Casinos[key.String()] = value.Bool()
		return true
	})

	if sub := body.Get("require_channel_subscription"); sub.Exists() {
		settings.RequireChannelSubscription = sub.Bool()
	}
	settings.Channel = body.Get("channel").String()
	settings.ChannelID = body.Get("channel_id").String()

	return settings
}

func parseSection(section gjson.Result) (enabled bool, banks []string) {
	enabled = true
	switch {
	case section.IsObject():
		if e := section.Get("enabled"); e.Exists() {
			enabled = e.Bool()
		}
		for _, b := range section.Get("banks").Array() {
			banks = append(banks, b.String())
		}
	case section.Type == gjson.False:
		enabled = false
	}
	return enabled, banks
}
