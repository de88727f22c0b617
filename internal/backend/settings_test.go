package backend

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestPaymentSettingsCached(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`{"success":true,"pause":true}`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	first := client.PaymentSettings()
	second := client.PaymentSettings()

	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("бэкенд опрошен %d раз, повторный вызов должен идти из кеша", n)
	}
	if !first.Pause || !second.Pause {
		t.Error("флаг паузы потерян")
	}
}

func TestPaymentSettingsStaleFallback(t *testing.T) {
	client := testClient("http://127.0.0.1:1")
	cached := DefaultSettings()
	cached.Pause = true
	client.settings.value = cached
	client.settings.fetchedAt = time.Now().Add(-time.Minute)

	// Кеш протух, бэкенд недоступен: лучше устаревшее значение, чем
	// дефолты.
	got := client.PaymentSettings()
	if !got.Pause {
		t.Error("при недоступном бэкенде ожидалось устаревшее закешированное значение")
	}
}

func TestPaymentSettingsDefaultsWhenUnreachable(t *testing.T) {
	got := testClient("http://127.0.0.1:1").PaymentSettings()
	if !got.DepositsEnabled || !got.WithdrawalsEnabled || got.Pause {
		t.Error("без кеша и бэкенда ожидались безопасные значения по умолчанию")
	}
}

func TestParseSettingsBooleanShape(t *testing.T) {
	raw := []byte(`{"success":true,"deposits":true,"withdrawals":false,"casinos":{"1xbet":true,"melbet":false}}`)
	s := ParseSettings(raw)

	if !s.DepositsEnabled {
		t.Error("пополнения должны быть включены")
	}
	if s.WithdrawalsEnabled {
		t.Error("выводы должны быть выключены")
	}
	if !s.CasinoEnabled("1xbet") {
		t.Error("1xbet должен быть включён")
	}
	if s.CasinoEnabled("melbet") {
		t.Error("melbet должен быть выключен")
	}
	if !s.CasinoEnabled("mostbet") {
		t.Error("неупомянутое казино считается включённым")
	}
}

func TestParseSettingsObjectShape(t *testing.T) {
	raw := []byte(`{
		"success": true,
		"pause": true,
		"maintenance_message": "технические работы",
		"deposits": {"enabled": true, "banks": ["mbank", "bakai"]},
		"withdrawals": {"enabled": false}
	}`)
	s := ParseSettings(raw)

	if !s.Pause {
		t.Error("флаг паузы потерян")
	}
	if s.MaintenanceMessage != "технические работы" {
		t.Errorf("MaintenanceMessage = %q", s.MaintenanceMessage)
	}
	if !s.DepositsEnabled || s.WithdrawalsEnabled {
		t.Error("флаги enabled из объектов разобраны неверно")
	}
	if !s.DepositBankEnabled("mbank") || !s.DepositBankEnabled("bakai") {
		t.Error("перечисленные банки должны быть включены")
	}
	if s.DepositBankEnabled("demir") {
		t.Error("банк вне списка должен быть выключен")
	}
}

func TestParseSettingsFailure(t *testing.T) {
	s := ParseSettings([]byte(`{"success":false}`))
	if !s.DepositsEnabled || !s.WithdrawalsEnabled || s.Pause {
		t.Error("при ошибке админки ожидаются значения по умолчанию")
	}
	if s.RequireChannelSubscription {
		t.Error("по умолчанию подписка не требуется")
	}
}

func TestBankEnabledEmptyList(t *testing.T) {
	s := DefaultSettings()
	if !s.DepositBankEnabled("mbank") || !s.WithdrawBankEnabled("odengi") {
		t.Error("пустой список банков означает отсутствие ограничений")
	}
}
