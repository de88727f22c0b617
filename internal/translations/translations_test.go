package translations

import (
	"strings"
	"testing"
)

func TestTextFallbacks(t *testing.T) {
	if got := Text("de", "menu.deposit"); got != Text("ru", "menu.deposit") {
		t.Errorf("неизвестный язык должен откатываться на русский, получено %q", got)
	}
	if got := Text("ru", "нет.такого.ключа"); got != "нет.такого.ключа" {
		t.Errorf("неизвестный ключ должен возвращаться как есть, получено %q", got)
	}
}

func TestTextFormatting(t *testing.T) {
	got := Text("ru", "start.greeting", "Иван")
	if !strings.Contains(got, "Иван") {
		t.Errorf("имя не подставлено: %q", got)
	}
}

func TestEveryKeyHasKyrgyzTranslation(t *testing.T) {
	for key := range texts["ru"] {
		if _, ok := texts["ky"][key]; !ok {
			t.Errorf("ключ %q не переведён на кыргызский", key)
		}
	}
	for key := range texts["ky"] {
		if _, ok := texts["ru"][key]; !ok {
			t.Errorf("лишний ключ %q в кыргызской таблице", key)
		}
	}
}

func TestWithdrawInstructionsAddress(t *testing.T) {
	regular := WithdrawInstructions("1win", "ru")
	starz := WithdrawInstructions("888starz", "ru")
	if regular == starz {
		t.Error("у 888starz свой адрес кассы")
	}
	if !strings.Contains(starz, "Киевская") {
		t.Error("адрес 888starz потерян")
	}
}
