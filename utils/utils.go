package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount разбирает сумму, введённую пользователем. Пробелы и запятые
// допустимы ("1 000,50").
func ParseAmount(text string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(text), " ", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	return decimal.NewFromString(cleaned)
}

// FormatAmount - всегда ровно два знака после запятой.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatLimit - целое с пробелами между тысячами, для подсказок мин/макс.
func FormatLimit(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, " ")
}

// FormatTimer форматирует оставшиеся секунды как M:SS.
func FormatTimer(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Cents возвращает дробную часть суммы (копейки).
func Cents(d decimal.Decimal) decimal.Decimal {
	return d.Sub(d.Floor())
}
