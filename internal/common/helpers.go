// Package common содержит общие утилиты, используемые во всём проекте.
// Сюда входит русская плюрализация и обрезка длинного текста для логов.
package common

import "math"

// PluralizeWords возвращает правильную форму слова «слово» для числа n.
//
// Правила русского языка:
//   - n%10==1 И n%100!=11 → "слово" (1, 21, 31, 101, ...)
//   - n%10 в [2,3,4] И n%100 НЕ в [12,13,14] → "слова" (2, 3, 4, 22, 23, ...)
//   - Остальные случаи → "слов" (0, 5-20, 25-30, 100, ...)
//
// Примеры:
//
//	PluralizeWords(1)  → "слово"
//	PluralizeWords(3)  → "слова"
//	PluralizeWords(11) → "слов"
//	PluralizeWords(21) → "слово"
func PluralizeWords(n int) string {
	absN := int(math.Abs(float64(n)))
	lastDigit := absN % 10
	lastTwoDigits := absN % 100

	if lastDigit == 1 && lastTwoDigits != 11 {
		return "слово"
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return "слова"
	}
	return "слов"
}

// Truncate обрезает строку до max рун и добавляет многоточие.
// Используется в логах, чтобы не писать туда простыни текста.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
