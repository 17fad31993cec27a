// Package utils содержит утилитарные функции, используемые в разных частях приложения
package utils

import (
	"fmt"
	"strings"
)

// FormatDurationFromSeconds форматирует длительность песни: MM:SS, а для
// песен длиннее часа HH:MM:SS. Неизвестная длительность выводится как "--:--".
func FormatDurationFromSeconds(seconds int) string {
	if seconds <= 0 {
		return "--:--"
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// TruncateString обрезает строку до указанного числа символов, добавляя "..." если строка длиннее
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// PadRight дополняет строку пробелами до указанного числа символов.
// В отличие от fmt.Sprintf("%-*s") считает символы, а не байты.
func PadRight(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// Column обрезает и выравнивает значение для табличного вывода
func Column(s string, width int) string {
	return PadRight(TruncateString(s, width), width)
}
