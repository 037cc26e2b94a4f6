package models

import "strings"

// Areas - закрытый список районов, должен совпадать с ожиданиями SMS-бэкенда
var Areas = []string{
	"CITE_SOLEIL",
	"DELMAS",
	"TABARRE",
	"MARTISSANT",
	"CARREFOUR",
	"PETIONVILLE",
	"CROIX_DES_BOUQUETS",
	"PORT_AU_PRINCE",
}

// ValidArea проверяет, входит ли район в закрытый список
func ValidArea(area string) bool {
	for _, a := range Areas {
		if a == area {
			return true
		}
	}
	return false
}

// FormatAreaName возвращает человекочитаемое название района
func FormatAreaName(area string) string {
	words := strings.Split(strings.ToLower(area), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
