package models

import (
	"fmt"
	"regexp"
	"strings"
)

var phoneSeparators = regexp.MustCompile(`[\s\-().]+`)

// NormalizePhone проверяет и приводит номер телефона к международному формату.
// Принимаются номера из 8-15 цифр с необязательным префиксом +<код страны>;
// разделители (пробелы, дефисы, скобки, точки) удаляются.
func NormalizePhone(phone string) (string, error) {
	clean := phoneSeparators.ReplaceAllString(strings.TrimSpace(phone), "")
	if clean == "" {
		return "", fmt.Errorf("phone number is required")
	}

	if strings.HasPrefix(clean, "+") {
		// Код страны (1-3 цифры) плюс 8-15 цифр номера
		digits := clean[1:]
		if !isDigits(digits) || len(digits) < 9 || len(digits) > 18 {
			return "", fmt.Errorf("invalid international phone format")
		}
		return clean, nil
	}

	if !isDigits(clean) {
		return "", fmt.Errorf("phone number must contain only digits and optional +")
	}
	if len(clean) < 8 || len(clean) > 15 {
		return "", fmt.Errorf("phone number must be 8-15 digits")
	}
	return "+" + clean, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
