package sms

import (
	"fmt"
	"strconv"

	"github.com/alatem/alatem/internal/models"
)

// Тексты сообщений на гаитянском креольском.

// OTPMessage возвращает текст SMS с кодом подтверждения
func OTPMessage(otp string) string {
	return fmt.Sprintf("Kòd verifikasyon Alatem: %s. Pa pataje kòd sa a ak pèsonn.", otp)
}

// WelcomeMessage возвращает приветственное SMS после подтверждения номера
func WelcomeMessage(name, area string) string {
	return fmt.Sprintf("Byenveni nan Alatem, %s! Ou ap resevwa alèt sante ak sekirite nan %s.", name, area)
}

// HealthAlertMessage возвращает текст оповещения о вспышке заболевания.
// cases == 0 означает, что количество случаев неизвестно.
func HealthAlertMessage(area, condition string, cases int) string {
	count := "Ka"
	if cases > 0 {
		count = strconv.Itoa(cases)
	}

	switch condition {
	case "cholera":
		return fmt.Sprintf("ALÈT SANTE: %s cholera nan %s. Bwè dlo pwòp, lave men nou. Ale kay doktè si nou gen simptòm.", count, area)
	case "malnutrition":
		return fmt.Sprintf("ALÈT SANTE: %s malnitrisyon nan %s. Chèche manje ak vitamin. Mennen timoun yo kay doktè.", count, area)
	case "fever":
		return fmt.Sprintf("ALÈT SANTE: %s lafyèv nan %s. Rete lakay si nou malad. Bwè dlo anpil.", count, area)
	case "diarrhea":
		return fmt.Sprintf("ALÈT SANTE: %s dyare nan %s. Bwè dlo pwòp, lave men nou.", count, area)
	case "respiratory":
		return fmt.Sprintf("ALÈT SANTE: %s pwoblèm respiratwa nan %s. Rete lakay, evite foul moun.", count, area)
	}
	return fmt.Sprintf("ALÈT SANTE: %s nan %s", condition, area)
}

// SafetyAlertMessage возвращает текст оповещения о криминальной опасности
func SafetyAlertMessage(area, crimeType string) string {
	switch crimeType {
	case "kidnapping":
		return fmt.Sprintf("SEKIRITE: Kidnapping nan %s. Pa mache pou kont nou. Evite kote yo ki izole.", area)
	case "armed_robbery":
		return fmt.Sprintf("SEKIRITE: Volè ak zam nan %s. Pa montre objè ki gen valè. Mache nan gwoup.", area)
	case "gang_shooting":
		return fmt.Sprintf("DANJE: Bandi k ap tire nan %s. Rete lakay. Pa soti.", area)
	case "street_violence":
		return fmt.Sprintf("SEKIRITE: Vyolans nan lari nan %s. Evite kote yo ki gen anpil moun.", area)
	case "home_invasion":
		return fmt.Sprintf("SEKIRITE: Anvazyòn lakay nan %s. Asire pòt ak fenèt yo.", area)
	}
	return fmt.Sprintf("SEKIRITE: Danje nan %s. Fè atansyon.", area)
}

// AlertMessage собирает текст оповещения по его типу
func AlertMessage(alertType, area, condition, crimeType, custom string, cases int) (string, error) {
	switch alertType {
	case models.AlertTypeHealth:
		return HealthAlertMessage(area, condition, cases), nil
	case models.AlertTypeSafety:
		return SafetyAlertMessage(area, crimeType), nil
	case models.AlertTypeCustom:
		if custom == "" {
			return "", fmt.Errorf("custom alert requires a message")
		}
		return custom, nil
	}
	return "", fmt.Errorf("unknown alert type: %s", alertType)
}
