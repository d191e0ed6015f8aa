package i18n

import (
	"fmt"
	"strings"
	"time"
)

// Supported languages. Spanish is the default; English is the only fallback.
const defaultLang = "es"

// DetectLanguage maps an Accept-Language header to a supported language code.
func DetectLanguage(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	if strings.HasPrefix(h, "en") {
		return "en"
	}
	return defaultLang
}

var monthNames = map[string][12]string{
	"es": {
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	},
	"en": {
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
}

// MonthName returns the localized, capitalized month name.
// The locale is an explicit parameter; there is no process-wide state.
func MonthName(lang string, month time.Month) string {
	names, ok := monthNames[lang]
	if !ok {
		names = monthNames[defaultLang]
	}
	if month < time.January || month > time.December {
		return ""
	}
	return names[month-1]
}

// MonthLabel renders "Enero 2025" style labels for summary buckets.
func MonthLabel(lang string, year int, month time.Month) string {
	return fmt.Sprintf("%s %d", MonthName(lang, month), year)
}

// MonthYearLabel renders "Enero de 2025" style labels used by the savings
// view. English drops the connective.
func MonthYearLabel(lang string, year int, month time.Month) string {
	if lang == "en" {
		return fmt.Sprintf("%s %d", MonthName(lang, month), year)
	}
	return fmt.Sprintf("%s de %d", MonthName(lang, month), year)
}
