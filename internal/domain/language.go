package domain

import "strings"

// Language es una entrada del catálogo de práctica.
type Language struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Native string `json:"native"`
	Flag   string `json:"flag"`
}

// Languages es el catálogo completo que ofrece el selector.
var Languages = []Language{
	{Code: "en", Name: "English", Native: "English", Flag: "🇺🇸"},
	{Code: "es", Name: "Spanish", Native: "Español", Flag: "🇪🇸"},
	{Code: "fr", Name: "French", Native: "Français", Flag: "🇫🇷"},
	{Code: "de", Name: "German", Native: "Deutsch", Flag: "🇩🇪"},
	{Code: "it", Name: "Italian", Native: "Italiano", Flag: "🇮🇹"},
	{Code: "pt", Name: "Portuguese", Native: "Português", Flag: "🇵🇹"},
	{Code: "zh", Name: "Chinese", Native: "中文", Flag: "🇨🇳"},
	{Code: "ja", Name: "Japanese", Native: "日本語", Flag: "🇯🇵"},
	{Code: "ko", Name: "Korean", Native: "한국어", Flag: "🇰🇷"},
	{Code: "ar", Name: "Arabic", Native: "العربية", Flag: "🇸🇦"},
	{Code: "ru", Name: "Russian", Native: "Русский", Flag: "🇷🇺"},
	{Code: "hi", Name: "Hindi", Native: "हिन्दी", Flag: "🇮🇳"},
}

const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Levels en el orden en que se presentan.
var Levels = []string{LevelBeginner, LevelIntermediate, LevelAdvanced}

// FindLanguage busca por nombre, nombre nativo o código, sin distinguir
// mayúsculas.
func FindLanguage(q string) (Language, bool) {
	q = strings.ToLower(strings.TrimSpace(q))
	for _, l := range Languages {
		if strings.ToLower(l.Name) == q || strings.ToLower(l.Native) == q || l.Code == q {
			return l, true
		}
	}
	return Language{}, false
}

// ValidLevel acepta también el nivel vacío: el nivel es opcional en la sesión.
func ValidLevel(level string) bool {
	if level == "" {
		return true
	}
	for _, l := range Levels {
		if l == level {
			return true
		}
	}
	return false
}

// LanguageSelection es el registro de selección que el cliente persiste entre
// sesiones (equivalente servidor del registro `converso.lang`). Su ausencia
// indica que hay que volver al selector de idioma.
type LanguageSelection struct {
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
}
