// internal/domain/content/language.go
package content

import "strings"

// Language is a supported site language.
type Language string

const (
	EN Language = "en"
	HI Language = "hi"
	GU Language = "gu"
)

// Languages lists every supported language in fallback order.
var Languages = []Language{EN, HI, GU}

// ParseLanguage maps a query value to a Language. Unknown or empty values
// resolve to English.
func ParseLanguage(s string) Language {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case HI:
		return HI
	case GU:
		return GU
	default:
		return EN
	}
}

// Localized holds one text value per language.
type Localized struct {
	EN string `json:"en"`
	HI string `json:"hi"`
	GU string `json:"gu"`
}

// Get returns the raw value for lang without fallback.
func (l Localized) Get(lang Language) string {
	switch lang {
	case HI:
		return l.HI
	case GU:
		return l.GU
	default:
		return l.EN
	}
}

// Pick resolves lang, then English, then def.
func (l Localized) Pick(lang Language, def string) string {
	if v := l.Get(lang); v != "" {
		return v
	}
	if l.EN != "" {
		return l.EN
	}
	return def
}

// Normalize trims every value and fills empty hi/gu with the English text.
func (l Localized) Normalize() Localized {
	en := strings.TrimSpace(l.EN)
	out := Localized{EN: en, HI: strings.TrimSpace(l.HI), GU: strings.TrimSpace(l.GU)}
	if out.HI == "" {
		out.HI = en
	}
	if out.GU == "" {
		out.GU = en
	}
	return out
}
