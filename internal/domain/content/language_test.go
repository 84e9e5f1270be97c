package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLanguage(t *testing.T) {
	cases := map[string]Language{
		"":    EN,
		"en":  EN,
		"hi":  HI,
		"GU":  GU,
		" gu": GU,
		"fr":  EN,
		"en-": EN,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLanguage(in), "input %q", in)
	}
}

func TestLocalizedPick(t *testing.T) {
	l := Localized{EN: "Heal", HI: "", GU: "સાજા"}

	t.Run("requested language", func(t *testing.T) {
		assert.Equal(t, "સાજા", l.Pick(GU, "default"))
	})

	t.Run("falls back to english", func(t *testing.T) {
		assert.Equal(t, "Heal", l.Pick(HI, "default"))
	})

	t.Run("falls back to literal default", func(t *testing.T) {
		assert.Equal(t, "default", Localized{}.Pick(HI, "default"))
	})
}

func TestLocalizedNormalize(t *testing.T) {
	got := Localized{EN: "  Animal care  ", GU: " પ્રાણી "}.Normalize()

	assert.Equal(t, Localized{EN: "Animal care", HI: "Animal care", GU: "પ્રાણી"}, got)
}
