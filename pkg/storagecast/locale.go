package storagecast

import (
	"golang.org/x/text/language"
)

// ISOLabelLayout is used for locales without a known short date layout.
const ISOLabelLayout = "2006-01-02"

var (
	layoutTags = []language.Tag{
		language.Und, // fallback
		language.AmericanEnglish,
		language.BritishEnglish,
		language.German,
		language.French,
		language.Spanish,
		language.Italian,
		language.Dutch,
		language.Japanese,
		language.Chinese,
		language.Korean,
		language.Vietnamese,
	}
	layouts = []string{
		ISOLabelLayout,
		DefaultLabelLayout,
		"02/01/2006",
		"2.1.2006",
		"02/01/2006",
		"2/1/2006",
		"2/1/2006",
		"2-1-2006",
		"2006/1/2",
		"2006/1/2",
		"2006. 1. 2.",
		"2/1/2006",
	}
	layoutMatcher = language.NewMatcher(layoutTags)
)

// DateLayout returns the short calendar-day layout for a locale.
func DateLayout(tag language.Tag) string {
	_, idx, conf := layoutMatcher.Match(tag)
	if conf == language.No {
		return ISOLabelLayout
	}
	return layouts[idx]
}

// ParseLocale parses a BCP 47 locale name. An empty name selects en-US.
func ParseLocale(s string) (language.Tag, error) {
	if s == "" {
		return language.AmericanEnglish, nil
	}
	return language.Parse(s)
}
