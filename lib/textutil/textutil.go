package textutil

import (
	"regexp"
	"strconv"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, " ")
	return name
}

// ParseOptionalInt coerces loosely formatted numeric values into an
// integer. Strings may carry thousands separators and a "k" suffix,
// which is substituted with the literal digits "000" before parsing,
// so "1.2k" becomes "1.2000" and parses to 1. A nil result means the
// value was absent or not numeric; this function never panics.
func ParseOptionalInt(value any) *int64 {
	if value == nil {
		return nil
	}

	var text string
	switch v := value.(type) {
	case int:
		n := int64(v)
		return &n
	case int64:
		n := v
		return &n
	case float64:
		n := int64(v)
		return &n
	case string:
		text = v
	default:
		return nil
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, ",", "")
	text = strings.ReplaceAll(text, "k", "000")
	text = strings.ReplaceAll(text, "K", "000")

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil
	}
	n := int64(f)
	return &n
}

var digitRunRegex = regexp.MustCompile(`\d+`)

// FirstInt returns the first run of digits found in the text, or
// fallback if there is none. Item level cells come in shapes like
// "68", "68-84" or "68+" where only the leading number matters.
func FirstInt(text string, fallback int64) int64 {
	match := digitRunRegex.FindString(text)
	if match == "" {
		return fallback
	}
	n, err := strconv.ParseInt(match, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
