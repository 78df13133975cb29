// Package format holds the Spanish presentation helpers shared by the
// chatbot responses and the content API: long and relative dates, text
// truncation, rating stars and the label/class lookups of the site.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultTruncateLength is the excerpt length used by the site listings.
const DefaultTruncateLength = 150

var months = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// DateLayouts are the layouts ParseDate accepts, most specific first.
var DateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses the date formats stored in records and the knowledge base.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// DateLong renders t as "24 de junio de 1987".
func DateLong(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), months[t.Month()-1], t.Year())
}

// DateShort renders t as "24/6/1987".
func DateShort(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}

// FormatDate renders a stored date string in long form. Unparseable input
// is returned unchanged.
func FormatDate(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return s
	}
	return DateLong(t)
}

// ShortDate renders a stored date string in short form. Unparseable input
// is returned unchanged.
func ShortDate(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return s
	}
	return DateShort(t)
}

// Relative describes the distance between t and now in whole days, rounded
// up, in either direction.
func Relative(t, now time.Time) string {
	diff := now.Sub(t)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(diff.Hours() / 24))

	switch {
	case days == 0:
		return "Hoy"
	case days == 1:
		return "Ayer"
	case days < 7:
		return fmt.Sprintf("hace %d días", days)
	case days < 30:
		return fmt.Sprintf("hace %d semanas", days/7)
	case days < 365:
		return fmt.Sprintf("hace %d meses", days/30)
	default:
		return fmt.Sprintf("hace %d años", days/365)
	}
}

// FormatDateRelative is Relative over a stored date string.
func FormatDateRelative(s string, now time.Time) string {
	t, err := ParseDate(s)
	if err != nil {
		return s
	}
	return Relative(t, now)
}

// Truncate cuts text to maxLen runes, trims trailing space and appends
// "...". Text that already fits is returned unchanged.
func Truncate(text string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultTruncateLength
	}
	if utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	return strings.TrimSpace(string([]rune(text)[:maxLen])) + "..."
}

// Stars renders a 0-5 rating as full, half and empty stars.
func Stars(rating float64) string {
	rating = math.Max(0, math.Min(5, rating))
	full := int(math.Floor(rating))
	half := rating != math.Floor(rating)

	var b strings.Builder
	b.WriteString(strings.Repeat("★", full))
	empty := 5 - full
	if half {
		b.WriteString("½")
		empty--
	}
	b.WriteString(strings.Repeat("☆", empty))
	return b.String()
}

// LevelText is the display label of a tutorial level.
func LevelText(level string) string {
	switch level {
	case "principiante":
		return "Principiante"
	case "intermedio":
		return "Intermedio"
	case "avanzado":
		return "Avanzado"
	default:
		return level
	}
}

// LevelClass is the CSS class of a tutorial level.
func LevelClass(level string) string {
	switch level {
	case "intermedio":
		return "intermediate"
	case "avanzado":
		return "advanced"
	default:
		return "beginner"
	}
}

// RelevanciaClass is the CSS class of a news relevance.
func RelevanciaClass(relevancia string) string {
	switch relevancia {
	case "media":
		return "text-blue-600"
	case "alta":
		return "text-orange-600"
	case "critica":
		return "text-red-600"
	default:
		return "text-gray-600"
	}
}

// Tags lower-cases tags and joins inner whitespace with dashes.
func Tags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, strings.Join(strings.Fields(strings.ToLower(t)), "-"))
	}
	return out
}

// Ints joins numbers with ", ".
func Ints(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

// Decimal renders f without trailing zeros, as JavaScript prints numbers.
func Decimal(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// YesNo renders a boolean as "Sí" or "No".
func YesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}
