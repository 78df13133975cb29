package content

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	"github.com/rumiadrian30/techdivulga/internal/format"
	"github.com/rumiadrian30/techdivulga/internal/storage"
)

// Item is the API view of a record: its fields plus id, created_at and
// updated_at.
type Item map[string]any

// Reserved fields are owned by the store and ignored in request bodies.
var reserved = []string{"id", "created_at", "updated_at"}

// ID returns the item id.
func (it Item) ID() string {
	return it.String("id")
}

// String returns a string field, or "" when absent or of another type.
func (it Item) String(key string) string {
	s, _ := it[key].(string)
	return s
}

// Float returns a numeric field, or 0 when absent or of another type.
func (it Item) Float(key string) float64 {
	f, _ := it[key].(float64)
	return f
}

// Published reports whether the item's publicado field is true.
func (it Item) Published() bool {
	b, _ := it["publicado"].(bool)
	return b
}

// Strings returns a list-of-strings field.
func (it Item) Strings(key string) []string {
	raw, _ := it[key].([]any)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Title returns the first present of titulo and nombre.
func (it Item) Title() string {
	if t := it.String("titulo"); t != "" {
		return t
	}
	return it.String("nombre")
}

// Card is the display summary of an item.
type Card struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Excerpt  string   `json:"excerpt"`
	Date     string   `json:"date,omitempty"`
	Relative string   `json:"relative,omitempty"`
	Rating   string   `json:"rating,omitempty"`
	Level    string   `json:"level,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// Card builds the display summary of the item at now.
func (it Item) Card(now time.Time) Card {
	c := Card{
		ID:    it.ID(),
		Title: it.Title(),
		Tags:  format.Tags(it.Strings("etiquetas")),
	}
	excerpt := cmp.Or(it.String("resumen"), it.String("descripcion"), it.String("contenido"))
	c.Excerpt = format.Truncate(excerpt, format.DefaultTruncateLength)

	if date := it.String("fecha_publicacion"); date != "" {
		c.Date = format.FormatDate(date)
		c.Relative = format.FormatDateRelative(date, now)
	}
	if _, ok := it["valoracion"]; ok {
		c.Rating = format.Stars(it.Float("valoracion"))
	}
	if level := it.String("nivel"); level != "" {
		c.Level = format.LevelText(level)
	}
	return c
}

func newItem(rec storage.Record, fields map[string]any) Item {
	it := make(Item, len(fields)+3)
	for k, v := range fields {
		it[k] = v
	}
	it["id"] = rec.ID.String()
	it["created_at"] = rec.CreatedAt.UTC().Format(time.RFC3339Nano)
	it["updated_at"] = rec.UpdatedAt.UTC().Format(time.RFC3339Nano)
	return it
}

// compareField orders two items by key. Numbers compare numerically,
// strings lexically (ISO dates sort chronologically) and booleans false
// first. Items missing the field, or holding a different type, sort last.
func compareField(a, b Item, key string) int {
	av, aok := a[key]
	bv, bok := b[key]
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}

	switch x := av.(type) {
	case float64:
		if y, ok := bv.(float64); ok {
			return cmp.Compare(x, y)
		}
	case string:
		if y, ok := bv.(string); ok {
			return strings.Compare(x, y)
		}
	case bool:
		if y, ok := bv.(bool); ok {
			return cmp.Compare(boolRank(x), boolRank(y))
		}
	}
	return strings.Compare(fmt.Sprint(av), fmt.Sprint(bv))
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
