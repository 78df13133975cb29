package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "24 de junio de 1987", FormatDate("1987-06-24"))
	assert.Equal(t, "1 de enero de 2024", FormatDate("2024-01-01T10:00:00Z"))
	assert.Equal(t, "30 de diciembre de 2023", FormatDate("2023-12-30 08:00:00"))
	assert.Equal(t, "not a date", FormatDate("not a date"))
}

func TestShortDate(t *testing.T) {
	assert.Equal(t, "24/6/1987", ShortDate("1987-06-24"))
	assert.Equal(t, "16/7/2023", ShortDate("2023-07-16"))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2004-11-16 ")
	require.NoError(t, err)
	assert.Equal(t, 2004, d.Year())

	_, err = ParseDate("16/11/2004")
	assert.Error(t, err)
}

func TestRelative(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		ago  time.Duration
		want string
	}{
		{0, "Hoy"},
		{2 * time.Hour, "Ayer"},
		{24 * time.Hour, "Ayer"},
		{3 * 24 * time.Hour, "hace 3 días"},
		{14 * 24 * time.Hour, "hace 2 semanas"},
		{90 * 24 * time.Hour, "hace 3 meses"},
		{800 * 24 * time.Hour, "hace 2 años"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, Relative(now.Add(-tc.ago), now))
		})
	}

	// future dates count the same distance
	assert.Equal(t, "hace 3 días", Relative(now.Add(72*time.Hour), now))
	assert.Equal(t, "hace 3 días", FormatDateRelative("2024-06-27T12:00:00Z", now))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "corto", Truncate("corto", 150))
	assert.Equal(t, "hola...", Truncate("hola mundo", 5))
	assert.Equal(t, "ñandú...", Truncate("ñandú ñandú", 5))

	long := make([]rune, 200)
	for i := range long {
		long[i] = 'a'
	}
	assert.Len(t, []rune(Truncate(string(long), 0)), DefaultTruncateLength+3)
}

func TestStars(t *testing.T) {
	assert.Equal(t, "★★★★☆", Stars(4))
	assert.Equal(t, "★★★★½", Stars(4.5))
	assert.Equal(t, "★★★½☆", Stars(3.2))
	assert.Equal(t, "☆☆☆☆☆", Stars(0))
	assert.Equal(t, "★★★★★", Stars(7))
}

func TestLevelAndRelevancia(t *testing.T) {
	assert.Equal(t, "Intermedio", LevelText("intermedio"))
	assert.Equal(t, "experto", LevelText("experto"))
	assert.Equal(t, "advanced", LevelClass("avanzado"))
	assert.Equal(t, "beginner", LevelClass("experto"))
	assert.Equal(t, "text-red-600", RelevanciaClass("critica"))
	assert.Equal(t, "text-gray-600", RelevanciaClass(""))
}

func TestTags(t *testing.T) {
	assert.Equal(t, []string{"machine-learning", "go"}, Tags([]string{"Machine  Learning", "Go"}))
	assert.Empty(t, Tags(nil))
}

func TestMisc(t *testing.T) {
	assert.Equal(t, "2009, 2011, 2015", Ints([]int{2009, 2011, 2015}))
	assert.Equal(t, "0.86", Decimal(0.86))
	assert.Equal(t, "1.7", Decimal(1.70))
	assert.Equal(t, "Sí", YesNo(true))
}
