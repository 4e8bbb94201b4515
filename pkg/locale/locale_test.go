package locale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDayMonth(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)

	d := time.Date(1990, time.January, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "05 January", tr.FormatDayMonth("en", d))
	assert.Equal(t, "05 января", tr.FormatDayMonth("ru", d))
	assert.Equal(t, "29 February", tr.FormatDayMonth("en", time.Date(2000, time.February, 29, 0, 0, 0, 0, time.UTC)))
}

func TestMonthNameUnknownLanguageFallsBack(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)

	assert.Equal(t, "March", tr.MonthName("de", time.March))
}

func TestResolve(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)

	tests := []struct {
		name  string
		prefs []string
		want  string
	}{
		{"no preference", nil, "en"},
		{"plain code", []string{"ru"}, "ru"},
		{"regional accept-language", []string{"ru-RU,ru;q=0.9,en;q=0.8"}, "ru"},
		{"query wins over header", []string{"en", "ru-RU"}, "en"},
		{"empty query falls to header", []string{"", "ru"}, "ru"},
		{"unsupported", []string{"ja"}, "en"},
		{"garbage", []string{";;;"}, "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Resolve(tt.prefs...))
		})
	}
}

func TestNewRejectsUnknownDefault(t *testing.T) {
	_, err := New("fr")
	assert.Error(t, err)
}

func TestNewWithRussianDefault(t *testing.T) {
	tr, err := New("ru")
	require.NoError(t, err)
	assert.Equal(t, "ru", tr.Default())
	assert.Equal(t, "ru", tr.Resolve("ja"))
}

func TestBirthdaySummary(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)

	assert.Equal(t, "Anna Petrova's birthday", tr.BirthdaySummary("en", "Anna Petrova"))
	assert.Equal(t, "День рождения: Анна Петрова", tr.BirthdaySummary("ru", "Анна Петрова"))
	assert.Equal(t, "Birthdays", tr.CalendarName("fr"))
	assert.Equal(t, "Дни рождения", tr.CalendarName("ru"))
}
