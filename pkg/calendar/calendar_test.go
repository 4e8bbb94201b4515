package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayOfYearRoundTrip(t *testing.T) {
	for n := 1; n <= DaysInCycle; n++ {
		md := FromDayOfYear(n)
		assert.True(t, md.Valid(), "day %d produced invalid %s", n, md)
		assert.Equal(t, n, md.DayOfYear())
	}
}

func TestDayOfYearAnchors(t *testing.T) {
	tests := []struct {
		md   MonthDay
		want int
	}{
		{MonthDay{time.January, 1}, 1},
		{MonthDay{time.February, 28}, 59},
		{MonthDay{time.February, 29}, 60},
		{MonthDay{time.March, 1}, 61},
		{MonthDay{time.December, 31}, 366},
	}
	for _, tt := range tests {
		t.Run(tt.md.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.md.DayOfYear())
		})
	}
}

func TestValid(t *testing.T) {
	assert.True(t, MonthDay{time.February, 29}.Valid())
	assert.True(t, MonthDay{time.April, 30}.Valid())
	assert.False(t, MonthDay{time.April, 31}.Valid())
	assert.False(t, MonthDay{time.February, 30}.Valid())
	assert.False(t, MonthDay{0, 1}.Valid())
	assert.False(t, MonthDay{13, 1}.Valid())
	assert.False(t, MonthDay{time.May, 0}.Valid())
}

func TestDistance(t *testing.T) {
	dec30 := MonthDay{time.December, 30}

	assert.Equal(t, 0, Distance(dec30, dec30))
	assert.Equal(t, 1, Distance(dec30, MonthDay{time.December, 31}))
	assert.Equal(t, 2, Distance(dec30, MonthDay{time.January, 1}))
	assert.Equal(t, 3, Distance(dec30, MonthDay{time.January, 2}))
	assert.Equal(t, 365, Distance(dec30, MonthDay{time.December, 29}))
	assert.Equal(t, 3, Distance(MonthDay{time.February, 26}, MonthDay{time.February, 29}))
}

func TestWindow(t *testing.T) {
	t.Run("wraps year end", func(t *testing.T) {
		got := Window(MonthDay{time.December, 30}, 3)
		assert.Equal(t, []MonthDay{
			{time.December, 30},
			{time.December, 31},
			{time.January, 1},
			{time.January, 2},
		}, got)
	})

	t.Run("crosses month of 30 days", func(t *testing.T) {
		got := Window(MonthDay{time.April, 29}, 2)
		assert.Equal(t, []MonthDay{
			{time.April, 29},
			{time.April, 30},
			{time.May, 1},
		}, got)
	})

	t.Run("includes leap day", func(t *testing.T) {
		got := Window(MonthDay{time.February, 27}, 3)
		assert.Equal(t, []MonthDay{
			{time.February, 27},
			{time.February, 28},
			{time.February, 29},
			{time.March, 1},
		}, got)
	})

	t.Run("zero lookahead is today only", func(t *testing.T) {
		assert.Equal(t, []MonthDay{{time.July, 4}}, Window(MonthDay{time.July, 4}, 0))
	})

	t.Run("negative lookahead is empty", func(t *testing.T) {
		assert.Nil(t, Window(MonthDay{time.July, 4}, -1))
	})

	t.Run("caps at one cycle", func(t *testing.T) {
		assert.Len(t, Window(MonthDay{time.July, 4}, 1000), DaysInCycle)
	})
}

func TestIn(t *testing.T) {
	leap := MonthDay{time.February, 29}
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), leap.In(2024, time.UTC))
	assert.Equal(t, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), leap.In(2025, time.UTC))
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), MonthDay{time.March, 1}.In(2025, time.UTC))

	assert.True(t, IsLeap(2000))
	assert.False(t, IsLeap(1900))
	assert.True(t, IsLeap(2028))
	assert.False(t, IsLeap(2026))
}
