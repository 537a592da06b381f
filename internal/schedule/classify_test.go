package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/exam-tracker/internal/domain"
	"github.com/pkordes/exam-tracker/internal/schedule"
)

var manila = time.FixedZone("PHT", 8*60*60)

// at returns a wall-clock instant in the PHT zone used by these tests.
func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, manila)
}

func TestClassifyDate_Sentinels(t *testing.T) {
	now := at(2025, time.January, 24, 9, 0)
	for _, s := range []string{"", "N/A", "-", "   "} {
		assert.Equal(t, domain.DateFuture, schedule.ClassifyDate(s, now), "input %q", s)
	}
}

func TestClassifyDate_ShortMonthForm(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want domain.DateStatus
	}{
		{"before", at(2025, time.January, 20, 12, 0), domain.DateFuture},
		{"same day", at(2025, time.January, 24, 23, 59), domain.DateToday},
		{"same day at midnight", at(2025, time.January, 24, 0, 0), domain.DateToday},
		{"after", at(2025, time.January, 30, 8, 0), domain.DatePast},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, schedule.ClassifyDate("Jan 24, 2025", tc.now))
		})
	}
}

func TestClassifyDate_OtherForms(t *testing.T) {
	now := at(2025, time.March, 15, 14, 0)
	tests := []struct {
		in   string
		want domain.DateStatus
	}{
		{"2025-03-15", domain.DateToday},
		{"2025-03-14", domain.DatePast},
		{"2025-03-16T08:00:00", domain.DateFuture},
		{"March 15, 2025", domain.DateToday},
		{"mar 15, 2025", domain.DateToday},
		{"03/15/2025", domain.DateToday},
		{"3/1/2025", domain.DatePast},
		{"12/31/2025", domain.DateFuture},
		{"2025/03/15", domain.DateToday},
		{"2025/3/14", domain.DatePast},
		{"2025-03-15T01:00:00+08:00", domain.DateToday},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, schedule.ClassifyDate(tc.in, now))
		})
	}
}

func TestClassifyDate_RFC3339ConvertedToLocalDay(t *testing.T) {
	// 2025-03-14T20:00Z is 04:00 on the 15th in PHT.
	now := at(2025, time.March, 15, 9, 0)
	assert.Equal(t, domain.DateToday, schedule.ClassifyDate("2025-03-14T20:00:00Z", now))
}

func TestClassifyDate_UnparseableIsFuture(t *testing.T) {
	now := at(2025, time.March, 15, 14, 0)
	for _, s := range []string{"next week", "TBA", "Foo 12, 2025", "a/b/c"} {
		assert.Equal(t, domain.DateFuture, schedule.ClassifyDate(s, now), "input %q", s)
	}
}

func TestClassifyTime_Sentinels(t *testing.T) {
	now := at(2025, time.January, 24, 23, 0)
	for _, s := range []string{"", "N/A", "-"} {
		assert.Equal(t, domain.DateFuture, schedule.ClassifyTime(s, now), "input %q", s)
	}
}

func TestClassifyTime_SinglePoint(t *testing.T) {
	assert.Equal(t, domain.DateFuture, schedule.ClassifyTime("2:00 PM", at(2025, time.January, 24, 13, 0)))
	assert.Equal(t, domain.DatePast, schedule.ClassifyTime("2:00 PM", at(2025, time.January, 24, 15, 0)))
}

func TestClassifyTime_ExactInstantIsNotPast(t *testing.T) {
	assert.Equal(t, domain.DateFuture, schedule.ClassifyTime("2:00 PM", at(2025, time.January, 24, 14, 0)))
}

func TestClassifyTime_RangeUsesStartOnly(t *testing.T) {
	// 14:00 is after the 13:30 start but well before the 16:30 end.
	assert.Equal(t, domain.DatePast, schedule.ClassifyTime("1:30 pm - 4:30 pm", at(2025, time.January, 24, 14, 0)))
	assert.Equal(t, domain.DateFuture, schedule.ClassifyTime("1:30 pm - 4:30 pm", at(2025, time.January, 24, 13, 0)))
}

func TestClassifyTime_TwelveHourEdges(t *testing.T) {
	// 12:15 AM is 00:15, already past at 01:00.
	assert.Equal(t, domain.DatePast, schedule.ClassifyTime("12:15 AM", at(2025, time.January, 24, 1, 0)))
	// 12:15 PM stays 12:15, not yet reached at 12:00.
	assert.Equal(t, domain.DateFuture, schedule.ClassifyTime("12:15 PM", at(2025, time.January, 24, 12, 0)))
	// Lower case without a space.
	assert.Equal(t, domain.DatePast, schedule.ClassifyTime("8:00am", at(2025, time.January, 24, 9, 0)))
}

func TestClassifyTime_UnparseableIsFuture(t *testing.T) {
	now := at(2025, time.January, 24, 23, 0)
	for _, s := range []string{"morning", "14:00", "9 AM"} {
		assert.Equal(t, domain.DateFuture, schedule.ClassifyTime(s, now), "input %q", s)
	}
}

func TestExtractPostponedDate(t *testing.T) {
	got, ok := schedule.ExtractPostponedDate("Moved to 03/15/2025, please confirm")
	assert.True(t, ok)
	assert.Equal(t, "03/15/2025", got)

	got, ok = schedule.ExtractPostponedDate("resched 3/5/2025 then 4/6/2025")
	assert.True(t, ok)
	assert.Equal(t, "3/5/2025", got, "first match wins and is returned verbatim")

	_, ok = schedule.ExtractPostponedDate("postponed indefinitely")
	assert.False(t, ok)

	_, ok = schedule.ExtractPostponedDate("")
	assert.False(t, ok)
}
