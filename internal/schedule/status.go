package schedule

import (
	"time"

	"github.com/pkordes/exam-tracker/internal/domain"
)

// ResolveStatus combines the schedule date and time with the postponement
// facts into a single exam state. A postponement always wins over the
// original schedule. The postponed branch looks at the postponed day only,
// never at the clock time.
func ResolveStatus(dateStr, timeStr string, isPostponed bool, postponedDate string, now time.Time) domain.ExamState {
	if isPostponed && !IsSentinel(postponedDate) {
		if ClassifyDate(postponedDate, now) == domain.DatePast {
			return domain.ExamPostponedPast
		}
		return domain.ExamPostponedUpcoming
	}
	if isPostponed {
		return domain.ExamPostponedUpcoming
	}
	if IsSentinel(dateStr) {
		return domain.ExamUpcoming
	}

	switch ClassifyDate(dateStr, now) {
	case domain.DatePast:
		return domain.ExamPast
	case domain.DateToday:
		if ClassifyTime(timeStr, now) == domain.DatePast {
			return domain.ExamTodayPast
		}
		return domain.ExamUpcoming
	default:
		return domain.ExamUpcoming
	}
}

// StatusMessage returns the sentence shown under the schedule card.
func StatusMessage(state domain.ExamState, isToday bool) string {
	switch state {
	case domain.ExamPast:
		return "This exam has already taken place on a previous date."
	case domain.ExamTodayPast:
		return "This exam was scheduled for today, but the time has already passed."
	case domain.ExamPostponedPast:
		return "This exam was postponed and the new date has passed."
	case domain.ExamPostponedUpcoming:
		return "This exam has been postponed. Please check the new schedule."
	case domain.ExamUpcoming:
		if isToday {
			return "This exam is scheduled for today and is upcoming."
		}
		return "Your exam is scheduled as shown above."
	default:
		return "Please check your exam schedule."
	}
}
