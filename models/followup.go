package models

import "time"

// FollowUpDays maps a purchase category to the number of days after a visit
// when a follow-up contact becomes relevant. Both visit creation and
// inactivity targeting read this one table; unknown categories map to 0,
// meaning no real follow-up window.
var FollowUpDays = map[string]int{
	"skincare": 90,
	"makeup":   120,
}

// FollowOffsetDays returns the follow-up offset for a category, 0 for
// unrecognized categories.
func FollowOffsetDays(category string) int {
	return FollowUpDays[category]
}

// FollowDueDate computes the due date for a purchase made on visitDate.
func FollowDueDate(visitDate time.Time, category string) time.Time {
	return visitDate.AddDate(0, 0, FollowOffsetDays(category))
}

// KnownSegment reports whether segment is a category with a real follow-up
// threshold.
func KnownSegment(segment string) bool {
	_, ok := FollowUpDays[segment]
	return ok
}
