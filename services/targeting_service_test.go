package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var targetingToday = date(2025, time.June, 15)

func newTargetingService(t *testing.T) *TargetingService {
	db := openTestDB(t)
	svc := NewTargetingService(db)
	svc.now = func() time.Time { return targetingToday }
	return svc
}

func TestEventTargetsExcludesOptOutMissingEmailAndNoVisits(t *testing.T) {
	svc := newTargetingService(t)
	db := svc.db

	reachable := seedCustomer(t, db, "Aoi", strPtr("aoi@example.com"), true, nil)
	seedVisit(t, db, reachable.ID, date(2025, time.May, 1))

	optedOut := seedCustomer(t, db, "Ben", strPtr("ben@example.com"), false, nil)
	seedVisit(t, db, optedOut.ID, date(2025, time.June, 1))

	noEmail := seedCustomer(t, db, "Chika", nil, true, nil)
	seedVisit(t, db, noEmail.ID, date(2025, time.June, 1))

	// No visits at all: excluded by the inner join.
	seedCustomer(t, db, "Daiki", strPtr("daiki@example.com"), true, nil)

	stale := seedCustomer(t, db, "Emi", strPtr("emi@example.com"), true, nil)
	seedVisit(t, db, stale.ID, date(2023, time.January, 10))

	targets, err := svc.EventTargets(365)
	require.NoError(t, err)

	require.Len(t, targets, 1)
	assert.Equal(t, reachable.ID, targets[0].ID)
	assert.Equal(t, "aoi@example.com", targets[0].Email)
	assert.Equal(t, date(2025, time.May, 1), targets[0].LatestVisitDate.Time)
}

func TestEventTargetsUsesLatestVisitAndOrdersByIDDesc(t *testing.T) {
	svc := newTargetingService(t)
	db := svc.db

	first := seedCustomer(t, db, "First", strPtr("first@example.com"), true, nil)
	seedVisit(t, db, first.ID, date(2022, time.March, 1))
	seedVisit(t, db, first.ID, date(2025, time.April, 2))

	second := seedCustomer(t, db, "Second", strPtr("second@example.com"), true, nil)
	seedVisit(t, db, second.ID, date(2025, time.February, 20))

	targets, err := svc.EventTargets(365)
	require.NoError(t, err)

	require.Len(t, targets, 2)
	assert.Equal(t, second.ID, targets[0].ID)
	assert.Equal(t, first.ID, targets[1].ID)
	assert.Equal(t, date(2025, time.April, 2), targets[1].LatestVisitDate.Time)
}

func TestBirthdayTargetsMatchesCurrentMonthOnly(t *testing.T) {
	svc := newTargetingService(t)
	db := svc.db

	juneBirthday := seedCustomer(t, db, "June", strPtr("june@example.com"), true,
		timePtr(date(1990, time.June, 3)))
	seedVisit(t, db, juneBirthday.ID, date(2025, time.June, 14))

	decemberBirthday := seedCustomer(t, db, "December", strPtr("dec@example.com"), true,
		timePtr(date(1985, time.December, 25)))
	seedVisit(t, db, decemberBirthday.ID, date(2025, time.June, 14))

	noBirthday := seedCustomer(t, db, "NoBirthday", strPtr("nob@example.com"), true, nil)
	seedVisit(t, db, noBirthday.ID, date(2025, time.June, 14))

	targets, err := svc.BirthdayTargets(365)
	require.NoError(t, err)

	require.Len(t, targets, 1)
	assert.Equal(t, juneBirthday.ID, targets[0].ID)
}

func TestBirthdayTargetsEmptyWhenNoMatchingMonth(t *testing.T) {
	svc := newTargetingService(t)
	db := svc.db

	// Visited yesterday, but born in another month.
	c := seedCustomer(t, db, "March", strPtr("march@example.com"), true,
		timePtr(date(1992, time.March, 9)))
	seedVisit(t, db, c.ID, date(2025, time.June, 14))

	targets, err := svc.BirthdayTargets(365)
	require.NoError(t, err)
	assert.Empty(t, targets)
}

func TestInactiveBySegmentThresholds(t *testing.T) {
	svc := newTargetingService(t)
	db := svc.db

	// Last skincare purchase 95 days ago: past the 90-day threshold.
	overdue := seedCustomer(t, db, "Overdue", strPtr("overdue@example.com"), true, nil)
	seedVisit(t, db, overdue.ID, targetingToday.AddDate(0, 0, -95), "skincare")

	// Skincare purchase 30 days ago: inside the window.
	recent := seedCustomer(t, db, "Recent", strPtr("recent@example.com"), true, nil)
	seedVisit(t, db, recent.ID, targetingToday.AddDate(0, 0, -30), "skincare")

	// 95 days is overdue for skincare but not for makeup (120 days).
	targets, err := svc.InactiveBySegment("skincare")
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, overdue.ID, targets[0].CustomerID)
	assert.Equal(t, 95, targets[0].DaysSince)
	assert.Equal(t, "skincare", targets[0].Segment)

	makeupTargets, err := svc.InactiveBySegment("makeup")
	require.NoError(t, err)
	assert.Empty(t, makeupTargets)
}

func TestInactiveBySegmentUsesLatestQualifyingVisit(t *testing.T) {
	svc := newTargetingService(t)
	db := svc.db

	// Old skincare purchase followed by a recent one: the max qualifying
	// visit date wins, so the customer is not overdue.
	c := seedCustomer(t, db, "Comeback", strPtr("cb@example.com"), true, nil)
	seedVisit(t, db, c.ID, targetingToday.AddDate(0, 0, -200), "skincare")
	seedVisit(t, db, c.ID, targetingToday.AddDate(0, 0, -10), "skincare")

	targets, err := svc.InactiveBySegment("skincare")
	require.NoError(t, err)
	assert.Empty(t, targets)
}

func TestInactiveBySegmentExcludesOptOut(t *testing.T) {
	svc := newTargetingService(t)
	db := svc.db

	optedOut := seedCustomer(t, db, "Quiet", strPtr("quiet@example.com"), false, nil)
	seedVisit(t, db, optedOut.ID, targetingToday.AddDate(0, 0, -150), "skincare")

	targets, err := svc.InactiveBySegment("skincare")
	require.NoError(t, err)
	assert.Empty(t, targets)
}

func TestInactiveBySegmentOrdersOldestFirst(t *testing.T) {
	svc := newTargetingService(t)
	db := svc.db

	newer := seedCustomer(t, db, "Newer", strPtr("newer@example.com"), true, nil)
	seedVisit(t, db, newer.ID, targetingToday.AddDate(0, 0, -100), "skincare")

	older := seedCustomer(t, db, "Older", strPtr("older@example.com"), true, nil)
	seedVisit(t, db, older.ID, targetingToday.AddDate(0, 0, -300), "skincare")

	targets, err := svc.InactiveBySegment("skincare")
	require.NoError(t, err)
	require.Len(t, targets, 2)
	assert.Equal(t, older.ID, targets[0].CustomerID)
	assert.Equal(t, newer.ID, targets[1].CustomerID)
}

func TestInactiveBySegmentUnknownSegment(t *testing.T) {
	svc := newTargetingService(t)

	targets, err := svc.InactiveBySegment("haircare")
	require.NoError(t, err)
	assert.Empty(t, targets)
}

func TestMailTargetsDispatch(t *testing.T) {
	svc := newTargetingService(t)
	db := svc.db

	c := seedCustomer(t, db, "Any", strPtr("any@example.com"), true, nil)
	seedVisit(t, db, c.ID, date(2025, time.June, 1))

	targets, err := svc.MailTargets(MailTypeEvent, 365)
	require.NoError(t, err)
	assert.Len(t, targets, 1)

	_, err = svc.MailTargets(MailTypePurchaseFollow, 365)
	assert.ErrorIs(t, err, ErrUnsupportedMailType)

	_, err = svc.MailTargets("newsletter", 365)
	assert.ErrorIs(t, err, ErrUnsupportedMailType)
}

func TestEventTargetsEmptyResultIsNotNil(t *testing.T) {
	svc := newTargetingService(t)

	targets, err := svc.EventTargets(365)
	require.NoError(t, err)
	assert.NotNil(t, targets)
	assert.Empty(t, targets)
}
