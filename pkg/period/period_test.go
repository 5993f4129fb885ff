package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodayIsHalfOpen(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	// 20:00 UTC on the 17th is already the 18th in IST.
	now := time.Date(2026, 10, 17, 20, 0, 0, 0, time.UTC)

	r := Today(now, loc)
	assert.Equal(t, Date("2026-10-18"), r.Start)
	assert.Equal(t, Date("2026-10-19"), r.End)
	assert.True(t, r.Contains("2026-10-18"))
	assert.False(t, r.Contains("2026-10-19"))
}

func TestMonthRollsOverYear(t *testing.T) {
	r := Month(time.Date(2026, 12, 31, 10, 0, 0, 0, time.UTC), time.UTC)
	assert.Equal(t, Date("2026-12-01"), r.Start)
	assert.Equal(t, Date("2027-01-01"), r.End)
	assert.True(t, r.Contains("2026-12-31"))
	assert.False(t, r.Contains("2027-01-01"))
}

func TestResolve(t *testing.T) {
	now := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

	r, err := Resolve(KindCustom, "2026-02-28", now, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, Range{Start: "2026-02-28", End: "2026-03-01"}, r)

	_, err = Resolve(KindCustom, "28/02/2026", now, time.UTC)
	assert.Error(t, err)

	_, err = Resolve("week", "", now, time.UTC)
	assert.Error(t, err)

	r, err = Resolve("", "", now, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, Date("2026-02-10"), r.Start)
}

func TestAddDaysAndTime(t *testing.T) {
	d := Date("2026-03-01")
	assert.Equal(t, Date("2026-02-28"), d.AddDays(-1))
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), d.Time(time.UTC))
}

func TestCalendarUsesShopTimezone(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	// 20:00 UTC is already the next day in IST
	cal := NewCalendar(ist).WithClock(func() time.Time {
		return time.Date(2026, 4, 30, 20, 0, 0, 0, time.UTC)
	})

	assert.Equal(t, Date("2026-05-01"), cal.Today())

	d, err := cal.DateOr("")
	require.NoError(t, err)
	assert.Equal(t, Date("2026-05-01"), d)

	r, err := cal.Resolve(KindMonth, "")
	require.NoError(t, err)
	assert.Equal(t, Range{Start: "2026-05-01", End: "2026-06-01"}, r)
}
