package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthGrid(t *testing.T) {
	// 1 октября 2026 четверг
	weeks := MonthGrid(2026, time.October)

	require.Len(t, weeks, 5)
	for _, w := range weeks {
		assert.Len(t, w, 7)
	}

	assert.Nil(t, weeks[0][0])
	assert.Nil(t, weeks[0][2])
	require.NotNil(t, weeks[0][3])
	assert.Equal(t, 1, weeks[0][3].Day())
	assert.Equal(t, time.Monday, weeks[1][0].Weekday())

	last := weeks[4]
	require.NotNil(t, last[5])
	assert.Equal(t, 31, last[5].Day())
	assert.Nil(t, last[6])
}

func TestMonthGrid_StartsOnMonday(t *testing.T) {
	// 1 июня 2026 понедельник
	weeks := MonthGrid(2026, time.June)
	require.NotNil(t, weeks[0][0])
	assert.Equal(t, 1, weeks[0][0].Day())
}

func TestMonthAvailability(t *testing.T) {
	days := MonthAvailability(2026, time.October, today, nil, weekSchedule())

	require.Len(t, days, 31)
	assert.False(t, days[11].Bookable, "monday 12th is in the past")
	assert.Equal(t, ReasonPastDate, days[11].Reason)
	assert.True(t, days[15].Bookable, "today is friday")
	assert.True(t, days[18].Bookable, "monday 19th")
	assert.Equal(t, ReasonDayOff, days[19].Reason)
	assert.Equal(t, ReasonNoWindow, days[20].Reason)
}
