package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "mid week wednesday",
			now:  time.Date(2025, 6, 18, 15, 30, 0, 0, time.UTC), // Wednesday
			want: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),   // Monday
		},
		{
			name: "monday truncates to midnight",
			now:  time.Date(2025, 6, 16, 23, 59, 59, 0, time.UTC),
			want: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday belongs to the week started six days earlier",
			now:  time.Date(2025, 6, 22, 0, 0, 1, 0, time.UTC), // Sunday
			want: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "month boundary",
			now:  time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC), // Tuesday
			want: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekStart(tt.now))
		})
	}
}

func TestWeekEnd(t *testing.T) {
	now := time.Date(2025, 6, 18, 15, 30, 0, 0, time.UTC) // Wednesday
	want := time.Date(2025, 6, 22, 23, 59, 59, 999000000, time.UTC)
	assert.Equal(t, want, WeekEnd(now))
}

func TestWeekBoundary_SundayAndMondayAreDifferentWeeks(t *testing.T) {
	sundayNight := time.Date(2025, 6, 22, 23, 59, 59, 0, time.UTC)
	mondayMorning := time.Date(2025, 6, 23, 0, 0, 1, 0, time.UTC)

	assert.NotEqual(t, WeekStart(sundayNight), WeekStart(mondayMorning))
	assert.True(t, WeekEnd(sundayNight).Before(mondayMorning))
}

func TestNextMonthFirst(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "mid month",
			now:  time.Date(2025, 6, 18, 15, 30, 0, 0, time.UTC),
			want: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "first of month still advances",
			now:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "december rolls into next year",
			now:  time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC),
			want: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextMonthFirst(tt.now))
		})
	}
}

func TestWholeDaysUntil(t *testing.T) {
	now := time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, WholeDaysUntil(now, now))
	assert.Equal(t, 0, WholeDaysUntil(now, now.Add(-time.Hour)))
	assert.Equal(t, 1, WholeDaysUntil(now, now.Add(time.Minute)))
	assert.Equal(t, 1, WholeDaysUntil(now, now.Add(24*time.Hour)))
	assert.Equal(t, 2, WholeDaysUntil(now, now.Add(24*time.Hour+time.Second)))
}

func TestDaysSince(t *testing.T) {
	now := time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysSince(now, now))
	assert.Equal(t, 0, DaysSince(now, now.Add(-23*time.Hour)))
	assert.Equal(t, 1, DaysSince(now, now.Add(-24*time.Hour)))
	assert.Equal(t, 6, DaysSince(now, now.AddDate(0, 0, -7).Add(time.Hour)))
	assert.Equal(t, 7, DaysSince(now, now.AddDate(0, 0, -7)))
}
