package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func window(start, end types.TimeString, slot, brk int) *domain.AvailabilityWindow {
	return &domain.AvailabilityWindow{
		StartDate:            date(2025, 6, 2),
		EndDate:              date(2025, 6, 2),
		StartTime:            start,
		EndTime:              end,
		Timezone:             "UTC",
		SlotDurationMinutes:  slot,
		BreakDurationMinutes: brk,
	}
}

func TestGenerate_SlotAndBreak(t *testing.T) {
	got, err := Generate(window("09:00", "10:00", 20, 5))
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), got[0].Start)
	assert.Equal(t, time.Date(2025, 6, 2, 9, 20, 0, 0, time.UTC), got[0].End)
	assert.Equal(t, time.Date(2025, 6, 2, 9, 25, 0, 0, time.UTC), got[1].Start)
	assert.Equal(t, time.Date(2025, 6, 2, 9, 45, 0, 0, time.UTC), got[1].End)
}

func TestGenerate_CountMatchesFormula(t *testing.T) {
	tests := []struct {
		start, end types.TimeString
		slot, brk  int
	}{
		{"09:00", "17:00", 30, 0},
		{"09:00", "17:00", 45, 15},
		{"08:15", "12:40", 25, 10},
		{"09:00", "09:30", 30, 0},
		{"09:00", "09:29", 30, 0},
		{"00:00", "23:59", 15, 0},
	}

	for _, tt := range tests {
		w := window(tt.start, tt.end, tt.slot, tt.brk)
		w.EndDate = date(2025, 6, 4)

		got, err := Generate(w)
		require.NoError(t, err)

		startMin, _ := tt.start.Minutes()
		endMin, _ := tt.end.Minutes()
		want := 3 * CountPerDay(endMin-startMin, tt.slot, tt.brk)
		assert.Len(t, got, want, "%s-%s slot=%d break=%d", tt.start, tt.end, tt.slot, tt.brk)
	}
}

func TestGenerate_EmptyWhenNothingFits(t *testing.T) {
	got, err := Generate(window("09:00", "09:10", 15, 0))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGenerate_ResolvesOffsetPerDate(t *testing.T) {
	// 2024-03-10 02:00 America/New_York переходит на летнее время
	w := &domain.AvailabilityWindow{
		StartDate:           date(2024, 3, 9),
		EndDate:             date(2024, 3, 11),
		StartTime:           "09:00",
		EndTime:             "09:30",
		Timezone:            "America/New_York",
		SlotDurationMinutes: 30,
	}

	got, err := Generate(w)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, time.Date(2024, 3, 9, 14, 0, 0, 0, time.UTC), got[0].Start)
	assert.Equal(t, time.Date(2024, 3, 10, 13, 0, 0, 0, time.UTC), got[1].Start)
	assert.Equal(t, time.Date(2024, 3, 11, 13, 0, 0, 0, time.UTC), got[2].Start)
	for _, c := range got {
		assert.Equal(t, 30*time.Minute, c.End.Sub(c.Start))
		assert.Equal(t, time.UTC, c.Start.Location())
	}
}

func TestGenerate_AscendingAndUniqueAcrossTransition(t *testing.T) {
	for _, day := range []time.Time{date(2024, 3, 10), date(2024, 11, 3)} {
		w := &domain.AvailabilityWindow{
			StartDate:           day,
			EndDate:             day,
			StartTime:           "00:00",
			EndTime:             "04:00",
			Timezone:            "America/New_York",
			SlotDurationMinutes: 30,
		}

		got, err := Generate(w)
		require.NoError(t, err)
		require.NotEmpty(t, got)

		for i := 1; i < len(got); i++ {
			assert.True(t, got[i-1].Start.Before(got[i].Start), "day %s index %d", day.Format(domain.DateFormat), i)
			assert.False(t, got[i].Start.Before(got[i-1].End), "day %s index %d", day.Format(domain.DateFormat), i)
		}
	}
}

func TestGenerate_SpringForwardGapHasNoOverlaps(t *testing.T) {
	// 02:00-03:00 2024-03-10 в America/New_York не существует
	w := &domain.AvailabilityWindow{
		StartDate:           date(2024, 3, 10),
		EndDate:             date(2024, 3, 10),
		StartTime:           "01:00",
		EndTime:             "05:00",
		Timezone:            "America/New_York",
		SlotDurationMinutes: 45,
	}

	got, err := Generate(w)
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, time.Date(2024, 3, 10, 6, 0, 0, 0, time.UTC), got[0].Start)
	assert.Equal(t, time.Date(2024, 3, 10, 6, 45, 0, 0, time.UTC), got[1].Start)
	assert.Equal(t, time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC), got[2].Start)

	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].Start.Before(got[i-1].End), "candidate %d overlaps %d", i, i-1)
	}
}

func TestGenerate_InvalidWindow(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(w *domain.AvailabilityWindow)
	}{
		{"zero slot duration", func(w *domain.AvailabilityWindow) { w.SlotDurationMinutes = 0 }},
		{"negative break", func(w *domain.AvailabilityWindow) { w.BreakDurationMinutes = -5 }},
		{"start equals end", func(w *domain.AvailabilityWindow) { w.EndTime = w.StartTime }},
		{"start after end", func(w *domain.AvailabilityWindow) { w.StartTime, w.EndTime = "18:00", "09:00" }},
		{"malformed time", func(w *domain.AvailabilityWindow) { w.StartTime = "9am" }},
		{"start date after end date", func(w *domain.AvailabilityWindow) { w.StartDate = date(2025, 6, 3) }},
		{"missing dates", func(w *domain.AvailabilityWindow) { w.EndDate = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := window("09:00", "10:00", 30, 0)
			tt.mutate(w)

			_, err := Generate(w)
			assert.ErrorIs(t, err, ErrInvalidWindow)
		})
	}
}

func TestGenerate_InvalidTimezone(t *testing.T) {
	for _, tz := range []string{"", "Mars/Olympus_Mons"} {
		w := window("09:00", "10:00", 30, 0)
		w.Timezone = tz

		_, err := Generate(w)
		assert.ErrorIs(t, err, ErrInvalidTimezone, "timezone %q", tz)
	}
}

func TestCountPerDay(t *testing.T) {
	assert.Equal(t, 2, CountPerDay(60, 20, 5))
	assert.Equal(t, 16, CountPerDay(480, 30, 0))
	assert.Equal(t, 1, CountPerDay(30, 30, 10))
	assert.Equal(t, 0, CountPerDay(29, 30, 0))
	assert.Equal(t, 0, CountPerDay(60, 0, 0))
}
