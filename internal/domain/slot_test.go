package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlot_IsActive(t *testing.T) {
	tests := []struct {
		status  SlotStatus
		deleted bool
		want    bool
	}{
		{SlotStatusAvailable, false, true},
		{SlotStatusAvailable, true, false},
		{SlotStatusBooked, false, false},
		{SlotStatusBooked, true, false},
		{SlotStatusCancelled, false, false},
		{SlotStatusBlocked, false, false},
	}

	for _, tt := range tests {
		s := Slot{Status: tt.status, IsDeleted: tt.deleted}
		assert.Equal(t, tt.want, s.IsActive(), "status=%s deleted=%v", tt.status, tt.deleted)
	}
}

func TestSlot_Overlaps(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	s := Slot{Start: base, End: base.Add(30 * time.Minute)}

	assert.True(t, s.Overlaps(base.Add(15*time.Minute), base.Add(45*time.Minute)))
	assert.True(t, s.Overlaps(base.Add(-time.Hour), base.Add(time.Hour)))
	assert.False(t, s.Overlaps(base.Add(30*time.Minute), base.Add(time.Hour)))
	assert.False(t, s.Overlaps(base.Add(-30*time.Minute), base))
}

func TestAvailabilityWindow_OverlapsDates(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC) }
	w := AvailabilityWindow{StartDate: day(10), EndDate: day(20)}

	assert.True(t, w.OverlapsDates(day(1), day(10)))
	assert.True(t, w.OverlapsDates(day(20), day(25)))
	assert.True(t, w.OverlapsDates(day(12), day(13)))
	assert.False(t, w.OverlapsDates(day(1), day(9)))
	assert.False(t, w.OverlapsDates(day(21), day(30)))
}

func TestEnumsValid(t *testing.T) {
	assert.True(t, AppointmentTypeTelemedicine.Valid())
	assert.False(t, AppointmentType("SURGERY").Valid())
	assert.True(t, LocationTypeVirtual.Valid())
	assert.False(t, LocationType("MOON").Valid())
	assert.True(t, SlotStatusBlocked.Valid())
	assert.False(t, SlotStatus("free").Valid())
	assert.True(t, Sunday.Valid())
	assert.False(t, Weekday("SUNDAY").Valid())
}
