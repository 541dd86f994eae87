package windowdef

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

func validDefinition() *Definition {
	return &Definition{
		ProviderID:    uuid.New(),
		StartDate:     time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC),
		StartTime:     "09:00",
		EndTime:       "17:00",
		Timezone:      "Europe/Berlin",
		SlotDuration:  30,
		BreakDuration: 10,
	}
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, validDefinition().Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *Definition)
		want   error
	}{
		{"missing provider", func(d *Definition) { d.ProviderID = uuid.Nil }, ErrInvalidInput},
		{"missing start date", func(d *Definition) { d.StartDate = time.Time{} }, ErrInvalidWindow},
		{"dates reversed", func(d *Definition) { d.StartDate = d.EndDate.AddDate(0, 0, 1) }, ErrInvalidWindow},
		{"bad start time", func(d *Definition) { d.StartTime = "25:00" }, ErrInvalidWindow},
		{"times reversed", func(d *Definition) { d.StartTime, d.EndTime = "17:00", "09:00" }, ErrInvalidWindow},
		{"equal times", func(d *Definition) { d.EndTime = d.StartTime }, ErrInvalidWindow},
		{"slot too short", func(d *Definition) { d.SlotDuration = 10 }, ErrInvalidWindow},
		{"slot too long", func(d *Definition) { d.SlotDuration = 241 }, ErrInvalidWindow},
		{"negative break", func(d *Definition) { d.BreakDuration = -1 }, ErrInvalidWindow},
		{"break too long", func(d *Definition) { d.BreakDuration = 121 }, ErrInvalidWindow},
		{"missing timezone", func(d *Definition) { d.Timezone = "" }, ErrInvalidTimezone},
		{"unknown timezone", func(d *Definition) { d.Timezone = "Atlantis/Capital" }, ErrInvalidTimezone},
		{"unknown appointment type", func(d *Definition) { d.AppointmentType = ptr.Ptr(domain.AppointmentType("X")) }, ErrInvalidInput},
		{"unknown location type", func(d *Definition) { d.LocationType = ptr.Ptr(domain.LocationType("X")) }, ErrInvalidInput},
		{"negative price", func(d *Definition) { d.Price = ptr.Ptr(-1.0) }, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDefinition()
			tt.mutate(d)
			assert.ErrorIs(t, d.Validate(), tt.want)
		})
	}
}

func TestToWindow_AppliesDefaults(t *testing.T) {
	d := validDefinition()
	w := d.ToWindow()

	assert.True(t, w.IsActive)
	assert.Equal(t, d.ProviderID, w.ProviderID)
	assert.Equal(t, domain.AppointmentTypeConsultation, w.AppointmentType)
	assert.Equal(t, domain.LocationTypeClinic, w.LocationType)
	assert.Equal(t, 30, w.SlotDurationMinutes)
	assert.Equal(t, 10, w.BreakDurationMinutes)
}

func TestApplyTo_KeepsIdentity(t *testing.T) {
	id := uuid.New()
	providerID := uuid.New()
	w := &domain.AvailabilityWindow{ID: id, ProviderID: providerID, IsActive: true}

	d := validDefinition()
	d.LocationType = ptr.Ptr(domain.LocationTypeHome)
	d.ApplyTo(w)

	assert.Equal(t, id, w.ID)
	assert.Equal(t, providerID, w.ProviderID)
	assert.Equal(t, domain.LocationTypeHome, w.LocationType)
	assert.Equal(t, "Europe/Berlin", w.Timezone)
}

func TestGenerate_MapsErrors(t *testing.T) {
	w := validDefinition().ToWindow()
	w.Timezone = "Nowhere/Land"
	_, err := Generate(w)
	assert.ErrorIs(t, err, ErrInvalidTimezone)

	w = validDefinition().ToWindow()
	w.SlotDurationMinutes = 0
	_, err = Generate(w)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	w = validDefinition().ToWindow()
	candidates, err := Generate(w)
	require.NoError(t, err)
	assert.Len(t, candidates, 5*12)
}
