package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

func validWindowRequest() WindowRequest {
	return WindowRequest{
		ProviderID:   "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		StartDate:    "2024-01-01",
		EndDate:      "2024-01-05",
		StartTime:    "09:00",
		EndTime:      "17:00",
		Timezone:     "Europe/Moscow",
		SlotDuration: 30,
	}
}

func TestWindowRequest_ToDefinition(t *testing.T) {
	req := validWindowRequest()
	req.LocationType = ptr.Ptr("VIRTUAL")

	require.NoError(t, ValidateStruct(req))
	def, err := req.ToDefinition()
	require.NoError(t, err)

	assert.Equal(t, "7c9e6679-7425-40de-944b-e07fc1f90ae7", def.ProviderID.String())
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), def.EndDate)
	assert.Equal(t, types.TimeString("09:00"), def.StartTime)
	assert.Equal(t, domain.LocationTypeVirtual, *def.LocationType)
	assert.Nil(t, def.AppointmentType)
}

func TestWindowRequest_ValidationTags(t *testing.T) {
	req := validWindowRequest()
	req.SlotDuration = 10
	assert.Error(t, ValidateStruct(req))

	req = validWindowRequest()
	req.AppointmentType = ptr.Ptr("SURGERY")
	assert.Error(t, ValidateStruct(req))

	req = validWindowRequest()
	req.ProviderID = "42"
	assert.Error(t, ValidateStruct(req))
}

func TestWindowRequest_ParseErrors(t *testing.T) {
	req := validWindowRequest()
	req.StartDate = "01.01.2024"
	_, err := req.ToDefinition()
	assert.ErrorIs(t, err, ErrInvalidDate)

	req = validWindowRequest()
	req.EndTime = "25:99"
	_, err = req.ToDefinition()
	assert.ErrorIs(t, err, ErrInvalidTime)
}
