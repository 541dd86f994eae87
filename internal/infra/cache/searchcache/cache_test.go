package searchcache

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

func TestKey_Deterministic(t *testing.T) {
	from := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	a := domain.SlotSearchCriteria{Specialization: ptr.Ptr("cardiology"), From: &from, MinPrice: ptr.Ptr(10.0)}
	b := domain.SlotSearchCriteria{Specialization: ptr.Ptr("cardiology"), From: ptr.Ptr(from), MinPrice: ptr.Ptr(10.0)}

	assert.Equal(t, Key(a), Key(b))
	assert.True(t, strings.HasPrefix(Key(a), keyPrefix))
}

func TestKey_SameInstantInDifferentZones(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	assert.NoError(t, err)

	utc := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tokyo := utc.In(loc)

	assert.Equal(t,
		Key(domain.SlotSearchCriteria{From: &utc}),
		Key(domain.SlotSearchCriteria{From: &tokyo}),
	)
}

func TestKey_DistinguishesCriteria(t *testing.T) {
	keys := map[string]struct{}{}
	criteria := []domain.SlotSearchCriteria{
		{},
		{Specialization: ptr.Ptr("")},
		{Specialization: ptr.Ptr("cardiology")},
		{LocationType: ptr.Ptr(domain.LocationTypeClinic)},
		{AppointmentType: ptr.Ptr(domain.AppointmentTypeEmergency)},
		{MinPrice: ptr.Ptr(10.0)},
		{MaxPrice: ptr.Ptr(10.0)},
	}

	for _, c := range criteria {
		keys[Key(c)] = struct{}{}
	}
	assert.Len(t, keys, len(criteria))
}
