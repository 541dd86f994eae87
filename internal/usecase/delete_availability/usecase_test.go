package delete_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/testutil/memstore"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

func seed(t *testing.T, store *memstore.Store, statuses ...domain.SlotStatus) *domain.AvailabilityWindow {
	t.Helper()
	providerID := uuid.New()
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	w, err := store.Windows().Create(context.Background(), &domain.AvailabilityWindow{
		ProviderID:          providerID,
		StartDate:           day,
		EndDate:             day,
		StartTime:           "09:00",
		EndTime:             "12:00",
		Timezone:            "UTC",
		SlotDurationMinutes: 30,
		IsActive:            true,
	})
	require.NoError(t, err)

	start := day.Add(9 * time.Hour)
	for i, status := range statuses {
		s := start.Add(time.Duration(i) * 30 * time.Minute)
		store.AddSlot(domain.Slot{AvailabilityID: w.ID, ProviderID: providerID, Start: s, End: s.Add(30 * time.Minute), Status: status})
	}
	return w
}

func newUseCase(store *memstore.Store) *UseCase {
	return NewUseCase(store.Windows(), store.Slots(), store.TxManager(), logger.NewNop())
}

func TestExecute_SoftDeletesSlotsAndDeactivates(t *testing.T) {
	store := memstore.New()
	w := seed(t, store, domain.SlotStatusAvailable, domain.SlotStatusAvailable, domain.SlotStatusBlocked)

	resp, err := newUseCase(store).Execute(context.Background(), w.ID)
	require.NoError(t, err)

	assert.Equal(t, w.ID, resp.ID)
	assert.Equal(t, int64(3), resp.SoftDeletedSlots)
	assert.False(t, resp.AlreadyInactive)

	stored, ok := store.Window(w.ID)
	require.True(t, ok)
	assert.False(t, stored.IsActive)
	for _, s := range store.AllSlots() {
		assert.True(t, s.IsDeleted)
	}
}

func TestExecute_BookedSlotsBlockDeletion(t *testing.T) {
	store := memstore.New()
	w := seed(t, store, domain.SlotStatusAvailable, domain.SlotStatusBooked)
	before := store.AllSlots()

	_, err := newUseCase(store).Execute(context.Background(), w.ID)
	assert.ErrorIs(t, err, ErrHasBookedSlots)

	stored, _ := store.Window(w.ID)
	assert.True(t, stored.IsActive)
	assert.Equal(t, before, store.AllSlots())
}

func TestExecute_AlreadyInactive(t *testing.T) {
	store := memstore.New()
	w := seed(t, store, domain.SlotStatusAvailable)
	uc := newUseCase(store)

	_, err := uc.Execute(context.Background(), w.ID)
	require.NoError(t, err)

	resp, err := uc.Execute(context.Background(), w.ID)
	require.NoError(t, err)
	assert.True(t, resp.AlreadyInactive)
	assert.Zero(t, resp.SoftDeletedSlots)
}

func TestExecute_NotFound(t *testing.T) {
	store := memstore.New()

	_, err := newUseCase(store).Execute(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrAvailabilityNotFound)
}

func TestExecute_InvalidID(t *testing.T) {
	store := memstore.New()

	_, err := newUseCase(store).Execute(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_StoreUnavailable(t *testing.T) {
	store := memstore.New()
	w := seed(t, store, domain.SlotStatusAvailable)
	store.Err = errors.New("timeout")

	_, err := newUseCase(store).Execute(context.Background(), w.ID)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
