package create_availability

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/providerservice"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/testutil/memstore"
	"github.com/m04kA/SMC-AvailabilityService/internal/usecase/windowdef"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

type fakeProviderClient struct {
	provider *providerservice.Provider
	err      error
	calls    int
}

func (f *fakeProviderClient) GetProviderWithGracefulDegradation(_ context.Context, id uuid.UUID) (*providerservice.Provider, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	p := *f.provider
	p.ID = id
	return &p, nil
}

type fakeMetrics struct {
	mu        sync.Mutex
	generated int
	conflicts int
}

func (m *fakeMetrics) AddSlotsGenerated(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generated += n
}

func (m *fakeMetrics) IncOverlapConflict(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflicts++
}

type fixture struct {
	store   *memstore.Store
	metrics *fakeMetrics
	uc      *UseCase
}

func newFixture(client ProviderServiceClient) *fixture {
	store := memstore.New()
	m := &fakeMetrics{}
	return &fixture{
		store:   store,
		metrics: m,
		uc: NewUseCase(
			store.Windows(),
			store.Slots(),
			client,
			store.TxManager(),
			m,
			logger.NewNop(),
		),
	}
}

func request(providerID uuid.UUID, start, end types.TimeString, slot, brk int) *Request {
	return &Request{Definition: windowdef.Definition{
		ProviderID:    providerID,
		StartDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		StartTime:     start,
		EndTime:       end,
		Timezone:      "UTC",
		SlotDuration:  slot,
		BreakDuration: brk,
	}}
}

func TestExecute_GetByIDReturnsCreatedSlots(t *testing.T) {
	f := newFixture(nil)
	req := request(uuid.New(), "09:00", "12:00", 30, 10)
	req.EndDate = time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	req.Timezone = "Europe/Berlin"

	created, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, created.Slots, 12)

	svc := availability.NewService(f.store.Windows(), f.store.Slots(), logger.NewNop())
	got, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.SlotCount, got.SlotCount)
	require.Len(t, got.Slots, len(created.Slots))
	for i := range created.Slots {
		assert.Equal(t, created.Slots[i].ID, got.Slots[i].ID, "slot %d", i)
		assert.True(t, created.Slots[i].StartTime.Equal(got.Slots[i].StartTime), "slot %d start", i)
		assert.True(t, created.Slots[i].EndTime.Equal(got.Slots[i].EndTime), "slot %d end", i)
		assert.Equal(t, created.Slots[i].Status, got.Slots[i].Status, "slot %d status", i)
	}
}

func TestExecute_CreatesWindowAndSlots(t *testing.T) {
	f := newFixture(nil)
	providerID := uuid.New()

	resp, err := f.uc.Execute(context.Background(), request(providerID, "09:00", "10:00", 20, 5))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.True(t, resp.IsActive)
	assert.Equal(t, "CONSULTATION", resp.AppointmentType)
	assert.Equal(t, "CLINIC", resp.LocationType)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), resp.Slots[0].StartTime)
	assert.Equal(t, time.Date(2024, 1, 1, 9, 20, 0, 0, time.UTC), resp.Slots[0].EndTime)
	assert.Equal(t, time.Date(2024, 1, 1, 9, 25, 0, 0, time.UTC), resp.Slots[1].StartTime)
	assert.Equal(t, time.Date(2024, 1, 1, 9, 45, 0, 0, time.UTC), resp.Slots[1].EndTime)

	stored := f.store.AllSlots()
	require.Len(t, stored, 2)
	for _, s := range stored {
		assert.Equal(t, resp.ID, s.AvailabilityID)
		assert.Equal(t, providerID, s.ProviderID)
		assert.Equal(t, domain.SlotStatusAvailable, s.Status)
	}
	assert.Equal(t, 1, f.store.LockCalls)
	assert.Equal(t, 2, f.metrics.generated)
}

func TestExecute_StampsSlotAttributes(t *testing.T) {
	f := newFixture(nil)
	req := request(uuid.New(), "09:00", "10:00", 30, 0)
	req.AppointmentType = ptr.Ptr(domain.AppointmentTypeTelemedicine)
	req.LocationType = ptr.Ptr(domain.LocationTypeVirtual)
	req.Specialization = ptr.Ptr("dermatology")
	req.Price = ptr.Ptr(80.0)

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	for _, s := range f.store.AllSlots() {
		assert.Equal(t, domain.AppointmentTypeTelemedicine, s.AppointmentType)
		assert.Equal(t, domain.LocationTypeVirtual, s.LocationType)
		assert.Equal(t, "dermatology", *s.Specialization)
		assert.Equal(t, 80.0, *s.Price)
	}
}

func TestExecute_RejectsOverlapAndPersistsNothing(t *testing.T) {
	f := newFixture(nil)
	providerID := uuid.New()

	_, err := f.uc.Execute(context.Background(), request(providerID, "09:00", "12:00", 30, 0))
	require.NoError(t, err)
	before := f.store.AllSlots()

	_, err = f.uc.Execute(context.Background(), request(providerID, "10:00", "11:00", 30, 0))
	assert.ErrorIs(t, err, ErrSlotOverlap)

	assert.Equal(t, 1, f.store.WindowCount())
	assert.Equal(t, before, f.store.AllSlots())
	assert.Equal(t, 1, f.metrics.conflicts)
}

func TestExecute_TouchingWindowsDoNotConflict(t *testing.T) {
	f := newFixture(nil)
	providerID := uuid.New()

	_, err := f.uc.Execute(context.Background(), request(providerID, "09:00", "10:00", 30, 0))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), request(providerID, "10:00", "11:00", 30, 0))
	assert.NoError(t, err)
	assert.Len(t, f.store.AllSlots(), 4)
}

func TestExecute_OtherProvidersDoNotConflict(t *testing.T) {
	f := newFixture(nil)

	_, err := f.uc.Execute(context.Background(), request(uuid.New(), "09:00", "10:00", 30, 0))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), request(uuid.New(), "09:00", "10:00", 30, 0))
	assert.NoError(t, err)
}

func TestExecute_IgnoresInactiveExistingSlots(t *testing.T) {
	f := newFixture(nil)
	providerID := uuid.New()
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	f.store.AddSlot(domain.Slot{ProviderID: providerID, Start: start, End: start.Add(time.Hour), Status: domain.SlotStatusAvailable, IsDeleted: true})
	f.store.AddSlot(domain.Slot{ProviderID: providerID, Start: start, End: start.Add(time.Hour), Status: domain.SlotStatusBooked})
	f.store.AddSlot(domain.Slot{ProviderID: providerID, Start: start, End: start.Add(time.Hour), Status: domain.SlotStatusBlocked})

	_, err := f.uc.Execute(context.Background(), request(providerID, "09:00", "10:00", 30, 0))
	assert.NoError(t, err)
}

func TestExecute_ValidationErrors(t *testing.T) {
	f := newFixture(nil)

	req := request(uuid.New(), "10:00", "09:00", 30, 0)
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	req = request(uuid.New(), "09:00", "10:00", 30, 0)
	req.Timezone = "Not/AZone"
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimezone)

	req = request(uuid.Nil, "09:00", "10:00", 30, 0)
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Equal(t, 0, f.store.WindowCount())
}

func TestExecute_ProviderNotFound(t *testing.T) {
	client := &fakeProviderClient{err: providerservice.ErrProviderNotFound}
	f := newFixture(client)

	_, err := f.uc.Execute(context.Background(), request(uuid.New(), "09:00", "10:00", 30, 0))
	assert.ErrorIs(t, err, ErrProviderNotFound)
	assert.Equal(t, 0, f.store.WindowCount())
}

func TestExecute_ProviderServiceDegraded(t *testing.T) {
	client := &fakeProviderClient{err: fmt.Errorf("%w: timeout", providerservice.ErrServiceDegraded)}
	f := newFixture(client)

	_, err := f.uc.Execute(context.Background(), request(uuid.New(), "09:00", "10:00", 30, 0))
	assert.NoError(t, err)
	assert.Equal(t, 1, client.calls)
}

func TestExecute_UsesProviderSpecialization(t *testing.T) {
	client := &fakeProviderClient{provider: &providerservice.Provider{Name: "Dr. Ito", Specialization: ptr.Ptr("neurology")}}
	f := newFixture(client)

	resp, err := f.uc.Execute(context.Background(), request(uuid.New(), "09:00", "10:00", 30, 0))
	require.NoError(t, err)
	require.NotNil(t, resp.Specialization)
	assert.Equal(t, "neurology", *resp.Specialization)

	req := request(uuid.New(), "09:00", "10:00", 30, 0)
	req.Specialization = ptr.Ptr("pediatrics")
	resp, err = f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "pediatrics", *resp.Specialization)
}

func TestExecute_StoreUnavailable(t *testing.T) {
	f := newFixture(nil)
	f.store.Err = errors.New("connection reset")

	_, err := f.uc.Execute(context.Background(), request(uuid.New(), "09:00", "10:00", 30, 0))
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestExecuteBulk_PartialSuccess(t *testing.T) {
	f := newFixture(nil)
	providerID := uuid.New()

	results, err := f.uc.ExecuteBulk(context.Background(), []*Request{
		request(providerID, "09:00", "10:00", 30, 0),
		request(providerID, "09:30", "10:30", 30, 0),
		request(providerID, "11:00", "12:00", 30, 0),
		nil,
	})
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.NoError(t, results[0].Err)
	assert.NotNil(t, results[0].Result)
	assert.ErrorIs(t, results[1].Err, ErrSlotOverlap)
	assert.Nil(t, results[1].Result)
	assert.NoError(t, results[2].Err)
	assert.ErrorIs(t, results[3].Err, ErrInvalidInput)
	for i, r := range results {
		assert.Equal(t, i, r.Index)
	}

	assert.Equal(t, 2, f.store.WindowCount())
}

func TestExecuteBulk_RejectsEmpty(t *testing.T) {
	f := newFixture(nil)
	_, err := f.uc.ExecuteBulk(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ConcurrentOverlappingCreates(t *testing.T) {
	f := newFixture(nil)
	providerID := uuid.New()

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			start, _ := types.NewTimeStringFromMinutes(9*60 + offset*15)
			end, _ := types.NewTimeStringFromMinutes(11*60 + offset*15)

			_, err := f.uc.Execute(context.Background(), request(providerID, start, end, 30, 0))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrSlotOverlap):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)

	var active []domain.Slot
	for _, s := range f.store.AllSlots() {
		if s.IsActive() {
			active = append(active, s)
		}
	}
	for i := range active {
		for j := i + 1; j < len(active); j++ {
			assert.False(t, active[i].Overlaps(active[j].Start, active[j].End),
				"slots %s and %s overlap", active[i].Start, active[j].Start)
		}
	}
}
