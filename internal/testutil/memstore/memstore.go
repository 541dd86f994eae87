// Package memstore is an in-memory implementation of the availability, slot
// and template repositories plus a transaction manager, used by use case and
// service tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/availability"
	slotRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/slot"
)

type txKey struct{}

// Store общее состояние всех in-memory репозиториев
type Store struct {
	mu        sync.Mutex
	windows   map[uuid.UUID]*domain.AvailabilityWindow
	slots     []*domain.Slot
	templates []*domain.AvailabilityTemplate

	// txMu сериализует транзакции целиком, как SERIALIZABLE без конфликтов
	txMu sync.Mutex

	// Err, если задан, возвращается каждым методом репозиториев
	Err error

	LockCalls int
}

// New создает пустое хранилище
func New() *Store {
	return &Store{windows: make(map[uuid.UUID]*domain.AvailabilityWindow)}
}

// Windows репозиторий окон доступности
func (s *Store) Windows() *Windows { return &Windows{s: s} }

// Slots репозиторий слотов
func (s *Store) Slots() *Slots { return &Slots{s: s} }

// Templates репозиторий шаблонов
func (s *Store) Templates() *Templates { return &Templates{s: s} }

// TxManager менеджер транзакций с откатом состояния при ошибке
func (s *Store) TxManager() *TxManager { return &TxManager{s: s} }

// AddSlot кладет слот напрямую, минуя use case (подготовка данных в тестах)
func (s *Store) AddSlot(slot domain.Slot) *domain.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}
	stored := slot
	s.slots = append(s.slots, &stored)
	return &stored
}

// AllSlots копия всех слотов
func (s *Store) AllSlots() []domain.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Slot, 0, len(s.slots))
	for _, slot := range s.slots {
		out = append(out, *slot)
	}
	return out
}

// Window копия окна по ID
func (s *Store) Window(id uuid.UUID) (domain.AvailabilityWindow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.windows[id]
	if !ok {
		return domain.AvailabilityWindow{}, false
	}
	return *w, true
}

// WindowCount число сохраненных окон
func (s *Store) WindowCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}

type snapshot struct {
	windows   map[uuid.UUID]domain.AvailabilityWindow
	slots     []domain.Slot
	templates []domain.AvailabilityTemplate
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := snapshot{windows: make(map[uuid.UUID]domain.AvailabilityWindow, len(s.windows))}
	for id, w := range s.windows {
		snap.windows[id] = *w
	}
	for _, slot := range s.slots {
		snap.slots = append(snap.slots, *slot)
	}
	for _, t := range s.templates {
		snap.templates = append(snap.templates, *t)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.windows = make(map[uuid.UUID]*domain.AvailabilityWindow, len(snap.windows))
	for id, w := range snap.windows {
		w := w
		s.windows[id] = &w
	}
	s.slots = s.slots[:0]
	for _, slot := range snap.slots {
		slot := slot
		s.slots = append(s.slots, &slot)
	}
	s.templates = s.templates[:0]
	for _, t := range snap.templates {
		t := t
		s.templates = append(s.templates, &t)
	}
}

// TxManager выполняет функции транзакционно: состояние откатывается при ошибке
type TxManager struct {
	s *Store
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()

	snap := m.s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.s.restore(snap)
		return err
	}
	return nil
}

// Windows in-memory репозиторий окон доступности
type Windows struct {
	s *Store
}

func (r *Windows) Create(_ context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}

	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	now := time.Now().UTC()
	w.CreatedAt, w.UpdatedAt = now, now

	stored := *w
	r.s.windows[w.ID] = &stored
	return w, nil
}

func (r *Windows) GetByID(_ context.Context, id uuid.UUID) (*domain.AvailabilityWindow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}

	w, ok := r.s.windows[id]
	if !ok {
		return nil, availabilityRepo.ErrAvailabilityNotFound
	}
	out := *w
	return &out, nil
}

func (r *Windows) GetActiveByProvider(ctx context.Context, providerID uuid.UUID) ([]*domain.AvailabilityWindow, error) {
	return r.filter(func(w *domain.AvailabilityWindow) bool {
		return w.ProviderID == providerID && w.IsActive
	})
}

func (r *Windows) GetActiveByProviderInDateRange(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*domain.AvailabilityWindow, error) {
	return r.filter(func(w *domain.AvailabilityWindow) bool {
		return w.ProviderID == providerID && w.IsActive && w.OverlapsDates(from, to)
	})
}

func (r *Windows) Update(_ context.Context, w *domain.AvailabilityWindow) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}

	if _, ok := r.s.windows[w.ID]; !ok {
		return availabilityRepo.ErrAvailabilityNotFound
	}
	w.UpdatedAt = time.Now().UTC()
	stored := *w
	r.s.windows[w.ID] = &stored
	return nil
}

func (r *Windows) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}

	w, ok := r.s.windows[id]
	if !ok {
		return availabilityRepo.ErrAvailabilityNotFound
	}
	w.IsActive = active
	return nil
}

func (r *Windows) filter(match func(w *domain.AvailabilityWindow) bool) ([]*domain.AvailabilityWindow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}

	out := make([]*domain.AvailabilityWindow, 0)
	for _, w := range r.s.windows {
		if match(w) {
			c := *w
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

// Slots in-memory репозиторий слотов
type Slots struct {
	s *Store
}

func (r *Slots) CreateBatch(_ context.Context, slots []*domain.Slot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}

	now := time.Now().UTC()
	for _, slot := range slots {
		if slot.ID == uuid.Nil {
			slot.ID = uuid.New()
		}
		slot.CreatedAt, slot.UpdatedAt = now, now
		stored := *slot
		r.s.slots = append(r.s.slots, &stored)
	}
	return nil
}

func (r *Slots) GetByAvailabilityID(_ context.Context, availabilityID uuid.UUID) ([]*domain.Slot, error) {
	return r.filter(func(s *domain.Slot) bool { return s.AvailabilityID == availabilityID })
}

func (r *Slots) GetByAvailabilityIDs(_ context.Context, availabilityIDs []uuid.UUID) ([]*domain.Slot, error) {
	ids := make(map[uuid.UUID]struct{}, len(availabilityIDs))
	for _, id := range availabilityIDs {
		ids[id] = struct{}{}
	}
	return r.filter(func(s *domain.Slot) bool {
		_, ok := ids[s.AvailabilityID]
		return ok
	})
}

func (r *Slots) GetByAvailabilityIDAndStatus(_ context.Context, availabilityID uuid.UUID, status domain.SlotStatus) ([]*domain.Slot, error) {
	return r.filter(func(s *domain.Slot) bool {
		return s.AvailabilityID == availabilityID && s.Status == status
	})
}

func (r *Slots) DeleteByAvailabilityID(_ context.Context, availabilityID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return 0, r.s.Err
	}

	kept := r.s.slots[:0]
	var deleted int64
	for _, s := range r.s.slots {
		if s.AvailabilityID == availabilityID {
			deleted++
			continue
		}
		kept = append(kept, s)
	}
	r.s.slots = kept
	return deleted, nil
}

func (r *Slots) SoftDeleteByAvailabilityID(_ context.Context, availabilityID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return 0, r.s.Err
	}

	var affected int64
	for _, s := range r.s.slots {
		if s.AvailabilityID == availabilityID && !s.IsDeleted && s.Status != domain.SlotStatusBooked {
			s.IsDeleted = true
			affected++
		}
	}
	return affected, nil
}

func (r *Slots) GetActiveByProviderInRange(_ context.Context, providerID uuid.UUID, from, to time.Time) ([]*domain.Slot, error) {
	return r.filter(func(s *domain.Slot) bool {
		return s.ProviderID == providerID && s.IsActive() && s.Overlaps(from, to)
	})
}

func (r *Slots) SearchAvailable(_ context.Context, c domain.SlotSearchCriteria) ([]*domain.Slot, error) {
	out, err := r.filter(func(s *domain.Slot) bool {
		switch {
		case !s.IsActive():
			return false
		case c.Specialization != nil && (s.Specialization == nil || *s.Specialization != *c.Specialization):
			return false
		case c.LocationType != nil && s.LocationType != *c.LocationType:
			return false
		case c.AppointmentType != nil && s.AppointmentType != *c.AppointmentType:
			return false
		case c.From != nil && s.Start.Before(*c.From):
			return false
		case c.To != nil && s.End.After(*c.To):
			return false
		case c.MinPrice != nil && (s.Price == nil || *s.Price < *c.MinPrice):
			return false
		case c.MaxPrice != nil && (s.Price == nil || *s.Price > *c.MaxPrice):
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ProviderID != out[j].ProviderID {
			return out[i].ProviderID.String() < out[j].ProviderID.String()
		}
		return out[i].Start.Before(out[j].Start)
	})
	return out, nil
}

func (r *Slots) LockProvider(ctx context.Context, _ uuid.UUID) error {
	if ctx.Value(txKey{}) == nil {
		return slotRepo.ErrNotInTransaction
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	r.s.LockCalls++
	return nil
}

func (r *Slots) filter(match func(s *domain.Slot) bool) ([]*domain.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}

	out := make([]*domain.Slot, 0)
	for _, s := range r.s.slots {
		if match(s) {
			c := *s
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

// Templates in-memory репозиторий шаблонов
type Templates struct {
	s *Store
}

func (r *Templates) Create(_ context.Context, t *domain.AvailabilityTemplate) (*domain.AvailabilityTemplate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	now := time.Now().UTC()
	t.CreatedAt, t.UpdatedAt = now, now
	stored := *t
	r.s.templates = append(r.s.templates, &stored)
	return t, nil
}

func (r *Templates) GetByProvider(_ context.Context, providerID uuid.UUID) ([]*domain.AvailabilityTemplate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}

	out := make([]*domain.AvailabilityTemplate, 0)
	for _, t := range r.s.templates {
		if t.ProviderID == providerID {
			c := *t
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
