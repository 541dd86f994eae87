package scheduling

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Overlap первая найденная пара пересекающихся интервалов
type Overlap struct {
	Candidate Candidate
	Existing  domain.Slot
}

func (o Overlap) String() string {
	return fmt.Sprintf("candidate [%s, %s) overlaps slot %s [%s, %s)",
		o.Candidate.Start.Format(time.RFC3339), o.Candidate.End.Format(time.RFC3339),
		o.Existing.ID, o.Existing.Start.Format(time.RFC3339), o.Existing.End.Format(time.RFC3339))
}

// FindOverlap ищет первого кандидата, который пересекается с активным слотом
// Учитываются только AVAILABLE и не удаленные слоты, интервалы полуоткрытые:
// касание границ пересечением не считается
func FindOverlap(candidates []Candidate, existing []*domain.Slot) (Overlap, bool) {
	active := make([]*domain.Slot, 0, len(existing))
	for _, s := range existing {
		if s != nil && s.IsActive() {
			active = append(active, s)
		}
	}
	if len(active) == 0 {
		return Overlap{}, false
	}

	for _, c := range candidates {
		for _, s := range active {
			if c.Start.Before(s.End) && s.Start.Before(c.End) {
				return Overlap{Candidate: c, Existing: *s}, true
			}
		}
	}

	return Overlap{}, false
}

// Span возвращает [min Start, max End) набора кандидатов
// ok == false для пустого набора
func Span(candidates []Candidate) (from, to time.Time, ok bool) {
	if len(candidates) == 0 {
		return time.Time{}, time.Time{}, false
	}

	from, to = candidates[0].Start, candidates[0].End
	for _, c := range candidates[1:] {
		if c.Start.Before(from) {
			from = c.Start
		}
		if c.End.After(to) {
			to = c.End
		}
	}
	return from, to, true
}

// ToSlots превращает кандидатов в слоты окна с атрибутами из template
func ToSlots(candidates []Candidate, template domain.Slot) []*domain.Slot {
	slots := make([]*domain.Slot, 0, len(candidates))
	for _, c := range candidates {
		s := template
		s.Start = c.Start
		s.End = c.End
		slots = append(slots, &s)
	}
	return slots
}
