// Package scheduling expands availability windows into concrete slots and
// checks them against a provider's existing slots.
package scheduling

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

var (
	// ErrInvalidWindow возвращается при некорректных параметрах окна
	ErrInvalidWindow = errors.New("scheduling: invalid availability window")

	// ErrInvalidTimezone возвращается, когда часовой пояс не удалось загрузить
	ErrInvalidTimezone = errors.New("scheduling: invalid timezone")
)

// Candidate интервал [Start, End) в UTC, который станет слотом
type Candidate struct {
	Start time.Time
	End   time.Time
}

// Generate разворачивает окно в слоты
// Для каждой даты из [StartDate, EndDate] курсор идет от StartTime с шагом
// slot+break, пока слот целиком помещается до EndTime. Локальное время
// переводится в UTC по смещению пояса на эту дату, поэтому переходы на
// летнее время учитываются для каждого дня отдельно. Локальное время, которого
// нет в поясе (разрыв при переводе часов вперед), пропускается.
// Результат отсортирован по Start, слоты не пересекаются друг с другом.
func Generate(w *domain.AvailabilityWindow) ([]Candidate, error) {
	if w.Timezone == "" {
		return nil, fmt.Errorf("%w: timezone is empty", ErrInvalidTimezone)
	}
	loc, err := time.LoadLocation(w.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimezone, w.Timezone, err)
	}

	startMin, endMin, err := validateWindow(w)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(w.SlotDurationMinutes) * time.Minute
	step := w.SlotDurationMinutes + w.BreakDurationMinutes

	var candidates []Candidate
	for day := dateOnly(w.StartDate); !day.After(dateOnly(w.EndDate)); day = day.AddDate(0, 0, 1) {
		y, m, d := day.Date()
		for cursor := startMin; cursor+w.SlotDurationMinutes <= endMin; cursor += step {
			local := time.Date(y, m, d, cursor/60, cursor%60, 0, 0, loc)
			if !existsInZone(local, cursor) {
				continue
			}
			start := local.UTC()
			candidates = append(candidates, Candidate{Start: start, End: start.Add(duration)})
		}
	}

	return normalize(candidates), nil
}

// CountPerDay число слотов, которое окно дает за один день без учета DST
func CountPerDay(windowMinutes, slotMinutes, breakMinutes int) int {
	if slotMinutes <= 0 || windowMinutes < slotMinutes {
		return 0
	}
	return (windowMinutes-slotMinutes)/(slotMinutes+breakMinutes) + 1
}

func validateWindow(w *domain.AvailabilityWindow) (int, int, error) {
	if w.SlotDurationMinutes <= 0 {
		return 0, 0, fmt.Errorf("%w: slot duration must be positive", ErrInvalidWindow)
	}
	if w.BreakDurationMinutes < 0 {
		return 0, 0, fmt.Errorf("%w: break duration must not be negative", ErrInvalidWindow)
	}

	startMin, err := w.StartTime.Minutes()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: start time: %v", ErrInvalidWindow, err)
	}
	endMin, err := w.EndTime.Minutes()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: end time: %v", ErrInvalidWindow, err)
	}
	if startMin >= endMin {
		return 0, 0, fmt.Errorf("%w: start time %s must be before end time %s", ErrInvalidWindow, w.StartTime, w.EndTime)
	}

	if w.StartDate.IsZero() || w.EndDate.IsZero() {
		return 0, 0, fmt.Errorf("%w: start and end dates are required", ErrInvalidWindow)
	}
	if dateOnly(w.StartDate).After(dateOnly(w.EndDate)) {
		return 0, 0, fmt.Errorf("%w: start date %s is after end date %s", ErrInvalidWindow,
			w.StartDate.Format(domain.DateFormat), w.EndDate.Format(domain.DateFormat))
	}

	return startMin, endMin, nil
}

// existsInZone false, если time.Date нормализовал несуществующее локальное время
func existsInZone(local time.Time, cursor int) bool {
	return local.Hour()*60+local.Minute() == cursor
}

// normalize сортирует кандидатов и отбрасывает те, что начинаются раньше
// конца предыдущего оставленного (повторы и наложения вокруг перевода часов)
func normalize(candidates []Candidate) []Candidate {
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Start.Before(candidates[j].Start)
	})

	out := candidates[:0]
	for _, c := range candidates {
		if len(out) > 0 && c.Start.Before(out[len(out)-1].End) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
