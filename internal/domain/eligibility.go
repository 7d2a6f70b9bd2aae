package domain

import "github.com/google/uuid"

// EligibilityOverrides ограничение услуг по дням недели
// Отсутствующий или пустой список для дня означает, что доступны все услуги
type EligibilityOverrides map[Weekday][]uuid.UUID

// Allows проверяет, разрешена ли услуга в указанный день
func (o EligibilityOverrides) Allows(day Weekday, serviceID uuid.UUID) bool {
	allowed := o[day]
	if len(allowed) == 0 {
		return true
	}
	for _, id := range allowed {
		if id == serviceID {
			return true
		}
	}
	return false
}

// Normalize убирает пустые дни и дубликаты
func (o EligibilityOverrides) Normalize() EligibilityOverrides {
	out := make(EligibilityOverrides, len(o))
	for day, ids := range o {
		seen := make(map[uuid.UUID]struct{}, len(ids))
		var uniq []uuid.UUID
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			uniq = append(uniq, id)
		}
		if len(uniq) > 0 {
			out[day] = uniq
		}
	}
	return out
}
