package repository

import (
	"github.com/noah-isme/tutor-marketplace-api/internal/models"
)

// searchColumns is the denormalised class + tutor projection.
const searchColumns = `c.id AS id, c.subject AS subject, c.cost AS cost, c.tutor_id AS tutor_id, t.name AS name, t.avatar AS avatar, t.whatsapp AS whatsapp, t.bio AS bio`

// BuildAvailabilityQuery returns the SQL and arguments selecting classes of the
// filter's subject that have at least one slot on the filter's weekday covering
// the filter's time. Slots are matched through EXISTS so a class with several
// matching slots is returned once. Placeholders are '?'; callers rebind.
func BuildAvailabilityQuery(filter models.ClassSearchFilter) (string, []interface{}) {
	query := `SELECT ` + searchColumns + `
FROM classes c
JOIN tutors t ON t.id = c.tutor_id
WHERE c.subject = ?
  AND EXISTS (
    SELECT 1 FROM class_schedules cs
    WHERE cs.class_id = c.id
      AND cs.week_day = ?
      AND cs.from_minutes <= ?
      AND cs.to_minutes > ?
  )
ORDER BY c.id ASC`
	minutes := filter.Time.Int()
	return query, []interface{}{filter.Subject, filter.WeekDay, minutes, minutes}
}
