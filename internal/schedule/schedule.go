// Package schedule turns a cart's labor hours into a working-day-aware
// completion estimate.
package schedule

import (
	"math"
	"time"

	"github.com/casafacile/quote-service/internal/model"
)

// HoursPerWorkday is the standard working-day length used to convert
// labor hours into calendar days.
const HoursPerWorkday = 8

// TotalHours is the hour-weighted sum over the cart lines.
func TotalHours(lines []model.CartLine) float64 {
	var total float64
	for _, line := range lines {
		total += float64(line.Quantity) * line.Service.EstimatedDuration
	}
	return total
}

// Estimate computes the completion date for the given lines starting at
// start. Fractional hour totals round up to whole days. The start date
// itself never counts as a consumed working day: advancement moves to the
// next calendar day first, and Saturdays and Sundays are skipped without
// incrementing the counter. Zero hours means the end date is the start
// date. Callers must not pass negative durations.
func Estimate(lines []model.CartLine, start time.Time) model.WorkSchedule {
	totalHours := TotalHours(lines)
	workingDays := int(math.Ceil(totalHours / HoursPerWorkday))

	end := start
	for counted := 0; counted < workingDays; {
		end = end.AddDate(0, 0, 1)
		if wd := end.Weekday(); wd != time.Saturday && wd != time.Sunday {
			counted++
		}
	}

	return model.WorkSchedule{
		TotalHours:  totalHours,
		WorkingDays: workingDays,
		StartDate:   start,
		EndDate:     end,
	}
}
