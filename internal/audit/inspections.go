package audit

import (
	"fmt"
	"sort"
	"time"

	"skyaudit/internal/models"
)

const (
	// A plane must be repaired or inspected every 100 flight hours. Landing
	// with exactly 100 hours accrued is compliant.
	inspectionHours = 100.0
	// Annual inspections are due every 365 days. Exactly 365 is compliant.
	annualLimit = 365 * 24 * time.Hour
)

// maintenanceViolations flags every lesson flown in violation of the fleet's
// airworthiness rules: flying while the plane was in the shop ("Grounded"),
// past its 100-hour inspection ("Inspection"), or past its annual
// ("Annual"). Lessons breaking more than one rule collapse to "Maintenance".
//
// Lessons and repairs are partitioned by tail number and each partition is
// swept once in time order with running hour and annual clocks, so the total
// work stays near linear in the combined record count instead of rescanning
// the repair log per lesson.
func maintenanceViolations(lessons []models.Lesson, fleet []models.Aircraft, repairs []models.Repair) ([]models.Violation, error) {
	fleetByTail := make(map[string]*models.Aircraft, len(fleet))
	for i := range fleet {
		fleetByTail[fleet[i].TailNumber] = &fleet[i]
	}

	lessonsByTail := make(map[string][]int)
	for i, lesson := range lessons {
		lessonsByTail[lesson.Airplane] = append(lessonsByTail[lesson.Airplane], i)
	}

	repairsByTail := make(map[string][]models.Repair)
	for _, repair := range repairs {
		repairsByTail[repair.TailNumber] = append(repairsByTail[repair.TailNumber], repair)
	}

	var flagged []int
	reasons := make(map[int]string)

	for tail, indices := range lessonsByTail {
		aircraft, ok := fleetByTail[tail]
		if !ok {
			return nil, fmt.Errorf("no aircraft with tail number %s", tail)
		}

		sort.SliceStable(indices, func(i, j int) bool {
			return lessons[indices[i]].Takeoff.Before(lessons[indices[j]].Takeoff)
		})
		log := repairsByTail[tail]
		sort.SliceStable(log, func(i, j int) bool {
			return log[i].ShopIn.Before(log[j].ShopIn)
		})

		for idx, reason := range sweepAircraft(aircraft, lessons, indices, log) {
			flagged = append(flagged, idx)
			reasons[idx] = reason
		}
	}

	// Restore lesson-file order across aircraft partitions.
	sort.Ints(flagged)

	var violations []models.Violation
	for _, idx := range flagged {
		violations = append(violations, models.NewViolation(lessons[idx], reasons[idx]))
	}
	return violations, nil
}

// sweepAircraft walks one aircraft's lessons and repair log together in time
// order. The repair log index advances monotonically: every repair fully
// completed before a takeoff zeroes the hour clock (and, for annual
// inspections, restarts the annual clock) exactly once.
func sweepAircraft(aircraft *models.Aircraft, lessons []models.Lesson, indices []int, log []models.Repair) map[int]string {
	hours := aircraft.Hours
	annual := aircraft.Annual
	next := 0 // first repair not yet applied as a clock reset

	found := make(map[int]string)

	for _, idx := range indices {
		lesson := lessons[idx]

		for next < len(log) && !log[next].ShopOut.After(lesson.Takeoff) {
			hours = 0
			if log[next].IsAnnual() {
				annual = log[next].ShopOut
			}
			next++
		}

		grounded := false
		for j := next; j < len(log) && log[j].ShopIn.Before(lesson.Landing); j++ {
			if log[j].ShopOut.After(lesson.Takeoff) {
				grounded = true
				break
			}
		}

		hours += lesson.Landing.Sub(lesson.Takeoff).Hours()
		inspection := hours > inspectionHours
		overdue := !annual.IsZero() && lesson.Takeoff.Sub(annual) > annualLimit

		broken := 0
		reason := ""
		if grounded {
			broken++
			reason = models.ReasonGrounded
		}
		if inspection {
			broken++
			reason = models.ReasonInspection
		}
		if overdue {
			broken++
			reason = models.ReasonAnnual
		}
		if broken >= 2 {
			reason = models.ReasonMaintenance
		}
		if broken > 0 {
			found[idx] = reason
		}
	}

	return found
}
