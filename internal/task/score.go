package task

import "time"

const day = 24 * time.Hour

// Deadline term contributions.
const (
	overdueBonus  = 200.0
	dueTodayBonus = 100.0
	maxAgeBonus   = 20.0
)

// PriorityScore computes the score of t at instant now. Higher means more pressing.
//
//	urgency*10 + deadline term + min(20, 2*age in whole days)
//
// An overdue task always gets the full 200 bonus, so among overdue tasks the
// urgency term decides.
func PriorityScore(t Task, now time.Time) float64 {
	score := float64(t.Urgency * 10)

	if t.Deadline != nil {
		score += deadlineBonus(floorDays(t.Deadline.Sub(now)))
	}

	age := float64(2 * floorDays(now.Sub(t.CreatedAt)))
	if age > maxAgeBonus {
		age = maxAgeBonus
	}
	return score + age
}

// ComputePriorityScore recomputes the score and stores it on t.
func ComputePriorityScore(t *Task, now time.Time) float64 {
	t.PriorityScore = PriorityScore(*t, now)
	return t.PriorityScore
}

func deadlineBonus(days int) float64 {
	switch {
	case days < 0:
		return overdueBonus
	case days == 0:
		return dueTodayBonus
	case days <= 3:
		return float64(80 - 20*days)
	case days <= 7:
		return float64(40 - 5*days)
	default:
		return float64(max(0, 20-days))
	}
}

// floorDays converts d to whole days rounding toward negative infinity, so a
// deadline one minute in the past is day -1 rather than day 0.
func floorDays(d time.Duration) int {
	days := d / day
	if d%day < 0 {
		days--
	}
	return int(days)
}
