package workflow

import "time"

// Reward is the outcome of finishing a stage ahead of its estimated end.
type Reward struct {
	IsEarly   bool
	DaysEarly int
	Stars     int
}

// ComputeReward compares now against the stage's estimated end date. Partial
// days floor toward zero; a stage without an end date can never be early.
func ComputeReward(endDate *time.Time, now time.Time) Reward {
	if endDate == nil || !now.Before(*endDate) {
		return Reward{}
	}

	daysEarly := int(endDate.Sub(now).Hours() / 24)

	var stars int
	switch {
	case daysEarly >= 5:
		stars = 3
	case daysEarly >= 2:
		stars = 2
	case daysEarly >= 1:
		stars = 1
	}

	return Reward{IsEarly: true, DaysEarly: daysEarly, Stars: stars}
}
