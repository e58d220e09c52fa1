package service

// progressPercent computes the credited share of a time budget as a
// percentage. Done tasks credit their full budget, other tasks credit minutes
// tracked today; a zero budget yields 0, never NaN. A single overrun task can
// push the result past 100.
func progressPercent(doneBudgetMinutes, totalBudgetMinutes int, trackedTodayMinutes float64) float64 {
	if totalBudgetMinutes == 0 {
		return 0
	}
	credited := float64(doneBudgetMinutes) + trackedTodayMinutes
	return credited * 100 / float64(totalBudgetMinutes)
}
