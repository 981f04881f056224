package ledger

// Totals sums the daily counters over a set of records.
type Totals struct {
	Days             int `json:"days"`
	WaterGlasses     int `json:"waterGlasses"`
	ExerciseMinutes  int `json:"exerciseMinutes"`
	CaloriesConsumed int `json:"caloriesConsumed"`
}

// Aggregate sums water, exercise and calories across records. Days counts
// distinct date-keys, so a set holding the same day twice counts it once.
func Aggregate(records []DailyProgress) Totals {
	var t Totals
	days := make(map[string]struct{}, len(records))
	for _, r := range records {
		days[r.Date] = struct{}{}
		t.WaterGlasses += r.WaterGlasses
		t.ExerciseMinutes += r.ExerciseMinutes
		t.CaloriesConsumed += r.CaloriesConsumed
	}
	t.Days = len(days)
	return t
}

// LatestWeight returns the most recent recorded weight.
func (l *Ledger) LatestWeight() (float64, bool) {
	for i := len(l.records) - 1; i >= 0; i-- {
		if w := l.records[i].Weight; w != nil && *w > 0 {
			return *w, true
		}
	}
	return 0, false
}

// WeightProgress returns how much of the start→target loss has been achieved,
// as a percentage clamped to [0, 100]. A goal with no loss to make is 0.
func WeightProgress(start, target, current float64) float64 {
	goal := start - target
	if goal <= 0 {
		return 0
	}
	pct := (start - current) / goal * 100
	return min(max(pct, 0), 100)
}
