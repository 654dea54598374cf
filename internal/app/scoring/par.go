package scoring

import "time"

// EvaluatePar compares scored points against a par target.
// Positive result: behind par by that many points. Zero: even.
// Negative: ahead of par by the absolute value.
func EvaluatePar(totalPoints, parTarget int) int {
	return parTarget - totalPoints
}

// WeekPar is the result of a cumulative weekly par evaluation.
type WeekPar struct {
	Points  int `json:"points"`
	Target  int `json:"target"`
	Deficit int `json:"deficit"`
}

// EvaluateWeekPar accumulates par over the elapsed days of ref's week
// (Monday through ref inclusive) and compares against the points scored
// over the same days. Days after ref are excluded from both sides.
func EvaluateWeekPar(ref time.Time, parTarget int, lookup DayLookup) WeekPar {
	start, _ := WeekWindow(ref)
	refDay := dateOf(ref)

	wp := WeekPar{}
	for day := start; !day.After(refDay); day = day.AddDate(0, 0, 1) {
		wp.Target += parTarget
		if rec, ok := lookup.Day(day); ok {
			wp.Points += CalculatePoints(&rec)
		}
	}
	wp.Deficit = EvaluatePar(wp.Points, wp.Target)
	return wp
}
