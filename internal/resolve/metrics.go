package resolve

import "time"

// DaysSince returns the number of whole days between last and now, or nil
// when last is nil. A last timestamp in the future relative to now (clock
// skew, bad source data) clamps to zero rather than going negative.
func DaysSince(last *time.Time, now time.Time) *int {
	if last == nil {
		return nil
	}
	days := int(now.Sub(*last).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return &days
}
