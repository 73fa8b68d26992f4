package job

import "math"

// unitSeconds gives the approximate length of each unit. Months are 30 days;
// the scheduler owns exact calendar arithmetic.
var unitSeconds = map[Unit]int64{
	Second: 1,
	Minute: 60,
	Hour:   60 * 60,
	Day:    24 * 60 * 60,
	Week:   7 * 24 * 60 * 60,
	Month:  30 * 24 * 60 * 60,
}

// Seconds returns the approximate length of u, or 0 for an unknown unit
func (u Unit) Seconds() int64 {
	return unitSeconds[u]
}

// IntervalSeconds is the approximate time between requests, saturating at math.MaxInt64
func (s Spec) IntervalSeconds() int64 {
	return spanSeconds(s.IntervalCount, s.Interval)
}

// DurationSeconds is the approximate lifespan of the job, saturating at math.MaxInt64
func (s Spec) DurationSeconds() int64 {
	return spanSeconds(s.DurationCount, s.Duration)
}

func spanSeconds(count int, u Unit) int64 {
	unit := u.Seconds()
	if count <= 0 || unit <= 0 {
		return 0
	}
	if int64(count) > math.MaxInt64/unit {
		return math.MaxInt64
	}
	return int64(count) * unit
}

// EstimatedRuns is how many requests the scheduler will fire over the
// job's lifespan, assuming the first one fires after one interval
func (s Spec) EstimatedRuns() int64 {
	interval := s.IntervalSeconds()
	if interval <= 0 {
		return 0
	}
	return s.DurationSeconds() / interval
}
