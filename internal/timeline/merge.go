package timeline

import "time"

// MergeSegments reconciles a previously stored time-ordered segment with a
// freshly loaded live segment that may overlap its tail: the stored
// segment's prefix strictly before the live segment's first item is kept,
// the live segment replaces the rest, and the result is truncated to drop
// anything at or after inspectionTime (spec §8 scenario S6 — events at or
// after the inspection instant are not yet settled).
func MergeSegments[T any](stored, live []T, timeOf func(T) time.Time, inspectionTime time.Time) []T {
	var merged []T
	if len(live) == 0 {
		merged = append(merged, stored...)
	} else {
		liveStart := timeOf(live[0])
		for _, item := range stored {
			if !timeOf(item).Before(liveStart) {
				break
			}
			merged = append(merged, item)
		}
		merged = append(merged, live...)
	}

	n := len(merged)
	for n > 0 && !timeOf(merged[n-1]).Before(inspectionTime) {
		n--
	}
	return merged[:n]
}
