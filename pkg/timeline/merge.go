package timeline

import (
	"slices"
	"time"
)

// MergeGap is the largest gap between two sessions that still joins them into one.
const MergeGap = 5 * time.Minute

type Interval struct {
	Start time.Time
	End   time.Time
	Label string
}

// Merge sorts intervals by start and joins every interval that starts no later than MergeGap
// after the end of the previously merged one. Overlaps produce a negative gap and merge too.
// Labels of merged intervals are joined with ", ", skipping empty ones. The input is not modified.
func Merge(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return []Interval{}
	}

	sorted := slices.Clone(intervals)
	slices.SortStableFunc(sorted, func(a, b Interval) int {
		return a.Start.Compare(b.Start)
	})

	merged := []Interval{sorted[0]}
	for _, current := range sorted[1:] {
		last := &merged[len(merged)-1]
		if current.Start.Sub(last.End) > MergeGap {
			merged = append(merged, current)
			continue
		}
		// end only ever grows, so earlier decisions stay valid
		if current.End.After(last.End) {
			last.End = current.End
		}
		last.Label = joinLabels(last.Label, current.Label)
	}
	return merged
}

func joinLabels(a, b string) string {
	switch {
	case a != "" && b != "":
		return a + ", " + b
	case a != "":
		return a
	default:
		return b
	}
}
