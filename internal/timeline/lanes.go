package timeline

import (
	"time"

	"github.com/netbadge-ctrl/okboard/internal/contract"
)

// PackLanes greedily assigns each assignment to the lowest lane whose last
// occupant ends strictly before the assignment starts, so non-overlapping
// bars share a row and overlapping ones stack. The input must be sorted
// ascending by start date; first-fit on sorted starts uses the minimum
// possible number of lanes (the maximum concurrent overlap).
//
// The comparison is strict: an assignment starting on the very day a prior
// one ends opens a new lane. Dates here are calendar days, not instants.
func PackLanes(sorted []contract.Assignment) (laneOf []int, maxLanes int) {
	var laneEnds []time.Time
	laneOf = make([]int, len(sorted))

	for i, a := range sorted {
		chosen := -1
		for j, end := range laneEnds {
			if a.StartDate.After(end) {
				chosen = j
				laneEnds[j] = a.EndDate
				break
			}
		}
		if chosen == -1 {
			chosen = len(laneEnds)
			laneEnds = append(laneEnds, a.EndDate)
		}
		laneOf[i] = chosen
	}
	return laneOf, len(laneEnds)
}
