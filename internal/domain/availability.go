package domain

import "time"

// Aggregation summarizes invitee availability per candidate date.
// SupportCounts[i] is how many responses marked Dates[i] available;
// Best[i] is true for every index tied at MaxSupport.
// swagger:model Aggregation
type Aggregation struct {
	SupportCounts []int  `json:"supportCounts"`
	MaxSupport    int    `json:"maxSupport"`
	Best          []bool `json:"best"`
}

// Aggregate computes per-date support counts over the given responses and
// flags the best-supported date(s). It is a pure function: index-aligned to
// dates as given, no sorting, no side effects. With zero responses every
// count is 0 and every date is flagged best; callers should render that case
// as "no data" rather than highlighting all slots.
func Aggregate(dates []time.Time, responses []*Response) Aggregation {
	counts := make([]int, len(dates))
	for _, r := range responses {
		for i := range dates {
			if i < len(r.Availability) && r.Availability[i] {
				counts[i]++
			}
		}
	}

	maxSupport := 0
	for _, c := range counts {
		if c > maxSupport {
			maxSupport = c
		}
	}

	best := make([]bool, len(dates))
	for i, c := range counts {
		best[i] = c == maxSupport
	}

	return Aggregation{
		SupportCounts: counts,
		MaxSupport:    maxSupport,
		Best:          best,
	}
}
