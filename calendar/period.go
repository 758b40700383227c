package calendar

import "fmt"

// =============================================================================
// DATE RANGE - Closed [Start, End] span of days
// =============================================================================

// DateRange is an inclusive span of dates. Leave requests, holidays that
// last several days and month views are all DateRanges.
type DateRange struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// NewDateRange returns [start, end] or ErrInvalidRange if end < start.
func NewDateRange(start, end Date) (DateRange, error) {
	r := DateRange{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// Validate checks that both ends are set and End is not before Start.
func (r DateRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return fmt.Errorf("%w: missing start or end", ErrInvalidRange)
	}
	if r.End.Before(r.Start) {
		return fmt.Errorf("%w: %s", ErrInvalidRange, r)
	}
	return nil
}

// Contains returns true if d is within [Start, End].
func (r DateRange) Contains(d Date) bool {
	return d.AfterOrEqual(r.Start) && d.BeforeOrEqual(r.End)
}

// Overlaps reports whether the two ranges share at least one day.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.Start.BeforeOrEqual(other.End) && other.Start.BeforeOrEqual(r.End)
}

// Intersect returns the days shared by r and other, and false when they
// share none.
func (r DateRange) Intersect(other DateRange) (DateRange, bool) {
	if !r.Overlaps(other) {
		return DateRange{}, false
	}
	shared := r
	if other.Start.After(shared.Start) {
		shared.Start = other.Start
	}
	if other.End.Before(shared.End) {
		shared.End = other.End
	}
	return shared, true
}

// Days returns every date in the range, in order.
func (r DateRange) Days() []Date {
	var days []Date
	for current := r.Start; current.BeforeOrEqual(r.End); current = current.AddDays(1) {
		days = append(days, current)
	}
	return days
}

// Len returns the number of days in the range (0 if invalid).
func (r DateRange) Len() int {
	if r.End.Before(r.Start) {
		return 0
	}
	return int(r.End.Time(nil).Sub(r.Start.Time(nil)).Hours()/24) + 1
}

func (r DateRange) String() string {
	return "[" + r.Start.String() + ", " + r.End.String() + "]"
}

// =============================================================================
// RANGE LOOKUP
// =============================================================================

// FindRangeContaining returns the first item, in input order, whose range
// contains date. Overlapping ranges are neither merged nor rejected: the
// earliest one wins. The zero T and false are returned when nothing matches.
func FindRangeContaining[T any](date Date, ranges []T, rangeOf func(T) DateRange) (T, bool) {
	for _, item := range ranges {
		if rangeOf(item).Contains(date) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// OverlappingPairs returns the index pairs (i < j) of ranges that share a
// day. It lets callers flag overlaps that FindRangeContaining resolves by
// first match.
func OverlappingPairs[T any](ranges []T, rangeOf func(T) DateRange) [][2]int {
	var pairs [][2]int
	for i := 0; i < len(ranges); i++ {
		ri := rangeOf(ranges[i])
		for j := i + 1; j < len(ranges); j++ {
			if ri.Overlaps(rangeOf(ranges[j])) {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}
