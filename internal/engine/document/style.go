package document

import (
	"fmt"
	"slices"
	"strings"
)

// StyleRange marks the characters [Start, End) of a block as carrying Style.
type StyleRange struct {
	Style Style
	Start int
	End   int
}

// Len returns the number of characters covered by the range.
func (r StyleRange) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range covers no characters.
func (r StyleRange) IsEmpty() bool {
	return r.End <= r.Start
}

// Contains returns true if offset is within [Start, End).
func (r StyleRange) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// String returns a compact representation like "BOLD[0:5]".
func (r StyleRange) String() string {
	return fmt.Sprintf("%s[%d:%d]", r.Style, r.Start, r.End)
}

// ValidateRanges checks that every range has a style name and lies within a
// text of the given length.
func ValidateRanges(ranges []StyleRange, length int) error {
	for i, r := range ranges {
		if r.Style == "" {
			return fmt.Errorf("range %d: %w", i, ErrEmptyStyle)
		}
		if r.End < r.Start {
			return fmt.Errorf("range %d (%s): %w", i, r, ErrRangeInvalid)
		}
		if r.Start < 0 || r.End > length {
			return fmt.Errorf("range %d (%s) with length %d: %w", i, r, length, ErrOffsetOutOfRange)
		}
	}
	return nil
}

// normalizeRanges clips ranges to [0, length], drops empty ones and merges
// overlapping or touching ranges of the same style. The result is sorted by
// start, then style.
func normalizeRanges(ranges []StyleRange, length int) []StyleRange {
	if len(ranges) == 0 {
		return nil
	}

	clipped := make([]StyleRange, 0, len(ranges))
	for _, r := range ranges {
		r.Start = max(r.Start, 0)
		r.End = min(r.End, length)
		if r.Style == "" || r.IsEmpty() {
			continue
		}
		clipped = append(clipped, r)
	}

	slices.SortFunc(clipped, func(a, b StyleRange) int {
		if c := strings.Compare(string(a.Style), string(b.Style)); c != 0 {
			return c
		}
		return a.Start - b.Start
	})

	merged := make([]StyleRange, 0, len(clipped))
	for _, r := range clipped {
		if n := len(merged); n > 0 {
			last := &merged[n-1]
			if last.Style == r.Style && r.Start <= last.End {
				last.End = max(last.End, r.End)
				continue
			}
		}
		merged = append(merged, r)
	}

	slices.SortFunc(merged, compareRanges)
	if len(merged) == 0 {
		return nil
	}
	return merged
}

func compareRanges(a, b StyleRange) int {
	if a.Start != b.Start {
		return a.Start - b.Start
	}
	if c := strings.Compare(string(a.Style), string(b.Style)); c != 0 {
		return c
	}
	return a.End - b.End
}

// sliceRanges returns the parts of ranges inside [from, to), shifted so that
// from becomes offset 0.
func sliceRanges(ranges []StyleRange, from, to int) []StyleRange {
	var out []StyleRange
	for _, r := range ranges {
		start := max(r.Start, from)
		end := min(r.End, to)
		if end <= start {
			continue
		}
		out = append(out, StyleRange{Style: r.Style, Start: start - from, End: end - from})
	}
	return out
}

// shiftRanges returns a copy of ranges moved by delta.
func shiftRanges(ranges []StyleRange, delta int) []StyleRange {
	out := make([]StyleRange, len(ranges))
	for i, r := range ranges {
		out[i] = StyleRange{Style: r.Style, Start: r.Start + delta, End: r.End + delta}
	}
	return out
}

// StyleSet is a sorted set of style names. The zero value is the empty set.
// StyleSet values are never modified in place; every method returns a new set.
type StyleSet []Style

// NewStyleSet creates a set from the given styles.
func NewStyleSet(styles ...Style) StyleSet {
	var set StyleSet
	for _, s := range styles {
		set = set.With(s)
	}
	return set
}

// Has returns true if the set contains s.
func (set StyleSet) Has(s Style) bool {
	_, found := slices.BinarySearch(set, s)
	return found
}

// With returns a set that also contains s.
func (set StyleSet) With(s Style) StyleSet {
	if s == "" {
		return set
	}
	i, found := slices.BinarySearch(set, s)
	if found {
		return set
	}
	out := make(StyleSet, 0, len(set)+1)
	out = append(out, set[:i]...)
	out = append(out, s)
	return append(out, set[i:]...)
}

// Without returns a set that does not contain s.
func (set StyleSet) Without(s Style) StyleSet {
	i, found := slices.BinarySearch(set, s)
	if !found {
		return set
	}
	out := make(StyleSet, 0, len(set)-1)
	out = append(out, set[:i]...)
	return append(out, set[i+1:]...)
}

// Toggle returns a set with s added if absent or removed if present.
func (set StyleSet) Toggle(s Style) StyleSet {
	if set.Has(s) {
		return set.Without(s)
	}
	return set.With(s)
}

// Union returns the union of both sets.
func (set StyleSet) Union(other StyleSet) StyleSet {
	out := set
	for _, s := range other {
		out = out.With(s)
	}
	return out
}

// Equal returns true if both sets hold the same styles.
func (set StyleSet) Equal(other StyleSet) bool {
	return slices.Equal(set, other)
}

// IsEmpty returns true if the set has no styles.
func (set StyleSet) IsEmpty() bool {
	return len(set) == 0
}

// String returns the styles joined with "+", e.g. "BOLD+ITALIC".
func (set StyleSet) String() string {
	parts := make([]string, len(set))
	for i, s := range set {
		parts[i] = string(s)
	}
	return strings.Join(parts, "+")
}
