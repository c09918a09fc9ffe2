package poedb

import (
	"regexp"
	"strconv"
)

var statRangeRegex = regexp.MustCompile(`\((\d+)-(\d+)\)`)

// ExtractStatRanges pulls every "(min-max)" token out of a templated
// mod name, in order of appearance. Placeholder text like "+# to
// maximum Life" has no ranges and yields an empty slice. No min <= max
// validation happens here; consumers that care should check.
func ExtractStatRanges(text string) []StatRange {
	matches := statRangeRegex.FindAllStringSubmatch(text, -1)
	ranges := make([]StatRange, 0, len(matches))
	for _, m := range matches {
		min, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			continue
		}
		max, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			continue
		}
		ranges = append(ranges, StatRange{Min: min, Max: max})
	}
	return ranges
}
