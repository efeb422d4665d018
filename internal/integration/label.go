package integration

import (
	"regexp"
	"strconv"
)

// trailingDigits captures the numeric suffix of a label ("build-42" → "42").
var trailingDigits = regexp.MustCompile(`(\d+)$`)

// numericLabel extracts the trailing number of label. Labels without a numeric
// suffix, or with a suffix that does not fit in an int, yield 0.
func numericLabel(label string) int {
	m := trailingDigits.FindStringSubmatch(label)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
