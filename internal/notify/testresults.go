package notify

import (
	"encoding/xml"
	"strconv"
	"strings"
)

const testResultsElement = "test-results"

// TestSummary is the count line of a <test-results> element embedded in step output.
type TestSummary struct {
	Run      int
	Failures int
	NotRun   int
}

// String renders the summary the way it appears in messages.
func (s TestSummary) String() string {
	return "Tests run: " + strconv.Itoa(s.Run) +
		", Failures: " + strconv.Itoa(s.Failures) +
		", Not run: " + strconv.Itoa(s.NotRun)
}

// parseTestSummary finds the first <test-results> element in data and reads
// its total, failures and not-run attributes. It reports false when there is
// no such element, when the XML around it is malformed, or when an attribute
// is not a number.
func parseTestSummary(data string) (TestSummary, bool) {
	if !strings.Contains(data, "<"+testResultsElement) {
		return TestSummary{}, false
	}

	dec := xml.NewDecoder(strings.NewReader(data))

	for {
		tok, err := dec.Token()
		if err != nil {
			return TestSummary{}, false
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != testResultsElement {
			continue
		}
		return summaryFromAttrs(start.Attr)
	}
}

func summaryFromAttrs(attrs []xml.Attr) (TestSummary, bool) {
	var s TestSummary
	found := false
	for _, a := range attrs {
		var target *int
		switch a.Name.Local {
		case "total":
			target = &s.Run
		case "failures":
			target = &s.Failures
		case "not-run":
			target = &s.NotRun
		default:
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(a.Value))
		if err != nil || n < 0 {
			return TestSummary{}, false
		}
		*target = n
		found = true
	}
	return s, found
}
