package clip

import "fmt"

// maxListedFailures bounds Summary.Failures.
const maxListedFailures = 3

// Summary aggregates the outcomes of a batch.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	// Failures holds the first few failure messages in line order.
	Failures []string
	// MoreFailures counts failures not listed in Failures.
	MoreFailures int
	// Bytes is the combined size of the produced clips.
	Bytes int64
}

// Summarize counts outcomes and samples failure messages.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		if o.OK() {
			s.Succeeded++
			s.Bytes += o.Size
			continue
		}
		s.Failed++
		if len(s.Failures) < maxListedFailures {
			s.Failures = append(s.Failures, FailureMessage(o))
		} else {
			s.MoreFailures++
		}
	}
	return s
}

// FailureMessage formats a failed outcome as "line N: <time> - <reason>".
func FailureMessage(o Outcome) string {
	if o.Entry.Line == 0 {
		return fmt.Sprintf("%s - %v", o.Entry.Expression, o.Err)
	}
	return fmt.Sprintf("line %d: %s - %v", o.Entry.Line, o.Entry.Expression, o.Err)
}
