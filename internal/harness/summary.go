package harness

import "time"

// Summary aggregates the measurements of one completed run. Mean is the
// headline statistic; Min and Max give the spread. When Count is zero no
// statistic is computed and all durations stay zero.
type Summary struct {
	Count int
	Total time.Duration
	Mean  time.Duration
	Min   time.Duration
	Max   time.Duration
}

// Summarize derives the run summary from the full measurement sequence.
func Summarize(measurements []Measurement) *Summary {
	s := &Summary{Count: len(measurements)}
	if s.Count == 0 {
		return s
	}

	s.Min = measurements[0].Elapsed
	s.Max = measurements[0].Elapsed
	for _, m := range measurements {
		s.Total += m.Elapsed
		if m.Elapsed < s.Min {
			s.Min = m.Elapsed
		}
		if m.Elapsed > s.Max {
			s.Max = m.Elapsed
		}
	}
	s.Mean = s.Total / time.Duration(s.Count)

	return s
}
