package dtr

// scoreConfidence recomputes the three presence checks independently of the
// extraction pass. The redundant work is intentional: the scorer stays a
// pure function of (lines, format), so score and fields cannot drift apart.
// The result is always one of {0, 1/3, 2/3, 1}.
func scoreConfidence(lines []string, format Format) float32 {
	hits := 0
	if info := extractEmployeeInfo(lines); info.EmployeeID != "" || info.Name != "" {
		hits++
	}
	if len(extractDates(lines)) > 0 {
		hits++
	}
	if t := extractTimes(lines, format); len(t.TimeIn) > 0 && len(t.TimeOut) > 0 {
		hits++
	}
	return float32(hits) / 3
}
