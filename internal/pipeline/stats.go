package pipeline

// RunStats tracks aggregate counters across one run.
type RunStats struct {
	Pairs          int // pairs resolved
	Current        int // pairs attempted so far
	Completed      int // pairs committed
	Failed         int // pairs failed (pair-isolated)
	Clips          int // final clips committed across all pairs
	SkippedIndices int // merge indices skipped across all pairs
}
