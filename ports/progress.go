package ports

// SearchObserver receives scheduler progress. The core has no dependency on
// any presentation layer; callers adapt this to logs, an HTTP session, or
// nothing (a nil observer is valid).
type SearchObserver interface {
	// RoundCompleted fires after each synchronized round. fraction is in
	// [0,1] and stays below 1.0 until an actual success occurs.
	RoundCompleted(round int, fraction float64)

	// SearchSucceeded fires once, when a draw has been accepted.
	SearchSucceeded(round, workerIndex int)
}
