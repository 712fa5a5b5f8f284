package domain

import "time"

// Snapshot is the read-only composed view of the persistence layer that
// one evaluation pass works over: obligations, the active budget, the
// category lookup, and goals, all fetched up front. The engine treats a
// snapshot as immutable and only derives new values from it.
//
// Partial is set when an upstream fetch failed or was incomplete;
// aggregation then proceeds with the available data and flags its result
// instead of aborting.
type Snapshot struct {
	Obligations []*ObligationRecord
	Budget      *Budget
	Categories  CategoryMap
	Goals       []*Goal
	FetchedAt   time.Time
	Partial     bool
}
