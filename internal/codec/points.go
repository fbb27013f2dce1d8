package codec

// PointsTable maps a 1-based rank to its point value. Index 0 holds the
// points for rank 1. Ranks beyond the table floor to 1 point, never
// zero or negative.
//
// The table is injected into the Codec so callers can supply their own
// scoring scheme; DefaultPointsTable covers the common case.
type PointsTable []int

// defaultTableSize is the number of ranks the default table covers.
const defaultTableSize = 60

// DefaultPointsTable returns the standard scoring table: rank r is
// worth 61-r points for ranks 1 through 60, so rank 1 scores 60 and
// rank 60 scores 1. Ranks past the table score the floor value of 1.
func DefaultPointsTable() PointsTable {
	t := make(PointsTable, defaultTableSize)
	for i := range t {
		t[i] = defaultTableSize - i
	}
	return t
}

// PointsFor returns the point value for the given 1-based rank.
// Out-of-range ranks (including zero and negative) return 1.
func (t PointsTable) PointsFor(rank int) int {
	if rank < 1 || rank > len(t) {
		return 1
	}
	if p := t[rank-1]; p > 0 {
		return p
	}
	return 1
}
