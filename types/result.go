package types

// Result is the backend-agnostic shape of a query outcome. Exactly one of
// the two representations is authoritative: when IsSelect is true the
// columns/rows payload is, otherwise the affected-count payload is.
type Result struct {
	// Columns is the ordered column name sequence for row-returning
	// operations. Order is significant; uniqueness is not required.
	Columns []string

	// Rows holds fixed-width tuples aligned with Columns
	Rows [][]any

	// AffectedRows is the number of rows changed by a mutation
	AffectedRows int64

	// LastInsertID is the generated identifier of the last inserted row,
	// empty when the backend did not report one
	LastInsertID string

	// IsSelect reports whether Columns/Rows carry the payload
	IsSelect bool
}
