package types

// Status classifies the outcome of one rename proposal. The set is closed;
// consumers switch exhaustively over these five values.
type Status string

const (
	StatusReady       Status = "ready"
	StatusConflict    Status = "conflict"
	StatusMissingData Status = "missing-data"
	StatusNoChange    Status = "no-change"
	StatusInvalidName Status = "invalid-name"
)

// IsValid reports whether s is one of the five known statuses
func (s Status) IsValid() bool {
	switch s {
	case StatusReady, StatusConflict, StatusMissingData, StatusNoChange, StatusInvalidName:
		return true
	}
	return false
}

// rank encodes the dominance order used during generation: a proposal's
// status may only move to a strictly higher rank, never back down.
// invalid-name dominates everything; conflict only ever replaces ready.
func (s Status) rank() int {
	switch s {
	case StatusReady:
		return 0
	case StatusConflict:
		return 1
	case StatusNoChange:
		return 2
	case StatusMissingData:
		return 3
	case StatusInvalidName:
		return 4
	default:
		return -1
	}
}

// Escalate returns the status that results from applying next on top of s.
// invalid-name is terminal. conflict applies only to ready proposals: it
// never downgrades missing-data, no-change or invalid-name.
func (s Status) Escalate(next Status) Status {
	if s == StatusInvalidName {
		return s
	}
	if next == StatusInvalidName {
		return next
	}
	if next == StatusConflict {
		if s == StatusReady {
			return StatusConflict
		}
		return s
	}
	if next.rank() > s.rank() {
		return next
	}
	return s
}
