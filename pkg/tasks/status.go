package tasks

// Status is the outcome of running one task
type Status int

const (
	StatusSuccess Status = iota
	StatusFailure
	StatusSkipped
)

// String returns the report form of the status
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusFailure:
		return "FAILURE"
	case StatusSkipped:
		return "SKIPPED"
	default:
		return "UNKNOWN"
	}
}
