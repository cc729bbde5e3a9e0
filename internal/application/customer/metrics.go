package customer

import "time"

// Operation outcomes reported to a Recorder
const (
	OutcomeSuccess          = "success"
	OutcomeInvalidReference = "invalid_reference"
	OutcomeDuplicate        = "duplicate"
	OutcomeNotFound         = "not_found"
	OutcomeInvalidInput     = "invalid_input"
	OutcomeStorageFailure   = "storage_failure"
)

// Recorder receives one observation per write operation
type Recorder interface {
	ObserveOperation(operation, outcome string, elapsed time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) ObserveOperation(string, string, time.Duration) {}
