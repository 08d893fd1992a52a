// Package outcome defines the tri-state result of a script invocation
// and the mapping from raw executor status codes.
package outcome

import "encoding/json"

// Raw status codes understood by the mapper. The values mirror the host
// command API: 0 for success, 1 for a user cancel, -1 for failure.
const (
	CodeSucceeded = 0
	CodeCancelled = 1
	CodeFailed    = -1
)

// Outcome is the canonical result of one invocation. Exactly one value
// is produced per invocation.
type Outcome int

const (
	Succeeded Outcome = iota
	Cancelled
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "succeeded"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// MarshalJSON encodes the outcome as its string form.
func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// Map translates a raw executor status code into an Outcome.
//
// Unrecognised codes map to Succeeded. This preserves the legacy mapping
// exactly: callers must not treat unknown codes as errors, even though
// the leniency can mask executor-side bugs.
func Map(raw int) Outcome {
	switch raw {
	case CodeSucceeded:
		return Succeeded
	case CodeCancelled:
		return Cancelled
	case CodeFailed:
		return Failed
	default:
		return Succeeded
	}
}
