package download

// Outcome is the terminal state of one batch input.
type Outcome string

const (
	// OutcomeStored means a subtitle was downloaded and written to disk.
	OutcomeStored Outcome = "stored"
	// OutcomeSkipped means the subtitle already existed and updates were off.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeNotFound means every queried service answered without a match.
	OutcomeNotFound Outcome = "not-found"
	// OutcomeFailed means the input could not be processed.
	OutcomeFailed Outcome = "failed"
)

// Service names used in results and the history journal.
const (
	ServiceNapiprojekt = "napiprojekt"
	ServiceNapisy24    = "napisy24"
)

// Result records what happened to a single input.
type Result struct {
	// Input is the original argument: a file path or digest literal.
	Input string
	// Target is the subtitle path the input resolves to.
	Target string
	// Outcome classifies the terminal state.
	Outcome Outcome
	// Service identifies which service supplied the subtitle, when one did.
	Service string
	// Bytes is the size of the stored subtitle.
	Bytes int
	// Err carries the failure for OutcomeNotFound and OutcomeFailed.
	Err error
}

// OK reports whether the result counts as success for the process exit code.
func (r Result) OK() bool {
	return r.Outcome == OutcomeStored || r.Outcome == OutcomeSkipped
}
