package domain

// RunStatus defines where an interactive run stands.
type RunStatus string

const (
	RunActive   RunStatus = "active"   // Symbols remain to be consumed
	RunAccepted RunStatus = "accepted" // Word consumed, current state is accepting
	RunRejected RunStatus = "rejected" // Word consumed, current state is not accepting
	RunFailed   RunStatus = "failed"   // Stopped on an undefined transition
)

// Run is the persisted snapshot of an interactive session that consumes a word
// one symbol at a time.
type Run struct {
	SessionID   string    `json:"session_id"`
	AutomatonID string    `json:"automaton_id"`
	Word        []string  `json:"word"`
	Position    int       `json:"position"`
	Current     string    `json:"current"`
	Status      RunStatus `json:"status"`

	// History holds the trace produced so far, starting with the initial element.
	History []Step `json:"history"`

	// Error holds the message of the undefined transition that failed the run, if any.
	Error string `json:"error,omitempty"`
}

// NewRun creates a run positioned before the first symbol of word.
func NewRun(sessionID, automatonID, initial string, word []string) *Run {
	w := append([]string(nil), word...)
	return &Run{
		SessionID:   sessionID,
		AutomatonID: automatonID,
		Word:        w,
		Current:     initial,
		Status:      RunActive,
		History:     []Step{{State: initial, Remaining: w}},
	}
}

// Remaining returns the symbols not yet consumed.
func (r *Run) Remaining() []string {
	if r.Position >= len(r.Word) {
		return []string{}
	}
	return r.Word[r.Position:]
}

// Finished reports whether the run can no longer be stepped.
func (r *Run) Finished() bool {
	return r.Status != RunActive
}

// Snapshot returns a deep copy so stores and callers never share slices.
func (r *Run) Snapshot() *Run {
	if r == nil {
		return nil
	}
	c := *r
	c.Word = append([]string(nil), r.Word...)
	c.History = make([]Step, len(r.History))
	for i, s := range r.History {
		c.History[i] = Step{
			State:     s.State,
			Consumed:  s.Consumed,
			Remaining: append([]string(nil), s.Remaining...),
		}
	}
	return &c
}
