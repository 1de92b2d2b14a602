package batch

import "github.com/beckagarrison/caseintake/internal/extract"

// EventKind tags a progress event.
type EventKind string

const (
	EventStarted       EventKind = "STARTED"
	EventCompleted     EventKind = "COMPLETED"
	EventBatchFinished EventKind = "BATCH_FINISHED"
)

// Event is one step of batch progress, delivered to the sink's observer in
// input order. The caller (CLI or test harness) subscribes; the orchestrator
// holds no shared mutable progress state.
type Event struct {
	Kind    EventKind
	Name    string           // item name for Started/Completed
	Line    string           // status line for Completed
	Outcome *extract.Outcome // set for Completed
	Summary *Summary         // set for BatchFinished
}
