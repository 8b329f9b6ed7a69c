package services

import "time"

// Task names understood by the worker.
const (
	TaskUpdateDocs = "docs:update"
)

// Build task priorities. A higher value is served first.
const (
	PriorityLow    = 3
	PriorityMedium = 5
	PriorityHigh   = 7
)

// Fallback task limits when a project carries no usable time limit of its
// own, and the retry policy applied when a build is throttled.
const (
	DefaultTimeLimit     = 720
	DefaultSoftTimeLimit = 600

	ConcurrencyRetryDelay = 5 * time.Minute
	ConcurrencyMaxRetries = 25
)

// UpdateDocsArgs is the payload of a docs:update task.
type UpdateDocsArgs struct {
	VersionID uint   `json:"version_id"`
	Record    bool   `json:"record"`
	Force     bool   `json:"force"`
	BuildID   uint   `json:"build_id"`
	Commit    string `json:"commit,omitempty"`
}

// TaskOptions carries the routing and limits a task is enqueued with.
// TimeLimit and SoftTimeLimit are seconds. A zero Countdown means immediate
// execution; a non-zero one comes with MaxRetries as the retry budget.
type TaskOptions struct {
	Queue         string
	TimeLimit     int
	SoftTimeLimit int
	Priority      int
	Countdown     time.Duration
	MaxRetries    int
}

// Dispatcher hands immutable tasks to the external queue. The dispatch
// logic depends only on this interface, never on a concrete queue client.
type Dispatcher interface {
	Enqueue(taskName string, payload any, opts TaskOptions) error
}
