package entity

type (
	RunStatus string

	// Run is the transient remote job processing a thread's pending input.
	// It lives only for the duration of one polling loop and is discarded
	// once a terminal status is observed.
	Run struct {
		ID       string
		ThreadID string
		Status   RunStatus
	}
)

const (
	RunStatusQueued     RunStatus = "queued"
	RunStatusInProgress RunStatus = "in_progress"
	RunStatusCompleted  RunStatus = "completed"
	RunStatusFailed     RunStatus = "failed"
	RunStatusCancelled  RunStatus = "cancelled"
	RunStatusExpired    RunStatus = "expired"
)

// Terminal reports whether no further status transition will occur.
func (s RunStatus) Terminal() bool {
	switch s {
	case RunStatusCompleted, RunStatusFailed, RunStatusCancelled, RunStatusExpired:
		return true
	}
	return false
}

// Failure reports a terminal status other than completed.
func (s RunStatus) Failure() bool {
	return s.Terminal() && s != RunStatusCompleted
}

// Pending reports a status the coordinator keeps polling on.
func (s RunStatus) Pending() bool {
	return s == RunStatusQueued || s == RunStatusInProgress
}
