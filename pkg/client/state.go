package client

// Status is the lifecycle of one stage as seen by the client.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
)

// StageState is the client-side view of one stage.
type StageState struct {
	Status     Status `json:"status"`
	Content    string `json:"content"`
	TokenCount int    `json:"tokenCount"`
	DurationMs int64  `json:"durationMs"`
}

// InitialState is the state of a stage that has never run.
func InitialState() StageState {
	return StageState{Status: StatusIdle}
}

// IsRunning reports whether the stage is streaming.
func (s StageState) IsRunning() bool { return s.Status == StatusRunning }

// IsDone reports whether the stage completed.
func (s StageState) IsDone() bool { return s.Status == StatusDone }
