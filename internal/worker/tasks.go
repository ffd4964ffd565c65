package worker

// Task Types
const (
	TypeActivityRecord = "activity:record"
)
