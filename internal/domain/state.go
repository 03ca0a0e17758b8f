package domain

// ExecutionState is the workflow's position in the fixed pipeline.
// Transitions:
//
//	Started → DetectingSentiment → GeneratingId → Persisting →
//	EvaluatingSentiment → {Notifying → Completed | Completed} | Failed
type ExecutionState string

const (
	StateStarted             ExecutionState = "STARTED"
	StateDetectingSentiment  ExecutionState = "DETECTING_SENTIMENT"
	StateGeneratingID        ExecutionState = "GENERATING_ID"
	StatePersisting          ExecutionState = "PERSISTING"
	StateEvaluatingSentiment ExecutionState = "EVALUATING_SENTIMENT"
	StateNotifying           ExecutionState = "NOTIFYING"
	StateCompleted           ExecutionState = "COMPLETED"
	StateFailed              ExecutionState = "FAILED"
)

func (s ExecutionState) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}
