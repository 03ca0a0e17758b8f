package temporal

// ExecutionStateQueryName returns the workflow's current
// domain.ExecutionState, so callers can observe pipeline progress without
// waiting for the terminal result.
const ExecutionStateQueryName = "executionState"
