package domain

// Result is the outcome of one task's pipeline run. Exactly one Result is
// produced per processed task and delivered once through the completion
// callback. Task is a shared read-only reference to the originating task;
// Product is set only on success, Err only on failure.
type Result struct {
	Success bool            `json:"success"`
	Task    *Task           `json:"task"`
	Product *CreatedProduct `json:"product,omitempty"`
	Err     string          `json:"error,omitempty"`
}
