package journal

import "time"

// Operation names a synchronizer operation.
type Operation string

const (
	OpList   Operation = "list"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
	OpSignup Operation = "signup"
)

// Outcome classifies how an operation ended.
type Outcome string

const (
	OutcomeOK               Outcome = "ok"
	OutcomeValidationFailed Outcome = "validation_failed"
	OutcomeNetworkFailed    Outcome = "network_failed"
	OutcomeNotFound         Outcome = "not_found"
	OutcomeSuperseded       Outcome = "superseded"
)

// Entry is one line of the sync journal.
type Entry struct {
	ID        int64     `json:"id"`
	Resource  string    `json:"resource"`
	Operation Operation `json:"operation"`
	EntityID  string    `json:"entity_id,omitempty"`
	Outcome   Outcome   `json:"outcome"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
