package journal

// ListOptions provides filtering options for listing journal entries.
type ListOptions struct {
	Resource  string
	Operation *Operation
	Outcome   *Outcome
	Limit     int
	Offset    int
}
