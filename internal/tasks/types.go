package tasks

// Task types carried in the "type" field of maintenance stream entries.
const (
	TypePurgeTokens = "purge_tokens"
	TypeReconcile   = "reconcile"
)
