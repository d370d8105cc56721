package ports

// Notifier is the append-only user-facing notification sink. Implementations
// must be safe for concurrent use and must never block the caller.
type Notifier interface {
	Notify(playerID, message string)
}
