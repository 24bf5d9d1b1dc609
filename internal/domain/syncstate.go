package domain

import "time"

// SyncState records where the local snapshot came from and what it held.
type SyncState struct {
	Source     string
	SyncedAt   time.Time
	Strategies int
	Projects   int
	Actions    int
}
