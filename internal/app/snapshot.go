package app

import "time"

type SyncResult struct {
	Source         string
	SyncedAt       time.Time
	Strategies     int
	Projects       int
	Actions        int
	ChecklistItems int
	ProfileUpdated bool
}
