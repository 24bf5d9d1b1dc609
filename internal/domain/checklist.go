package domain

import "time"

type ChecklistItem struct {
	ID         string
	ActionID   string
	Title      string
	Done       bool
	OrderIndex int
	CreatedAt  time.Time
}
