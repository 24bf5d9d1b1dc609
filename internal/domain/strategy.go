package domain

import "time"

// Strategy is a top-level goal spanning a date range. StartDate and
// TargetDate are calendar dates; CompletionDate is set once the strategy
// is closed out.
type Strategy struct {
	ID             string
	Title          string
	ColorCode      string
	Status         StrategyStatus
	StartDate      time.Time
	TargetDate     time.Time
	CompletionDate *time.Time
	Progress       int
	CreatedAt      time.Time
}

// DisplayColor returns the strategy color or a neutral fallback.
func (s *Strategy) DisplayColor() string {
	return CoalesceStr(s.ColorCode, DefaultStrategyColor)
}
