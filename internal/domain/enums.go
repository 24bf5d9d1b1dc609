package domain

import (
	"fmt"
	"strings"
)

type StrategyStatus string

const (
	StrategyDraft     StrategyStatus = "draft"
	StrategyActive    StrategyStatus = "active"
	StrategyCompleted StrategyStatus = "completed"
	StrategyArchived  StrategyStatus = "archived"
)

type ProjectStatus string

const (
	ProjectNotStarted ProjectStatus = "not_started"
	ProjectOnTrack    ProjectStatus = "on_track"
	ProjectOnHold     ProjectStatus = "on_hold"
	ProjectBehind     ProjectStatus = "behind"
	ProjectCompleted  ProjectStatus = "completed"
)

type ActionStatus string

const (
	ActionNotStarted ActionStatus = "not_started"
	ActionInProgress ActionStatus = "in_progress"
	ActionAtRisk     ActionStatus = "at_risk"
	ActionOnHold     ActionStatus = "on_hold"
	ActionAchieved   ActionStatus = "achieved"
)

// projectStatusCodes maps the short codes used on the wire to statuses.
var projectStatusCodes = map[string]ProjectStatus{
	"NYS": ProjectNotStarted,
	"OT":  ProjectOnTrack,
	"OH":  ProjectOnHold,
	"B":   ProjectBehind,
	"C":   ProjectCompleted,
}

var projectStatuses = map[ProjectStatus]bool{
	ProjectNotStarted: true, ProjectOnTrack: true, ProjectOnHold: true,
	ProjectBehind: true, ProjectCompleted: true,
}

var actionStatuses = map[ActionStatus]bool{
	ActionNotStarted: true, ActionInProgress: true, ActionAtRisk: true,
	ActionOnHold: true, ActionAchieved: true,
}

var strategyStatuses = map[StrategyStatus]bool{
	StrategyDraft: true, StrategyActive: true, StrategyCompleted: true, StrategyArchived: true,
}

// normalizeStatus lowercases s and folds hyphens and spaces to underscores,
// so "Not-Yet-Started" and "on track" both compare against the const values.
func normalizeStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("-", "_", " ", "_").Replace(s)
	return s
}

// ParseProjectStatus accepts either a short wire code (NYS, OT, OH, B, C) or a
// long status name.
func ParseProjectStatus(s string) (ProjectStatus, error) {
	if st, ok := projectStatusCodes[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return st, nil
	}
	n := normalizeStatus(s)
	if n == "not_yet_started" {
		return ProjectNotStarted, nil
	}
	if projectStatuses[ProjectStatus(n)] {
		return ProjectStatus(n), nil
	}
	return "", fmt.Errorf("unknown project status %q", s)
}

// Code returns the short wire code for the status.
func (s ProjectStatus) Code() string {
	for code, st := range projectStatusCodes {
		if st == s {
			return code
		}
	}
	return ""
}

// Label returns a human-readable status name.
func (s ProjectStatus) Label() string {
	switch s {
	case ProjectNotStarted:
		return "Not yet started"
	case ProjectOnTrack:
		return "On track"
	case ProjectOnHold:
		return "On hold"
	case ProjectBehind:
		return "Behind"
	case ProjectCompleted:
		return "Completed"
	}
	return string(s)
}

func ParseActionStatus(s string) (ActionStatus, error) {
	n := normalizeStatus(s)
	if actionStatuses[ActionStatus(n)] {
		return ActionStatus(n), nil
	}
	return "", fmt.Errorf("unknown action status %q", s)
}

func (s ActionStatus) Label() string {
	switch s {
	case ActionNotStarted:
		return "Not started"
	case ActionInProgress:
		return "In progress"
	case ActionAtRisk:
		return "At risk"
	case ActionOnHold:
		return "On hold"
	case ActionAchieved:
		return "Achieved"
	}
	return string(s)
}

func ParseStrategyStatus(s string) (StrategyStatus, error) {
	n := normalizeStatus(s)
	if n == "" {
		return StrategyActive, nil
	}
	if strategyStatuses[StrategyStatus(n)] {
		return StrategyStatus(n), nil
	}
	return "", fmt.Errorf("unknown strategy status %q", s)
}
