package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// SnapshotSchema is the wire shape of a full planning snapshot. The REST
// collaborator serves each collection on its own endpoint; an import file
// carries all of them in one document.
type SnapshotSchema struct {
	Strategies     []StrategyRecord  `json:"strategies"`
	Projects       []ProjectRecord   `json:"projects"`
	Actions        []ActionRecord    `json:"actions"`
	ChecklistItems []ChecklistRecord `json:"checklistItems,omitempty"`
	Profile        *ProfileRecord    `json:"profile,omitempty"`
}

// StrategyRecord is a strategy as returned by GET /api/strategies.
type StrategyRecord struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	ColorCode      string  `json:"colorCode,omitempty"`
	Status         string  `json:"status,omitempty"`
	StartDate      string  `json:"startDate"`
	TargetDate     string  `json:"targetDate"`
	CompletionDate *string `json:"completionDate,omitempty"`
	Progress       *int    `json:"progress,omitempty"`
	CreatedAt      string  `json:"createdAt,omitempty"`
}

// ProjectRecord is a project as returned by GET /api/projects. Status may be
// a short code such as "OT" or "C".
type ProjectRecord struct {
	ID         string  `json:"id"`
	StrategyID string  `json:"strategyId"`
	Title      string  `json:"title"`
	Status     string  `json:"status,omitempty"`
	StartDate  *string `json:"startDate,omitempty"`
	DueDate    *string `json:"dueDate,omitempty"`
	Progress   *int    `json:"progress,omitempty"`
	CreatedAt  string  `json:"createdAt,omitempty"`
}

// ActionRecord is an action as returned by GET /api/actions.
type ActionRecord struct {
	ID         string     `json:"id"`
	StrategyID string     `json:"strategyId"`
	ProjectID  *string    `json:"projectId,omitempty"`
	Title      string     `json:"title"`
	Status     string     `json:"status,omitempty"`
	DueDate    *string    `json:"dueDate,omitempty"`
	IsArchived StringBool `json:"isArchived"`
	CreatedAt  string     `json:"createdAt,omitempty"`
}

// ChecklistRecord is a checklist item as returned by GET /api/checklist-items.
type ChecklistRecord struct {
	ID          string `json:"id"`
	ActionID    string `json:"actionId"`
	Title       string `json:"title"`
	IsCompleted bool   `json:"isCompleted"`
	OrderIndex  int    `json:"orderIndex"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// ProfileRecord is the signed-in user as returned by GET /api/me.
type ProfileRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Timezone string `json:"timezone,omitempty"`
	Role     string `json:"role,omitempty"`
}

// StringBool holds a flag the backend serialises as the string "true" or
// "false". Plain JSON booleans are accepted too. Raw keeps the original
// text so validation can report unexpected values.
type StringBool struct {
	Raw string
}

func (b *StringBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		b.Raw = ""
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		b.Raw = string(data)
	default:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("isArchived: expected string or bool, got %s", data)
		}
		b.Raw = s
	}
	return nil
}

func (b StringBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Raw)
}

// Valid reports whether Raw is empty, "true" or "false".
func (b StringBool) Valid() bool {
	return b.Raw == "" || b.Raw == "true" || b.Raw == "false"
}

// Bool returns the parsed flag. Anything but "true" is false.
func (b StringBool) Bool() bool {
	return b.Raw == "true"
}

// Bool wraps a Go bool in its wire form.
func Bool(v bool) StringBool {
	if v {
		return StringBool{Raw: "true"}
	}
	return StringBool{Raw: "false"}
}

// DecodeSnapshotSchema parses a snapshot document.
func DecodeSnapshotSchema(r io.Reader) (*SnapshotSchema, error) {
	var schema SnapshotSchema
	if err := json.NewDecoder(r).Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	return &schema, nil
}

// LoadSnapshotSchema reads and parses a snapshot JSON file.
func LoadSnapshotSchema(path string) (*SnapshotSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeSnapshotSchema(bytes.NewReader(data))
}
