package importer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrStr(s string) *string { return &s }
func ptrInt(i int) *int       { return &i }

func validMinimalSchema() *SnapshotSchema {
	return &SnapshotSchema{
		Strategies: []StrategyRecord{
			{ID: "s1", Title: "Grow", StartDate: "2025-01-01", TargetDate: "2025-06-30"},
		},
		Projects: []ProjectRecord{
			{ID: "p1", StrategyID: "s1", Title: "Launch", Status: "OT", StartDate: ptrStr("2025-02-01"), DueDate: ptrStr("2025-03-01")},
		},
		Actions: []ActionRecord{
			{ID: "a1", StrategyID: "s1", ProjectID: ptrStr("p1"), Title: "Brief", Status: "in_progress", DueDate: ptrStr("2025-02-15"), IsArchived: Bool(false)},
		},
		ChecklistItems: []ChecklistRecord{
			{ID: "c1", ActionID: "a1", Title: "Draft", OrderIndex: 0},
		},
	}
}

func TestValidateSnapshotSchema_ValidMinimal(t *testing.T) {
	assert.Empty(t, ValidateSnapshotSchema(validMinimalSchema(), time.UTC))
}

func TestValidateSnapshotSchema_Empty(t *testing.T) {
	assert.Empty(t, ValidateSnapshotSchema(&SnapshotSchema{}, time.UTC))
}

func TestValidateSnapshotSchema_MalformedDates(t *testing.T) {
	s := validMinimalSchema()
	s.Strategies[0].StartDate = "2025-13-01"
	s.Projects[0].DueDate = ptrStr("next tuesday")
	s.Actions[0].DueDate = ptrStr("2025/02/15")

	errs := ValidateSnapshotSchema(s, time.UTC)
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0].Error(), "strategies[0].startDate")
	assert.Contains(t, errs[1].Error(), "projects[0].dueDate")
	assert.Contains(t, errs[2].Error(), "actions[0].dueDate")
}

func TestValidateSnapshotSchema_TargetBeforeStart(t *testing.T) {
	s := validMinimalSchema()
	s.Strategies[0].TargetDate = "2024-12-31"
	errs := ValidateSnapshotSchema(s, time.UTC)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "must not be before startDate")
}

func TestValidateSnapshotSchema_RequiredFields(t *testing.T) {
	s := &SnapshotSchema{
		Strategies: []StrategyRecord{{}},
	}
	errs := ValidateSnapshotSchema(s, time.UTC)
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	joined := strings.Join(msgs, "\n")
	assert.Contains(t, joined, "strategies[0].id is required")
	assert.Contains(t, joined, "strategies[0].title is required")
	assert.Contains(t, joined, "strategies[0].startDate is required")
	assert.Contains(t, joined, "strategies[0].targetDate is required")
}

func TestValidateSnapshotSchema_DanglingReferences(t *testing.T) {
	s := validMinimalSchema()
	s.Projects[0].StrategyID = "missing"
	s.Actions[0].ProjectID = ptrStr("nope")
	s.ChecklistItems[0].ActionID = "ghost"

	errs := ValidateSnapshotSchema(s, time.UTC)
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0].Error(), "unknown strategy")
	assert.Contains(t, errs[1].Error(), "unknown project")
	assert.Contains(t, errs[2].Error(), "unknown action")
}

func TestValidateSnapshotSchema_DuplicateIDs(t *testing.T) {
	s := validMinimalSchema()
	s.Actions = append(s.Actions, s.Actions[0])
	errs := ValidateSnapshotSchema(s, time.UTC)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), `actions[1].id "a1" is duplicated`)
}

func TestValidateSnapshotSchema_StatusesAndFlags(t *testing.T) {
	s := validMinimalSchema()
	s.Projects[0].Status = "XX"
	s.Actions[0].Status = "done"
	s.Actions[0].IsArchived = StringBool{Raw: "yes"}
	s.Strategies[0].Progress = ptrInt(140)

	errs := ValidateSnapshotSchema(s, time.UTC)
	require.Len(t, errs, 4)
}

func TestValidateSnapshotSchema_ProfileTimezone(t *testing.T) {
	s := validMinimalSchema()
	s.Profile = &ProfileRecord{ID: "u1", Timezone: "Nowhere/Special"}
	errs := ValidateSnapshotSchema(s, time.UTC)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "profile.timezone")
}

func TestValidationError_Format(t *testing.T) {
	err := &ValidationError{Errs: []error{errors.New("a broke"), errors.New("b broke")}}
	assert.Equal(t, "snapshot validation failed (2 errors):\n  - a broke\n  - b broke", err.Error())
}
