package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/strata/internal/app"
)

// resolveActionID expands a unique id prefix to a full action id. Input
// that matches no listed action is returned unchanged, so archived actions
// can still be addressed by their full id.
func resolveActionID(ctx context.Context, a *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("action ID is required")
	}

	list, err := a.Actions.List(ctx, app.ActionListRequest{By: app.GroupByDue})
	if err != nil {
		return "", err
	}

	var matches []string
	for _, row := range list.Rows {
		if row.Action.ID == input {
			return input, nil
		}
		if strings.HasPrefix(row.Action.ID, input) {
			matches = append(matches, row.Action.ID)
		}
	}

	switch len(matches) {
	case 0:
		return input, nil
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("action ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
