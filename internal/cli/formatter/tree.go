package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/strata/internal/domain"
)

// TreeItem is one node in a tree display. Level 0 nodes are headings.
type TreeItem struct {
	Title  string
	Level  int
	IsLast bool
	Status domain.ActionStatus
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree renders items as an indented tree with box-drawing
// connectors. Achieved actions get a green ✔ and in-progress ones an
// amber ▶. Detail badges are right-aligned across the whole tree.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	contents := make([]string, len(items))
	width := 0
	for i, item := range items {
		var prefix string
		if item.Level > 0 {
			prefix = strings.Repeat(treePipe, item.Level-1)
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		title := item.Title
		switch item.Status {
		case domain.ActionAchieved:
			title = StyleGreen.Render("✔ ") + Dim(title)
		case domain.ActionInProgress:
			title = StyleYellowBold.Render("▶ " + title)
		case domain.ActionAtRisk:
			title = StyleRed.Render("▲ ") + title
		}

		contents[i] = prefix + title
		if w := lipgloss.Width(contents[i]); w > width {
			width = w
		}
	}

	var b strings.Builder
	for i, item := range items {
		b.WriteString(contents[i])
		if item.Detail != "" {
			b.WriteString(strings.Repeat(" ", width-lipgloss.Width(contents[i])+2))
			b.WriteString(fmt.Sprintf("[ %s ]", item.Detail))
		}
		b.WriteString("\n")
	}
	return b.String()
}
