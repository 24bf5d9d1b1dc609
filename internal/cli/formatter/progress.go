package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/strata/internal/rollup"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a bar like [████░░░░]  45% for a whole percent.
// Green from 66, yellow from 33, red below.
func RenderProgress(pct int, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	if width < 2 {
		width = 2
	}

	filled := pct * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 33 {
		style = StyleRed
	} else if pct < 66 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), pct)
}

// RenderCompletion renders a progress bar followed by the "x/y complete"
// caption.
func RenderCompletion(c rollup.Completion, width int) string {
	return RenderProgress(c.Percent, width) + " " + Dim(c.Label())
}
