package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// spliceOverlay replaces a rectangular region of a rendered view with
// a modal box, starting at (anchorX, anchorY). Truncation is
// ANSI-aware so styling on either side of the box survives.
func spliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}

	viewLines := strings.Split(view, "\n")
	for index, overlayLine := range overlayLines {
		row := anchorY + index
		if row < 0 || row >= len(viewLines) {
			continue
		}

		viewLine := viewLines[row]
		var result strings.Builder
		if anchorX > 0 {
			prefix := ansi.Truncate(viewLine, anchorX, "")
			result.WriteString(prefix)
			// Pad short lines so the box lands in the same column.
			if width := ansi.StringWidth(prefix); width < anchorX {
				result.WriteString(strings.Repeat(" ", anchorX-width))
			}
		}
		result.WriteString("\x1b[0m")
		result.WriteString(overlayLine)
		result.WriteString("\x1b[0m")

		suffixStart := anchorX + ansi.StringWidth(overlayLine)
		if suffixStart < ansi.StringWidth(viewLine) {
			result.WriteString(ansi.TruncateLeft(viewLine, suffixStart, ""))
		}
		viewLines[row] = result.String()
	}

	return strings.Join(viewLines, "\n")
}

// centerOverlay splices box into the middle of a width x height view.
func centerOverlay(view, box string, width, height int) string {
	lines := strings.Split(box, "\n")
	boxWidth := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > boxWidth {
			boxWidth = w
		}
	}
	anchorX := max((width-boxWidth)/2, 0)
	anchorY := max((height-len(lines))/2, 0)
	return spliceOverlay(view, lines, anchorX, anchorY)
}
