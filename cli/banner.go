package cli

import (
	"fmt"
	"strings"
)

const (
	boxTopLeft     = "╒"
	boxBottomLeft  = "└"
	boxTopRight    = "╕"
	boxBottomRight = "┘"
	boxSide        = "│"
	boxTop         = "═"
	boxBottom      = "─"

	bannerPadding = 2
	halfDivisor   = 2
)

// DefaultTerminalWidth is used when the terminal width is unknown.
const DefaultTerminalWidth = 80

// Banner frames the given lines in a box of the default width, centered.
func Banner(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	width := DefaultTerminalWidth

	top := fmt.Sprintf("%s%s%s", boxTopLeft, strings.Repeat(boxTop, width-bannerPadding), boxTopRight)
	parts := []string{top}

	for _, line := range lines {
		parts = append(parts, fmt.Sprintf("%s%s%s", boxSide, padCenter(line, width-bannerPadding), boxSide))
	}

	bottom := fmt.Sprintf("%s%s%s", boxBottomLeft, strings.Repeat(boxBottom, width-bannerPadding), boxBottomRight)
	parts = append(parts, bottom)

	return strings.Join(parts, "\n") + "\n"
}

func padCenter(text string, width int) string {
	length := len([]rune(text))
	if length >= width {
		return string([]rune(text)[:width])
	}

	diff := width - length
	leftPad := diff / halfDivisor
	rightPad := diff - leftPad

	return strings.Repeat(" ", leftPad) + text + strings.Repeat(" ", rightPad)
}
