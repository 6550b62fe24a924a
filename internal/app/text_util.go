package app

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	if xansi.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return "…"
	}
	return xansi.Cut(text, 0, width-1) + "…"
}

func padToWidth(text string, width int) string {
	gap := width - xansi.StringWidth(text)
	if gap <= 0 {
		return text
	}
	return text + strings.Repeat(" ", gap)
}

// wrapLines word-wraps text to width and keeps at most limit lines. The last
// kept line gets an ellipsis when text was cut.
func wrapLines(text string, width, limit int) []string {
	if text == "" || width <= 0 || limit <= 0 {
		return nil
	}
	lines := strings.Split(xansi.Wrap(text, width, ""), "\n")
	if len(lines) <= limit {
		return lines
	}
	lines = lines[:limit]
	lines[limit-1] = truncateToWidth(lines[limit-1]+" …", width)
	return lines
}

func renderStatusLine(width int, help, status string) string {
	if width <= 0 {
		return help + " " + status
	}
	padding := width - xansi.StringWidth(help) - xansi.StringWidth(status)
	if padding < statusLinePadding {
		padding = statusLinePadding
	}
	return help + strings.Repeat(" ", padding) + status
}

func clamp(value, minValue, maxValue int) int {
	if value < minValue {
		return minValue
	}
	if value > maxValue {
		return maxValue
	}
	return value
}
