package app

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

type LayerOverlay struct {
	Row   int
	Col   int
	Block string
}

type LayerComposer interface {
	Compose(base string, overlays []LayerOverlay) string
}

func WithLayerComposer(composer LayerComposer) ModelOption {
	return func(m *Model) {
		if m == nil || composer == nil {
			return
		}
		m.layerComposer = composer
	}
}

type textLayerComposer struct{}

func NewTextLayerComposer() LayerComposer {
	return textLayerComposer{}
}

func (textLayerComposer) Compose(base string, overlays []LayerOverlay) string {
	if base == "" || len(overlays) == 0 {
		return base
	}
	canvas := newTextCanvas(base)
	for _, overlay := range overlays {
		canvas.OverlayBlock(overlay.Block, overlay.Row, overlay.Col)
	}
	return canvas.String()
}

// centeredOverlay positions block in the middle of a width x height frame.
func centeredOverlay(block string, width, height int) LayerOverlay {
	blockWidth := 0
	lines := strings.Split(block, "\n")
	for _, line := range lines {
		blockWidth = max(blockWidth, xansi.StringWidth(line))
	}
	return LayerOverlay{
		Row:   max(0, (height-len(lines))/2),
		Col:   max(0, (width-blockWidth)/2),
		Block: block,
	}
}

type textCanvas struct {
	lines []string
}

func newTextCanvas(text string) textCanvas {
	return textCanvas{lines: strings.Split(text, "\n")}
}

// OverlayBlock paints block over the canvas starting at row/col. Cells left
// and right of the block keep their base content.
func (c *textCanvas) OverlayBlock(block string, row, col int) {
	if c == nil || row < 0 || block == "" || len(c.lines) == 0 {
		return
	}
	col = max(0, col)
	for i, line := range strings.Split(block, "\n") {
		target := row + i
		if target >= len(c.lines) {
			break
		}
		base := c.lines[target]
		baseWidth := xansi.StringWidth(base)
		left := padToWidth(xansi.Cut(base, 0, col), col)
		right := ""
		end := col + xansi.StringWidth(line)
		if end < baseWidth {
			right = xansi.Cut(base, end, baseWidth)
		}
		c.lines[target] = left + line + right
	}
}

func (c *textCanvas) String() string {
	if c == nil {
		return ""
	}
	return strings.Join(c.lines, "\n")
}
