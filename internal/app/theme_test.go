package app

import (
	"fmt"
	"testing"

	"keepnotes/internal/types"
)

func TestEveryBackgroundHasSwatchColor(t *testing.T) {
	seen := map[string]types.Background{}
	for _, bg := range types.Backgrounds() {
		if bg == types.BackgroundNone {
			continue
		}
		c := backgroundColor(bg)
		if c == nil {
			t.Fatalf("expected color for %q", bg)
		}
		r, g, b, _ := c.RGBA()
		key := fmt.Sprint(r, g, b)
		if other, ok := seen[key]; ok {
			t.Fatalf("%q and %q share a swatch", bg, other)
		}
		seen[key] = bg
	}
}

func TestCardBorderStyleHighlightsSelection(t *testing.T) {
	plain := cardBorderStyle(types.BackgroundYellow, false)
	selected := cardBorderStyle(types.BackgroundYellow, true)
	if plain.GetBorderStyle().Top == selected.GetBorderStyle().Top {
		t.Fatalf("expected selected card border to differ")
	}
}
