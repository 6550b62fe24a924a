package app

import (
	"sort"
	"strings"
)

type HotkeyRenderer struct {
	hotkeys  []Hotkey
	resolver HotkeyResolver
}

func NewHotkeyRenderer(hotkeys []Hotkey, resolver HotkeyResolver) *HotkeyRenderer {
	return &HotkeyRenderer{hotkeys: hotkeys, resolver: resolver}
}

func (r *HotkeyRenderer) Render(m *Model) string {
	if r == nil || r.resolver == nil {
		return ""
	}
	visible := FilterHotkeys(r.hotkeys, r.resolver.ActiveContexts(m))
	parts := make([]string, 0, len(visible))
	for _, hk := range visible {
		parts = append(parts, hk.Key+" "+hk.Label)
	}
	return strings.Join(parts, " • ")
}

// FilterHotkeys keeps hotkeys in the given contexts, ordered by context
// position first and priority second.
func FilterHotkeys(hotkeys []Hotkey, contexts []HotkeyContext) []Hotkey {
	if len(hotkeys) == 0 || len(contexts) == 0 {
		return nil
	}
	rank := map[HotkeyContext]int{}
	for i, ctx := range contexts {
		if _, ok := rank[ctx]; !ok {
			rank[ctx] = i
		}
	}
	var out []Hotkey
	for _, hk := range hotkeys {
		if _, ok := rank[hk.Context]; ok {
			out = append(out, hk)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := rank[out[i].Context], rank[out[j].Context]
		if ri != rj {
			return ri > rj
		}
		if out[i].Priority == out[j].Priority {
			return out[i].Key < out[j].Key
		}
		return out[i].Priority < out[j].Priority
	})
	return out
}
