package tui

import (
	"os"
	"strings"
	"sync"
)

// Terminal apps can't change the user's font, so the sidebar offers Unicode
// and ASCII glyph sets for twisties, dividers and breadcrumb arrows.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference applies a configured name first, then the
// WIKITREE_TUI_GLYPHS override. Unknown values are ignored.
func applyGlyphPreference(configured string) {
	for _, v := range []string{configured, os.Getenv("WIKITREE_TUI_GLYPHS")} {
		if gs, ok := parseGlyphSet(v); ok {
			setGlyphs(gs)
		}
	}
}

func parseGlyphSet(v string) (glyphSet, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "unicode", "utf8":
		return glyphSetUnicode, true
	case "ascii":
		return glyphSetASCII, true
	default:
		return glyphSetUnicode, false
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphTwistyCollapsed() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "▸"
}

func glyphTwistyExpanded() string {
	if glyphs() == glyphSetASCII {
		return "v"
	}
	return "▾"
}

// glyphTabs marks a page whose children render as tabs.
func glyphTabs() string {
	if glyphs() == glyphSetASCII {
		return "+"
	}
	return "…"
}

func glyphArrow() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "›"
}

func glyphHRule() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}
