package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 2 {
		t.Fatalf("ThemeNames() returned %d names, want 2", len(names))
	}
	if names[0] != "Dracula" || names[1] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Dracula Slate]", names)
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Dracula"); got != "Slate" {
		t.Fatalf("NextTheme(Dracula) = %q, want Slate", got)
	}
	if got := NextTheme("Slate"); got != "Dracula" {
		t.Fatalf("NextTheme(Slate) = %q, want Dracula", got)
	}
	if got := NextTheme("Unknown"); got != "Dracula" {
		t.Fatalf("NextTheme(Unknown) = %q, want Dracula", got)
	}
}

func TestGetTheme(t *testing.T) {
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q, want Slate", got)
	}
	if got := GetTheme("Unknown").Name; got != "Dracula" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Dracula (fallback)", got)
	}
}

func TestThemesDefineStockBadges(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, key := range []string{"in stock", "out of stock"} {
			if th.BadgeColors[key] == "" {
				t.Fatalf("%s theme has no badge color for %q", name, key)
			}
		}
	}
}

func TestBadgeStyleNormalizesAvailability(t *testing.T) {
	th := GetTheme("Dracula")
	styles := th.Styles()

	got := styles.BadgeStyle("  In Stock ").GetBackground()
	want := styles.BadgeStyle("in stock").GetBackground()
	if got != want {
		t.Fatalf("BadgeStyle background = %v, want %v", got, want)
	}
	if unknown := styles.BadgeStyle("discontinued").GetBackground(); unknown == want {
		t.Fatalf("unknown availability should fall back to the muted color")
	}
}

func TestWithBackgroundKeepsForegroundAndBadges(t *testing.T) {
	th := GetTheme("Slate")
	base := th.Styles()
	styles := base.WithBackground(th.FocusBg)

	if got := styles.Text.GetBackground(); got != lipgloss.Color(th.FocusBg) {
		t.Fatalf("Text background = %v, want %s", got, th.FocusBg)
	}
	if got := styles.AccentText.GetForeground(); got != base.AccentText.GetForeground() {
		t.Fatalf("AccentText foreground changed to %v", got)
	}
	if base.Text.GetBackground() == styles.Text.GetBackground() {
		t.Fatalf("WithBackground modified the receiver")
	}
	if got := styles.BadgeStyle("limited").GetBackground(); got != lipgloss.Color(th.BadgeColors["limited"]) {
		t.Fatalf("badge background = %v, want limited color", got)
	}
}
