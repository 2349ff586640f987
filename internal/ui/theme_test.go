package ui

import "testing"

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Dracula" {
		t.Fatalf("ThemeNames()[0] = %q, want Dracula", names[0])
	}
	names[0] = "mutated"
	if ThemeNames()[0] != "Dracula" {
		t.Fatalf("ThemeNames should return a copy")
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Dracula"); got != "Nightfox" {
		t.Fatalf("NextTheme(Dracula) = %q, want Nightfox", got)
	}
	if got := NextTheme("Slate"); got != "Dracula" {
		t.Fatalf("NextTheme(Slate) = %q, want Dracula", got)
	}
	if got := NextTheme("Unknown"); got != "Dracula" {
		t.Fatalf("NextTheme(Unknown) = %q, want Dracula", got)
	}
}

func TestGetTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		if got := GetTheme(name).Name; got != name {
			t.Fatalf("GetTheme(%q).Name = %q", name, got)
		}
	}
	if got := GetTheme("Unknown").Name; got != "Dracula" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Dracula (fallback)", got)
	}
}

func TestBadge_UnknownFallsBackToMuted(t *testing.T) {
	styles := GetTheme("Slate").Styles()
	if got := styles.Badge("nope", "x"); got == "" {
		t.Fatalf("Badge returned empty string")
	}
}
