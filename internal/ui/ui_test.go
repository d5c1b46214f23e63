package ui

import (
	"os"
	"strings"
	"testing"
)

func TestSetTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	tests := []struct {
		name string
		want string
	}{
		{"dark", "dark"},
		{"light", "light"},
		{"none", "none"},
		{"solarized", "dark"},
	}
	for _, tt := range tests {
		SetTheme(tt.name)
		if got := GetCurrentTheme().Name; got != tt.want {
			t.Errorf("SetTheme(%q) selected %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestInitTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")
	InitTheme(false)
	if GetCurrentTheme().Name != "dark" {
		t.Errorf("expected dark theme, got %q", GetCurrentTheme().Name)
	}
	InitTheme(true)
	if GetCurrentTheme().Name != "none" {
		t.Errorf("--no-color should disable colors, got %q", GetCurrentTheme().Name)
	}

	t.Setenv("NO_COLOR", "1")
	InitTheme(false)
	if GetCurrentTheme().Name != "none" {
		t.Errorf("NO_COLOR should disable colors, got %q", GetCurrentTheme().Name)
	}
}

func TestInitThemeForNonTerminal(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if IsTerminal(f) {
		t.Fatal("a regular file is not a terminal")
	}
	if IsTerminal(nil) {
		t.Fatal("nil is not a terminal")
	}
	InitThemeFor(false, f)
	if GetCurrentTheme().Name != "none" {
		t.Errorf("redirected output should disable colors, got %q", GetCurrentTheme().Name)
	}
}

func TestColorsFollowTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	SetCurrentTheme(NoColorTheme)
	for _, c := range []string{ColorReset(), ColorBold(), ColorRed(), ColorGreen(), ColorCyan(), ColorYellow()} {
		if c != "" {
			t.Errorf("no-color theme produced %q", c)
		}
	}
	if GetCurrentBoxTheme() != NoColorBoxTheme {
		t.Error("no-color theme should select the plain box theme")
	}

	SetCurrentTheme(DarkTheme)
	if ColorGreen() != DarkTheme.Success || ColorReset() != "\033[0m" {
		t.Error("dark theme colors not returned")
	}
}

func TestRenderBoxes(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())
	SetCurrentTheme(NoColorTheme)

	banner := RenderBanner("infcalc", "interactive mode")
	if !strings.Contains(banner, "infcalc") || !strings.Contains(banner, "interactive mode") {
		t.Errorf("banner misses its text:\n%s", banner)
	}
	if !strings.Contains(banner, "╔") {
		t.Errorf("banner should use a double border:\n%s", banner)
	}

	panel := RenderPanel("Status", "radix: 10", "strategy: auto")
	for _, want := range []string{"Status", "radix: 10", "strategy: auto", "╭"} {
		if !strings.Contains(panel, want) {
			t.Errorf("panel misses %q:\n%s", want, panel)
		}
	}
}
