package theme

import (
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		themeName string
		wantName  string
	}{
		{name: "load mocha theme", themeName: "mocha", wantName: "mocha"},
		{name: "load macchiato theme", themeName: "macchiato", wantName: "macchiato"},
		{name: "load frappe theme", themeName: "frappe", wantName: "frappe"},
		{name: "load latte theme", themeName: "latte", wantName: "latte"},
		{name: "name is case insensitive", themeName: "Latte", wantName: "latte"},
		{name: "empty name defaults to mocha", themeName: "", wantName: "mocha"},
		{name: "invalid theme falls back to mocha", themeName: "nonexistent", wantName: "mocha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme, err := Load(tt.themeName)
			if err != nil {
				t.Fatalf("Load(%q) unexpected error: %v", tt.themeName, err)
			}
			if theme.Name != tt.wantName {
				t.Errorf("Load(%q).Name = %q, want %q", tt.themeName, theme.Name, tt.wantName)
			}
		})
	}
}

func TestLoad_ThemeColors(t *testing.T) {
	for _, name := range Available() {
		theme, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%s) unexpected error: %v", name, err)
		}

		colors := map[string]string{
			"Bg":          theme.Bg,
			"BgHighlight": theme.BgHighlight,
			"BgSelection": theme.BgSelection,
			"Fg":          theme.Fg,
			"FgMuted":     theme.FgMuted,
			"Accent":      theme.Accent,
			"Double":      theme.Double,
			"Single":      theme.Single,
			"Evening":     theme.Evening,
			"Warning":     theme.Warning,
		}
		for field, hex := range colors {
			if len(hex) != 7 || hex[0] != '#' {
				t.Errorf("%s: theme.%s = %q, want #RRGGBB", name, field, hex)
			}
		}
	}
}

func TestApplyDefaults(t *testing.T) {
	th := &Theme{Accent: "#ff0000", Single: "#00ff00"}
	th.applyDefaults()

	if th.Double != "#ff0000" {
		t.Errorf("Double = %q, want accent", th.Double)
	}
	if th.Evening != "#00ff00" {
		t.Errorf("Evening = %q, want single", th.Evening)
	}
	if th.Warning != "#ff0000" {
		t.Errorf("Warning = %q, want accent", th.Warning)
	}
}

func TestAvailable(t *testing.T) {
	available := Available()

	expected := []string{"mocha", "macchiato", "frappe", "latte"}
	if len(available) != len(expected) {
		t.Fatalf("Available() returned %d themes, want %d", len(available), len(expected))
	}
	for i, want := range expected {
		if available[i] != want {
			t.Errorf("Available()[%d] = %q, want %q", i, available[i], want)
		}
	}
}

func TestIsAvailable(t *testing.T) {
	tests := []struct {
		name     string
		theme    string
		expected bool
	}{
		{name: "exact match", theme: "mocha", expected: true},
		{name: "case insensitive", theme: "Mocha", expected: true},
		{name: "missing theme", theme: "unknown", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAvailable(tt.theme); got != tt.expected {
				t.Errorf("IsAvailable(%q) = %t, want %t", tt.theme, got, tt.expected)
			}
		})
	}
}

func TestBlendColors(t *testing.T) {
	tests := []struct {
		a, b  string
		ratio float64
		want  string
	}{
		{"#000000", "#ffffff", 0, "#000000"},
		{"#000000", "#ffffff", 1, "#ffffff"},
		{"#000000", "#ffffff", 2, "#ffffff"},
		{"#ff0000", "#0000ff", 0.5, "#800080"},
		{"nope", "#ffffff", 0.5, "nope"},
	}
	for _, tt := range tests {
		if got := blendColors(tt.a, tt.b, tt.ratio); got != tt.want {
			t.Errorf("blendColors(%q, %q, %v) = %q, want %q", tt.a, tt.b, tt.ratio, got, tt.want)
		}
	}
}
