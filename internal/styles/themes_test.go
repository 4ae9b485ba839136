package styles

import "testing"

func TestIsValidHexColor(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		// Valid 6-char hex colors
		{"valid uppercase", "#FF5500", true},
		{"valid lowercase", "#aabbcc", true},
		{"valid mixed case", "#AbCdEf", true},
		{"valid all zeros", "#000000", true},
		{"valid all Fs", "#FFFFFF", true},

		// Valid 8-char hex colors with alpha
		{"valid with alpha 80", "#00000080", true},
		{"valid with alpha FF", "#FF5500FF", true},
		{"valid with alpha 00", "#aabbcc00", true},

		// Invalid formats - wrong length
		{"invalid 3-char", "#FFF", false},
		{"invalid 4-char", "#FFFF", false},
		{"invalid 5-char", "#FF550", false},
		{"invalid 7-char", "#FF55001", false},
		{"invalid 9-char", "#FF5500801", false},

		// Invalid formats - no hash
		{"no hash 6-char", "FF5500", false},
		{"no hash 8-char", "FF550080", false},

		// Invalid formats - invalid characters
		{"invalid char G", "#GGGGGG", false},
		{"invalid char Z", "#ZZZZZZ", false},
		{"invalid char space", "#FF 550", false},
		{"invalid char dash", "#FF-550", false},

		// Edge cases
		{"empty string", "", false},
		{"just hash", "#", false},
		{"very long", "#FF5500FF5500FF5500", false},
		{"hash only no digits", "#XXXXXX", false},

		// Boundary cases
		{"exactly 6 hex digits", "#123456", true},
		{"exactly 8 hex digits", "#12345678", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsValidHexColor(tt.input)
			if got != tt.valid {
				t.Errorf("IsValidHexColor(%q) = %v, want %v", tt.input, got, tt.valid)
			}
		})
	}
}

func TestApplyThemeSwitchesPalette(t *testing.T) {
	defer ApplyTheme(DefaultThemeName)

	ApplyTheme("light")
	if GetCurrentThemeName() != "light" {
		t.Fatalf("current theme = %q, want light", GetCurrentThemeName())
	}
	if string(BgPrimary) != LightTheme.Colors.BgPrimary {
		t.Errorf("BgPrimary = %q, want %q", BgPrimary, LightTheme.Colors.BgPrimary)
	}
	if GetMarkdownTheme() != "light" {
		t.Errorf("markdown theme = %q, want light", GetMarkdownTheme())
	}
	if got := PanelActive.GetBorderTopForeground(); got != BorderActive {
		t.Errorf("panel border not rebuilt: got %v, want %v", got, BorderActive)
	}
}

func TestApplyThemeUnknownFallsBack(t *testing.T) {
	defer ApplyTheme(DefaultThemeName)

	ApplyTheme("neon")
	if GetCurrentThemeName() != "dark" {
		t.Errorf("current theme = %q, want dark", GetCurrentThemeName())
	}
	if string(Primary) != DarkTheme.Colors.Primary {
		t.Errorf("Primary = %q, want %q", Primary, DarkTheme.Colors.Primary)
	}
}

func TestApplyThemeWithOverrides(t *testing.T) {
	defer ApplyTheme(DefaultThemeName)

	ApplyThemeWithOverrides("dark", map[string]string{
		"primary": "#FF5500",
		"info":    "not-a-color",
		"bogus":   "#123456",
	})
	if string(Primary) != "#FF5500" {
		t.Errorf("Primary = %q, want override", Primary)
	}
	if string(Info) != DarkTheme.Colors.Info {
		t.Errorf("invalid override should be ignored, Info = %q", Info)
	}
	if DarkTheme.Colors.Primary == "#FF5500" {
		t.Error("override leaked into the registered theme")
	}
}

func TestSuccessOverridePicksReadableToastText(t *testing.T) {
	defer ApplyTheme(DefaultThemeName)

	ApplyThemeWithOverrides("dark", map[string]string{"success": "#FFFF00"})
	if ToastSuccessTextColor != "#000000" {
		t.Errorf("text on yellow = %q, want black", ToastSuccessTextColor)
	}

	ApplyThemeWithOverrides("dark", map[string]string{"success": "#000080"})
	if ToastSuccessTextColor != "#FFFFFF" {
		t.Errorf("text on navy = %q, want white", ToastSuccessTextColor)
	}
}

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
	}{
		{"#FF8000", RGB{255, 128, 0}},
		{"#00000080", RGB{0, 0, 0}},
		{"#0a0B0c", RGB{10, 11, 12}},
		{"bad", RGB{}},
	}
	for _, tt := range tests {
		if got := HexToRGB(tt.in); got != tt.want {
			t.Errorf("HexToRGB(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestListThemes(t *testing.T) {
	got := ListThemes()
	if len(got) != 2 || got[0] != "dark" || got[1] != "light" {
		t.Errorf("ListThemes() = %v, want [dark light]", got)
	}
}
