package core

import "testing"

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in       string
		expected Color
		ok       bool
	}{
		{"#00f0ff", "#00f0ff", true},
		{"#FF0055", "#ff0055", true},
		{"  #764abc ", "#764abc", true},
		{"00f0ff", "", false},
		{"#00f0f", "", false},
		{"#00g0ff", "", false},
		{"", "", false},
	}

	for _, tc := range tests {
		got, err := ParseHexColor(tc.in)
		if tc.ok && err != nil {
			t.Errorf("ParseHexColor(%q) error = %v", tc.in, err)
			continue
		}
		if !tc.ok && err == nil {
			t.Errorf("ParseHexColor(%q) expected error", tc.in)
			continue
		}
		if got != tc.expected {
			t.Errorf("ParseHexColor(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}

func TestPaletteEntriesAreHex(t *testing.T) {
	for _, p := range Palette {
		if !p.Hex.IsHex() {
			t.Errorf("palette color %s = %q is not a hex triplet", p.Name, p.Hex)
		}
	}
	if PaletteName(DefaultAccent) != "TECH CYAN" {
		t.Errorf("PaletteName(DefaultAccent) = %q, expected TECH CYAN", PaletteName(DefaultAccent))
	}
	if PaletteName("#123456") != "#123456" {
		t.Error("PaletteName should echo unknown colors")
	}
}

func TestParseAvatar(t *testing.T) {
	for _, a := range Avatars {
		got, err := ParseAvatar(string(a.Kind))
		if err != nil || got != a.Kind {
			t.Errorf("ParseAvatar(%q) = %q, %v", a.Kind, got, err)
		}
	}
	if got, err := ParseAvatar(" Scout "); err != nil || got != AvatarScout {
		t.Errorf("ParseAvatar(\" Scout \") = %q, %v", got, err)
	}
	if _, err := ParseAvatar("paladin"); err == nil {
		t.Error("ParseAvatar(\"paladin\") expected error")
	}
	if AvatarKind("paladin").Info().Kind != DefaultAvatar {
		t.Error("Info() of unknown avatar should fall back to the default")
	}
}
