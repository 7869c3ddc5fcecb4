package ui

import (
	"strings"
	"testing"
)

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("RICKDEX_DARK_MODE", "1")
	dark := DetectTheme()
	if !dark.IsDark {
		t.Fatalf("expected dark theme when RICKDEX_DARK_MODE=1")
	}

	t.Setenv("RICKDEX_DARK_MODE", "")
	light := DetectTheme()
	if light.IsDark {
		t.Fatalf("expected light theme when RICKDEX_DARK_MODE is unset")
	}

	t.Setenv("COLORFGBG", "15;0")
	if !DetectTheme().IsDark {
		t.Fatalf("expected dark theme for a black background")
	}
}

func TestThemeByName(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("RICKDEX_DARK_MODE", "")

	if !ThemeByName("dark").IsDark {
		t.Error("dark should be dark")
	}
	if ThemeByName("LIGHT").IsDark {
		t.Error("light should be light")
	}
	if ThemeByName("auto").IsDark {
		t.Error("auto without hints should detect light")
	}
}

func TestStatusColor(t *testing.T) {
	if StatusColor("Alive") != Success {
		t.Error("alive should be success")
	}
	if StatusColor("dead") != Destructive {
		t.Error("dead should be destructive")
	}
	if StatusColor("unknown") != Neutral {
		t.Error("unknown should be neutral")
	}
	if !strings.Contains(DefaultStyles().StatusBadge(""), "unknown") {
		t.Error("empty status renders as unknown")
	}
}
