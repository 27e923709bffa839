package theme

import "testing"

func TestSetDarkMode(t *testing.T) {
	defer SetDarkMode(false)

	if IsDarkMode() {
		t.Fatal("should start in light mode")
	}
	if Current() != lightPalette {
		t.Error("light palette not current at start")
	}
	SetDarkMode(true)
	if !IsDarkMode() || Current() != darkPalette {
		t.Error("dark palette not selected")
	}
	if Current().OutlineSelected == Current().OutlineActive {
		t.Error("selected and active outlines must differ")
	}
	SetDarkMode(false)
	if Current() != lightPalette {
		t.Error("light palette not restored")
	}
}
