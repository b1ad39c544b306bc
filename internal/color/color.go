package color

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// hasDarkBackground is swapped in tests.
var hasDarkBackground = termenv.HasDarkBackground

// Initialize sets the background adaptive colors resolve against.
func Initialize(isDarkMode bool) {
	lipgloss.SetHasDarkBackground(isDarkMode)
}

// ParseTheme maps "dark", "light" or "auto" to a dark background flag.
// "auto" asks the terminal.
func ParseTheme(theme string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(theme)) {
	case "dark":
		return true, nil
	case "light":
		return false, nil
	case "auto", "":
		return hasDarkBackground(), nil
	}
	return false, fmt.Errorf("unknown theme %q, want auto, dark or light", theme)
}
