package color

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		isDarkMode bool
		expected   bool
	}{
		{"set dark mode", true, true},
		{"set light mode", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Initialize(tt.isDarkMode)
			if lipgloss.HasDarkBackground() != tt.expected {
				t.Errorf("lipgloss.HasDarkBackground() got %v, want %v after Initialize(%v)", lipgloss.HasDarkBackground(), tt.expected, tt.isDarkMode)
			}
		})
	}
}

func TestParseTheme(t *testing.T) {
	orig := hasDarkBackground
	defer func() { hasDarkBackground = orig }()
	hasDarkBackground = func() bool { return true }

	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{in: "dark", want: true},
		{in: "Light", want: false},
		{in: "auto", want: true},
		{in: "", want: true},
		{in: "sepia", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseTheme(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
