// Package color decides which background the adaptive palette of the demo
// is drawn for.
//
// Design tokens in internal/tui/design are lipgloss.AdaptiveColor values.
// lipgloss picks the light or dark variant by querying the terminal, which
// fails over some multiplexers and pipes. Initialize fixes the answer up
// front, and ParseTheme maps the --theme flag onto it.
//
//	dark, err := color.ParseTheme("auto")
//	if err != nil {
//	    return err
//	}
//	color.Initialize(dark)
package color
