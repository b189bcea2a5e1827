package style

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ColorEnabled decides whether output to w should be colored. In auto mode
// color requires a terminal and an unset NO_COLOR.
func ColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Configure sets the process-wide color profile for lipgloss and pterm and
// reports whether color is on.
func Configure(mode string, w io.Writer) bool {
	enabled := ColorEnabled(mode, w)
	if !enabled {
		lipgloss.SetColorProfile(termenv.Ascii)
		pterm.DisableColor()
		return false
	}

	profile := termenv.NewOutput(w).EnvColorProfile()
	if profile == termenv.Ascii {
		// Forced color on a non-terminal.
		profile = termenv.ANSI256
	}
	lipgloss.SetColorProfile(profile)
	pterm.EnableColor()
	return true
}
