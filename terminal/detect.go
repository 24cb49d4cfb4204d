package terminal

import (
	"os"
	"strings"
)

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	return detectColorMode(os.Getenv)
}

// detectColorMode is the env-injectable core of DetectColorMode
func detectColorMode(getenv func(string) string) ColorMode {
	// NO_COLOR (https://no-color.org) wins over everything
	if getenv("NO_COLOR") != "" {
		return ColorModeNone
	}

	colorterm := strings.ToLower(getenv("COLORTERM"))
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	if getenv("KITTY_WINDOW_ID") != "" ||
		getenv("KONSOLE_VERSION") != "" ||
		getenv("ITERM_SESSION_ID") != "" ||
		getenv("ALACRITTY_WINDOW_ID") != "" ||
		getenv("ALACRITTY_LOG") != "" ||
		getenv("WEZTERM_PANE") != "" {
		return ColorModeTrueColor
	}

	term := strings.ToLower(getenv("TERM"))
	switch {
	case term == "" || term == "dumb":
		return ColorModeNone
	case strings.Contains(term, "truecolor"),
		strings.Contains(term, "24bit"),
		strings.Contains(term, "direct"):
		return ColorModeTrueColor
	case strings.Contains(term, "256"):
		return ColorMode256
	case term == "linux", strings.HasPrefix(term, "vt"):
		return ColorMode16
	}

	// xterm, screen, tmux without explicit depth: palette addressing is near universal
	return ColorMode256
}
