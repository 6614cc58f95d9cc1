package stats

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/verte-zerg/tuircle/internal/scoring"
)

const colorReset = "\x1b[0m"

// ShouldUseColor reports whether w is a terminal and NO_COLOR is unset.
func ShouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// TerminalWidth returns the width of stdout, or fallback when unknown.
func TerminalWidth(fallback int) int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

func paintAccuracy(acc float64, useColor bool) string {
	text := fmt.Sprintf("%.2f%%", acc)
	if !useColor {
		return text
	}
	return paint(text, acc)
}

func paint(text string, acc float64) string {
	c := scoring.ColorForAccuracy(acc)
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s%s", c.R, c.G, c.B, text, colorReset)
}
