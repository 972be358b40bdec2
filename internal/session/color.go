package session

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// ResolveColor decides whether the prompt is colourised. mode is always,
// never or auto; auto enables colour only for a terminal and when NO_COLOR
// is unset.
func ResolveColor(mode string, out io.Writer) bool {
	switch strings.ToLower(mode) {
	case "always":
		return true
	case "never":
		return false
	default:
		return shouldUseColorAuto(out)
	}
}

func shouldUseColorAuto(out io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
