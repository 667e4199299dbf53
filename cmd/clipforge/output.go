package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"clipforge/internal/projectstore"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

var titleCaser = cases.Title(language.Und)

// phaseLabel renders a lifecycle or job phase name for display.
func phaseLabel(value string) string {
	if value == "" {
		return "-"
	}
	return titleCaser.String(value)
}

func statusColor(status projectstore.Status) string {
	switch status {
	case projectstore.StatusExported:
		return ansiGreen
	case projectstore.StatusRendering:
		return ansiBlue
	case projectstore.StatusFailed:
		return ansiRed
	case projectstore.StatusPending:
		return ansiYellow
	default:
		return ""
	}
}

func colorizeStatus(status projectstore.Status, colorize bool) string {
	label := phaseLabel(string(status))
	if !colorize {
		return label
	}
	if color := statusColor(status); color != "" {
		return color + label + ansiReset
	}
	return label
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
