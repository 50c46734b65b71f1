package main

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

const (
	outcomeOK      = "ok"
	outcomeFailed  = "failed"
	outcomeNoMatch = "no match"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func colorizeOutcome(label string, colorize bool) string {
	if !colorize {
		return label
	}
	switch label {
	case outcomeOK:
		return ansiGreen + label + ansiReset
	case outcomeFailed:
		return ansiRed + label + ansiReset
	case outcomeNoMatch:
		return ansiYellow + label + ansiReset
	default:
		return label
	}
}

func formatElapsed(elapsed time.Duration) string {
	if elapsed <= 0 {
		return "-"
	}
	return elapsed.Round(time.Millisecond).String()
}

func truncateDetail(detail string, limit int) string {
	if limit <= 3 || len(detail) <= limit {
		return detail
	}
	return detail[:limit-3] + "..."
}
