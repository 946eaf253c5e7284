package display

import (
	"fmt"
	"os"
	"time"
)

// ANSI color codes
const (
	reset = "\033[0m"
	bold  = "\033[1m"
	dim   = "\033[2m"

	red    = "\033[31m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
	white  = "\033[37m"

	brightRed    = "\033[91m"
	brightGreen  = "\033[92m"
	brightYellow = "\033[93m"
	brightBlue   = "\033[94m"
	brightCyan   = "\033[96m"
	brightWhite  = "\033[97m"
)

// ────────────────────────────────────────────────────────────
// Log-level helpers (colored prefixes for CLI output)
// ────────────────────────────────────────────────────────────

// Step prints a conversion pipeline step like "  [2/4] Chunking text..."
func Step(step, total int, msg string) {
	fmt.Fprintf(os.Stdout, "  %s%s[%d/%d]%s %s%s%s\n",
		bold, brightCyan, step, total, reset,
		white, msg, reset,
	)
}

// StepDetail prints an indented detail line under a step.
func StepDetail(msg string) {
	fmt.Fprintf(os.Stdout, "        %s%s%s\n", dim+white, msg, reset)
}

// StepWarn prints a warning detail under a step.
func StepWarn(msg string) {
	fmt.Fprintf(os.Stdout, "        %s%s⚠ %s%s\n", yellow, bold, msg, reset)
}

// Info prints a general info message.
func Info(msg string) {
	fmt.Fprintf(os.Stdout, "  %s%sℹ%s %s\n", brightBlue, bold, reset, msg)
}

// Success prints a green success message.
func Success(msg string) {
	fmt.Fprintf(os.Stdout, "  %s%s✓%s %s\n", brightGreen, bold, reset, msg)
}

// Warn prints a yellow warning message.
func Warn(msg string) {
	fmt.Fprintf(os.Stdout, "  %s%s⚠%s %s%s%s\n", brightYellow, bold, reset, yellow, msg, reset)
}

// ErrorMsg prints a red error message.
func ErrorMsg(msg string) {
	fmt.Fprintf(os.Stderr, "  %s%s✗%s %s%s%s\n", brightRed, bold, reset, red, msg, reset)
}

// Header prints a section header line.
func Header(msg string) {
	fmt.Fprintln(os.Stdout)
	fmt.Fprintf(os.Stdout, "  %s%s%s%s\n", bold, brightCyan, msg, reset)
	fmt.Fprintf(os.Stdout, "  %s%s%s%s\n", dim, cyan, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━", reset)
}

// KeyValue prints a labeled value.
func KeyValue(key string, value interface{}) {
	paddedKey := padRight(key, 18)
	fmt.Fprintf(os.Stdout, "    %s%s%s  %s%v%s\n", dim, paddedKey, reset, brightWhite, value, reset)
}

func padRight(s string, width int) string {
	for len(s) < width {
		s += " "
	}
	return s
}

// ────────────────────────────────────────────────────────────
// HTTP Request Log — colorized request logging for the server
// ────────────────────────────────────────────────────────────

// LogRequest prints a colorized HTTP request log line to stdout.
func LogRequest(method, path string, status int, duration time.Duration, remote string) {
	methodColor := colorForMethod(method)
	statusColor := colorForStatus(status)
	dur := formatDuration(duration)

	fmt.Fprintf(os.Stdout, "  %s%s%-7s%s %s%-35s%s %s%s%d%s %s%s%s %s%s%s\n",
		bold, methodColor, method, reset,
		white, path, reset,
		bold, statusColor, status, reset,
		dim, dur, reset,
		dim+white, remote, reset,
	)
}

func colorForMethod(method string) string {
	switch method {
	case "GET":
		return brightBlue
	case "POST":
		return brightGreen
	case "PUT", "PATCH":
		return brightYellow
	case "DELETE":
		return brightRed
	case "OPTIONS":
		return dim + white
	default:
		return white
	}
}

func colorForStatus(code int) string {
	switch {
	case code >= 500:
		return brightRed
	case code >= 400:
		return brightYellow
	case code >= 300:
		return brightCyan
	case code >= 200:
		return brightGreen
	default:
		return white
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dμs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
}
