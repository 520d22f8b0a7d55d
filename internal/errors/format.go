package errors

import (
	"fmt"
	"strings"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// colorEnabled controls whether ANSI colors are used.
var colorEnabled = true

// DisableColors disables ANSI color output.
func DisableColors() {
	colorEnabled = false
}

// EnableColors enables ANSI color output.
func EnableColors() {
	colorEnabled = true
}

// color wraps text in ANSI color codes if colors are enabled.
func color(code, text string) string {
	if !colorEnabled {
		return text
	}
	return code + text + colorReset
}

// Format renders the error for terminal display: code, message, location,
// detail and suggestion on separate lines.
func Format(e *Error) string {
	var b strings.Builder

	header := e.Message
	if e.Code != "" {
		header = fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	b.WriteString(color(colorRed+colorBold, header))
	b.WriteString("\n")

	if e.Location != nil {
		b.WriteString(color(colorGray, "  at "+e.Location.String()))
		b.WriteString("\n")
	}

	if e.Detail != "" {
		b.WriteString("  " + e.Detail + "\n")
	}

	if e.Wrapped != nil {
		b.WriteString(color(colorGray, "  caused by: "+e.Wrapped.Error()))
		b.WriteString("\n")
	}

	if e.Suggestion != "" {
		b.WriteString(color(colorCyan, "  hint: "+e.Suggestion))
		b.WriteString("\n")
	}

	return b.String()
}
