// Package colors provides ANSI color codes for terminal output of rendered
// envelopes.
package colors

// ANSI color codes for terminal output
const (
	Reset = "\033[0m"
	Red   = "\033[31m"
	Green = "\033[32m"
)

// ForSuccess returns Green for a successful envelope and Red otherwise.
func ForSuccess(ok bool) string {
	if ok {
		return Green
	}
	return Red
}

// Paint wraps s in color and a trailing reset. An empty color leaves s as is.
func Paint(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + Reset
}
