package config

import (
	"os"

	"golang.org/x/term"
)

// EnableColorOutput reports whether log lines written to stream may carry
// ANSI colors: stream must be a terminal able to interpret them and the
// user must not have set NO_COLOR.
func EnableColorOutput(stream *os.File) bool {
	if v, ok := os.LookupEnv("NO_COLOR"); ok && v != "" {
		return false
	}
	if !term.IsTerminal(int(stream.Fd())) {
		return false
	}
	return enableVirtualTerminal(stream)
}
