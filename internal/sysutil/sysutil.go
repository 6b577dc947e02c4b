// Package sysutil holds small process-level helpers shared by the server
// binary and the HTTP layer.
package sysutil

import (
	"strings"

	"github.com/rs/zerolog"
)

// levelNames maps accepted LOG_LEVEL spellings to zerolog levels.
// "warning" is accepted as an alias for "warn".
var levelNames = map[string]zerolog.Level{
	"trace":   zerolog.TraceLevel,
	"debug":   zerolog.DebugLevel,
	"info":    zerolog.InfoLevel,
	"warn":    zerolog.WarnLevel,
	"warning": zerolog.WarnLevel,
	"error":   zerolog.ErrorLevel,
	"fatal":   zerolog.FatalLevel,
	"panic":   zerolog.PanicLevel,
}

// SetLogLevel configures the global zerolog level from a LOG_LEVEL string.
// Unknown or empty values fall back to info.
func SetLogLevel(lvl string) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(lvl))]
	if !ok {
		l = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(l)
}

var truthy = map[string]bool{"1": true, "true": true, "yes": true, "y": true, "on": true}

// IsTruthy reports whether v spells an affirmative flag value
// (1, true, yes, y, on; case-insensitive, surrounding space ignored).
func IsTruthy(v string) bool {
	return truthy[strings.ToLower(strings.TrimSpace(v))]
}

// FirstNonEmpty returns the first candidate whose trimmed form is non-empty,
// preserving the winner's original spacing. All-blank input yields "".
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
