package logger

import (
	"github.com/charmbracelet/log"
)

// shortIDLen is how much of a session id ends up in a log prefix.
const shortIDLen = 8

// ForSession creates a logger prefixed with a component name and a short session id.
func ForSession(component, sessionID string) *log.Logger {
	id := sessionID
	if len(id) > shortIDLen {
		id = id[:shortIDLen]
	}
	if id == "" {
		return New(component)
	}
	return New(component + " " + id)
}
