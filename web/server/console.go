package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Console line levels
const (
	LevelInfo     = "info"
	LevelProgress = "progress"
	LevelError    = "error"
)

// ConsoleMessage is one render log line streamed to the browser
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	// Percent is set on progress lines only
	Percent *float64 `json:"percent,omitempty"`
}

// WebLogger implements core.Logger by sending the render's log lines to a
// console channel. Progress lines are kept out of the server log.
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	msg := newConsoleMessage(wl.renderID, fmt.Sprintf(format, args...), time.Now())

	if msg.Level != LevelProgress {
		fmt.Printf("[%s] %s", wl.renderID, msg.Message)
	}

	if wl.consoleChan == nil {
		return
	}
	select {
	case wl.consoleChan <- msg:
	default:
		// Channel full, drop the line
	}
}

// newConsoleMessage classifies a log line by its prefix
func newConsoleMessage(renderID, message string, now time.Time) ConsoleMessage {
	msg := ConsoleMessage{RenderID: renderID, Message: message, Timestamp: now, Level: LevelInfo}

	line := strings.TrimSpace(message)
	switch {
	case strings.HasPrefix(line, "Progress:"):
		msg.Level = LevelProgress
		var percent float64
		if _, err := fmt.Sscanf(strings.TrimSpace(strings.TrimPrefix(line, "Progress:")), "%f%%", &percent); err == nil {
			msg.Percent = &percent
		}
	case strings.HasPrefix(line, "Error"), strings.HasPrefix(line, "Render failed"):
		msg.Level = LevelError
	}
	return msg
}
