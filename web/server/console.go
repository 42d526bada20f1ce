package server

import (
	"fmt"
	"time"

	"github.com/halide-rt/halide/pkg/core"
)

// Console message levels
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// ConsoleMessage is one line of render output shown in the browser console
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
}

// WebLogger streams one render's log lines to its console channel and mirrors
// them to stdout. Renderer output arrives through Printf at info level; the
// server reports rejected requests with Warnf and failed renders with Errorf.
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
}

var _ core.Logger = (*WebLogger)(nil)

// NewWebLogger creates a logger for a single render. A nil channel only logs
// to stdout.
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) *WebLogger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
	}
}

// RenderID identifies the render this logger belongs to
func (wl *WebLogger) RenderID() string {
	return wl.renderID
}

// Printf logs at info level
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	wl.log(LevelInfo, format, args...)
}

// Warnf logs a request the server refused to render
func (wl *WebLogger) Warnf(format string, args ...interface{}) {
	wl.log(LevelWarning, format, args...)
}

// Errorf logs a render that started and then failed
func (wl *WebLogger) Errorf(format string, args ...interface{}) {
	wl.log(LevelError, format, args...)
}

func (wl *WebLogger) log(level, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	if level == LevelInfo {
		fmt.Printf("[%s] %s", wl.renderID, message)
	} else {
		fmt.Printf("[%s] %s: %s", wl.renderID, level, message)
	}

	if wl.consoleChan == nil {
		return
	}
	// Never block the render on a slow client
	select {
	case wl.consoleChan <- ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   message,
		Timestamp: time.Now(),
		Level:     level,
	}:
	default:
	}
}
