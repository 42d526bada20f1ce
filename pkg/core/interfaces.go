package core

// Logger receives progress and diagnostic output from the renderer and
// preview server
type Logger interface {
	Printf(format string, args ...interface{})
}
