// Package output provides terminal output utilities for the flowforge CLI.
package output

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the shared CLI logger. Mutation engines and stores log
// through the package-level helpers below; only the levels the CLI
// actually emits are exposed.
var Logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
})

// SetupLogging reconfigures the logger for the requested verbosity.
// Verbose runs get debug level plus timestamps and caller locations.
func SetupLogging(verbose bool) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	Logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: verbose,
		ReportCaller:    verbose,
	})
}

// Debug logs workspace and engine internals, visible with --verbose.
func Debug(msg string, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Warn logs a recoverable problem, like a reset reference that did not
// resolve.
func Warn(msg string, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

// Error logs a failure surfaced to the user.
func Error(msg string, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}

// Print writes to stdout without any log formatting. Generated source
// and structured output go through here so they stay pipeable.
func Print(msg string) {
	os.Stdout.WriteString(msg)
}

// Println writes to stdout with a trailing newline.
func Println(msg string) {
	os.Stdout.WriteString(msg + "\n")
}
