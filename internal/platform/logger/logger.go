package logger

import (
	"log"
	"os"
)

// New returns a stderr logger for the CLI. The library itself never logs;
// diagnostics belong to the caller.
func New() *log.Logger {
	return log.New(os.Stderr, "", log.LstdFlags)
}
