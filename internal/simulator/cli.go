package simulator

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/bowling/pkg/logger"
)

const logFilePermission = 0o600

// SetupLogging initializes the global logger, mirroring output to logFile
// when it is set.
func SetupLogging(logFile string, verbose bool) error {
	var w io.Writer = os.Stdout
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
		if err != nil {
			return fmt.Errorf("failed to create log file: %w", err)
		}
		w = io.MultiWriter(os.Stdout, file)
	}
	if err := logger.Init(logger.WithWriter(w)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information for the simulator.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Bowling lane simulator
======================

Plays random legal games against a running lane service and checks every
frame and score it reports.

Usage:
  go run ./cmd/bowl-sim [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -games int
        Number of games to play (default 10)
  -seed int
        Seed for the shot generator (default: current time)
  -resends int
        Extra copies of each shot request, to check de-duplication (default 1)
  -timeout duration
        HTTP request timeout (default 5s)
  -output string
        Write the played games to this JSON file
  -log string
        Also write logs to this file
  -verbose
        Log every shot
  -help
        Show this help message

Examples:
  go run ./cmd/bowl-sim -games 100 -seed 42
  go run ./cmd/bowl-sim -url http://localhost:8080 -resends 3 -verbose
`)
}
