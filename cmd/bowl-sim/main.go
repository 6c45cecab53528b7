package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/bowling/internal/simulator"
)

// Default configuration constants.
const (
	defaultGames   = 10
	defaultResends = 1
	defaultTimeout = 5 * time.Second
	runTimeout     = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		games      = flag.Int("games", defaultGames, "Number of games to play")
		seed       = flag.Int64("seed", time.Now().UnixNano(), "Seed for the shot generator")
		resends    = flag.Int("resends", defaultResends, "Extra copies of each shot request")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Write the played games to this JSON file")
		logFile    = flag.String("log", "", "Also write logs to this file")
		verbose    = flag.Bool("verbose", false, "Log every shot")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		simulator.ShowHelp()
		return
	}

	if err := simulator.SetupLogging(*logFile, *verbose); err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg := &simulator.Config{
		BaseURL:    *baseURL,
		Games:      *games,
		Seed:       *seed,
		Resends:    *resends,
		Timeout:    *timeout,
		OutputFile: *outputFile,
		Verbose:    *verbose,
	}

	if _, err := simulator.Run(ctx, cfg); err != nil {
		_, _ = os.Stderr.WriteString("simulation failed: " + err.Error() + "\n")
		cancel()
		os.Exit(1)
	}
}
