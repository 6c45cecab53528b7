package simulator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/okian/bowling/internal/domain/model"
	"github.com/okian/bowling/pkg/logger"
)

const (
	directoryPermission = 0o750
	perfectScore        = 300
)

// ErrMismatch is returned when the service disagrees with the local scoring.
var ErrMismatch = errors.New("score mismatch")

// Run plays cfg.Games random games against the service and verifies each
// one. It returns the run statistics even when some games fail.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	log := logger.Get().Named("simulator")
	stats := &Stats{StartTime: time.Now()}

	log.Info(ctx, "starting bowling simulation",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("games", cfg.Games),
		logger.Int("resends", cfg.Resends),
		logger.Duration("timeout", cfg.Timeout),
		logger.Any("seed", cfg.Seed),
	)

	client := NewClient(cfg.BaseURL, cfg.Timeout)
	if err := client.Health(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	r := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // reproducible games, not security
	played := make([]PlayedGame, 0, cfg.Games)
	var failures []error

	for i := 0; i < cfg.Games; i++ {
		if err := ctx.Err(); err != nil {
			return finish(stats), err
		}
		g, err := playGame(ctx, client, r, cfg, stats)
		if err != nil {
			stats.GamesFailed++
			failures = append(failures, fmt.Errorf("game %d: %w", i+1, err))
			log.Warn(ctx, "game failed", logger.Int("game", i+1), logger.Error(err))
			continue
		}
		played = append(played, g)
		stats.GamesPlayed++
		if g.Total > stats.HighScore {
			stats.HighScore = g.Total
		}
		if g.Total == perfectScore {
			stats.PerfectGames++
		}
		log.Info(ctx, "game verified",
			logger.String("game_id", g.GameID),
			logger.Int("total", g.Total),
			logger.Int("shots", len(g.Shots)),
		)
	}

	if cfg.OutputFile != "" {
		if err := saveGames(cfg.OutputFile, played); err != nil {
			log.Warn(ctx, "failed to save games", logger.Error(err))
		} else {
			log.Info(ctx, "games saved to file", logger.String("filename", cfg.OutputFile))
		}
	}

	displayFinalStats(ctx, log, finish(stats))
	return stats, errors.Join(failures...)
}

func finish(stats *Stats) *Stats {
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	return stats
}

// playGame resets the lane, sends one generated game and checks the result.
func playGame(ctx context.Context, client *Client, r *rand.Rand, cfg *Config, stats *Stats) (PlayedGame, error) {
	shots, err := GenerateGame(r)
	if err != nil {
		return PlayedGame{}, err
	}

	fresh, err := client.Reset(ctx)
	if err != nil {
		return PlayedGame{}, fmt.Errorf("reset: %w", err)
	}

	for i, s := range shots {
		requestID := uuid.NewString()
		for attempt := 0; attempt <= cfg.Resends; attempt++ {
			g, err := client.Shoot(ctx, requestID, s)
			stats.ShotsSent++
			if err != nil {
				return PlayedGame{}, fmt.Errorf("shot %d (%s): %w", i+1, s, err)
			}
			if g.Duplicate != (attempt > 0) {
				return PlayedGame{}, fmt.Errorf("%w: shot %d attempt %d duplicate=%v", ErrMismatch, i+1, attempt+1, g.Duplicate)
			}
			if g.Duplicate {
				stats.Duplicates++
			}
			if cfg.Verbose {
				logger.Get().Debug(ctx, "shot sent",
					logger.String("shot", s.String()),
					logger.Int("frame", g.CurrentFrame+1),
					logger.Bool("duplicate", g.Duplicate),
				)
			}
		}
	}

	got, err := client.Game(ctx)
	if err != nil {
		return PlayedGame{}, fmt.Errorf("read game: %w", err)
	}
	if got.GameID != fresh.GameID {
		return PlayedGame{}, fmt.Errorf("game changed under the simulation: %s -> %s", fresh.GameID, got.GameID)
	}
	if err := verifyGame(shots, got); err != nil {
		return PlayedGame{}, fmt.Errorf("%w: %w", ErrMismatch, err)
	}
	return PlayedGame{GameID: got.GameID, Shots: tokens(shots), Total: got.Total}, nil
}

func tokens(shots []model.Shot) []string {
	out := make([]string, len(shots))
	for i, s := range shots {
		out[i] = s.String()
	}
	return out
}

// saveGames writes the played games as a JSON array.
func saveGames(filename string, games []PlayedGame) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(games, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal games: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	log.Info(ctx, "final statistics",
		logger.Int("gamesPlayed", stats.GamesPlayed),
		logger.Int("gamesFailed", stats.GamesFailed),
		logger.Int("shotsSent", stats.ShotsSent),
		logger.Int("duplicates", stats.Duplicates),
		logger.Int("perfectGames", stats.PerfectGames),
		logger.Int("highScore", stats.HighScore),
		logger.Duration("duration", stats.Duration),
	)
}

// LoadGames reads back a file written by Run.
func LoadGames(filename string) ([]PlayedGame, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var games []PlayedGame
	if err := json.Unmarshal(data, &games); err != nil {
		return nil, err
	}
	return games, nil
}
