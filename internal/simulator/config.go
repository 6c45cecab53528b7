package simulator

import "time"

// Config holds configuration for a simulation run.
type Config struct {
	BaseURL    string        // Base URL of the service
	Games      int           // Number of games to play
	Seed       int64         // Seed for the shot generator
	Resends    int           // Extra copies of each shot request, to exercise de-duplication
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Where to write the played games, if set
	Verbose    bool          // Log every shot
}

// Stats holds run statistics.
type Stats struct {
	GamesPlayed  int
	GamesFailed  int
	ShotsSent    int
	Duplicates   int
	PerfectGames int
	HighScore    int
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
}

// PlayedGame is one generated game and the total the service reported.
type PlayedGame struct {
	GameID string   `json:"game_id"`
	Shots  []string `json:"shots"`
	Total  int      `json:"total"`
}
