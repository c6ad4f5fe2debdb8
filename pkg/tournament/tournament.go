// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tournament plays many games between bots and keeps score.
package tournament

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/notnil/chess"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/recon/pkg/bots"
	"laptudirm.com/x/recon/pkg/game"
	"laptudirm.com/x/recon/pkg/mediator"
	"laptudirm.com/x/recon/pkg/play"
	"laptudirm.com/x/recon/pkg/stats"
)

// ReportInterval is the number of finished games between two reports.
const ReportInterval = 5

// Config is the configuration of a tournament, usually read from a yaml
// file.
type Config struct {
	// The bots participating in the tournament, by registry name.
	Bots []string `yaml:"bots"`

	// Seed of the bots' random choices. Every game gets its own seed
	// derived from this one.
	Seed int64 `yaml:"seed"`

	// Number of games that will be played concurrently.
	Concurrency int `yaml:"concurrency"`

	Scheduler string `yaml:"scheduler"`

	// 1 Tournament = {ROUNDS} Rounds
	// 1 Round      = {SOME_N} Encounters
	// 1 Encounter  = {GAME_P} Game Pairs
	// 1 Game Pair  = 2 Games
	Rounds    int `yaml:"rounds"`
	GamePairs int `yaml:"game-pairs"`

	TimeControl string `yaml:"tc"`
	TurnLimit   int    `yaml:"turn-limit"`
	StartFEN    string `yaml:"fen"`

	// Play the games through a mediator instead of directly.
	Mediated     bool          `yaml:"mediated"`
	PollInterval time.Duration `yaml:"poll"`

	// Directory to store the game histories in.
	HistoryDir string `yaml:"history-dir"`

	// Stop the tournament once the first bot's results settle an SPRT.
	SPRT *SPRTConfig `yaml:"sprt"`
}

type SPRTConfig struct {
	Elo0, Elo1  float64 // The null and the alternate elo hypotheses.
	Alpha, Beta float64 // Probabilities of type I and II errors.
}

// Match is a single game of the tournament. Player1 plays white.
type Match struct {
	Round, Number    int
	Player1, Player2 int
}

// Result is the outcome of a Match.
type Result struct {
	Match *Match
	play.Result
}

// Tournament runs the games of a Config on a pool of workers.
type Tournament struct {
	Config Config

	Scheduler Scheduler
	Scores    []stats.Score

	// Output is where the reports are written, os.Stdout by default.
	Output io.Writer

	games   chan *Match
	results chan Result

	played int
	lower  float64
	upper  float64
}

func NewTournament(config Config) (*Tournament, error) {
	if len(config.Bots) < 2 {
		return nil, errors.New("new tournament: at least two bots are needed")
	}

	for _, name := range config.Bots {
		if bots.Get(name, 0) == nil {
			return nil, fmt.Errorf("new tournament: unknown bot %s", name)
		}
	}

	if _, err := game.ParseTimeControl(orDefault(config.TimeControl)); err != nil {
		return nil, errors.Wrap(err, "new tournament")
	}

	config.Concurrency = max(config.Concurrency, 1)
	config.Rounds = max(config.Rounds, 1)
	config.GamePairs = max(config.GamePairs, 1)

	scheduler, err := NewScheduler(config.Scheduler)
	if err != nil {
		return nil, err
	}

	tour := &Tournament{
		Config:    config,
		Scheduler: scheduler,
		Scores:    make([]stats.Score, len(config.Bots)),
		Output:    os.Stdout,

		games:   make(chan *Match),
		results: make(chan Result),
	}

	if config.SPRT != nil {
		tour.lower, tour.upper = stats.StoppingBounds(config.SPRT.Alpha, config.SPRT.Beta)
	}

	return tour, nil
}

// Start plays the whole tournament and returns once every game has been
// played, the SPRT has finished, or ctx is done.
func (tour *Tournament) Start(parent context.Context) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	go tour.schedule(ctx)

	var wg sync.WaitGroup
	for i := 0; i < tour.Config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tour.Thread(ctx)
		}()
	}

	go func() {
		wg.Wait()
		close(tour.results)
	}()

	for result := range tour.results {
		tour.handleResult(result)

		if tour.sprtFinished() {
			logrus.Info("sprt finished, stopping tournament")
			cancel()
		}
	}

	tour.Report()
	return parent.Err()
}

// TotalGames is the number of games the tournament will play. It must not
// be called while the tournament is running.
func (tour *Tournament) TotalGames() int {
	tour.Scheduler.Initialize(len(tour.Config.Bots))
	return tour.Config.Rounds * tour.Scheduler.TotalEncounters() * tour.Config.GamePairs * 2
}

func (tour *Tournament) schedule(ctx context.Context) {
	defer close(tour.games)

	number := 0
	for round := 0; round < tour.Config.Rounds; round++ {
		tour.Scheduler.Initialize(len(tour.Config.Bots))

		for encounter := 0; encounter < tour.Scheduler.TotalEncounters(); encounter++ {
			p1, p2 := tour.Scheduler.NextEncounter()

			for pair := 0; pair < tour.Config.GamePairs; pair++ {
				for i := 0; i < 2; i++ {
					number++
					match := &Match{
						Round:   round + 1,
						Number:  number,
						Player1: p1,
						Player2: p2,
					}

					select {
					case tour.games <- match:
					case <-ctx.Done():
						return
					}

					// Switch colors.
					p1, p2 = p2, p1
				}
			}
		}
	}
}

// Thread plays scheduled games until there are none left.
func (tour *Tournament) Thread(ctx context.Context) {
	for match := range tour.games {
		result, err := tour.RunGame(ctx, match)
		if err != nil {
			logrus.WithError(err).Errorf("Round #%d Game #%d failed", match.Round, match.Number)
			continue
		}

		tour.results <- result
	}
}

// RunGame plays a single game of the tournament.
func (tour *Tournament) RunGame(ctx context.Context, match *Match) (Result, error) {
	white := bots.Get(tour.Config.Bots[match.Player1], tour.Config.Seed+int64(2*match.Number))
	black := bots.Get(tour.Config.Bots[match.Player2], tour.Config.Seed+int64(2*match.Number+1))

	config := game.Config{
		WhiteName:   tour.Config.Bots[match.Player1],
		BlackName:   tour.Config.Bots[match.Player2],
		TimeControl: orDefault(tour.Config.TimeControl),
		TurnLimit:   tour.Config.TurnLimit,
		StartFEN:    tour.Config.StartFEN,
	}

	logrus.Infof(
		"\x1b[33mStarting\x1b[0m Round #%d Game #%d: %s vs %s",
		match.Round, match.Number, config.WhiteName, config.BlackName,
	)

	var (
		result play.Result
		err    error
	)

	if tour.Config.Mediated {
		var g *game.LocalGame
		if g, err = play.NewGame(white, black, config); err == nil {
			options := []mediator.Option{}
			if tour.Config.PollInterval > 0 {
				options = append(options, mediator.WithPollInterval(tour.Config.PollInterval))
			}
			result, err = play.PlayMediatedGame(ctx, g, white, black, options...)
		}
	} else {
		result, err = play.PlayLocalGame(white, black, config)
	}

	if err != nil {
		return Result{}, err
	}

	if tour.Config.HistoryDir != "" {
		name := filepath.Join(tour.Config.HistoryDir, fmt.Sprintf("round-%d-game-%d.yaml", match.Round, match.Number))
		if err := result.History.SaveFile(name); err != nil {
			return Result{}, err
		}
	}

	return Result{Match: match, Result: result}, nil
}

func (tour *Tournament) handleResult(result Result) {
	tour.played++

	white, black := result.Match.Player1, result.Match.Player2
	switch result.Winner {
	case chess.White:
		tour.Scores[white].Wins++
		tour.Scores[black].Losses++

	case chess.Black:
		tour.Scores[black].Wins++
		tour.Scores[white].Losses++

	default:
		tour.Scores[white].Draws++
		tour.Scores[black].Draws++
	}

	logrus.Infof(
		"\x1b[32mFinished\x1b[0m Round #%d Game #%d: %s vs %s: %s",
		result.Match.Round,
		result.Match.Number,
		tour.Config.Bots[white],
		tour.Config.Bots[black],
		result,
	)

	if tour.played%ReportInterval == 0 {
		tour.Report()
	}
}

// LLR returns the log-likelihood ratio of the first bot's SPRT.
func (tour *Tournament) LLR() float64 {
	if tour.Config.SPRT == nil {
		return 0
	}

	score := tour.Scores[0]
	return stats.SPRT(score.Wins, score.Draws, score.Losses, tour.Config.SPRT.Elo0, tour.Config.SPRT.Elo1)
}

func (tour *Tournament) sprtFinished() bool {
	if tour.Config.SPRT == nil {
		return false
	}

	llr := tour.LLR()
	return llr <= tour.lower || llr >= tour.upper
}

// Report writes the standings of the tournament to its Output.
func (tour *Tournament) Report() {
	w := tour.Output

	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════════╗")
	fmt.Fprintln(w, "║    Name               Elo Error   Wins Loss Draw   Total ║")
	fmt.Fprintln(w, "╠══════════════════════════════════════════════════════════╣")
	for i, name := range tour.Config.Bots {
		score := tour.Scores[i]
		elo, margin := score.Elo()

		format := "║ %2d. %-15s   %+4.0f %4.0f   %4d %4d %4d   %5d ║\n"
		if tour.Config.Scheduler == "gauntlet" && i == 0 {
			if elo >= 0 {
				format = "║ \x1b[32m%2d. %-15s   %+4.0f %4.0f   %4d %4d %4d   %5d\x1b[0m ║\n"
			} else {
				format = "║ \x1b[31m%2d. %-15s   %+4.0f %4.0f   %4d %4d %4d   %5d\x1b[0m ║\n"
			}
		}

		fmt.Fprintf(
			w, format,
			i+1, name,
			elo, margin,
			score.Wins, score.Losses, score.Draws,
			score.Games(),
		)
	}

	if sprt := tour.Config.SPRT; sprt != nil {
		fmt.Fprintln(w, "╠══════════════════════════════════════════════════════════╣")
		fmt.Fprintf(w, "║ %-56s ║\n", fmt.Sprintf(
			"LLR %.2f (%.2f, %.2f) [%.0f, %.0f]",
			tour.LLR(), tour.lower, tour.upper, sprt.Elo0, sprt.Elo1,
		))
	}
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════════╝")
}

func orDefault(tc string) string {
	if tc == "" {
		return game.DefaultTimeControl
	}
	return tc
}
