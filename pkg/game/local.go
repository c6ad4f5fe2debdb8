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

package game

import (
	"fmt"
	"time"

	"github.com/notnil/chess"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/recon/pkg/rbc"
)

// Config is the configuration of a single game.
type Config struct {
	WhiteName string `json:"white" yaml:"white"`
	BlackName string `json:"black" yaml:"black"`

	TimeControl string `json:"tc" yaml:"tc"`                 // base+inc in seconds
	TurnLimit   int    `json:"turn_limit" yaml:"turn-limit"` // full turns, 0 for no limit

	StartFEN string `json:"fen,omitempty" yaml:"fen"`
}

// Option configures a LocalGame.
type Option func(*LocalGame)

// WithClock makes the game read time from the given function instead of
// time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *LocalGame) {
		g.now = now
	}
}

// WithOracle makes the game use the given rules instead of rbc.Rules.
func WithOracle(oracle rbc.Oracle) Option {
	return func(g *LocalGame) {
		g.oracle = oracle
	}
}

// LocalGame is the authoritative state of a game. It is owned by a single
// goroutine and does no locking of its own.
type LocalGame struct {
	oracle rbc.Oracle
	now    func() time.Time

	tc        TimeControl
	turnLimit int

	start *rbc.Board
	board *rbc.Board
	names map[chess.Color]string

	started bool
	turn    chess.Color
	plys    int // completed turns

	clocks    map[chess.Color]time.Duration
	turnStart time.Time

	sensed, moved bool
	moveActions   []rbc.Move

	// capture square of each color's last move
	captures map[chess.Color]chess.Square

	history *rbc.History

	over   bool
	winner chess.Color
	reason rbc.WinReason
}

// NewLocalGame creates a game which has not been started yet.
func NewLocalGame(config Config, options ...Option) (*LocalGame, error) {
	if config.TimeControl == "" {
		config.TimeControl = DefaultTimeControl
	}

	if config.StartFEN == "" {
		config.StartFEN = rbc.StartFEN
	}

	tc, err := ParseTimeControl(config.TimeControl)
	if err != nil {
		return nil, err
	}

	if config.TurnLimit < 0 {
		return nil, fmt.Errorf("new game: negative turn limit %d", config.TurnLimit)
	}

	board, err := rbc.ParseFEN(config.StartFEN)
	if err != nil {
		return nil, err
	}

	g := &LocalGame{
		oracle: rbc.Rules{},
		now:    time.Now,

		tc:        tc,
		turnLimit: config.TurnLimit,

		start: board.Copy(),
		board: board,
		names: map[chess.Color]string{
			chess.White: config.WhiteName,
			chess.Black: config.BlackName,
		},

		turn: board.Turn,
		clocks: map[chess.Color]time.Duration{
			chess.White: tc.Base,
			chess.Black: tc.Base,
		},
		captures: map[chess.Color]chess.Square{
			chess.White: chess.NoSquare,
			chess.Black: chess.NoSquare,
		},

		history: rbc.NewHistory(board.FEN(), config.WhiteName, config.BlackName),
	}

	g.history.TurnLimit = config.TurnLimit

	for _, option := range options {
		option(g)
	}

	return g, nil
}

var _ Game = (*LocalGame)(nil)

// Start starts the clock of the side to move. Starting a started game
// does nothing.
func (g *LocalGame) Start() error {
	if g.started {
		return nil
	}

	g.started = true
	g.turnStart = g.now()

	logrus.WithFields(logrus.Fields{
		"white": g.names[chess.White],
		"black": g.names[chess.Black],
		"tc":    g.tc,
	}).Info("game started")
	return nil
}

func (g *LocalGame) SenseActions() ([]chess.Square, error) {
	return rbc.SenseActions(), nil
}

// MoveActions returns the moves the side to move may request this turn.
func (g *LocalGame) MoveActions() ([]rbc.Move, error) {
	if g.moveActions == nil {
		g.moveActions = g.oracle.LegalMoves(g.board)
	}

	return append([]rbc.Move(nil), g.moveActions...), nil
}

// OpponentMoveResults returns the square on which the opponent of the side
// to move captured a piece with their last move, or chess.NoSquare.
func (g *LocalGame) OpponentMoveResults() (chess.Square, error) {
	return g.captures[g.turn.Other()], nil
}

// Sense senses the 3x3 window centered on sq. Only the first sense of a
// turn is recorded, further senses just observe the board again.
func (g *LocalGame) Sense(sq chess.Square) ([]rbc.Observation, error) {
	if err := g.checkActive(); err != nil {
		return nil, err
	}

	if !rbc.ValidSense(sq) {
		return nil, rbc.ErrIllegalSense
	}

	observations := g.board.Sense(sq)
	if !g.sensed && !g.moved {
		g.recordSense(sq, observations)
	}

	return observations, nil
}

// Move applies the requested move, nil being a pass. A turn which was not
// sensed is recorded as having sensed nothing.
func (g *LocalGame) Move(requested *rbc.Move) (rbc.MoveResult, error) {
	if err := g.checkActive(); err != nil {
		return rbc.MoveResult{}, err
	}

	if g.moved {
		return rbc.MoveResult{}, ErrAlreadyMoved
	}

	fen := g.board.FEN()
	taken, capture, err := g.oracle.Apply(g.board, requested)
	if err != nil {
		return rbc.MoveResult{}, err
	}

	if !g.sensed {
		g.recordSense(chess.NoSquare, nil)
	}

	g.moved = true
	g.captures[g.turn] = capture
	g.history.Moves = append(g.history.Moves, rbc.MoveRecord{
		Color:     g.turn,
		FEN:       fen,
		After:     g.board.FEN(),
		Requested: requested,
		Taken:     taken,
		Capture:   capture,
	})

	logrus.WithFields(logrus.Fields{
		"color":     rbc.ColorName(g.turn),
		"requested": rbc.MoveString(requested),
		"taken":     rbc.MoveString(taken),
		"capture":   capture,
	}).Debug("move applied")

	if color, captured := g.oracle.KingCaptured(g.board); captured {
		g.finish(color.Other(), rbc.KingCapture)
	} else if g.oracle.Drawn(g.board) {
		g.finish(chess.NoColor, rbc.MoveLimit)
	}

	return rbc.MoveResult{Requested: requested, Taken: taken, Capture: capture}, nil
}

// EndTurn stops the clock of the side to move and passes the turn. A turn
// ended without a move is a pass.
func (g *LocalGame) EndTurn() error {
	if err := g.checkActive(); err != nil {
		return err
	}

	if !g.moved {
		if _, err := g.Move(nil); err != nil {
			return err
		}

		if g.over {
			return nil
		}
	}

	now := g.now()
	remaining := g.clocks[g.turn] - now.Sub(g.turnStart)
	if remaining <= 0 {
		g.clocks[g.turn] = 0
		g.finish(g.turn.Other(), rbc.Timeout)
		return ErrGameOver
	}

	g.clocks[g.turn] = remaining + g.tc.Inc
	g.plys++

	g.turn = g.turn.Other()
	g.turnStart = now
	g.sensed, g.moved = false, false
	g.moveActions = nil

	if g.turnLimit > 0 && g.plys >= 2*g.turnLimit {
		g.finish(chess.NoColor, rbc.TurnLimit)
	}

	return nil
}

// IsOver reports whether the game has ended, ending it first if the
// clock of the side to move has run out.
func (g *LocalGame) IsOver() (bool, error) {
	g.refresh()
	return g.over, nil
}

// TimeLeft returns the live clock of the side to move.
func (g *LocalGame) TimeLeft() (time.Duration, error) {
	g.refresh()
	return g.timeLeft(g.turn), nil
}

func (g *LocalGame) WinnerColor() (chess.Color, error) {
	if !g.isOver() {
		return chess.NoColor, ErrNotOver
	}
	return g.winner, nil
}

func (g *LocalGame) WinReason() (rbc.WinReason, error) {
	if !g.isOver() {
		return rbc.NoReason, ErrNotOver
	}
	return g.reason, nil
}

// GameHistory returns a copy of the history of a finished game.
func (g *LocalGame) GameHistory() (*rbc.History, error) {
	if !g.isOver() {
		return nil, ErrNotOver
	}
	return g.history.Copy(), nil
}

// History returns a copy of the history so far, finished or not.
func (g *LocalGame) History() *rbc.History {
	return g.history.Copy()
}

// Started reports whether Start has been called.
func (g *LocalGame) Started() bool {
	return g.started
}

// Turn returns the color whose turn it is.
func (g *LocalGame) Turn() chess.Color {
	return g.turn
}

// StoredTimeLeft returns the clock of the given color as of the start of
// the current turn. It does not account for time spent in the turn.
func (g *LocalGame) StoredTimeLeft(color chess.Color) time.Duration {
	return g.clocks[color]
}

// PlayerName returns the name the given color was created with.
func (g *LocalGame) PlayerName(color chess.Color) string {
	return g.names[color]
}

// StartingBoard returns a copy of the position the game started from.
func (g *LocalGame) StartingBoard() *rbc.Board {
	return g.start.Copy()
}

// Board returns a copy of the true board.
func (g *LocalGame) Board() *rbc.Board {
	return g.board.Copy()
}

func (g *LocalGame) isOver() bool {
	over, _ := g.IsOver()
	return over
}

func (g *LocalGame) checkActive() error {
	if !g.started {
		return ErrNotStarted
	}

	g.refresh()
	if g.over {
		return ErrGameOver
	}

	return nil
}

// refresh ends the game if the side to move has run out of time.
func (g *LocalGame) refresh() {
	if !g.started || g.over {
		return
	}

	if g.timeLeft(g.turn) <= 0 {
		g.finish(g.turn.Other(), rbc.Timeout)
	}
}

func (g *LocalGame) timeLeft(color chess.Color) time.Duration {
	if !g.started || g.over || color != g.turn {
		return g.clocks[color]
	}

	left := g.clocks[color] - g.now().Sub(g.turnStart)
	if left < 0 {
		left = 0
	}
	return left
}

func (g *LocalGame) recordSense(sq chess.Square, observations []rbc.Observation) {
	g.sensed = true
	g.history.Senses = append(g.history.Senses, rbc.SenseRecord{
		Color:        g.turn,
		Square:       sq,
		Observations: observations,
	})
}

// finish ends the game with the given result, unless it has already ended.
func (g *LocalGame) finish(winner chess.Color, reason rbc.WinReason) {
	if g.over {
		return
	}

	g.clocks[g.turn] = g.timeLeft(g.turn)

	g.over = true
	g.winner, g.reason = winner, reason
	g.history.Winner, g.history.Reason = winner, reason

	logrus.WithFields(logrus.Fields{
		"winner": rbc.ColorName(winner),
		"reason": reason,
		"plys":   g.history.Len(),
	}).Info("game over")
}
