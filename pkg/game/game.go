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

// Package game implements the authoritative state machine of a
// Reconnaissance Blind Chess game and the interfaces through which
// players talk to a game, wherever it lives.
package game

import (
	"errors"
	"time"

	"github.com/notnil/chess"

	"laptudirm.com/x/recon/pkg/rbc"
)

var (
	ErrNotStarted   = errors.New("game: not started")
	ErrGameOver     = errors.New("game: game is over")
	ErrNotOver      = errors.New("game: game is not over")
	ErrAlreadyMoved = errors.New("game: already moved this turn")

	// ErrNotAvailable is returned for turn gated requests made when it
	// is not the requester's turn.
	ErrNotAvailable = errors.New("game: not available")
)

// Game is the view of a game the turn engine plays through. Every method
// may fail, since a Game may live across a process boundary.
type Game interface {
	Start() error

	SenseActions() ([]chess.Square, error)
	MoveActions() ([]rbc.Move, error)

	OpponentMoveResults() (chess.Square, error)
	Sense(sq chess.Square) ([]rbc.Observation, error)
	Move(requested *rbc.Move) (rbc.MoveResult, error)
	EndTurn() error

	IsOver() (bool, error)
	TimeLeft() (time.Duration, error)

	WinnerColor() (chess.Color, error)
	WinReason() (rbc.WinReason, error)
	GameHistory() (*rbc.History, error)
}

// Seat is a Game as seen by a single player, who also needs to know
// which color they are playing and against whom.
type Seat interface {
	Game

	Color() (chess.Color, error)
	StartingBoard() (*rbc.Board, error)
	OpponentName() (string, error)
}
