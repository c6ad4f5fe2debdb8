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

// Package play drives agents through games, whether the game is in the
// same goroutine, behind a mediator, or on a remote server.
package play

import (
	"fmt"
	"strings"
	"time"

	"github.com/notnil/chess"

	"laptudirm.com/x/recon/pkg/rbc"
)

// Agent is a player of Reconnaissance Blind Chess. The methods of an
// Agent are called from a single goroutine, in turn order.
type Agent interface {
	// HandleGameStart is called once before the game starts with the
	// agent's color, the starting board and the opponent's name.
	HandleGameStart(color chess.Color, board *rbc.Board, opponentName string)

	// HandleOpponentMoveResult is called at the start of every turn with
	// the square on which the opponent captured one of the agent's pieces.
	HandleOpponentMoveResult(captured bool, sq chess.Square)

	// ChooseSense returns the square to sense this turn. chess.NoSquare
	// senses nothing.
	ChooseSense(senses []chess.Square, moves []rbc.Move, timeLeft time.Duration) chess.Square

	HandleSenseResult(observations []rbc.Observation)

	// ChooseMove returns the move to request this turn, or nil to pass.
	ChooseMove(moves []rbc.Move, timeLeft time.Duration) *rbc.Move

	HandleMoveResult(requested, taken *rbc.Move, captured bool, sq chess.Square)

	// HandleGameEnd is called once after the game is over. The winner is
	// chess.NoColor for a game without one.
	HandleGameEnd(winner chess.Color, reason rbc.WinReason, history *rbc.History)
}

// Namer is implemented by agents which have a name other than their type.
type Namer interface {
	Name() string
}

// Name returns the name of the agent.
func Name(agent Agent) string {
	if namer, ok := agent.(Namer); ok {
		return namer.Name()
	}

	name := strings.TrimPrefix(fmt.Sprintf("%T", agent), "*")
	if _, after, found := strings.Cut(name, "."); found {
		name = after
	}
	return name
}

// Result is the outcome of a played game, the same for every way of
// playing one.
type Result struct {
	Winner  chess.Color
	Reason  rbc.WinReason
	History *rbc.History
}

// String returns the result in PGN notation.
func (result Result) String() string {
	switch result.Winner {
	case chess.White:
		return "1-0"
	case chess.Black:
		return "0-1"
	default:
		return "1/2-1/2"
	}
}
