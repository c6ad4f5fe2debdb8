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

package mediator

import (
	"fmt"

	"github.com/notnil/chess"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/recon/pkg/game"
)

// Dispatch answers a single request made by the player of the given
// color. Gated commands made off-turn are answered with ErrNotAvailable
// without touching the game, except for seconds_left, which is answered
// with the requester's stored clock, and end_turn, which is acknowledged
// without advancing the game.
func Dispatch(g *game.LocalGame, color chess.Color, request Request) Response {
	response := Response{Command: request.Command, Square: chess.NoSquare}

	over, _ := g.IsOver()
	onTurn := g.Started() && g.Turn() == color

	logrus.WithFields(logrus.Fields{
		"color":   color,
		"command": request.Command,
		"on-turn": onTurn,
	}).Debug("dispatching request")

	if request.Command.Gated() && !onTurn {
		switch request.Command {
		case SecondsLeft:
			response.Seconds = g.StoredTimeLeft(color).Seconds()
		case EndTurn:
		default:
			response.Error = game.ErrNotAvailable.Error()
		}

		return response
	}

	var err error

	switch request.Command {
	case Color:
		response.Color = color
	case StartingBoard:
		response.Board = g.StartingBoard().FEN()
	case OpponentName:
		response.Name = g.PlayerName(color.Other())

	case SenseActions:
		response.Squares, err = g.SenseActions()
	case MoveActions:
		response.Moves, err = g.MoveActions()
	case SecondsLeft:
		left, _ := g.TimeLeft()
		response.Seconds = left.Seconds()

	case Ready, IsMyTurn, GameStatus:
		response.IsOver = over
		response.IsMyTurn = onTurn || over

	case OpponentMoveResults:
		response.Square, err = g.OpponentMoveResults()
	case Sense:
		response.Observations, err = g.Sense(request.Square)
	case Move:
		result, moveErr := g.Move(request.Move)
		if err = moveErr; err == nil {
			response.MoveResult = &result
		}
	case EndTurn:
		err = g.EndTurn()

	case WinnerColor:
		response.Winner, err = g.WinnerColor()
	case WinReason:
		response.Reason, err = g.WinReason()
	case GameHistory:
		response.History, err = g.GameHistory()

	default:
		err = fmt.Errorf("unknown command %s", request.Command)
	}

	if err != nil {
		response.Error = err.Error()
	}

	return response
}
