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

package play

import (
	"errors"

	"github.com/notnil/chess"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/recon/pkg/game"
	"laptudirm.com/x/recon/pkg/rbc"
)

// PlayTurn plays a single turn of the agent. The turn is ended right after
// the move is made, or, if endTurnLast is set, only after the agent has
// been told the result of its move.
//
// A game which ends in the middle of the turn, say by the agent's clock
// running out, ends the turn early without an error.
func PlayTurn(g game.Game, agent Agent, endTurnLast bool) error {
	err := playTurn(g, agent, endTurnLast)
	if errors.Is(err, game.ErrGameOver) {
		return nil
	}

	return err
}

func playTurn(g game.Game, agent Agent, endTurnLast bool) error {
	capture, err := g.OpponentMoveResults()
	if err != nil {
		return err
	}

	agent.HandleOpponentMoveResult(capture != chess.NoSquare, capture)

	senses, err := g.SenseActions()
	if err != nil {
		return err
	}

	moves, err := g.MoveActions()
	if err != nil {
		return err
	}

	timeLeft, err := g.TimeLeft()
	if err != nil {
		return err
	}

	sq := agent.ChooseSense(senses, moves, timeLeft)
	observations, err := g.Sense(sq)
	if errors.Is(err, rbc.ErrIllegalSense) {
		logrus.WithField("square", sq).Warn("illegal sense, sensing nothing")
		observations, err = g.Sense(chess.NoSquare)
	}

	if err != nil {
		return err
	}

	agent.HandleSenseResult(observations)

	if timeLeft, err = g.TimeLeft(); err != nil {
		return err
	}

	requested := agent.ChooseMove(moves, timeLeft)
	result, err := g.Move(requested)
	if errors.Is(err, rbc.ErrIllegalMove) {
		logrus.WithField("move", rbc.MoveString(requested)).Warn("illegal move, passing")
		result, err = g.Move(nil)
	}

	if err != nil {
		return err
	}

	// the mover learns its result even if its move ended the game
	var endErr error
	if !endTurnLast {
		endErr = g.EndTurn()
		if endErr != nil && !errors.Is(endErr, game.ErrGameOver) {
			return endErr
		}
	}

	agent.HandleMoveResult(result.Requested, result.Taken, result.Captured(), result.Capture)

	if endTurnLast {
		return g.EndTurn()
	}

	return endErr
}
