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
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/recon/pkg/game"
	"laptudirm.com/x/recon/pkg/rbc"
)

// PlayRemoteGame plays the agent's side of a game it is seated at. The
// seat's IsOver is expected to block until it is the agent's turn.
func PlayRemoteGame(seat game.Seat, agent Agent) (Result, error) {
	color, err := seat.Color()
	if err != nil {
		return Result{}, errors.Wrap(err, "query color")
	}

	board, err := seat.StartingBoard()
	if err != nil {
		return Result{}, errors.Wrap(err, "query starting board")
	}

	opponent, err := seat.OpponentName()
	if err != nil {
		return Result{}, errors.Wrap(err, "query opponent")
	}

	agent.HandleGameStart(color, board, opponent)

	if err := seat.Start(); err != nil {
		return Result{}, errors.Wrap(err, "start game")
	}

	logrus.WithFields(logrus.Fields{
		"color":    rbc.ColorName(color),
		"opponent": opponent,
	}).Debug("waiting for turns")

	for {
		over, err := seat.IsOver()
		if err != nil {
			return Result{}, errors.Wrap(err, "wait for turn")
		}

		if over {
			break
		}

		if err := PlayTurn(seat, agent, false); err != nil {
			return Result{}, errors.Wrapf(err, "play %s turn", rbc.ColorName(color))
		}
	}

	result, err := resultOf(seat)
	if err != nil {
		return Result{}, errors.Wrap(err, "query result")
	}

	agent.HandleGameEnd(result.Winner, result.Reason, result.History)
	return result, nil
}
