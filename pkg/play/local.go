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
	"github.com/notnil/chess"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/recon/pkg/game"
)

// NewGame creates a game between the two agents. Player names missing
// from the config are filled in with the agents' names.
func NewGame(white, black Agent, config game.Config, options ...game.Option) (*game.LocalGame, error) {
	if config.WhiteName == "" {
		config.WhiteName = Name(white)
	}

	if config.BlackName == "" {
		config.BlackName = Name(black)
	}

	return game.NewLocalGame(config, options...)
}

// PlayLocalGame plays a game between two agents in the calling goroutine.
func PlayLocalGame(white, black Agent, config game.Config, options ...game.Option) (Result, error) {
	g, err := NewGame(white, black, config, options...)
	if err != nil {
		return Result{}, err
	}

	return PlayGame(g, white, black)
}

// PlayGame plays the given unstarted game between two agents in the
// calling goroutine, alternating between them by the game's turn.
func PlayGame(g *game.LocalGame, white, black Agent) (Result, error) {
	agents := map[chess.Color]Agent{
		chess.White: white,
		chess.Black: black,
	}

	for _, color := range colors {
		agents[color].HandleGameStart(color, g.StartingBoard(), g.PlayerName(color.Other()))
	}

	if err := g.Start(); err != nil {
		return Result{}, err
	}

	for {
		over, err := g.IsOver()
		if err != nil {
			return Result{}, err
		}

		if over {
			break
		}

		if err := PlayTurn(g, agents[g.Turn()], true); err != nil {
			return Result{}, err
		}
	}

	result, err := resultOf(g)
	if err != nil {
		return Result{}, err
	}

	for _, color := range colors {
		agents[color].HandleGameEnd(result.Winner, result.Reason, result.History.Copy())
	}

	logrus.WithFields(logrus.Fields{
		"white":  g.PlayerName(chess.White),
		"black":  g.PlayerName(chess.Black),
		"result": result,
		"reason": result.Reason,
	}).Info("local game finished")
	return result, nil
}

var colors = [2]chess.Color{chess.White, chess.Black}

// resultOf queries the result of a finished game.
func resultOf(g game.Game) (Result, error) {
	winner, err := g.WinnerColor()
	if err != nil {
		return Result{}, err
	}

	reason, err := g.WinReason()
	if err != nil {
		return Result{}, err
	}

	history, err := g.GameHistory()
	if err != nil {
		return Result{}, err
	}

	return Result{Winner: winner, Reason: reason, History: history}, nil
}
