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

package bots

import (
	"time"

	"github.com/notnil/chess"

	"laptudirm.com/x/recon/pkg/rbc"
)

// rushes are the knight lines which reach the enemy king's starting square
// in four moves.
var rushes = map[chess.Color][]rbc.Move{
	chess.White: {
		rbc.MustParseMove("b1c3"), rbc.MustParseMove("c3b5"),
		rbc.MustParseMove("b5d6"), rbc.MustParseMove("d6e8"),
	},
	chess.Black: {
		rbc.MustParseMove("b8c6"), rbc.MustParseMove("c6b4"),
		rbc.MustParseMove("b4d3"), rbc.MustParseMove("d3e1"),
	},
}

// Attacker rushes a knight at the enemy king and plays randomly once the
// rush is over or has been disrupted.
type Attacker struct {
	*Random

	rush []rbc.Move
}

func NewAttacker(seed int64) *Attacker {
	return &Attacker{Random: NewRandom(seed)}
}

func (bot *Attacker) Name() string { return "attacker" }

func (bot *Attacker) HandleGameStart(color chess.Color, _ *rbc.Board, _ string) {
	bot.rush = append([]rbc.Move(nil), rushes[color]...)
}

func (bot *Attacker) ChooseMove(moves []rbc.Move, timeLeft time.Duration) *rbc.Move {
	if len(bot.rush) > 0 {
		next := bot.rush[0]
		for _, move := range moves {
			if move == next {
				return &next
			}
		}

		bot.rush = nil
	}

	return bot.Random.ChooseMove(moves, timeLeft)
}

func (bot *Attacker) HandleMoveResult(requested, taken *rbc.Move, _ bool, _ chess.Square) {
	if len(bot.rush) == 0 || requested == nil || *requested != bot.rush[0] {
		return
	}

	if taken == nil || *taken != *requested {
		bot.rush = nil
		return
	}

	bot.rush = bot.rush[1:]
}
