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
	"math/rand"
	"time"

	"github.com/notnil/chess"

	"laptudirm.com/x/recon/pkg/rbc"
)

// Random senses and moves uniformly at random. It passes only when it has
// no moves.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (bot *Random) Name() string { return "random" }

func (bot *Random) HandleGameStart(chess.Color, *rbc.Board, string) {}

func (bot *Random) HandleOpponentMoveResult(bool, chess.Square) {}

func (bot *Random) ChooseSense(senses []chess.Square, _ []rbc.Move, _ time.Duration) chess.Square {
	if len(senses) == 0 {
		return chess.NoSquare
	}
	return senses[bot.rng.Intn(len(senses))]
}

func (bot *Random) HandleSenseResult([]rbc.Observation) {}

func (bot *Random) ChooseMove(moves []rbc.Move, _ time.Duration) *rbc.Move {
	if len(moves) == 0 {
		return nil
	}

	move := moves[bot.rng.Intn(len(moves))]
	return &move
}

func (bot *Random) HandleMoveResult(*rbc.Move, *rbc.Move, bool, chess.Square) {}

func (bot *Random) HandleGameEnd(chess.Color, rbc.WinReason, *rbc.History) {}

// Passive never senses and always passes.
type Passive struct{}

func (*Passive) Name() string { return "passive" }

func (*Passive) HandleGameStart(chess.Color, *rbc.Board, string) {}
func (*Passive) HandleOpponentMoveResult(bool, chess.Square) {}

func (*Passive) ChooseSense([]chess.Square, []rbc.Move, time.Duration) chess.Square {
	return chess.NoSquare
}

func (*Passive) HandleSenseResult([]rbc.Observation) {}
func (*Passive) ChooseMove([]rbc.Move, time.Duration) *rbc.Move { return nil }
func (*Passive) HandleMoveResult(*rbc.Move, *rbc.Move, bool, chess.Square) {}
func (*Passive) HandleGameEnd(chess.Color, rbc.WinReason, *rbc.History) {}
