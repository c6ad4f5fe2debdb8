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

package play_test

import (
	"context"
	"testing"
	"time"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/recon/pkg/game"
	"laptudirm.com/x/recon/pkg/mediator"
	"laptudirm.com/x/recon/pkg/play"
	"laptudirm.com/x/recon/pkg/rbc"
)

// script plays a fixed list of moves, sensing e4 every turn, and passes
// once the list runs out.
type script struct {
	name  string
	moves []string

	color    chess.Color
	opponent string
	turns    int
	captures []chess.Square

	winner  chess.Color
	reason  rbc.WinReason
	history *rbc.History
	ended   int
}

func (s *script) Name() string { return s.name }

func (s *script) HandleGameStart(color chess.Color, _ *rbc.Board, opponent string) {
	s.color, s.opponent = color, opponent
}

func (s *script) HandleOpponentMoveResult(captured bool, sq chess.Square) {
	if captured {
		s.captures = append(s.captures, sq)
	}
}

func (s *script) ChooseSense([]chess.Square, []rbc.Move, time.Duration) chess.Square {
	return chess.E4
}

func (s *script) HandleSenseResult([]rbc.Observation) {}

func (s *script) ChooseMove([]rbc.Move, time.Duration) *rbc.Move {
	defer func() { s.turns++ }()
	if s.turns >= len(s.moves) {
		return nil
	}

	m := rbc.MustParseMove(s.moves[s.turns])
	return &m
}

func (s *script) HandleMoveResult(requested, taken *rbc.Move, captured bool, sq chess.Square) {}

func (s *script) HandleGameEnd(winner chess.Color, reason rbc.WinReason, history *rbc.History) {
	s.winner, s.reason, s.history = winner, reason, history
	s.ended++
}

func knightRush() (*script, *script) {
	return &script{name: "rusher", moves: []string{"b1c3", "c3b5", "b5d6", "d6e8"}},
		&script{name: "sitter"}
}

func assertKingCapture(t *testing.T, result play.Result, white, black *script) {
	t.Helper()

	assert.Equal(t, chess.White, result.Winner)
	assert.Equal(t, rbc.KingCapture, result.Reason)
	require.NotNil(t, result.History)
	assert.Equal(t, 7, result.History.Len())
	assert.Equal(t, "rusher", result.History.WhiteName)
	assert.Equal(t, "sitter", result.History.BlackName)

	for _, agent := range []*script{white, black} {
		assert.Equal(t, 1, agent.ended)
		assert.Equal(t, chess.White, agent.winner)
		assert.Equal(t, rbc.KingCapture, agent.reason)
		assert.Equal(t, result.History.Moves, agent.history.Moves)
	}

	assert.Equal(t, chess.White, white.color)
	assert.Equal(t, "sitter", white.opponent)
	assert.Equal(t, chess.Black, black.color)
	assert.Equal(t, "rusher", black.opponent)
}

func TestPlayLocalGame(t *testing.T) {
	white, black := knightRush()

	result, err := play.PlayLocalGame(white, black, game.Config{})
	require.NoError(t, err)
	assertKingCapture(t, result, white, black)
	assert.Equal(t, "1-0", result.String())

	_, err = result.History.Replay(rbc.Rules{})
	assert.NoError(t, err)
}

func TestPlayMediatedGame(t *testing.T) {
	white, black := knightRush()

	g, err := play.NewGame(white, black, game.Config{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := play.PlayMediatedGame(ctx, g, white, black, mediator.WithPollInterval(time.Millisecond))
	require.NoError(t, err)
	assertKingCapture(t, result, white, black)
}

func TestTopologiesAgree(t *testing.T) {
	newAgents := func() (*script, *script) {
		return &script{name: "w", moves: []string{"e2e4", "d1h5", "h5f7", "f7e8"}},
			&script{name: "b", moves: []string{"e7e5", "a7a6"}}
	}

	config := game.Config{TurnLimit: 10}

	white, black := newAgents()
	local, err := play.PlayLocalGame(white, black, config)
	require.NoError(t, err)

	white, black = newAgents()
	g, err := play.NewGame(white, black, config)
	require.NoError(t, err)

	mediated, err := play.PlayMediatedGame(context.Background(), g, white, black, mediator.WithPollInterval(time.Millisecond))
	require.NoError(t, err)

	assert.Equal(t, local.Winner, mediated.Winner)
	assert.Equal(t, local.Reason, mediated.Reason)
	assert.Equal(t, local.History.Moves, mediated.History.Moves)
	assert.Equal(t, chess.White, local.Winner)
	assert.Equal(t, rbc.KingCapture, local.Reason)

	// the capture of f7 is reported to black on its next turn
	assert.Equal(t, []chess.Square{chess.F7}, black.captures)
}

func TestPlayLocalGameTurnLimit(t *testing.T) {
	white, black := &script{name: "a"}, &script{name: "b"}

	result, err := play.PlayLocalGame(white, black, game.Config{TurnLimit: 5})
	require.NoError(t, err)

	assert.Equal(t, chess.NoColor, result.Winner)
	assert.Equal(t, rbc.TurnLimit, result.Reason)
	assert.Equal(t, 10, result.History.Len())
	assert.Equal(t, "1/2-1/2", result.String())
}

// sleeper is a script which thinks for too long before every move.
type sleeper struct {
	*script
	delay time.Duration
}

func (s *sleeper) ChooseMove(moves []rbc.Move, timeLeft time.Duration) *rbc.Move {
	time.Sleep(s.delay)
	return s.script.ChooseMove(moves, timeLeft)
}

func TestPlayMediatedGameTimeout(t *testing.T) {
	white := &sleeper{script: &script{name: "slow", moves: []string{"e2e4"}}, delay: 300 * time.Millisecond}
	black := &script{name: "fast"}

	g, err := play.NewGame(white, black, game.Config{TimeControl: "0.1+0"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := play.PlayMediatedGame(ctx, g, white, black, mediator.WithPollInterval(time.Millisecond))
	require.NoError(t, err)

	assert.Equal(t, chess.Black, result.Winner)
	assert.Equal(t, rbc.Timeout, result.Reason)
	assert.Equal(t, "0-1", result.String())

	for _, agent := range []*script{white.script, black} {
		assert.Equal(t, 1, agent.ended)
		assert.Equal(t, chess.Black, agent.winner)
		assert.Equal(t, rbc.Timeout, agent.reason)
	}

	// white sensed but never got to move
	assert.Equal(t, 0, result.History.Len())
	_, err = result.History.Replay(rbc.Rules{})
	assert.NoError(t, err)
}
