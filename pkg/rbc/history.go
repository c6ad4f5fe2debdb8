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

package rbc

import (
	"os"

	"github.com/notnil/chess"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// SenseRecord is a single sense made by a player.
type SenseRecord struct {
	Color        chess.Color   `json:"color" yaml:"color"`
	Square       chess.Square  `json:"square" yaml:"square"` // chess.NoSquare if the player did not sense
	Observations []Observation `json:"observations" yaml:"observations"`
}

// MoveRecord is a single half-move of the game.
type MoveRecord struct {
	Color     chess.Color  `json:"color" yaml:"color"`
	FEN       string       `json:"fen" yaml:"fen"` // board before the move
	After     string       `json:"after" yaml:"after"`
	Requested *Move        `json:"requested" yaml:"requested"`
	Taken     *Move        `json:"taken" yaml:"taken"`
	Capture   chess.Square `json:"capture" yaml:"capture"`
}

// History is the complete record of a game.
type History struct {
	StartFEN  string `json:"start_fen" yaml:"start-fen"`
	WhiteName string `json:"white" yaml:"white"`
	BlackName string `json:"black" yaml:"black"`

	// TurnLimit is the full-turn limit the game was played with, 0 if
	// it had none.
	TurnLimit int `json:"turn_limit,omitempty" yaml:"turn-limit,omitempty"`

	Senses []SenseRecord `json:"senses" yaml:"senses"`
	Moves  []MoveRecord  `json:"moves" yaml:"moves"`

	Winner chess.Color `json:"winner" yaml:"winner"`
	Reason WinReason   `json:"reason" yaml:"reason"`
}

// NewHistory creates an empty history for a game starting from fen.
func NewHistory(fen, white, black string) *History {
	return &History{
		StartFEN:  fen,
		WhiteName: white,
		BlackName: black,
	}
}

// Len returns the number of completed half-moves.
func (history *History) Len() int {
	return len(history.Moves)
}

// Turns returns the move records of the given color.
func (history *History) Turns(color chess.Color) []MoveRecord {
	var turns []MoveRecord
	for _, record := range history.Moves {
		if record.Color == color {
			turns = append(turns, record)
		}
	}

	return turns
}

// Copy returns a deep copy of the history.
func (history *History) Copy() *History {
	clone := *history

	clone.Senses = make([]SenseRecord, len(history.Senses))
	for i, record := range history.Senses {
		record.Observations = append([]Observation(nil), record.Observations...)
		clone.Senses[i] = record
	}

	clone.Moves = make([]MoveRecord, len(history.Moves))
	for i, record := range history.Moves {
		record.Requested = copyMove(record.Requested)
		record.Taken = copyMove(record.Taken)
		clone.Moves[i] = record
	}

	return &clone
}

// Replay plays the recorded moves from the starting position again with
// the given oracle and checks that every recorded sense, move, and the
// result are reproduced. It returns the final board.
func (history *History) Replay(oracle Oracle) (*Board, error) {
	board, err := ParseFEN(history.StartFEN)
	if err != nil {
		return nil, errors.Wrap(err, "replay")
	}

	if len(history.Senses) > len(history.Moves)+1 {
		return nil, errors.Errorf("replay: %d senses for %d half-moves", len(history.Senses), len(history.Moves))
	}

	for i, record := range history.Moves {
		if board.FEN() != record.FEN {
			return nil, errors.Errorf("replay: half-move %d: board is %q, recorded %q", i+1, board.FEN(), record.FEN)
		}

		if i < len(history.Senses) {
			if err := checkSense(board, record.Color, history.Senses[i]); err != nil {
				return nil, errors.Wrapf(err, "replay: half-move %d", i+1)
			}
		}

		taken, capture, err := oracle.Apply(board, record.Requested)
		if err != nil {
			return nil, errors.Wrapf(err, "replay: half-move %d", i+1)
		}

		if MoveString(taken) != MoveString(record.Taken) || capture != record.Capture {
			return nil, errors.Errorf("replay: half-move %d: took %s, recorded %s",
				i+1, MoveString(taken), MoveString(record.Taken))
		}

		if board.FEN() != record.After {
			return nil, errors.Errorf("replay: half-move %d: reached %q, recorded %q", i+1, board.FEN(), record.After)
		}
	}

	// a player may have sensed before running out of time to move
	if n := len(history.Moves); len(history.Senses) > n {
		if err := checkSense(board, board.Turn, history.Senses[n]); err != nil {
			return nil, errors.Wrap(err, "replay: last turn")
		}
	}

	if err := history.checkResult(oracle, board); err != nil {
		return nil, errors.Wrap(err, "replay")
	}

	return board, nil
}

// checkSense checks a sense record against the board it was made on.
func checkSense(board *Board, color chess.Color, record SenseRecord) error {
	if record.Color != color {
		return errors.Errorf("%s sensed on %s's turn", ColorName(record.Color), ColorName(color))
	}

	if !ValidSense(record.Square) {
		return ErrIllegalSense
	}

	observations := board.Sense(record.Square)
	if len(observations) != len(record.Observations) {
		return errors.Errorf("sense %d: %d observations, recorded %d",
			record.Square, len(observations), len(record.Observations))
	}

	for i, observation := range observations {
		if observation != record.Observations[i] {
			return errors.Errorf("sense %d: observed %d on %d, recorded %d on %d",
				record.Square, observation.Piece, observation.Square,
				record.Observations[i].Piece, record.Observations[i].Square)
		}
	}

	return nil
}

// checkResult checks the recorded result against the one the final board
// and the number of moves explain. A timeout can not be seen on the board,
// so it is accepted whenever the board does not decide the game itself.
func (history *History) checkResult(oracle Oracle, board *Board) error {
	winner, reason := chess.NoColor, NoReason

	if loser, captured := oracle.KingCaptured(board); captured {
		winner, reason = loser.Other(), KingCapture
	} else if oracle.Drawn(board) {
		reason = MoveLimit
	} else if history.TurnLimit > 0 && history.Len() >= 2*history.TurnLimit {
		reason = TurnLimit
	}

	timeout := history.Reason == Timeout && history.Winner != chess.NoColor
	if timeout && reason != KingCapture && reason != MoveLimit {
		return nil
	}

	if history.Winner != winner || history.Reason != reason {
		return errors.Errorf("result is %s by %s, recorded %s by %s",
			ColorName(winner), reason, ColorName(history.Winner), history.Reason)
	}

	return nil
}

// SaveFile writes the history to the given file as yaml.
func (history *History) SaveFile(name string) error {
	data, err := yaml.Marshal(history)
	if err != nil {
		return errors.Wrap(err, "marshal history")
	}

	return errors.Wrap(os.WriteFile(name, data, 0644), "write history")
}

// LoadFile reads a history written by SaveFile.
func LoadFile(name string) (*History, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read history")
	}

	var history History
	if err := yaml.Unmarshal(data, &history); err != nil {
		return nil, errors.Wrapf(err, "parse history %s", name)
	}

	return &history, nil
}

func copyMove(move *Move) *Move {
	if move == nil {
		return nil
	}

	clone := *move
	return &clone
}
