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
	"fmt"

	"github.com/notnil/chess"
)

// Move is a chess move in from-to form. A nil *Move is used throughout
// the module to represent a pass.
type Move struct {
	From, To  chess.Square
	Promotion chess.PieceType
}

// ParseMove parses a move in UCI notation, like "e2e4" or "e7e8q".
func ParseMove(str string) (Move, error) {
	// without a position the notation only decodes squares and promotion
	move, err := chess.UCINotation{}.Decode(nil, str)
	if err != nil {
		return Move{}, fmt.Errorf("parse move: invalid move %q", str)
	}

	return Move{From: move.S1(), To: move.S2(), Promotion: move.Promo()}, nil
}

// MustParseMove is like ParseMove but panics on invalid input.
func MustParseMove(str string) Move {
	move, err := ParseMove(str)
	if err != nil {
		panic(err)
	}
	return move
}

// String returns the UCI notation of the move.
func (move Move) String() string {
	return move.From.String() + move.To.String() + move.Promotion.String()
}

func (move Move) MarshalText() ([]byte, error) {
	return []byte(move.String()), nil
}

func (move *Move) UnmarshalText(text []byte) error {
	parsed, err := ParseMove(string(text))
	if err != nil {
		return err
	}

	*move = parsed
	return nil
}

// MoveString formats an optional move, printing passes as "pass".
func MoveString(move *Move) string {
	if move == nil {
		return "pass"
	}
	return move.String()
}

// MoveResult is what the mover learns after applying a move.
type MoveResult struct {
	Requested *Move        `json:"requested" yaml:"requested"`
	Taken     *Move        `json:"taken" yaml:"taken"`
	Capture   chess.Square `json:"capture" yaml:"capture"` // chess.NoSquare if nothing was captured
}

// Captured reports whether the move captured an opponent piece.
func (result MoveResult) Captured() bool {
	return result.Capture != chess.NoSquare
}
