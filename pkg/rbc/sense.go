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
	"errors"

	"github.com/notnil/chess"
)

var ErrIllegalSense = errors.New("rbc: illegal sense")

// Observation is the content of a single sensed square.
type Observation struct {
	Square chess.Square `json:"square" yaml:"square"`
	Piece  chess.Piece  `json:"piece" yaml:"piece"` // chess.NoPiece if the square is empty
}

// SenseActions returns every square which can be sensed, a1 to h8.
func SenseActions() []chess.Square {
	squares := make([]chess.Square, 64)
	for i := range squares {
		squares[i] = chess.Square(i)
	}
	return squares
}

// ValidSense reports whether the square may be passed to Sense. NoSquare
// is a valid sense which reveals nothing.
func ValidSense(sq chess.Square) bool {
	return sq == chess.NoSquare || onBoard(sq)
}

// SenseWindow returns the squares of the 3x3 window centered on the given
// square, clipped to the board, in ascending order.
func SenseWindow(sq chess.Square) []chess.Square {
	if !onBoard(sq) {
		return nil
	}

	var window []chess.Square
	for dr := -1; dr <= 1; dr++ {
		for df := -1; df <= 1; df++ {
			if neighbour, ok := offset(sq, df, dr); ok {
				window = append(window, neighbour)
			}
		}
	}

	return window
}

// Sense returns the observations of the window centered on sq.
func (board *Board) Sense(sq chess.Square) []Observation {
	window := SenseWindow(sq)

	observations := make([]Observation, 0, len(window))
	for _, s := range window {
		observations = append(observations, Observation{Square: s, Piece: board.Squares[s]})
	}

	return observations
}
