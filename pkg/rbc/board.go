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
	"strconv"
	"strings"

	"github.com/notnil/chess"
)

// StartFEN is the FEN string of the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// CastlingRights is a bitset of the castling moves still available.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	NoCastling CastlingRights = 0
)

var castlingSides = []struct {
	right CastlingRights
	color chess.Color
	side  chess.Side
	char  string
}{
	{WhiteKingside, chess.White, chess.KingSide, "K"},
	{WhiteQueenside, chess.White, chess.QueenSide, "Q"},
	{BlackKingside, chess.Black, chess.KingSide, "k"},
	{BlackQueenside, chess.Black, chess.QueenSide, "q"},
}

// String returns the rights in FEN form, like "KQkq" or "-".
func (rights CastlingRights) String() string {
	str := ""
	for _, castle := range castlingSides {
		if rights&castle.right != 0 {
			str += castle.char
		}
	}

	if str == "" {
		return "-"
	}
	return str
}

// Board is the true position of a game. Unlike a normal chess position
// a Board may be missing a king, which is how RBC games are decided.
type Board struct {
	Squares [64]chess.Piece

	Turn      chess.Color
	Castling  CastlingRights
	EnPassant chess.Square

	HalfMoves int // plys since the last capture or pawn move
	FullMoves int
}

// NewBoard returns the standard starting position.
func NewBoard() *Board {
	board, _ := ParseFEN(StartFEN)
	return board
}

// ParseFEN parses a FEN string into a Board. Positions without kings are
// accepted.
func ParseFEN(fen string) (*Board, error) {
	var position chess.Position
	if err := position.UnmarshalText([]byte(fen)); err != nil {
		return nil, fmt.Errorf("parse fen: %w", err)
	}

	board := Board{
		Turn:      position.Turn(),
		Castling:  NoCastling,
		EnPassant: chess.NoSquare,
	}

	for sq, piece := range position.Board().SquareMap() {
		board.Squares[sq] = piece
	}

	rights := position.CastleRights()
	for _, castle := range castlingSides {
		if rights.CanCastle(castle.color, castle.side) {
			board.Castling |= castle.right
		}
	}

	// the position keeps its en passant square and counters unexported,
	// but they have been validated by now
	fields := strings.Fields(fen)
	if fields[3] != "-" {
		board.EnPassant, _ = ParseSquare(fields[3])
	}

	board.HalfMoves, _ = strconv.Atoi(fields[4])
	board.FullMoves, _ = strconv.Atoi(fields[5])

	return &board, nil
}

// FEN returns the FEN string of the board.
func (board *Board) FEN() string {
	enPassant := "-"
	if board.EnPassant != chess.NoSquare {
		enPassant = board.EnPassant.String()
	}

	return fmt.Sprintf(
		"%s %s %s %s %d %d",
		chess.NewBoard(board.SquareMap()), board.Turn, board.Castling,
		enPassant, board.HalfMoves, board.FullMoves,
	)
}

func (board *Board) String() string {
	return board.FEN()
}

// Copy returns a deep copy of the board.
func (board *Board) Copy() *Board {
	clone := *board
	return &clone
}

// Piece returns the piece on the given square.
func (board *Board) Piece(sq chess.Square) chess.Piece {
	if !onBoard(sq) {
		return chess.NoPiece
	}
	return board.Squares[sq]
}

// King returns the square of the given color's king, if it is still on
// the board.
func (board *Board) King(color chess.Color) (chess.Square, bool) {
	king := chess.NewPiece(chess.King, color)
	for sq, piece := range board.Squares {
		if piece == king {
			return chess.Square(sq), true
		}
	}

	return chess.NoSquare, false
}

// Without returns a copy of the board with all pieces of the given color
// removed. It is the board as imagined by the other side.
func (board *Board) Without(color chess.Color) *Board {
	clone := board.Copy()
	for sq, piece := range clone.Squares {
		if piece != chess.NoPiece && piece.Color() == color {
			clone.Squares[sq] = chess.NoPiece
		}
	}

	clone.EnPassant = chess.NoSquare
	return clone
}

// SquareMap returns the occupied squares of the board.
func (board *Board) SquareMap() map[chess.Square]chess.Piece {
	squares := make(map[chess.Square]chess.Piece)
	for sq, piece := range board.Squares {
		if piece != chess.NoPiece {
			squares[chess.Square(sq)] = piece
		}
	}

	return squares
}

// Draw returns a visual representation of the board.
func (board *Board) Draw() string {
	return chess.NewBoard(board.SquareMap()).Draw()
}

// ParseSquare parses an algebraic square name like "e4".
func ParseSquare(str string) (chess.Square, error) {
	for sq := chess.A1; sq <= chess.H8; sq++ {
		if sq.String() == str {
			return sq, nil
		}
	}

	return chess.NoSquare, fmt.Errorf("invalid square %q", str)
}

// ParseColor parses a color name, "white" or "black".
func ParseColor(str string) (chess.Color, error) {
	switch strings.ToLower(str) {
	case "white", "w":
		return chess.White, nil
	case "black", "b":
		return chess.Black, nil
	default:
		return chess.NoColor, fmt.Errorf("invalid color %q", str)
	}
}

// ColorName returns the lowercase name of a color.
func ColorName(color chess.Color) string {
	switch color {
	case chess.White:
		return "white"
	case chess.Black:
		return "black"
	default:
		return "none"
	}
}

func square(file, rank int) chess.Square {
	return chess.Square(rank*8 + file)
}

func fileOf(sq chess.Square) int { return int(sq) % 8 }
func rankOf(sq chess.Square) int { return int(sq) / 8 }

func onBoard(sq chess.Square) bool {
	return sq >= 0 && sq < 64
}

// offset returns the square df files and dr ranks away from sq.
func offset(sq chess.Square, df, dr int) (chess.Square, bool) {
	file, rank := fileOf(sq)+df, rankOf(sq)+dr
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return chess.NoSquare, false
	}

	return square(file, rank), true
}
