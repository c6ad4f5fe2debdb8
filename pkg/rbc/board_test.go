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

package rbc_test

import (
	"testing"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/recon/pkg/rbc"
)

func TestFEN(t *testing.T) {
	for _, fen := range []string{
		rbc.StartFEN,
		"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R b Kq - 12 40",
		"8/8/8/8/8/8/8/4K3 w - - 0 1",
	} {
		board, err := rbc.ParseFEN(fen)
		require.NoError(t, err, fen)
		assert.Equal(t, fen, board.FEN())
	}

	for _, fen := range []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1",
	} {
		_, err := rbc.ParseFEN(fen)
		assert.Error(t, err, fen)
	}
}

func TestFENFields(t *testing.T) {
	board, err := rbc.ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R b Kq - 12 40")
	require.NoError(t, err)

	assert.Equal(t, chess.Black, board.Turn)
	assert.Equal(t, rbc.WhiteKingside|rbc.BlackQueenside, board.Castling)
	assert.Equal(t, chess.NoSquare, board.EnPassant)
	assert.Equal(t, 12, board.HalfMoves)
	assert.Equal(t, 40, board.FullMoves)
	assert.Equal(t, chess.BlackRook, board.Piece(chess.A8))

	board, err = rbc.ParseFEN("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	require.NoError(t, err)
	assert.Equal(t, chess.D6, board.EnPassant)
	assert.Equal(t, rbc.NoCastling, board.Castling)
}

func TestCastlingRights(t *testing.T) {
	assert.Equal(t, "-", rbc.NoCastling.String())
	assert.Equal(t, "KQkq", (rbc.WhiteKingside | rbc.WhiteQueenside | rbc.BlackKingside | rbc.BlackQueenside).String())
	assert.Equal(t, "Qk", (rbc.BlackKingside | rbc.WhiteQueenside).String())
}

func TestParseSquare(t *testing.T) {
	for str, want := range map[string]chess.Square{
		"a1": chess.A1,
		"e4": chess.E4,
		"h8": chess.H8,
	} {
		sq, err := rbc.ParseSquare(str)
		require.NoError(t, err, str)
		assert.Equal(t, want, sq)
	}

	for _, str := range []string{"", "e", "i1", "a9", "e44", "E4"} {
		_, err := rbc.ParseSquare(str)
		assert.Error(t, err, str)
	}
}

func TestWithout(t *testing.T) {
	board := rbc.NewBoard()
	white := board.Without(chess.Black)

	assert.Equal(t, chess.WhiteKing, white.Piece(chess.E1))
	assert.Equal(t, chess.NoPiece, white.Piece(chess.E8))
	assert.Equal(t, chess.BlackKing, board.Piece(chess.E8))
}

func TestSenseWindow(t *testing.T) {
	assert.Equal(t, []chess.Square{chess.A1, chess.B1, chess.A2, chess.B2}, rbc.SenseWindow(chess.A1))
	assert.Equal(t, []chess.Square{
		chess.D3, chess.E3, chess.F3,
		chess.D4, chess.E4, chess.F4,
		chess.D5, chess.E5, chess.F5,
	}, rbc.SenseWindow(chess.E4))
	assert.Equal(t, []chess.Square{chess.G7, chess.H7, chess.G8, chess.H8}, rbc.SenseWindow(chess.H8))
	assert.Empty(t, rbc.SenseWindow(chess.NoSquare))

	assert.Len(t, rbc.SenseActions(), 64)
	assert.True(t, rbc.ValidSense(chess.NoSquare))
	assert.False(t, rbc.ValidSense(chess.Square(64)))
}

func TestSense(t *testing.T) {
	observations := rbc.NewBoard().Sense(chess.B7)

	require.Len(t, observations, 9)
	assert.Equal(t, rbc.Observation{Square: chess.A6, Piece: chess.NoPiece}, observations[0])
	assert.Equal(t, rbc.Observation{Square: chess.B7, Piece: chess.BlackPawn}, observations[4])
	assert.Equal(t, rbc.Observation{Square: chess.C8, Piece: chess.BlackBishop}, observations[8])
}

func TestParseMove(t *testing.T) {
	m, err := rbc.ParseMove("e7e8n")
	require.NoError(t, err)
	assert.Equal(t, rbc.Move{From: chess.E7, To: chess.E8, Promotion: chess.Knight}, m)
	assert.Equal(t, "e7e8n", m.String())

	for _, str := range []string{"", "e2", "e2e9", "i2e4", "e7e8k"} {
		_, err := rbc.ParseMove(str)
		assert.Error(t, err, str)
	}

	assert.Equal(t, "pass", rbc.MoveString(nil))
}

func TestWinReasonText(t *testing.T) {
	text, err := rbc.KingCapture.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "king_capture", string(text))

	var reason rbc.WinReason
	require.NoError(t, reason.UnmarshalText([]byte("turn_limit")))
	assert.Equal(t, rbc.TurnLimit, reason)
	assert.Error(t, reason.UnmarshalText([]byte("stalemate")))
}
