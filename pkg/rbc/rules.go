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

var ErrIllegalMove = errors.New("rbc: illegal move")

// Oracle defines the legality and the application of moves. The game
// state machine never touches the board except through an Oracle.
type Oracle interface {
	// LegalMoves returns the moves the side to move may request.
	LegalMoves(board *Board) []Move

	// Apply applies the requested move (nil is a pass) to the board. The
	// taken move may differ from the requested one. A move which is not
	// legal is rejected with ErrIllegalMove and the board is not touched.
	Apply(board *Board, requested *Move) (taken *Move, capture chess.Square, err error)

	// KingCaptured reports the color whose king is no longer on the board.
	KingCaptured(board *Board) (chess.Color, bool)

	// Drawn reports whether the position is drawn by the oracle's rules.
	Drawn(board *Board) bool

	// AllowsPass reports whether a nil move may be requested.
	AllowsPass() bool
}

// Rules is the Oracle for Reconnaissance Blind Chess. There is no check
// or checkmate: kings are captured like any other piece, and moves which
// run into hidden pieces are revised instead of being rejected.
type Rules struct{}

var _ Oracle = Rules{}

// LegalMoves returns every move the side to move could believe is legal:
// the pseudo-legal moves on a board without the opponent's pieces, and
// every pawn diagonal not blocked by an own piece.
func (Rules) LegalMoves(board *Board) []Move {
	own := board.Without(board.Turn.Other())
	moves := pseudoLegalMoves(own)

	for from, piece := range board.Squares {
		if piece != chess.NewPiece(chess.Pawn, board.Turn) {
			continue
		}

		dir := pawnDirection(board.Turn)
		for _, df := range [2]int{-1, 1} {
			to, ok := offset(chess.Square(from), df, dir)
			if !ok || own.Squares[to] != chess.NoPiece {
				continue
			}

			moves = appendPawnMove(moves, chess.Square(from), to, board.Turn)
		}
	}

	return moves
}

func (rules Rules) Apply(board *Board, requested *Move) (*Move, chess.Square, error) {
	if requested == nil {
		if !rules.AllowsPass() {
			return nil, chess.NoSquare, ErrIllegalMove
		}

		board.Pass()
		return nil, chess.NoSquare, nil
	}

	move := promoteToQueen(board, *requested)
	if !containsMove(rules.LegalMoves(board), move) {
		return nil, chess.NoSquare, ErrIllegalMove
	}

	taken := revise(board, move)
	if taken == nil {
		board.Pass()
		return nil, chess.NoSquare, nil
	}

	capture := captureSquare(board, *taken)
	board.Play(*taken)
	return taken, capture, nil
}

func (Rules) KingCaptured(board *Board) (chess.Color, bool) {
	for _, color := range [2]chess.Color{chess.White, chess.Black} {
		if _, found := board.King(color); !found {
			return color, true
		}
	}

	return chess.NoColor, false
}

// Drawn implements the 50 move rule.
func (Rules) Drawn(board *Board) bool {
	return board.HalfMoves >= 100
}

func (Rules) AllowsPass() bool {
	return true
}

// revise finds the move actually taken on the true board when the given
// move is requested, nil meaning the move turned into a pass.
func revise(board *Board, move Move) *Move {
	pseudo := pseudoLegalMoves(board)
	if containsMove(pseudo, move) {
		return &move
	}

	piece := board.Squares[move.From]

	// A castle which is not pseudo-legal is blocked by a hidden piece.
	if isCastle(piece, move) {
		return nil
	}

	switch piece.Type() {
	case chess.Pawn, chess.Bishop, chess.Rook, chess.Queen:
		// Slide as far as possible along the path, stopping on the
		// first hidden piece and capturing it.
		path := between(move.From, move.To)
		path = append(path, move.To)
		for i := len(path) - 1; i >= 0; i-- {
			candidate := Move{From: move.From, To: path[i], Promotion: move.Promotion}
			if rankOf(path[i]) != backRank(board.Turn) {
				candidate.Promotion = chess.NoPieceType
			}

			if containsMove(pseudo, candidate) {
				return &candidate
			}
		}
	}

	return nil
}

// Play makes a pseudo-legal move on the board.
func (board *Board) Play(move Move) {
	piece := board.Squares[move.From]
	captured := board.Squares[move.To]
	color := piece.Color()

	board.HalfMoves++
	if piece.Type() == chess.Pawn || captured != chess.NoPiece {
		board.HalfMoves = 0
	}

	if piece.Type() == chess.Pawn && move.To == board.EnPassant && captured == chess.NoPiece &&
		fileOf(move.From) != fileOf(move.To) {
		behind, _ := offset(move.To, 0, -pawnDirection(color))
		board.Squares[behind] = chess.NoPiece
	}

	if isCastle(piece, move) {
		rank := rankOf(move.From)
		rookFrom, rookTo := square(7, rank), square(5, rank)
		if fileOf(move.To) == 2 {
			rookFrom, rookTo = square(0, rank), square(3, rank)
		}

		board.Squares[rookTo] = board.Squares[rookFrom]
		board.Squares[rookFrom] = chess.NoPiece
	}

	if piece.Type() == chess.King {
		if color == chess.White {
			board.Castling &^= WhiteKingside | WhiteQueenside
		} else {
			board.Castling &^= BlackKingside | BlackQueenside
		}
	}

	for _, sq := range [2]chess.Square{move.From, move.To} {
		board.Castling &^= rookRights[sq]
	}

	board.EnPassant = chess.NoSquare
	if piece.Type() == chess.Pawn && abs(rankOf(move.To)-rankOf(move.From)) == 2 {
		board.EnPassant, _ = offset(move.From, 0, pawnDirection(color))
	}

	board.Squares[move.To] = piece
	if move.Promotion != chess.NoPieceType {
		board.Squares[move.To] = chess.NewPiece(move.Promotion, color)
	}
	board.Squares[move.From] = chess.NoPiece

	board.endPly()
}

// Pass gives the move to the other side without touching any piece.
func (board *Board) Pass() {
	board.HalfMoves++
	board.EnPassant = chess.NoSquare
	board.endPly()
}

func (board *Board) endPly() {
	if board.Turn == chess.Black {
		board.FullMoves++
	}
	board.Turn = board.Turn.Other()
}

func pseudoLegalMoves(board *Board) []Move {
	var moves []Move
	us := board.Turn

	for i, piece := range board.Squares {
		if piece == chess.NoPiece || piece.Color() != us {
			continue
		}

		from := chess.Square(i)
		switch piece.Type() {
		case chess.Pawn:
			moves = pawnMoves(board, moves, from)
		case chess.Knight:
			moves = stepMoves(board, moves, from, knightSteps)
		case chess.King:
			moves = stepMoves(board, moves, from, kingSteps)
		case chess.Bishop:
			moves = slideMoves(board, moves, from, bishopDirections)
		case chess.Rook:
			moves = slideMoves(board, moves, from, rookDirections)
		case chess.Queen:
			moves = slideMoves(board, moves, from, bishopDirections)
			moves = slideMoves(board, moves, from, rookDirections)
		}
	}

	return castleMoves(board, moves)
}

func pawnMoves(board *Board, moves []Move, from chess.Square) []Move {
	us := board.Turn
	dir := pawnDirection(us)

	if one, ok := offset(from, 0, dir); ok && board.Squares[one] == chess.NoPiece {
		moves = appendPawnMove(moves, from, one, us)

		startRank := 1
		if us == chess.Black {
			startRank = 6
		}

		if two, ok := offset(from, 0, 2*dir); ok && rankOf(from) == startRank &&
			board.Squares[two] == chess.NoPiece {
			moves = append(moves, Move{From: from, To: two})
		}
	}

	for _, df := range [2]int{-1, 1} {
		to, ok := offset(from, df, dir)
		if !ok {
			continue
		}

		target := board.Squares[to]
		if (target != chess.NoPiece && target.Color() != us) || to == board.EnPassant {
			moves = appendPawnMove(moves, from, to, us)
		}
	}

	return moves
}

func appendPawnMove(moves []Move, from, to chess.Square, us chess.Color) []Move {
	if rankOf(to) != backRank(us) {
		return append(moves, Move{From: from, To: to})
	}

	for _, promotion := range [4]chess.PieceType{chess.Knight, chess.Bishop, chess.Rook, chess.Queen} {
		moves = append(moves, Move{From: from, To: to, Promotion: promotion})
	}

	return moves
}

func stepMoves(board *Board, moves []Move, from chess.Square, steps [8][2]int) []Move {
	for _, step := range steps {
		to, ok := offset(from, step[0], step[1])
		if !ok {
			continue
		}

		target := board.Squares[to]
		if target == chess.NoPiece || target.Color() != board.Turn {
			moves = append(moves, Move{From: from, To: to})
		}
	}

	return moves
}

func slideMoves(board *Board, moves []Move, from chess.Square, directions [4][2]int) []Move {
	for _, dir := range directions {
		for to, ok := offset(from, dir[0], dir[1]); ok; to, ok = offset(to, dir[0], dir[1]) {
			target := board.Squares[to]
			if target != chess.NoPiece && target.Color() == board.Turn {
				break
			}

			moves = append(moves, Move{From: from, To: to})
			if target != chess.NoPiece {
				break
			}
		}
	}

	return moves
}

// castleMoves appends the castling moves of the side to move. Check is
// not a concept in RBC, so only the rights and the emptiness of the
// squares between the king and the rook matter.
func castleMoves(board *Board, moves []Move) []Move {
	us := board.Turn
	rank := 0
	kingside, queenside := WhiteKingside, WhiteQueenside
	if us == chess.Black {
		rank = 7
		kingside, queenside = BlackKingside, BlackQueenside
	}

	king, rook := chess.NewPiece(chess.King, us), chess.NewPiece(chess.Rook, us)
	from := square(4, rank)
	if board.Squares[from] != king {
		return moves
	}

	empty := func(files ...int) bool {
		for _, file := range files {
			if board.Squares[square(file, rank)] != chess.NoPiece {
				return false
			}
		}
		return true
	}

	if board.Castling&kingside != 0 && board.Squares[square(7, rank)] == rook && empty(5, 6) {
		moves = append(moves, Move{From: from, To: square(6, rank)})
	}

	if board.Castling&queenside != 0 && board.Squares[square(0, rank)] == rook && empty(1, 2, 3) {
		moves = append(moves, Move{From: from, To: square(2, rank)})
	}

	return moves
}

// promoteToQueen makes a pawn move onto the back rank without an explicit
// promotion piece into a queen promotion.
func promoteToQueen(board *Board, move Move) Move {
	piece := board.Piece(move.From)
	if piece.Type() == chess.Pawn && move.Promotion == chess.NoPieceType &&
		rankOf(move.To) == backRank(piece.Color()) {
		move.Promotion = chess.Queen
	}

	return move
}

func captureSquare(board *Board, move Move) chess.Square {
	piece := board.Squares[move.From]
	if board.Squares[move.To] != chess.NoPiece {
		return move.To
	}

	if piece.Type() == chess.Pawn && move.To == board.EnPassant && fileOf(move.From) != fileOf(move.To) {
		behind, _ := offset(move.To, 0, -pawnDirection(piece.Color()))
		return behind
	}

	return chess.NoSquare
}

func isCastle(piece chess.Piece, move Move) bool {
	return piece.Type() == chess.King && abs(fileOf(move.To)-fileOf(move.From)) == 2
}

// between returns the squares strictly between two squares on a line,
// ordered from a to b. Unaligned squares have nothing between them.
func between(a, b chess.Square) []chess.Square {
	df, dr := fileOf(b)-fileOf(a), rankOf(b)-rankOf(a)
	if df != 0 && dr != 0 && abs(df) != abs(dr) {
		return nil
	}

	stepF, stepR := sign(df), sign(dr)
	var squares []chess.Square
	for sq, _ := offset(a, stepF, stepR); sq != b && onBoard(sq); sq, _ = offset(sq, stepF, stepR) {
		squares = append(squares, sq)
	}

	return squares
}

func containsMove(moves []Move, move Move) bool {
	for _, m := range moves {
		if m == move {
			return true
		}
	}

	return false
}

func pawnDirection(color chess.Color) int {
	if color == chess.Black {
		return -1
	}
	return 1
}

func backRank(color chess.Color) int {
	if color == chess.Black {
		return 0
	}
	return 7
}

var (
	knightSteps = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps   = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}

	bishopDirections = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	rookDirections   = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
)

var rookRights = map[chess.Square]CastlingRights{
	chess.A1: WhiteQueenside,
	chess.H1: WhiteKingside,
	chess.A8: BlackQueenside,
	chess.H8: BlackKingside,
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
