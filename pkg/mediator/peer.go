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

package mediator

import (
	"fmt"
	"time"

	"github.com/notnil/chess"

	"laptudirm.com/x/recon/pkg/game"
	"laptudirm.com/x/recon/pkg/rbc"
)

// Peer is a game.Seat which forwards every call to a mediator over a
// Transport. A Peer must be used from a single goroutine.
type Peer struct {
	transport Transport
	poll      time.Duration
}

// NewPeer creates a peer over the given transport which waits for its
// turn by polling the mediator at the given interval.
func NewPeer(transport Transport, poll time.Duration) *Peer {
	if poll <= 0 {
		poll = DefaultPollInterval
	}

	return &Peer{transport: transport, poll: poll}
}

var _ game.Seat = (*Peer)(nil)

func (peer *Peer) call(request Request) (Response, error) {
	response, err := peer.transport.RoundTrip(request)
	if err != nil {
		return Response{}, err
	}

	return response, ErrorFromWire(response.Error)
}

// Start tells the mediator the player is ready to play.
func (peer *Peer) Start() error {
	_, err := peer.call(Request{Command: Ready})
	return err
}

func (peer *Peer) Color() (chess.Color, error) {
	response, err := peer.call(Request{Command: Color})
	return response.Color, err
}

func (peer *Peer) StartingBoard() (*rbc.Board, error) {
	response, err := peer.call(Request{Command: StartingBoard})
	if err != nil {
		return nil, err
	}

	return rbc.ParseFEN(response.Board)
}

func (peer *Peer) OpponentName() (string, error) {
	response, err := peer.call(Request{Command: OpponentName})
	return response.Name, err
}

func (peer *Peer) SenseActions() ([]chess.Square, error) {
	response, err := peer.call(Request{Command: SenseActions})
	return response.Squares, err
}

func (peer *Peer) MoveActions() ([]rbc.Move, error) {
	response, err := peer.call(Request{Command: MoveActions})
	return response.Moves, err
}

func (peer *Peer) OpponentMoveResults() (chess.Square, error) {
	response, err := peer.call(Request{Command: OpponentMoveResults})
	if err != nil {
		return chess.NoSquare, err
	}

	return response.Square, nil
}

func (peer *Peer) Sense(sq chess.Square) ([]rbc.Observation, error) {
	response, err := peer.call(Request{Command: Sense, Square: sq})
	return response.Observations, err
}

func (peer *Peer) Move(requested *rbc.Move) (rbc.MoveResult, error) {
	response, err := peer.call(Request{Command: Move, Move: requested})
	if err != nil {
		return rbc.MoveResult{}, err
	}

	if response.MoveResult == nil {
		return rbc.MoveResult{}, fmt.Errorf("mediator: %s response without a result", response.Command)
	}

	return *response.MoveResult, nil
}

func (peer *Peer) EndTurn() error {
	_, err := peer.call(Request{Command: EndTurn})
	return err
}

// IsOver blocks until the game is over or it is the player's turn, and
// reports which one happened.
func (peer *Peer) IsOver() (bool, error) {
	for {
		response, err := peer.call(Request{Command: GameStatus})
		if err != nil {
			return false, err
		}

		if response.IsOver {
			return true, nil
		}

		if response.IsMyTurn {
			return false, nil
		}

		time.Sleep(peer.poll)
	}
}

func (peer *Peer) TimeLeft() (time.Duration, error) {
	response, err := peer.call(Request{Command: SecondsLeft})
	return time.Duration(response.Seconds * float64(time.Second)), err
}

func (peer *Peer) WinnerColor() (chess.Color, error) {
	response, err := peer.call(Request{Command: WinnerColor})
	return response.Winner, err
}

func (peer *Peer) WinReason() (rbc.WinReason, error) {
	response, err := peer.call(Request{Command: WinReason})
	return response.Reason, err
}

func (peer *Peer) GameHistory() (*rbc.History, error) {
	response, err := peer.call(Request{Command: GameHistory})
	if err != nil {
		return nil, err
	}

	return response.History, nil
}

// Close ends the conversation with the mediator.
func (peer *Peer) Close() error {
	return peer.transport.Close()
}
