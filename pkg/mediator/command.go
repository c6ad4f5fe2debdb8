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
	"errors"
	"fmt"

	"github.com/notnil/chess"

	"laptudirm.com/x/recon/pkg/game"
	"laptudirm.com/x/recon/pkg/rbc"
)

// Command is the kind of a request a player makes to the mediator.
type Command uint8

const (
	NoCommand Command = iota

	Color
	StartingBoard
	OpponentName

	SenseActions
	MoveActions
	SecondsLeft

	Ready
	IsMyTurn
	GameStatus

	OpponentMoveResults
	Sense
	Move
	EndTurn

	WinnerColor
	WinReason
	GameHistory
)

var commandNames = [...]string{
	NoCommand:           "none",
	Color:               "color",
	StartingBoard:       "starting_board",
	OpponentName:        "opponent_name",
	SenseActions:        "sense_actions",
	MoveActions:         "move_actions",
	SecondsLeft:         "seconds_left",
	Ready:               "ready",
	IsMyTurn:            "is_my_turn",
	GameStatus:          "game_status",
	OpponentMoveResults: "opponent_move_results",
	Sense:               "sense",
	Move:                "move",
	EndTurn:             "end_turn",
	WinnerColor:         "winner_color",
	WinReason:           "win_reason",
	GameHistory:         "game_history",
}

// Gated reports whether the command may only be answered on the
// requester's turn.
func (command Command) Gated() bool {
	switch command {
	case SenseActions, MoveActions, SecondsLeft,
		OpponentMoveResults, Sense, Move, EndTurn:
		return true
	default:
		return false
	}
}

func (command Command) String() string {
	if int(command) < len(commandNames) {
		return commandNames[command]
	}
	return fmt.Sprintf("Command(%d)", command)
}

func (command Command) MarshalText() ([]byte, error) {
	return []byte(command.String()), nil
}

func (command *Command) UnmarshalText(text []byte) error {
	for i, name := range commandNames {
		if name == string(text) {
			*command = Command(i)
			return nil
		}
	}

	return fmt.Errorf("unknown command %q", text)
}

// Request is a single call made by a player.
type Request struct {
	Command Command      `json:"command"`
	Square  chess.Square `json:"square"`         // sense
	Move    *rbc.Move    `json:"move,omitempty"` // move, nil is a pass
}

// Response is the mediator's answer to a Request. Only the fields of the
// requested command are filled.
type Response struct {
	Command Command `json:"command"`
	Error   string  `json:"error,omitempty"`

	Color   chess.Color `json:"color,omitempty"`
	Board   string      `json:"board,omitempty"`
	Name    string      `json:"name,omitempty"`
	Seconds float64     `json:"seconds,omitempty"`

	Squares []chess.Square `json:"squares,omitempty"`
	Moves   []rbc.Move     `json:"moves,omitempty"`

	IsMyTurn bool `json:"is_my_turn,omitempty"`
	IsOver   bool `json:"is_over,omitempty"`

	Square       chess.Square      `json:"square"`
	Observations []rbc.Observation `json:"observations,omitempty"`
	MoveResult   *rbc.MoveResult   `json:"move_result,omitempty"`

	Winner  chess.Color   `json:"winner,omitempty"`
	Reason  rbc.WinReason `json:"reason,omitempty"`
	History *rbc.History  `json:"history,omitempty"`
}

// wireErrors are the errors which keep their identity across a transport.
var wireErrors = []error{
	game.ErrNotStarted,
	game.ErrGameOver,
	game.ErrNotOver,
	game.ErrAlreadyMoved,
	game.ErrNotAvailable,
	rbc.ErrIllegalMove,
	rbc.ErrIllegalSense,
	ErrClosed,
}

// ErrorFromWire turns the error message of a Response back into an error,
// which is one of the sentinel errors of the game packages if possible.
func ErrorFromWire(message string) error {
	if message == "" {
		return nil
	}

	for _, err := range wireErrors {
		if err.Error() == message {
			return err
		}
	}

	return errors.New(message)
}
