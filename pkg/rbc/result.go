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

import "fmt"

// WinReason is the reason a game ended.
type WinReason uint8

const (
	NoReason WinReason = iota
	KingCapture
	Timeout
	TurnLimit
	MoveLimit
)

var reasonNames = [...]string{
	NoReason:    "none",
	KingCapture: "king_capture",
	Timeout:     "timeout",
	TurnLimit:   "turn_limit",
	MoveLimit:   "move_limit",
}

func (reason WinReason) String() string {
	if int(reason) < len(reasonNames) {
		return reasonNames[reason]
	}
	return fmt.Sprintf("WinReason(%d)", reason)
}

func (reason WinReason) MarshalText() ([]byte, error) {
	return []byte(reason.String()), nil
}

func (reason *WinReason) UnmarshalText(text []byte) error {
	for i, name := range reasonNames {
		if name == string(text) {
			*reason = WinReason(i)
			return nil
		}
	}

	return fmt.Errorf("invalid win reason %q", text)
}
