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

// Package bots contains simple agents to play against and test with.
package bots

import (
	"laptudirm.com/x/recon/pkg/play"
)

// Names are the names of the available bots.
var Names = []string{"attacker", "passive", "random"}

// Get returns a new bot with the given name, or nil if there is no such
// bot. The seed makes the bot's random choices repeatable.
func Get(name string, seed int64) play.Agent {
	switch name {
	case "attacker":
		return NewAttacker(seed)
	case "passive":
		return &Passive{}
	case "random":
		return NewRandom(seed)
	default:
		return nil
	}
}
