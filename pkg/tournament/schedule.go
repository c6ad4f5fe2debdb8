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

package tournament

import (
	"fmt"
	"slices"
)

// Scheduler decides which bots meet in each encounter of a round.
type Scheduler interface {
	Initialize(players int)
	NextEncounter() (int, int)
	TotalEncounters() int
}

// NewScheduler returns the scheduler with the given name.
func NewScheduler(name string) (Scheduler, error) {
	switch name {
	case "round-robin", "":
		return &RoundRobin{}, nil
	case "gauntlet":
		return &Gauntlet{}, nil
	default:
		return nil, fmt.Errorf("new tournament: invalid scheduler %s", name)
	}
}

// RoundRobin pairs every bot with every other bot once per round, using
// the circle method.
type RoundRobin struct {
	playerCount int
	pairNumber  int

	circleTop, circleBottom []int
}

func (rr *RoundRobin) Initialize(n int) {
	rr.playerCount = n
	rounded := n + n%2

	rr.circleTop = make([]int, rounded/2)
	rr.circleBottom = make([]int, rounded/2)

	for i := 0; i < rounded; i++ {
		if i < rounded/2 {
			rr.circleTop[i] = i
		} else {
			rr.circleBottom[rounded-i-1] = i
		}
	}

	rr.pairNumber = 0
}

func (rr *RoundRobin) NextEncounter() (int, int) {
	if rr.pairNumber >= len(rr.circleTop) {
		rr.pairNumber = 0

		last := len(rr.circleTop) - 1
		lastElem := rr.circleTop[last]

		rr.circleTop = slices.Insert(rr.circleTop, 1, rr.circleBottom[0])[:last+1]
		rr.circleBottom = append(rr.circleBottom, lastElem)[1:]
	}

	player1 := rr.circleTop[rr.pairNumber]
	player2 := rr.circleBottom[rr.pairNumber]
	rr.pairNumber++

	// the phantom player of an odd circle sits this one out
	if player1 < rr.playerCount && player2 < rr.playerCount {
		return player1, player2
	}

	return rr.NextEncounter()
}

func (rr *RoundRobin) TotalEncounters() int {
	return rr.playerCount * (rr.playerCount - 1) / 2
}

// Gauntlet pairs the first bot with every other bot.
type Gauntlet struct {
	playerCount int
	gameNumber  int
}

func (g *Gauntlet) Initialize(n int) {
	g.playerCount = n
	g.gameNumber = 0
}

func (g *Gauntlet) NextEncounter() (int, int) {
	g.gameNumber++
	return 0, g.gameNumber
}

func (g *Gauntlet) TotalEncounters() int {
	return g.playerCount - 1
}
