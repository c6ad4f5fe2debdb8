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

package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"laptudirm.com/x/recon/pkg/stats"
)

func TestElo(t *testing.T) {
	lower, elo, upper := stats.Elo(10, 0, 10)
	assert.InDelta(t, 0, elo, 1e-9)
	assert.Less(t, lower, elo)
	assert.Greater(t, upper, elo)

	_, stronger, _ := stats.Elo(15, 0, 5)
	assert.Greater(t, stronger, 0.0)

	_, weaker, _ := stats.Elo(5, 0, 15)
	assert.InDelta(t, -stronger, weaker, 1e-9)
}

func TestScore(t *testing.T) {
	score := stats.Score{Wins: 3, Losses: 1, Draws: 2}
	assert.Equal(t, 6, score.Games())
	assert.Equal(t, 4.0, score.Points())

	elo, margin := score.Elo()
	assert.Greater(t, elo, 0.0)
	assert.Greater(t, margin, 0.0)
}

func TestSPRT(t *testing.T) {
	lower, upper := stats.StoppingBounds(0.05, 0.05)
	assert.InDelta(t, -2.944, lower, 1e-3)
	assert.InDelta(t, 2.944, upper, 1e-3)

	// a dominant record favors the stronger hypothesis
	assert.Greater(t, stats.SPRT(80, 10, 10, 0, 50), 0.0)
	assert.Less(t, stats.SPRT(10, 10, 80, 0, 50), 0.0)
}
