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

package tournament_test

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"laptudirm.com/x/recon/pkg/stats"
	"laptudirm.com/x/recon/pkg/tournament"
)

func encounters(scheduler tournament.Scheduler, players int) [][2]int {
	scheduler.Initialize(players)

	var pairs [][2]int
	for i := 0; i < scheduler.TotalEncounters(); i++ {
		p1, p2 := scheduler.NextEncounter()
		if p1 > p2 {
			p1, p2 = p2, p1
		}
		pairs = append(pairs, [2]int{p1, p2})
	}
	return pairs
}

func TestRoundRobin(t *testing.T) {
	for players, want := range map[int][][2]int{
		2: {{0, 1}},
		3: {{0, 1}, {0, 2}, {1, 2}},
		4: {{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}},
	} {
		assert.ElementsMatch(t, want, encounters(&tournament.RoundRobin{}, players), "%d players", players)
	}
}

func TestGauntlet(t *testing.T) {
	assert.Equal(t, [][2]int{{0, 1}, {0, 2}, {0, 3}}, encounters(&tournament.Gauntlet{}, 4))
}

func TestNewScheduler(t *testing.T) {
	_, err := tournament.NewScheduler("swiss")
	assert.Error(t, err)

	scheduler, err := tournament.NewScheduler("")
	require.NoError(t, err)
	assert.IsType(t, &tournament.RoundRobin{}, scheduler)
}

func TestNewTournament(t *testing.T) {
	_, err := tournament.NewTournament(tournament.Config{Bots: []string{"random"}})
	assert.Error(t, err)

	_, err = tournament.NewTournament(tournament.Config{Bots: []string{"random", "grandmaster"}})
	assert.Error(t, err)

	_, err = tournament.NewTournament(tournament.Config{Bots: []string{"random", "passive"}, TimeControl: "10"})
	assert.Error(t, err)

	tour, err := tournament.NewTournament(tournament.Config{Bots: []string{"random", "passive", "attacker"}, GamePairs: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, tour.Config.Rounds)
	assert.Equal(t, 1, tour.Config.Concurrency)
	assert.Equal(t, 12, tour.TotalGames())
}

func TestGauntletTournament(t *testing.T) {
	dir := t.TempDir()

	tour, err := tournament.NewTournament(tournament.Config{
		Bots:        []string{"attacker", "passive"},
		Scheduler:   "gauntlet",
		Concurrency: 2,
		HistoryDir:  dir,
	})
	require.NoError(t, err)

	var out bytes.Buffer
	tour.Output = &out

	require.NoError(t, tour.Start(context.Background()))

	// the attacker's rush captures the passive king with either color
	assert.Equal(t, stats.Score{Wins: 2}, tour.Scores[0])
	assert.Equal(t, stats.Score{Losses: 2}, tour.Scores[1])
	assert.Contains(t, out.String(), "attacker")

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestRoundRobinTournament(t *testing.T) {
	tour, err := tournament.NewTournament(tournament.Config{
		Bots:        []string{"attacker", "passive", "random"},
		Seed:        42,
		Concurrency: 3,
		TurnLimit:   30,
	})
	require.NoError(t, err)
	tour.Output = &bytes.Buffer{}

	require.NoError(t, tour.Start(context.Background()))

	total := 0
	for _, score := range tour.Scores {
		assert.Equal(t, 4, score.Games())
		total += score.Games()
	}
	assert.Equal(t, 2*tour.TotalGames(), total)
}

func TestMediatedTournament(t *testing.T) {
	tour, err := tournament.NewTournament(tournament.Config{
		Bots:         []string{"attacker", "passive"},
		Mediated:     true,
		PollInterval: time.Millisecond,
	})
	require.NoError(t, err)
	tour.Output = &bytes.Buffer{}

	require.NoError(t, tour.Start(context.Background()))
	assert.Equal(t, stats.Score{Wins: 2}, tour.Scores[0])
}

func TestSPRTStopsTournament(t *testing.T) {
	tour, err := tournament.NewTournament(tournament.Config{
		Bots:      []string{"attacker", "passive"},
		Rounds:    1000,
		Scheduler: "gauntlet",
		SPRT: &tournament.SPRTConfig{
			Elo0: 0, Elo1: 10,
			Alpha: 0.05, Beta: 0.05,
		},
	})
	require.NoError(t, err)

	var out bytes.Buffer
	tour.Output = &out

	require.NoError(t, tour.Start(context.Background()))

	_, upper := stats.StoppingBounds(0.05, 0.05)
	assert.GreaterOrEqual(t, tour.LLR(), upper)
	assert.Less(t, tour.Scores[0].Games(), 2000)
	assert.Contains(t, out.String(), "LLR")
}

func TestConfigYAML(t *testing.T) {
	var config tournament.Config
	require.NoError(t, yaml.Unmarshal([]byte(`
bots: [attacker, random]
scheduler: gauntlet
game-pairs: 3
tc: 60+1
mediated: true
poll: 5ms
`), &config))

	assert.Equal(t, []string{"attacker", "random"}, config.Bots)
	assert.Equal(t, 3, config.GamePairs)
	assert.Equal(t, "60+1", config.TimeControl)
	assert.Equal(t, 5*time.Millisecond, config.PollInterval)
	assert.True(t, config.Mediated)
}
