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

package remote_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/recon/pkg/bots"
	"laptudirm.com/x/recon/pkg/game"
	"laptudirm.com/x/recon/pkg/play"
	"laptudirm.com/x/recon/pkg/rbc"
	"laptudirm.com/x/recon/pkg/remote"
)

func newServer(t *testing.T, historyDir string) (*remote.Client, *httptest.Server) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server := remote.NewServer(ctx, remote.ServerConfig{
		PollInterval: time.Millisecond,
		HistoryDir:   historyDir,
	})

	httpServer := httptest.NewServer(server.Handler())
	t.Cleanup(httpServer.Close)

	return remote.NewClient(httpServer.URL), httpServer
}

func TestRemoteGame(t *testing.T) {
	dir := t.TempDir()
	client, _ := newServer(t, dir)
	ctx := context.Background()

	info, err := client.CreateGame(ctx, game.Config{WhiteName: "attacker", BlackName: "passive"})
	require.NoError(t, err)
	assert.NotEmpty(t, info.ID)
	assert.Equal(t, game.DefaultTimeControl, info.TC)
	assert.False(t, info.Finished)

	agents := map[chess.Color]play.Agent{
		chess.White: bots.NewAttacker(1),
		chess.Black: &bots.Passive{},
	}

	var wg sync.WaitGroup
	results := make(map[chess.Color]play.Result)
	var mu sync.Mutex

	for color, agent := range agents {
		peer, err := client.Dial(ctx, info.ID, color, time.Millisecond)
		require.NoError(t, err)

		wg.Add(1)
		go func(color chess.Color, agent play.Agent) {
			defer wg.Done()
			defer peer.Close()

			result, err := play.PlayRemoteGame(peer, agent)
			if !assert.NoError(t, err) {
				return
			}

			mu.Lock()
			results[color] = result
			mu.Unlock()
		}(color, agent)
	}

	wg.Wait()

	require.Len(t, results, 2)
	for _, result := range results {
		assert.Equal(t, chess.White, result.Winner)
		assert.Equal(t, rbc.KingCapture, result.Reason)
		assert.Equal(t, 7, result.History.Len())
	}

	// the server notices both players leaving and records the game
	require.Eventually(t, func() bool {
		games, err := client.ListGames(ctx)
		return err == nil && len(games) == 1 && games[0].Finished
	}, 5*time.Second, 10*time.Millisecond)

	games, err := client.ListGames(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1-0", games[0].Result)
	assert.Equal(t, "king_capture", games[0].Reason)
	assert.ElementsMatch(t, []string{"white", "black"}, games[0].Connected)

	history, err := rbc.LoadFile(filepath.Join(dir, info.ID+".yaml"))
	require.NoError(t, err)
	assert.Equal(t, results[chess.White].History.Moves, history.Moves)
}

func TestRemoteConnectErrors(t *testing.T) {
	client, _ := newServer(t, "")
	ctx := context.Background()

	_, err := client.CreateGame(ctx, game.Config{TimeControl: "soon"})
	assert.Error(t, err)

	info, err := client.CreateGame(ctx, game.Config{})
	require.NoError(t, err)

	_, err = client.Dial(ctx, "no-such-game", chess.White, time.Millisecond)
	assert.ErrorContains(t, err, "404")

	peer, err := client.Dial(ctx, info.ID, chess.White, time.Millisecond)
	require.NoError(t, err)
	defer peer.Close()

	_, err = client.Dial(ctx, info.ID, chess.White, time.Millisecond)
	assert.ErrorContains(t, err, "409")

	// gated requests are refused until the game has started
	color, err := peer.Color()
	require.NoError(t, err)
	assert.Equal(t, chess.White, color)

	_, err = peer.MoveActions()
	assert.ErrorIs(t, err, game.ErrNotAvailable)
}
