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

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/recon/pkg/common"
)

// useConfigFile points recon at a config file in a temporary directory
// and starts from a clean viper.
func useConfigFile(t *testing.T, contents string) {
	t.Helper()

	name := filepath.Join(t.TempDir(), "config.yaml")
	if contents != "" {
		require.NoError(t, os.WriteFile(name, []byte(contents), 0644))
	}

	previous := common.ConfigFile
	common.ConfigFile = name
	viper.Reset()

	t.Cleanup(func() {
		common.ConfigFile = previous
		viper.Reset()
	})
}

func TestLoadConfigEnv(t *testing.T) {
	useConfigFile(t, "")

	dir := t.TempDir()
	t.Setenv("RECON_TURN_LIMIT", "7")
	t.Setenv("RECON_HISTORY_DIR", dir)
	t.Setenv("RECON_TIME", "30+1")

	require.NoError(t, loadConfig(Play()))
	assert.Equal(t, 7, viper.GetInt("turn-limit"))
	assert.Equal(t, dir, viper.GetString("history-dir"))
	assert.Equal(t, "30+1", viper.GetString("time"))
	assert.False(t, viper.GetBool("mediated"))
}

func TestLoadConfigFile(t *testing.T) {
	useConfigFile(t, "turn-limit: 12\ntime: 10+0\nmediated: true\n")
	t.Setenv("RECON_TIME", "30+1")

	cmd := Play()
	require.NoError(t, cmd.Flags().Set("turn-limit", "3"))

	require.NoError(t, loadConfig(cmd))
	assert.Equal(t, common.ConfigFile, viper.ConfigFileUsed())

	// flags win over the environment, which wins over the file
	assert.Equal(t, 3, viper.GetInt("turn-limit"))
	assert.Equal(t, "30+1", viper.GetString("time"))
	assert.True(t, viper.GetBool("mediated"))
}

func TestLoadConfigInvalidFile(t *testing.T) {
	useConfigFile(t, "turn-limit: [")
	assert.Error(t, loadConfig(Play()))
}

func TestReadTournamentConfig(t *testing.T) {
	previous := common.TourDirectory
	common.TourDirectory = t.TempDir()
	t.Cleanup(func() { common.TourDirectory = previous })

	name := filepath.Join(t.TempDir(), "gauntlet.yaml")
	require.NoError(t, os.WriteFile(name, []byte("bots: [attacker, passive]\nrounds: 2\n"), 0644))

	config, err := readTournamentConfig(name)
	require.NoError(t, err)
	assert.Equal(t, []string{"attacker", "passive"}, config.Bots)
	assert.Equal(t, 2, config.Rounds)

	// games are saved under the tournament directory by default
	assert.Equal(t, common.TourDirectory, filepath.Dir(config.HistoryDir))
	assert.Contains(t, filepath.Base(config.HistoryDir), "gauntlet-")
	assert.DirExists(t, config.HistoryDir)

	dir := filepath.Join(t.TempDir(), "games")
	require.NoError(t, os.WriteFile(name, []byte("bots: [attacker, passive]\nhistory-dir: "+dir+"\n"), 0644))

	config, err = readTournamentConfig(name)
	require.NoError(t, err)
	assert.Equal(t, dir, config.HistoryDir)
	assert.DirExists(t, dir)

	_, err = readTournamentConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
