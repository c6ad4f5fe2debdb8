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
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"laptudirm.com/x/recon/pkg/common"
	"laptudirm.com/x/recon/pkg/tournament"
)

func Tournament() *cobra.Command {
	return &cobra.Command{
		Use:   "tournament config-file",
		Short: "Run a tournament between bots",
		Args:  cobra.ExactArgs(1),
		Long: heredoc.Doc(`tournament plays the tournament described by the given yaml
			file and reports the standings of the bots as it goes.

			An example configuration:

			    bots: [attacker, random, passive]
			    scheduler: round-robin # or gauntlet
			    rounds: 2
			    game-pairs: 5
			    concurrency: 4
			    tc: 60+1
			    turn-limit: 100
			    history-dir: ./games

			Without a history-dir the games are saved in a new directory
			under recon's tournament directory.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := readTournamentConfig(args[0])
			if err != nil {
				return err
			}

			tour, err := tournament.NewTournament(config)
			if err != nil {
				return err
			}

			return tour.Start(cmd.Context())
		},
	}
}

// readTournamentConfig reads a tournament config file and creates the
// directory its games will be saved in.
func readTournamentConfig(name string) (tournament.Config, error) {
	file, err := os.ReadFile(name)
	if err != nil {
		return tournament.Config{}, err
	}

	var config tournament.Config
	if err := yaml.Unmarshal(file, &config); err != nil {
		return tournament.Config{}, err
	}

	if config.HistoryDir == "" {
		base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
		config.HistoryDir = filepath.Join(
			common.TourDirectory,
			base+"-"+time.Now().Format("20060102-150405"),
		)
	}

	if err := os.MkdirAll(config.HistoryDir, common.Permissions); err != nil {
		return tournament.Config{}, err
	}

	return config, nil
}
