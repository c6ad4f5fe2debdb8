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
	"fmt"
	"path/filepath"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"laptudirm.com/x/recon/internal/util"
	"laptudirm.com/x/recon/pkg/bots"
	"laptudirm.com/x/recon/pkg/common"
	"laptudirm.com/x/recon/pkg/game"
	"laptudirm.com/x/recon/pkg/mediator"
	"laptudirm.com/x/recon/pkg/play"
)

func Play() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play white-bot black-bot",
		Short: "Play a game between two bots",
		Args:  cobra.ExactArgs(2),
		Long: heredoc.Doc(`play plays a single game between the two given bots, the
			first one playing white. Use recon bots to list the bots.

			By default both bots share the game directly. With --mediated
			each bot talks to the game through a mediator from its own
			goroutine, the way remote players do.

			With --save the history of the game is written to the history
			directory, from where recon replay can show it again.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed := viper.GetInt64("seed")

			white := bots.Get(args[0], seed)
			if white == nil {
				return fmt.Errorf("play: unknown bot %s", args[0])
			}

			black := bots.Get(args[1], seed+1)
			if black == nil {
				return fmt.Errorf("play: unknown bot %s", args[1])
			}

			config := game.Config{
				TimeControl: viper.GetString("time"),
				TurnLimit:   viper.GetInt("turn-limit"),
				StartFEN:    viper.GetString("fen"),
			}

			var result play.Result
			err := util.Spin(fmt.Sprintf("%s vs %s", args[0], args[1]), func() error {
				if !viper.GetBool("mediated") {
					var err error
					result, err = play.PlayLocalGame(white, black, config)
					return err
				}

				g, err := play.NewGame(white, black, config)
				if err != nil {
					return err
				}

				poll := mediator.WithPollInterval(viper.GetDuration("poll"))
				result, err = play.PlayMediatedGame(cmd.Context(), g, white, black, poll)
				return err
			})
			if err != nil {
				return err
			}

			fmt.Printf(
				"\x1b[32mFinished\x1b[0m %s vs %s: %s by %s after %d plys\n",
				result.History.WhiteName, result.History.BlackName,
				result, result.Reason, result.History.Len(),
			)

			if !viper.GetBool("save") {
				return nil
			}

			dir := viper.GetString("history-dir")
			if dir == common.HistoryDirectory {
				if err := common.EnsureDirectories(); err != nil {
					return err
				}
			}

			name := filepath.Join(dir, time.Now().Format("20060102-150405")+".yaml")
			if err := result.History.SaveFile(name); err != nil {
				return err
			}

			fmt.Printf("Saved game history to %s\n", name)
			return nil
		},
	}

	addGameFlags(cmd)
	cmd.Flags().Bool("mediated", false, "Play through a mediator")
	cmd.Flags().Duration("poll", mediator.DefaultPollInterval, "Poll interval of mediated players")
	cmd.Flags().Int64("seed", time.Now().UnixNano(), "Seed of the bots' random choices")
	cmd.Flags().Bool("save", false, "Save the game history")
	cmd.Flags().String("history-dir", common.HistoryDirectory, "Directory to save game histories in")

	return cmd
}

// addGameFlags adds the flags of a game.Config to the command.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().String("time", game.DefaultTimeControl, "Time control as base+inc in seconds")
	cmd.Flags().Int("turn-limit", 0, "Full turns after which the game is drawn, 0 for no limit")
	cmd.Flags().String("fen", "", "Starting position of the game")
}
