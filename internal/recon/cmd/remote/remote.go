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

package remote

import (
	"fmt"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"laptudirm.com/x/recon/internal/util"
	"laptudirm.com/x/recon/pkg/bots"
	"laptudirm.com/x/recon/pkg/game"
	"laptudirm.com/x/recon/pkg/mediator"
	"laptudirm.com/x/recon/pkg/play"
	"laptudirm.com/x/recon/pkg/rbc"
	"laptudirm.com/x/recon/pkg/remote"
)

func Remote() *cobra.Command {
	cmd := cobra.Command{
		Use:   "remote",
		Short: "Create, list, and join games on a recon server",
	}

	cmd.AddCommand(Create())
	cmd.AddCommand(List())
	cmd.AddCommand(Join())
	return &cmd
}

func Create() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create server-url",
		Short: "Create a game on a server",
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := remote.NewClient(args[0]).CreateGame(cmd.Context(), game.Config{
				WhiteName:   viper.GetString("white"),
				BlackName:   viper.GetString("black"),
				TimeControl: viper.GetString("time"),
				TurnLimit:   viper.GetInt("turn-limit"),
			})
			if err != nil {
				return err
			}

			fmt.Println(info.ID)
			return nil
		},
	}

	cmd.Flags().String("white", "", "Name of the white player")
	cmd.Flags().String("black", "", "Name of the black player")
	cmd.Flags().String("time", game.DefaultTimeControl, "Time control as base+inc in seconds")
	cmd.Flags().Int("turn-limit", 0, "Full turns after which the game is drawn, 0 for no limit")

	return cmd
}

func List() *cobra.Command {
	return &cobra.Command{
		Use:   "list server-url",
		Short: "List the games on a server",
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			games, err := remote.NewClient(args[0]).ListGames(cmd.Context())
			if err != nil {
				return err
			}

			if len(games) == 0 {
				fmt.Println("\x1b[31mNo Games Hosted.\x1b[0m")
				return nil
			}

			for _, info := range games {
				status := fmt.Sprintf("\x1b[33mwaiting\x1b[0m %v", info.Connected)
				if info.Finished {
					status = fmt.Sprintf("\x1b[32m%s\x1b[0m by %s", info.Result, info.Reason)
				}

				fmt.Printf("- \x1b[34m%s\x1b[0m %s vs %s (%s): %s\n", info.ID, info.White, info.Black, info.TC, status)
			}

			return nil
		},
	}
}

func Join() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "join server-url game-id color bot",
		Short: "Play a bot in a game on a server",
		Args:  cobra.ExactArgs(4),
		Long: heredoc.Doc(`join connects the given bot to a game on a recon server as
			the player of the given color, and plays until the game ends.

			The game starts once both of its players have joined.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			color, err := rbc.ParseColor(args[2])
			if err != nil {
				return err
			}

			agent := bots.Get(args[3], viper.GetInt64("seed"))
			if agent == nil {
				return fmt.Errorf("join: unknown bot %s", args[3])
			}

			peer, err := remote.NewClient(args[0]).Dial(cmd.Context(), args[1], color, viper.GetDuration("poll"))
			if err != nil {
				return err
			}
			defer peer.Close()

			logrus.WithFields(logrus.Fields{
				"game":  args[1],
				"color": rbc.ColorName(color),
				"bot":   args[3],
			}).Info("joined game")

			var result play.Result
			err = util.Spin("playing "+args[1], func() error {
				result, err = play.PlayRemoteGame(peer, agent)
				return err
			})
			if err != nil {
				return err
			}

			fmt.Printf("\x1b[32mFinished\x1b[0m %s by %s after %d plys\n", result, result.Reason, result.History.Len())
			return nil
		},
	}

	cmd.Flags().Duration("poll", mediator.DefaultPollInterval, "Interval to poll the server for the turn")
	cmd.Flags().Int64("seed", time.Now().UnixNano(), "Seed of the bot's random choices")

	return cmd
}
