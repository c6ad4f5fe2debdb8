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
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"laptudirm.com/x/recon/pkg/common"
	"laptudirm.com/x/recon/pkg/mediator"
	"laptudirm.com/x/recon/pkg/remote"
)

func Serve() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Host games for remote players",
		Args:  cobra.ExactArgs(0),
		Long: heredoc.Doc(`serve starts a server which hosts games for players who
			connect to it over websockets.

			Games are created with POST /api/games and listed with
			GET /api/games. A player joins a game by opening a websocket
			on /api/games/{id}/{color}, which recon remote join does.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			dir := viper.GetString("history-dir")
			if dir == common.HistoryDirectory {
				if err := common.EnsureDirectories(); err != nil {
					return err
				}
			}

			games := remote.NewServer(ctx, remote.ServerConfig{
				PollInterval: viper.GetDuration("poll"),
				HistoryDir:   dir,
			})

			server := &http.Server{
				Addr:              viper.GetString("addr"),
				Handler:           games.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			go func() {
				<-ctx.Done()

				shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdown); err != nil {
					logrus.WithError(err).Error("server shutdown")
				}
			}()

			logrus.WithField("addr", server.Addr).Info("serving games")
			if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}

			return nil
		},
	}

	cmd.Flags().String("addr", ":8080", "Address to listen on")
	cmd.Flags().Duration("poll", mediator.DefaultPollInterval, "Poll interval of the game mediators")
	cmd.Flags().String("history-dir", common.HistoryDirectory, "Directory to save game histories in, empty to not save them")

	return cmd
}
