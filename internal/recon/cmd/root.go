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
	"errors"
	"io/fs"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"laptudirm.com/x/recon/internal/recon/cmd/remote"
	"laptudirm.com/x/recon/pkg/common"
)

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "recon",
		Short: "Play and referee games of Reconnaissance Blind Chess",
		Args:  cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// If --trace flag is provided, set logging level to Trace.
			if cmd.Flag("trace").Changed {
				logrus.SetLevel(logrus.TraceLevel)
			}

			return loadConfig(cmd)
		},
	}

	// global flags
	root.PersistentFlags().BoolP("help", "h", false, "Show Help Information")
	root.PersistentFlags().BoolP("version", "v", false, "Show Recon's Version")
	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")

	versionStr := "v0.1.0\n"
	root.SetVersionTemplate(versionStr)
	root.Version = versionStr

	// Register the various commands.
	root.AddCommand(Bots())
	root.AddCommand(Play())
	root.AddCommand(Replay())
	root.AddCommand(Serve())
	root.AddCommand(Tournament())
	root.AddCommand(remote.Remote())

	return root
}

// loadConfig reads the config file and the RECON_* environment variables,
// and binds the flags of the command being run to them. Flags which are
// set explicitly take precedence. A missing config file is not an error.
func loadConfig(cmd *cobra.Command) error {
	viper.SetConfigFile(common.ConfigFile)

	// --turn-limit is read from RECON_TURN_LIMIT
	viper.SetEnvPrefix("recon")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	} else {
		logrus.Debugf("using config file %s", viper.ConfigFileUsed())
	}

	return viper.BindPFlags(cmd.Flags())
}
