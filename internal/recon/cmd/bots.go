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

	"github.com/spf13/cobra"

	"laptudirm.com/x/recon/pkg/bots"
)

func Bots() *cobra.Command {
	return &cobra.Command{
		Use:   "bots",
		Short: "Lists the bots which can play games",
		Args:  cobra.ExactArgs(0),

		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("\u001B[32mAvailable Bots\u001B[0m:")
			fmt.Println()

			for _, name := range bots.Names {
				fmt.Printf("- \x1b[34m%s\x1b[0m\n", name)
			}

			return nil
		},
	}
}
