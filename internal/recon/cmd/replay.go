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

	"github.com/notnil/chess"
	"github.com/spf13/cobra"

	"laptudirm.com/x/recon/pkg/play"
	"laptudirm.com/x/recon/pkg/rbc"
)

func Replay() *cobra.Command {
	return &cobra.Command{
		Use:   "replay history-file",
		Short: "Replay and check a saved game",
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := rbc.LoadFile(args[0])
			if err != nil {
				return err
			}

			board, err := history.Replay(rbc.Rules{})
			if err != nil {
				return err
			}

			fmt.Printf("\x1b[34m%s\x1b[0m vs \x1b[34m%s\x1b[0m\n\n", history.WhiteName, history.BlackName)

			for i, move := range history.Moves {
				sense := chess.NoSquare
				if i < len(history.Senses) {
					sense = history.Senses[i].Square
				}

				line := fmt.Sprintf(
					"%3d. %-5s sense %-2s  %-5s -> %-5s",
					i/2+1, rbc.ColorName(move.Color), senseString(sense),
					rbc.MoveString(move.Requested), rbc.MoveString(move.Taken),
				)

				if move.Capture != chess.NoSquare {
					line += " captures on " + move.Capture.String()
				}

				fmt.Println(line)
			}

			fmt.Println()
			fmt.Println(board.Draw())

			result := play.Result{Winner: history.Winner, Reason: history.Reason}
			fmt.Printf("Result: %s by %s\n", result, history.Reason)
			return nil
		},
	}
}

func senseString(sq chess.Square) string {
	if sq == chess.NoSquare {
		return "-"
	}
	return sq.String()
}
