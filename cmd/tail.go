// Copyright 2026 CleverData
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/cleverdata/saveguard/internal/tail"
	"github.com/spf13/cobra"
)

var (
	tailLines  int
	tailFollow bool
)

var tailCmd = &cobra.Command{
	Use:   "tail [file]",
	Short: "Show the end of a file, optionally following as it grows",
	Long: `Prints the last lines of a file. With --follow the file is opened
read-only and appended data is streamed until interrupted; truncation
restarts from the beginning. Useful for watching relocated backups and
autosaves as the host writes them.`,
	Example: `  saveguard tail -n 20 -f ~/.config/saveguard/fallback/myhost/foo.conf.~3~`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lines, err := tail.LastLines(args[0], tailLines)
		if err != nil {
			return err
		}
		for _, l := range lines {
			fmt.Println(l)
		}

		if !tailFollow {
			return nil
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return tail.Follow(ctx, args[0], os.Stdout)
	},
}

func init() {
	tailCmd.Flags().IntVarP(&tailLines, "lines", "n", 10, "Number of lines to print")
	tailCmd.Flags().BoolVarP(&tailFollow, "follow", "f", false, "Keep streaming appended data")
	rootCmd.AddCommand(tailCmd)
}
