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
	"fmt"

	"github.com/cleverdata/saveguard/internal/config"
	"github.com/cleverdata/saveguard/internal/journal"
	"github.com/spf13/cobra"
)

var (
	historyPath  string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded relocation and throttle decisions",
	Long: `Lists the event journal: backups and autosaves that were relocated to
a fallback root, forced numbered backups, and kill-time autosaves. The
journal is purely informational; clearing it changes no behavior.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load()
		if err != nil {
			return err
		}

		jn, err := journal.Open(settings.JournalPath)
		if err != nil {
			return err
		}
		defer jn.Close()

		entries, err := jn.Entries(historyPath, historyLimit)
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Println("No events recorded.")
			return nil
		}

		fmt.Printf("% -20s % -20s % -40s %s\n", "WHEN", "EVENT", "PATH", "DETAIL")
		fmt.Println("--------------------------------------------------------------------------------")
		for _, e := range entries {
			fmt.Printf("% -20s % -20s % -40s %s\n",
				e.RecordedAt.Format("2006-01-02 15:04:05"), e.Event, e.Path, e.Detail)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVarP(&historyPath, "path", "p", "", "Only show events for this file path")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 50, "Maximum number of events to show")
	rootCmd.AddCommand(historyCmd)
}
