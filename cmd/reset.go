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

var resetPath string

var resetCmd = &cobra.Command{
	Use:   "reset-history",
	Short: "Clear the event journal",
	Long: `Clears the local SQLite journal of relocation and throttle events.
This only affects what 'saveguard history' shows; resolution and throttling
decisions are derived from the filesystem and are unaffected.`,
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

		if resetPath != "" {
			fmt.Printf("Clearing history for: %s\n", resetPath)
		} else {
			fmt.Println("Clearing ENTIRE event history.")
		}

		if err := jn.Reset(resetPath); err != nil {
			return err
		}

		fmt.Println("Journal reset complete.")
		return nil
	},
}

func init() {
	resetCmd.Flags().StringVarP(&resetPath, "path", "p", "", "Specific file path to clear from history")
	rootCmd.AddCommand(resetCmd)
}
