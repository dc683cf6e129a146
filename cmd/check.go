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
	"time"

	"github.com/spf13/cobra"
)

var checkInterval int

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Check whether a save should force a fresh numbered backup",
	Long: `Finds the newest existing backup of the file and compares its age
against the backup interval. "force" means the host should clear its
already-backed-up flag so the next save creates a new numbered backup.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, _, _, checker, err := loadPolicy()
		if err != nil {
			return err
		}

		interval := settings.BackupInterval()
		if cmd.Flags().Changed("interval") {
			interval = time.Duration(checkInterval) * time.Second
		}

		newest, mtime, ok := checker.NewestBackup(args[0])
		if !ok {
			fmt.Println("no existing backup: nothing to throttle")
			return nil
		}

		fmt.Printf("newest backup: %s (age %s)\n", newest, time.Since(mtime).Round(time.Second))
		if checker.ShouldForceBackup(args[0], interval) {
			fmt.Printf("force: backup is older than %s\n", interval)
		} else {
			fmt.Printf("fresh: backup is newer than %s\n", interval)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().IntVar(&checkInterval, "interval", 3600, "Backup interval in seconds (overrides config)")
	rootCmd.AddCommand(checkCmd)
}
