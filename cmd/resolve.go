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

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [backup-path]",
	Short: "Show where a backup file would actually be written",
	Long: `Resolves the destination for a backup file. If the directory of the
given path is writable the path comes back unchanged; otherwise it is
relocated into the matching fallback root (created on demand).`,
	Example: `  saveguard resolve /etc/foo.conf.~1~`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, resolver, _, err := loadPolicy()
		if err != nil {
			return err
		}

		resolved, err := resolver.ResolveBackupPath(args[0])
		if err != nil {
			return err
		}
		fmt.Println(resolved)
		return nil
	},
}

var autosaveCmd = &cobra.Command{
	Use:   "autosave [autosave-path]",
	Short: "Show where an autosave file would actually be written",
	Long: `Resolves the destination for an autosave file (the host's '#name#'
convention). When the directory is unwritable, the directory portion is
flattened into the filename with '!' in place of separators and the file is
relocated into the matching fallback root.`,
	Example: `  saveguard autosave '/etc/#foo.conf#'`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, resolver, _, err := loadPolicy()
		if err != nil {
			return err
		}

		resolved, err := resolver.EncodeAutosavePath(args[0])
		if err != nil {
			return err
		}
		fmt.Println(resolved)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(autosaveCmd)
}
