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
	"os"
	"path/filepath"

	"github.com/cleverdata/saveguard/internal/config"
	"github.com/cleverdata/saveguard/internal/relocate"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var fallbackCmd = &cobra.Command{
	Use:   "fallback",
	Short: "Manage the fallback policy table",
}

var fallbackAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a fallback entry (pattern -> root)",
	Long: `Adds an entry to the ordered fallback table. Patterns are anchored
regular expressions matched against the absolute path being relocated; the
first match wins. The root template may contain {host}, replaced with the
machine's hostname. The table must end in a catch-all entry (pattern '.*').

New entries are inserted before the catch-all so the catch-all keeps
matching everything that nothing else claimed.`,
	Example: `  saveguard fallback add --pattern '/etc/' --root '~/.config/saveguard/etc-{host}'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern, _ := cmd.Flags().GetString("pattern")
		root, _ := cmd.Flags().GetString("root")

		if pattern == "" || root == "" {
			return fmt.Errorf("--pattern and --root are required")
		}

		var fallbacks []config.FallbackEntry
		if err := viper.UnmarshalKey("fallbacks", &fallbacks); err != nil {
			fallbacks = nil
		}
		if len(fallbacks) == 0 {
			fallbacks = []config.FallbackEntry{config.DefaultFallback()}
		}

		for _, f := range fallbacks {
			if f.Pattern == pattern {
				return fmt.Errorf("fallback entry for pattern %q already exists", pattern)
			}
		}

		// Insert before the trailing catch-all.
		updated := make([]config.FallbackEntry, 0, len(fallbacks)+1)
		updated = append(updated, fallbacks[:len(fallbacks)-1]...)
		updated = append(updated, config.FallbackEntry{Pattern: pattern, Root: root})
		updated = append(updated, fallbacks[len(fallbacks)-1])

		// Reject tables the resolver would refuse to load.
		if _, err := relocate.NewPolicy(updated); err != nil {
			return err
		}

		viper.Set("fallbacks", updated)
		if err := writeConfigFile(); err != nil {
			return err
		}

		fmt.Printf("Fallback added: %s -> %s\n", pattern, root)
		return nil
	},
}

var fallbackListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List fallback entries in match order",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load()
		if err != nil {
			return err
		}

		fmt.Printf("% -30s %s\n", "PATTERN", "ROOT")
		fmt.Println("--------------------------------------------------------------------------------")
		for _, f := range settings.Fallbacks {
			fmt.Printf("% -30s %s\n", f.Pattern, f.Root)
		}
		return nil
	},
}

var fallbackRemoveCmd = &cobra.Command{
	Use:     "remove [pattern]",
	Aliases: []string{"rm", "del"},
	Short:   "Remove a fallback entry by pattern",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern := args[0]

		var fallbacks []config.FallbackEntry
		if err := viper.UnmarshalKey("fallbacks", &fallbacks); err != nil || len(fallbacks) == 0 {
			return fmt.Errorf("no fallback entries configured")
		}

		found := false
		var updated []config.FallbackEntry
		for _, f := range fallbacks {
			if f.Pattern == pattern {
				found = true
				continue
			}
			updated = append(updated, f)
		}

		if !found {
			return fmt.Errorf("fallback entry %q not found", pattern)
		}

		if len(updated) > 0 {
			if _, err := relocate.NewPolicy(updated); err != nil {
				return fmt.Errorf("refusing removal: %w", err)
			}
		}

		viper.Set("fallbacks", updated)
		if err := viper.WriteConfig(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Printf("Fallback %q removed.\n", pattern)
		return nil
	},
}

// writeConfigFile persists viper state, creating a config file in the
// standard location when none exists yet.
func writeConfigFile() error {
	if viper.ConfigFileUsed() != "" {
		if err := viper.WriteConfig(); err != nil {
			return fmt.Errorf("failed to update config: %w", err)
		}
		return nil
	}

	targetDir := os.Getenv("XDG_CONFIG_HOME")
	if targetDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine config location: %w", err)
		}
		targetDir = filepath.Join(home, ".config")
	}
	targetDir = filepath.Join(targetDir, "saveguard")

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	viper.SetConfigFile(filepath.Join(targetDir, "config.yaml"))

	if err := viper.SafeWriteConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}
	return nil
}

func init() {
	fallbackAddCmd.Flags().String("pattern", "", "Anchored regexp matched against the absolute path")
	fallbackAddCmd.Flags().String("root", "", "Fallback root template (may contain {host})")

	fallbackCmd.AddCommand(fallbackAddCmd)
	fallbackCmd.AddCommand(fallbackListCmd)
	fallbackCmd.AddCommand(fallbackRemoveCmd)
	rootCmd.AddCommand(fallbackCmd)
}
