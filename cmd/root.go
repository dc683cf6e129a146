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
	"github.com/cleverdata/saveguard/internal/fsys"
	"github.com/cleverdata/saveguard/internal/relocate"
	"github.com/cleverdata/saveguard/internal/throttle"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string
var Version = "0.1.0" // Default version

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "saveguard",
	Short: "Save-path fallback and backup throttling for editor hosts",
	Long: `saveguard decides where backup and autosave files land when their
canonical directory is not writable, and whether enough time has passed
since the last backup to force a fresh numbered one.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/saveguard/config.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. XDG config directory - the standard location
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			viper.AddConfigPath(filepath.Join(xdg, "saveguard"))
		}

		// 2. ~/.config/saveguard
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "saveguard"))
		}

		// 3. Fallback to Home directory (Legacy)
		if err == nil {
			viper.AddConfigPath(home)
		}

		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		// If we found one, lock it in so 'viper.WriteConfig()' updates the CORRECT file
		viper.SetConfigFile(viper.ConfigFileUsed())
	}
}

// loadPolicy assembles the resolver stack shared by most subcommands.
func loadPolicy() (config.Settings, *fsys.FS, *relocate.Resolver, *throttle.Checker, error) {
	settings, err := config.Load()
	if err != nil {
		return config.Settings{}, nil, nil, nil, err
	}

	policy, err := relocate.NewPolicy(settings.Fallbacks)
	if err != nil {
		return config.Settings{}, nil, nil, nil, err
	}

	fs := fsys.New()
	return settings, fs, relocate.New(fs, policy), throttle.New(fs), nil
}
