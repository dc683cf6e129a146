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

	"github.com/cleverdata/saveguard/internal/fsys"
	"github.com/cleverdata/saveguard/internal/locate"
	"github.com/spf13/cobra"
)

var locateCmd = &cobra.Command{
	Use:     "locate [name] [dir]...",
	Short:   "Find a file by name across an ordered directory list",
	Example: `  saveguard locate config.yaml ~/.config/saveguard ~`,
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, ok := locate.Find(fsys.New(), args[0], args[1:])
		if !ok {
			return fmt.Errorf("%s not found in any of the given directories", args[0])
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(locateCmd)
}
