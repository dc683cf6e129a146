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

	"github.com/cleverdata/saveguard/internal/classify"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [file]",
	Short: "Classify a file by content",
	Long: `Reports the file's kind: script (shebang), text, image, audio, video,
archive, binary, or empty. Scripts are the files that gain the executable
bit after a save.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := classify.Detect(args[0])
		if err != nil {
			return err
		}
		fmt.Println(kind)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
