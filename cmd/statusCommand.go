/*
Copyright (c) ConnectorKit, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/connectorkit/cat-hook/src/utils"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List the fixture schemas currently present on the server.",

	Run: func(cmd *cobra.Command, args []string) {
		err := runStatusCmd()
		if err != nil {
			utils.ErrExit("error: %s", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatusCmd() error {
	infos, err := newController().Status()
	if err != nil {
		return fmt.Errorf("list fixture schemas: %w", err)
	}
	if len(infos) == 0 {
		fmt.Println("No fixture schemas found.")
		return nil
	}

	uiTable := uitable.New()
	headerfmt := color.New(color.FgGreen, color.Underline).SprintFunc()
	uiTable.AddRow(headerfmt("SCHEMA"), headerfmt("DATE"))
	for _, info := range infos {
		uiTable.AddRow(info.Name, info.Date.Format("2006-01-02"))
	}

	fmt.Print("\n")
	fmt.Println(uiTable)
	fmt.Print("\n")
	return nil
}
