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
	"github.com/spf13/cobra"

	"github.com/connectorkit/cat-hook/src/utils"
)

var insertCmd = &cobra.Command{
	Use:   "insert",
	Short: "Insert the CDC records into this run's fixture table.",

	Run: func(cmd *cobra.Command, args []string) {
		err := newController().CdcInsert()
		if err != nil {
			utils.ErrExit("error: %s", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(insertCmd)
}
