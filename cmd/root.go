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
	"os"
	"path/filepath"

	"github.com/nightlyone/lockfile"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/connectorkit/cat-hook/src/config"
	"github.com/connectorkit/cat-hook/src/fixture"
	"github.com/connectorkit/cat-hook/src/utils"
)

var (
	supportDir     string
	secretsDir     string
	schemaFilePath string
	logDir         string
	lockFile       lockfile.Lockfile
)

// lifecycleCommands mutate the shared temp/ files, the schema file or the
// database, so only one of them may run at a time.
var lifecycleCommands = []string{"prepare", "setup", "setup_cdc", "insert", "teardown", "final_teardown"}

var rootCmd = &cobra.Command{
	Use:   "cat-hook",
	Short: "Manage MySQL fixture schemas for connector acceptance tests",
	Long: `cat-hook provisions, seeds and tears down the MySQL fixture schemas used by
the source connector's acceptance tests. A test run calls prepare once, setup
(or setup_cdc) before the tests, insert during CDC tests, and final_teardown
afterwards; teardown bulk-drops schemas leaked by earlier runs.`,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		err := config.ValidateLogLevel()
		if err != nil {
			utils.ErrExit("%v", err)
		}
		InitLogging(logDir)
		if lo.Contains(lifecycleCommands, cmd.Use) {
			lockSupportDir()
		}
	},

	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			cmd.Help()
			os.Exit(0)
		}
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if lo.Contains(lifecycleCommands, cmd.Use) {
			unlockSupportDir()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initEnvConfig)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&supportDir, "support-dir", "/connector/integration_tests",
		"directory holding the catalog/state templates; rendered copies go to its temp/ subdirectory")
	rootCmd.PersistentFlags().StringVar(&secretsDir, "secrets-dir", "/connector/secrets",
		"directory holding cat-config.json and cat-config-cdc.json")
	rootCmd.PersistentFlags().StringVar(&schemaFilePath, "schema-file", "./generated_schema.txt",
		"file the generated schema name is persisted to between commands")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "",
		"directory for the log file (default: console logging only)")
	rootCmd.PersistentFlags().StringVar(&config.LogLevel, "log-level", "info",
		"log level (trace, debug, info, warn, error, fatal, panic)")
}

// initEnvConfig lets CAT_HOOK_* environment variables override the flag
// defaults, e.g. CAT_HOOK_SUPPORT_DIR in CI images.
func initEnvConfig() {
	viper.SetEnvPrefix("cat_hook")
	viper.AutomaticEnv()

	if v := viper.GetString("support_dir"); v != "" && !rootCmd.PersistentFlags().Changed("support-dir") {
		supportDir = v
	}
	if v := viper.GetString("secrets_dir"); v != "" && !rootCmd.PersistentFlags().Changed("secrets-dir") {
		secretsDir = v
	}
	if v := viper.GetString("schema_file"); v != "" && !rootCmd.PersistentFlags().Changed("schema-file") {
		schemaFilePath = v
	}
}

func newController() *fixture.Controller {
	return fixture.NewController(supportDir, secretsDir, schemaFilePath)
}

// lockSupportDir guards against two lifecycle commands interleaving within
// one run: all of them read or mutate the same temp/ files and schema file.
func lockSupportDir() {
	lockFilePath, err := filepath.Abs(".cat-hook.lck")
	if err != nil {
		utils.ErrExit("Failed to get absolute path for lockfile: %v\n", err)
	}
	createLock(lockFilePath)
}

func createLock(lockFileName string) {
	var err error
	lockFile, err = lockfile.New(lockFileName)
	if err != nil {
		utils.ErrExit("Failed to create lockfile %q: %v\n", lockFileName, err)
	}

	err = lockFile.TryLock()
	if err == nil {
		return
	} else if err == lockfile.ErrBusy {
		utils.ErrExit("Another instance of cat-hook is already running\n")
	} else {
		utils.ErrExit("Unable to take the run lock: %v\n", err)
	}
}

func unlockSupportDir() {
	err := lockFile.Unlock()
	if err != nil {
		utils.ErrExit("Unable to unlock %q: %v\n", lockFile, err)
	}
}
