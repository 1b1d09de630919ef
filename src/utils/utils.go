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
package utils

import (
	"fmt"
	"os"
)

func FileOrFolderExists(path string) bool {
	_, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false
		}
		// permission errors etc. still mean "something is there"
		return true
	}
	return true
}

// EnsureDir creates dir (single level, like mkdir -p with one component)
// if it does not exist yet.
func EnsureDir(dir string) error {
	if FileOrFolderExists(dir) {
		return nil
	}
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}
