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
package fixture

import (
	"fmt"
	"os"
	"strings"
)

// SchemaStore persists the active schema name between command invocations.
// Every command of a run must observe the name the prepare command wrote
// (read-after-write), which is the only coordination the lifecycle has.
type SchemaStore interface {
	Write(schemaName string) error
	Read() (string, error)
}

// FileSchemaStore keeps the schema name in a plain text file
// (generated_schema.txt by default). The file is deliberately never removed:
// final_teardown drops the database object, not the local marker.
type FileSchemaStore struct {
	Path string
}

func NewFileSchemaStore(path string) *FileSchemaStore {
	return &FileSchemaStore{Path: path}
}

func (s *FileSchemaStore) Write(schemaName string) error {
	err := os.WriteFile(s.Path, []byte(schemaName), 0644)
	if err != nil {
		return fmt.Errorf("write schema name to %q: %w", s.Path, err)
	}
	return nil
}

func (s *FileSchemaStore) Read() (string, error) {
	bs, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("read schema name from %q: %w", s.Path, err)
	}
	name := strings.TrimSpace(string(bs))
	if name == "" {
		return "", fmt.Errorf("schema name file %q is empty", s.Path)
	}
	return name, nil
}
