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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSchemaStoreReadAfterWrite(t *testing.T) {
	store := NewFileSchemaStore(filepath.Join(t.TempDir(), "generated_schema.txt"))

	err := store.Write("20240101_abcd1234")
	require.NoError(t, err)

	name, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "20240101_abcd1234", name)
}

func TestFileSchemaStoreOverwrite(t *testing.T) {
	store := NewFileSchemaStore(filepath.Join(t.TempDir(), "generated_schema.txt"))

	require.NoError(t, store.Write("20240101_abcd1234"))
	require.NoError(t, store.Write("20240102_wxyz5678"))

	name, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "20240102_wxyz5678", name)
}

func TestFileSchemaStoreMissingFile(t *testing.T) {
	store := NewFileSchemaStore(filepath.Join(t.TempDir(), "does_not_exist.txt"))

	_, err := store.Read()
	assert.Error(t, err)
}

func TestFileSchemaStoreEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generated_schema.txt")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0644))

	_, err := NewFileSchemaStore(path).Read()
	assert.Error(t, err)
}
