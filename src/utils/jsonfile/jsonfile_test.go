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
package jsonfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type connCfg struct {
	Host     string `json:"host"`
	Database string `json:"database"`
}

func TestJsonFileCreateAndRead(t *testing.T) {
	jf := NewJsonFile[connCfg](filepath.Join(t.TempDir(), "config.json"))

	_, err := jf.Read()
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, jf.Create(&connCfg{Host: "localhost", Database: "olddb"}))

	cfg, err := jf.Read()
	require.NoError(t, err)
	assert.Equal(t, "olddb", cfg.Database)
	assert.Equal(t, "localhost", cfg.Host)
}

func TestJsonFileCreateTruncatesPreviousContent(t *testing.T) {
	jf := NewJsonFile[connCfg](filepath.Join(t.TempDir(), "config.json"))

	require.NoError(t, jf.Create(&connCfg{Host: "localhost", Database: "olddb"}))
	require.NoError(t, jf.Create(&connCfg{Host: "db.example.com", Database: "20240101_abcd1234"}))

	cfg, err := jf.Read()
	require.NoError(t, err)
	assert.Equal(t, "20240101_abcd1234", cfg.Database)
	assert.Equal(t, "db.example.com", cfg.Host)
}

func TestJsonFileEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := NewJsonFile[connCfg](path).Read()
	assert.ErrorContains(t, err, "empty")
}
