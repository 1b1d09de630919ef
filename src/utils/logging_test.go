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
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrExitReportsThroughExitHook(t *testing.T) {
	exitCode := -1
	SetExitHook(func(code int) { exitCode = code })
	defer SetExitHook(nil)

	ErrExit("connect to the database: %v", errors.New("dial tcp: connection refused"))

	assert.Equal(t, 1, exitCode)
}

func TestErrExitFormatsWrappedErrors(t *testing.T) {
	SetExitHook(func(int) {})
	defer SetExitHook(nil)

	r, w, err := os.Pipe()
	require.NoError(t, err)
	origStderr := os.Stderr
	os.Stderr = w

	ErrExit("create schema: %w", errors.New("access denied"))

	os.Stderr = origStderr
	w.Close()
	out, err := io.ReadAll(r)
	require.NoError(t, err)

	assert.Equal(t, "create schema: access denied\n", string(out))
}
