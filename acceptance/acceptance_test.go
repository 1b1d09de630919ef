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
package acceptance

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConnector struct {
	checkedPath string
}

func (f *fakeConnector) Spec(ctx context.Context) (json.RawMessage, error) {
	return json.RawMessage(`{"documentationUrl": "https://example.com"}`), nil
}

func (f *fakeConnector) Check(ctx context.Context, configPath string) error {
	f.checkedPath = configPath
	return nil
}

func (f *fakeConnector) Discover(ctx context.Context, configPath string) (json.RawMessage, error) {
	return json.RawMessage(`{"streams": []}`), nil
}

func (f *fakeConnector) Write(ctx context.Context, configPath string, configuredCatalogPath string) error {
	return nil
}

func TestNewBinding(t *testing.T) {
	binding, err := NewBinding("./acceptance-test-config.json", func() Connector {
		return &fakeConnector{}
	})
	require.NoError(t, err)
	assert.Equal(t, "./acceptance-test-config.json", binding.ConfigPath)

	// the factory produces fresh instances per phase
	first := binding.NewConnector()
	second := binding.NewConnector()
	assert.NotSame(t, first, second)
}

func TestNewBindingRejectsEmptyConfigPath(t *testing.T) {
	_, err := NewBinding("", func() Connector { return &fakeConnector{} })
	assert.Error(t, err)
}

func TestNewBindingRejectsNilFactory(t *testing.T) {
	_, err := NewBinding("./acceptance-test-config.json", nil)
	assert.Error(t, err)
}

func TestNewBindingRejectsNilProducingFactory(t *testing.T) {
	_, err := NewBinding("./acceptance-test-config.json", func() Connector { return nil })
	assert.Error(t, err)
}

func TestBindingDrivesConnectorPhases(t *testing.T) {
	binding, err := NewBinding("./acceptance-test-config.json", func() Connector {
		return &fakeConnector{}
	})
	require.NoError(t, err)

	ctx := context.Background()
	conn := binding.NewConnector()

	spec, err := conn.Spec(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"documentationUrl": "https://example.com"}`, string(spec))

	require.NoError(t, conn.Check(ctx, binding.ConfigPath))
	assert.Equal(t, binding.ConfigPath, conn.(*fakeConnector).checkedPath)

	catalog, err := conn.Discover(ctx, binding.ConfigPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"streams": []}`, string(catalog))
}
