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

// Package acceptance declares which connector and which config file the
// external acceptance-test runner exercises. The runner owns fixture
// discovery and the spec/check/discover/write phases; this package only
// provides the pairing it consumes.
package acceptance

import (
	"context"
	"encoding/json"
	"fmt"
)

// Connector is the surface the acceptance-test runner drives. Implementations
// live with the connector under test, not in this repository.
type Connector interface {
	// Spec returns the connector's configuration specification document.
	Spec(ctx context.Context) (json.RawMessage, error)

	// Check verifies the config at configPath, usually by connecting.
	Check(ctx context.Context, configPath string) error

	// Discover returns the catalog the connector sees for the given config.
	Discover(ctx context.Context, configPath string) (json.RawMessage, error)

	// Write replays the runner's configured catalog against the connector.
	Write(ctx context.Context, configPath string, configuredCatalogPath string) error
}

// Binding pairs a config file path with a factory producing the connector
// instance the suite runs against. No control flow of its own.
type Binding struct {
	// ConfigPath is the acceptance-test config document the runner reads.
	ConfigPath string

	// NewConnector produces a fresh connector instance per test phase.
	NewConnector func() Connector
}

// NewBinding validates the pairing. The factory is invoked once here so a
// nil-returning factory fails at registration rather than mid-suite.
func NewBinding(configPath string, newConnector func() Connector) (Binding, error) {
	if configPath == "" {
		return Binding{}, fmt.Errorf("acceptance binding: config path is empty")
	}
	if newConnector == nil {
		return Binding{}, fmt.Errorf("acceptance binding: connector factory is nil")
	}
	if newConnector() == nil {
		return Binding{}, fmt.Errorf("acceptance binding: connector factory returned nil")
	}
	return Binding{ConfigPath: configPath, NewConnector: newConnector}, nil
}
