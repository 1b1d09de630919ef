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

// Package secrets reads the connector's secret config documents and
// materializes the "active" variants consumed by the connector under test.
// The documents are kept as raw key/value maps so that fields this tool does
// not know about (replication method, ssl options, ...) survive the rewrite.
package secrets

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/connectorkit/cat-hook/src/utils/jsonfile"
)

// Config is one connector secret document (cat-config.json or the CDC
// variant).
type Config map[string]interface{}

func Load(path string) (Config, error) {
	doc, err := jsonfile.NewJsonFile[Config](path).Read()
	if err != nil {
		return nil, fmt.Errorf("load secret config: %w", err)
	}
	return *doc, nil
}

func (c Config) Host() string {
	return cast.ToString(c["host"])
}

func (c Config) Port() int {
	return cast.ToInt(c["port"])
}

func (c Config) Username() string {
	return cast.ToString(c["username"])
}

func (c Config) Password() string {
	return cast.ToString(c["password"])
}

func (c Config) Database() string {
	return cast.ToString(c["database"])
}

// WriteActive writes a copy of the document at path with the database field
// pointed at schemaName. All other fields pass through untouched.
func (c Config) WriteActive(path string, schemaName string) error {
	active := make(Config, len(c)+1)
	for k, v := range c {
		active[k] = v
	}
	active["database"] = schemaName

	err := jsonfile.NewJsonFile[Config](path).Create(&active)
	if err != nil {
		return fmt.Errorf("write active config: %w", err)
	}
	return nil
}
