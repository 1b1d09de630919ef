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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchemaNameShape(t *testing.T) {
	for i := 0; i < 100; i++ {
		name := GenerateSchemaName()
		assert.Regexp(t, SchemaNameRegexp, name)
	}
}

func TestGenerateSchemaNameUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		name := GenerateSchemaName()
		assert.False(t, seen[name], "duplicate schema name generated: %s", name)
		seen[name] = true
	}
}

func TestGenerateSchemaNameUsesFixtureTimezoneDate(t *testing.T) {
	name := GenerateSchemaName()
	today := time.Now().In(fixtureTimezone).Format(schemaDateLayout)
	assert.Equal(t, today, name[:8])
}

func TestIsFixtureSchema(t *testing.T) {
	assert.True(t, IsFixtureSchema("20240101_abcd1234"))
	assert.True(t, IsFixtureSchema("20991231_00000000"))

	assert.False(t, IsFixtureSchema("mysql"))
	assert.False(t, IsFixtureSchema("information_schema"))
	assert.False(t, IsFixtureSchema("20240101_ABCD1234"))
	assert.False(t, IsFixtureSchema("20240101_abcd123"))
	assert.False(t, IsFixtureSchema("20240101_abcd12345"))
	assert.False(t, IsFixtureSchema("2024010_abcd1234"))
	assert.False(t, IsFixtureSchema("20240101-abcd1234"))
}

func TestSchemaDate(t *testing.T) {
	date, err := SchemaDate("20240101_abcd1234")
	require.NoError(t, err)
	assert.Equal(t, 2024, date.Year())
	assert.Equal(t, time.January, date.Month())
	assert.Equal(t, 1, date.Day())
	assert.Equal(t, fixtureTimezone, date.Location())

	_, err = SchemaDate("not_a_schema")
	assert.Error(t, err)
}
