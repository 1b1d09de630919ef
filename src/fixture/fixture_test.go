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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/connectorkit/cat-hook/src/srcdb"
)

// stubSeeder records which provisioning steps ran and fails the ones it is
// told to.
type stubSeeder struct {
	failSchema bool
	failTable  bool
	failSeed   bool

	calls    []string
	seeded   []srcdb.Record
	seededIn string
}

func (s *stubSeeder) CreateSchema(schemaName string) error {
	s.calls = append(s.calls, "create_schema")
	if s.failSchema {
		return fmt.Errorf("access denied for CREATE DATABASE")
	}
	return nil
}

func (s *stubSeeder) CreateFixtureTable(schemaName string, tableName string) error {
	s.calls = append(s.calls, "create_table")
	if s.failTable {
		return fmt.Errorf("table creation failed")
	}
	return nil
}

func (s *stubSeeder) UpsertRecords(schemaName string, tableName string, records []srcdb.Record) error {
	s.calls = append(s.calls, "insert_records")
	if s.failSeed {
		return fmt.Errorf("insert failed")
	}
	s.seeded = records
	s.seededIn = schemaName
	return nil
}

var allProvisioningSteps = []string{"create_schema", "create_table", "insert_records"}

func TestProvisioningSeedsAfterFailedCreateSchema(t *testing.T) {
	// A schema can pre-exist with the connecting user lacking CREATE
	// DATABASE; the table and seed steps must still run.
	seeder := &stubSeeder{failSchema: true}

	provisionFixtureSchema(seeder, "20240101_abcd1234", seedRecords)

	assert.Equal(t, allProvisioningSteps, seeder.calls)
	assert.Equal(t, seedRecords, seeder.seeded)
	assert.Equal(t, "20240101_abcd1234", seeder.seededIn)
}

func TestProvisioningRunsEveryStepWhenAllFail(t *testing.T) {
	seeder := &stubSeeder{failSchema: true, failTable: true, failSeed: true}

	provisionFixtureSchema(seeder, "20240101_abcd1234", seedRecords)

	assert.Equal(t, allProvisioningSteps, seeder.calls)
	assert.Empty(t, seeder.seeded)
}
