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

// Package fixture implements the acceptance-test fixture lifecycle: one
// schema per test run, generated by prepare, seeded by setup, extended by
// insert and removed by teardown/final_teardown. Commands coordinate only
// through the persisted schema name and the database itself.
package fixture

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"github.com/connectorkit/cat-hook/src/secrets"
	"github.com/connectorkit/cat-hook/src/srcdb"
	"github.com/connectorkit/cat-hook/src/utils"
)

const FixtureTableName = "id_and_name_cat"

var (
	seedRecords = []srcdb.Record{
		{ID: "1", Name: "one"},
		{ID: "2", Name: "two"},
		{ID: "3", Name: "three"},
	}
	cdcRecords = []srcdb.Record{
		{ID: "4", Name: "four"},
		{ID: "5", Name: "five"},
	}
)

// Controller runs the lifecycle operations against one workspace, one schema
// store and one database server.
type Controller struct {
	Workspace
	Store SchemaStore
}

func NewController(supportDir string, secretsDir string, schemaFilePath string) *Controller {
	return &Controller{
		Workspace: Workspace{SupportDir: supportDir, SecretsDir: secretsDir},
		Store:     NewFileSchemaStore(schemaFilePath),
	}
}

// connect builds a server-wide connection from the secret config. A failure
// here is fatal for every command: without a connection nothing below can
// degrade gracefully.
func (c *Controller) connect() (*srcdb.MySQL, error) {
	cfg, err := secrets.Load(c.SecretConfigPath())
	if err != nil {
		return nil, err
	}
	source := &srcdb.Source{
		Host:     cfg.Host(),
		Port:     cfg.Port(),
		User:     cfg.Username(),
		Password: cfg.Password(),
	}
	db := source.DB()
	err = db.Connect()
	if err != nil {
		return nil, fmt.Errorf("connect to the database: %w", err)
	}
	utils.PrintAndLog("Connected to the database successfully")
	return db, nil
}

// Prepare generates a fresh schema name and persists it, overwriting any
// previous run's name.
func (c *Controller) Prepare() error {
	schemaName := GenerateSchemaName()
	utils.PrintAndLog("schema_name: %s", schemaName)
	return c.Store.Write(schemaName)
}

// Setup renders the supporting files and provisions the seeded fixture
// schema. Provisioning and seeding errors are logged and swallowed; the
// acceptance test surfaces them when it finds no rows. Connection and file
// errors stay fatal.
func (c *Controller) Setup() error {
	schemaName, err := c.Store.Read()
	if err != nil {
		return err
	}

	err = c.WriteSupportingFiles(schemaName)
	if err != nil {
		return err
	}

	db, err := c.connect()
	if err != nil {
		return err
	}
	defer db.Disconnect()

	provisionFixtureSchema(db, schemaName, seedRecords)
	return nil
}

// schemaSeeder is the slice of srcdb.MySQL the provisioning steps use.
type schemaSeeder interface {
	CreateSchema(schemaName string) error
	CreateFixtureTable(schemaName string, tableName string) error
	UpsertRecords(schemaName string, tableName string, records []srcdb.Record) error
}

// provisionFixtureSchema runs schema, table and seed creation in order. Each
// step swallows its own failure and the next step still runs: a failed
// CREATE DATABASE against a pre-provisioned schema the user may not create
// must not stop the table and seed rows from landing.
func provisionFixtureSchema(db schemaSeeder, schemaName string, records []srcdb.Record) {
	err := db.CreateSchema(schemaName)
	if err != nil {
		log.Errorf("error creating schema: %s", err)
	} else {
		utils.PrintAndLog("Schema '%s' created successfully", schemaName)
	}

	err = db.CreateFixtureTable(schemaName, FixtureTableName)
	if err != nil {
		log.Errorf("error creating fixture table: %s", err)
	} else {
		utils.PrintAndLog("Table '%s.%s' created successfully", schemaName, FixtureTableName)
	}

	err = db.UpsertRecords(schemaName, FixtureTableName, records)
	if err != nil {
		log.Errorf("error inserting records: %s", err)
	} else {
		utils.PrintAndLog("Records inserted successfully")
	}
}

// CdcInsert adds the second batch of records to an already seeded schema.
func (c *Controller) CdcInsert() error {
	schemaName, err := c.Store.Read()
	if err != nil {
		return err
	}

	db, err := c.connect()
	if err != nil {
		return err
	}
	defer db.Disconnect()

	err = db.UpsertRecords(schemaName, FixtureTableName, cdcRecords)
	if err != nil {
		log.Errorf("error inserting records: %s", err)
		return nil
	}
	utils.PrintAndLog("Records inserted successfully")
	return nil
}

// Teardown drops every fixture schema dated strictly before today in the
// fixture timezone. Unlike setup, any failure here is fatal: leaked schemas
// on a shared CI database are worse than a noisy test run.
func (c *Controller) Teardown() error {
	db, err := c.connect()
	if err != nil {
		return err
	}
	defer db.Disconnect()

	stale, err := listStaleSchemas(db, todayInFixtureTimezone())
	if err != nil {
		return err
	}
	for _, name := range stale {
		err = db.DropSchema(name)
		if err != nil {
			return err
		}
	}
	utils.PrintAndLog("Dropped %d stale fixture schema(s)", len(stale))
	return nil
}

// FinalTeardown drops exactly this run's schema.
func (c *Controller) FinalTeardown() error {
	schemaName, err := c.Store.Read()
	if err != nil {
		return err
	}

	db, err := c.connect()
	if err != nil {
		return err
	}
	defer db.Disconnect()

	utils.PrintAndLog("delete schema %s", schemaName)
	return db.DropSchema(schemaName)
}

// SchemaInfo is one row of the status listing.
type SchemaInfo struct {
	Name string
	Date time.Time
}

// Status lists the fixture schemas currently present on the server.
func (c *Controller) Status() ([]SchemaInfo, error) {
	db, err := c.connect()
	if err != nil {
		return nil, err
	}
	defer db.Disconnect()

	schemas, err := db.ListSchemasWithPrefix("")
	if err != nil {
		return nil, err
	}

	fixtureSchemas := lo.Filter(schemas, func(name string, _ int) bool {
		return IsFixtureSchema(name)
	})
	return lo.Map(fixtureSchemas, func(name string, _ int) SchemaInfo {
		date, _ := SchemaDate(name)
		return SchemaInfo{Name: name, Date: date}
	}), nil
}

// listStaleSchemas returns the fixture schemas whose date stamp falls before
// cutoff day. Names not matching the generated shape are never touched.
func listStaleSchemas(db *srcdb.MySQL, cutoff time.Time) ([]string, error) {
	schemas, err := db.ListSchemasWithPrefix("")
	if err != nil {
		return nil, err
	}

	var stale []string
	for _, name := range schemas {
		if !IsFixtureSchema(name) {
			continue
		}
		date, err := SchemaDate(name)
		if err != nil {
			continue
		}
		if date.Before(cutoff) {
			stale = append(stale, name)
		}
	}
	return stale, nil
}
