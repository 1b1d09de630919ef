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
package srcdb

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	log "github.com/sirupsen/logrus"
)

// Record is one (id, name) row of the fixture table.
type Record struct {
	ID   string
	Name string
}

type MySQL struct {
	source *Source

	db *sql.DB
}

func newMySQL(s *Source) *MySQL {
	return &MySQL{source: s}
}

func (ms *MySQL) Connect() error {
	db, err := sql.Open("mysql", ms.getConnectionUri())
	if err != nil {
		return err
	}
	// sql.Open doesn't dial; ping so that bad credentials/host surface here.
	err = db.Ping()
	if err != nil {
		db.Close()
		return err
	}
	ms.db = db
	return nil
}

func (ms *MySQL) Disconnect() {
	if ms.db == nil {
		log.Infof("No connection to the database to close")
		return
	}

	err := ms.db.Close()
	if err != nil {
		log.Infof("Failed to close connection to the database: %s", err)
	}
}

func (ms *MySQL) getConnectionUri() string {
	source := ms.source
	if source.Uri != "" {
		return source.Uri
	}
	// DSN format: user:password@tcp(host:port)/ -- no database, the
	// lifecycle commands qualify every object with its schema name.
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/", source.User, source.Password, source.Host, source.Port)
}

func (ms *MySQL) GetVersion() (string, error) {
	var version string
	err := ms.db.QueryRow("SELECT VERSION()").Scan(&version)
	if err != nil {
		return "", fmt.Errorf("query version: %w", err)
	}
	return version, nil
}

func (ms *MySQL) CreateSchema(schemaName string) error {
	query := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", schemaName)
	log.Infof("creating schema: %s", query)
	_, err := ms.db.Exec(query)
	if err != nil {
		return fmt.Errorf("create schema %q: %w", schemaName, err)
	}
	return nil
}

func (ms *MySQL) CreateFixtureTable(schemaName string, tableName string) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.%s (
		id VARCHAR(100) PRIMARY KEY,
		name VARCHAR(255) NOT NULL
	)`, schemaName, tableName)
	log.Infof("creating fixture table %s.%s", schemaName, tableName)
	_, err := ms.db.Exec(query)
	if err != nil {
		return fmt.Errorf("create table %s.%s: %w", schemaName, tableName, err)
	}
	return nil
}

// UpsertRecords inserts records into the fixture table inside one
// transaction. A primary key conflict is a no-op update, so re-seeding an
// existing schema neither fails nor changes the rows. On any statement
// failure the whole batch is rolled back.
func (ms *MySQL) UpsertRecords(schemaName string, tableName string, records []Record) error {
	tx, err := ms.db.Begin()
	if err != nil {
		return fmt.Errorf("begin upsert transaction: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf("INSERT INTO %s.%s (id, name) VALUES (?, ?) ON DUPLICATE KEY UPDATE id=id", schemaName, tableName)
	for _, record := range records {
		_, err = tx.Exec(query, record.ID, record.Name)
		if err != nil {
			return fmt.Errorf("insert record (%s, %s): %w", record.ID, record.Name, err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("commit upsert transaction: %w", err)
	}
	return nil
}

// GetFixtureRecords reads the fixture table back, ordered by id.
func (ms *MySQL) GetFixtureRecords(schemaName string, tableName string) ([]Record, error) {
	query := fmt.Sprintf("SELECT id, name FROM %s.%s ORDER BY id", schemaName, tableName)
	rows, err := ms.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query fixture records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		err = rows.Scan(&r.ID, &r.Name)
		if err != nil {
			return nil, fmt.Errorf("scan fixture record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// ListSchemasWithPrefix returns schema names starting with prefix. An empty
// prefix lists every schema on the server.
func (ms *MySQL) ListSchemasWithPrefix(prefix string) ([]string, error) {
	query := "SELECT schema_name FROM information_schema.schemata WHERE schema_name LIKE ?"
	rows, err := ms.db.Query(query, prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("list schemas with prefix %q: %w", prefix, err)
	}
	defer rows.Close()

	var schemas []string
	for rows.Next() {
		var name string
		err = rows.Scan(&name)
		if err != nil {
			return nil, fmt.Errorf("scan schema name: %w", err)
		}
		schemas = append(schemas, name)
	}
	return schemas, rows.Err()
}

func (ms *MySQL) DropSchema(schemaName string) error {
	query := fmt.Sprintf("DROP DATABASE IF EXISTS %s", schemaName)
	_, err := ms.db.Exec(query)
	if err != nil {
		return fmt.Errorf("drop schema %q: %w", schemaName, err)
	}
	log.Infof("schema %s has been dropped", schemaName)
	return nil
}
