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
	"math/rand"
	"regexp"
	"time"

	"github.com/samber/lo"
)

const (
	schemaDateLayout  = "20060102"
	schemaSuffixLen   = 8
	schemaSuffixChars = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Schema dates are pinned to one timezone so that runs from differently
// configured CI hosts agree on what "today" means.
var fixtureTimezone = lo.Must(time.LoadLocation("America/Los_Angeles"))

// SchemaNameRegexp matches the names this tool generates: an 8 digit date
// stamp plus an 8 char random suffix, e.g. 20240101_abcd1234.
var SchemaNameRegexp = regexp.MustCompile(`^\d{8}_[a-z0-9]{8}$`)

// GenerateSchemaName returns a fresh schema identifier for this run.
func GenerateSchemaName() string {
	datePrefix := time.Now().In(fixtureTimezone).Format(schemaDateLayout)
	suffix := make([]byte, schemaSuffixLen)
	for i := range suffix {
		suffix[i] = schemaSuffixChars[rand.Intn(len(schemaSuffixChars))]
	}
	return fmt.Sprintf("%s_%s", datePrefix, suffix)
}

// IsFixtureSchema reports whether name looks like a schema generated by this
// tool. Teardown only ever touches names matching this shape.
func IsFixtureSchema(name string) bool {
	return SchemaNameRegexp.MatchString(name)
}

// SchemaDate parses the date stamp out of a fixture schema name.
func SchemaDate(name string) (time.Time, error) {
	if !IsFixtureSchema(name) {
		return time.Time{}, fmt.Errorf("%q is not a fixture schema name", name)
	}
	date, err := time.ParseInLocation(schemaDateLayout, name[:len(schemaDateLayout)], fixtureTimezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date prefix of %q: %w", name, err)
	}
	return date, nil
}

// todayInFixtureTimezone returns midnight of the current day in the fixture
// timezone.
func todayInFixtureTimezone() time.Time {
	now := time.Now().In(fixtureTimezone)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, fixtureTimezone)
}
