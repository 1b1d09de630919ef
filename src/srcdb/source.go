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

// Source describes the database server the fixture schemas live on.
// No database name: the lifecycle commands address schemas explicitly,
// so connections are made server-wide.
type Source struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Uri      string `json:"uri"`

	mysql *MySQL `json:"-"`
}

func (s *Source) DB() *MySQL {
	if s.mysql == nil {
		s.mysql = newMySQL(s)
	}
	return s.mysql
}
