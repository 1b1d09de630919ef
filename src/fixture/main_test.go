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
	"context"
	"os"
	"testing"

	log "github.com/sirupsen/logrus"

	"github.com/connectorkit/cat-hook/src/srcdb"
	"github.com/connectorkit/cat-hook/src/utils"
	testcontainers "github.com/connectorkit/cat-hook/test/containers"
)

var (
	testContainer *testcontainers.MysqlContainer
	testSource    *srcdb.Source
)

func TestMain(m *testing.M) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	testContainer = testcontainers.NewMysqlContainer(nil)
	err := testContainer.Start(ctx)
	if err != nil {
		utils.ErrExit("Failed to start mysql container: %v", err)
	}
	host, port, err := testContainer.GetHostPort()
	if err != nil {
		utils.ErrExit("%v", err)
	}

	// root, because the lifecycle commands create and drop whole schemas
	testSource = &srcdb.Source{
		Host:     host,
		Port:     port,
		User:     "root",
		Password: testContainer.GetConfig().Password,
	}
	err = testSource.DB().Connect()
	if err != nil {
		utils.ErrExit("Failed to connect to mysql database: %w", err)
	}
	defer testSource.DB().Disconnect()

	// to avoid info level logs flooding the test output
	log.SetLevel(log.WarnLevel)

	exitCode := m.Run()

	testcontainers.TerminateAllContainers()

	os.Exit(exitCode)
}
