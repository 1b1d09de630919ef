package testcontainers

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/docker/go-connections/nat"
	log "github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/connectorkit/cat-hook/src/utils"
)

const DEFAULT_MYSQL_PORT = "3306"

type MysqlContainer struct {
	mutex sync.Mutex
	ContainerConfig
	container testcontainers.Container
}

func (ms *MysqlContainer) Start(ctx context.Context) (err error) {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()

	if ms.container != nil {
		if ms.container.IsRunning() {
			utils.PrintAndLog("MySQL-%s container already running", ms.DBVersion)
			return nil
		}
		utils.PrintAndLog("Restarting MySQL-%s container", ms.DBVersion)
		if err := ms.container.Start(ctx); err != nil {
			return fmt.Errorf("failed to restart mysql container: %w", err)
		}
		return pingDatabase(ms.GetConnectionString())
	}

	req := testcontainers.ContainerRequest{
		Image:        fmt.Sprintf("mysql:%s", ms.DBVersion),
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": ms.Password,
			"MYSQL_USER":          ms.User,
			"MYSQL_PASSWORD":      ms.Password,
			"MYSQL_DATABASE":      ms.DBName,
		},
		WaitingFor: wait.ForListeningPort("3306/tcp").WithStartupTimeout(2 * time.Minute).WithPollInterval(5 * time.Second),
	}

	ms.container, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return fmt.Errorf("failed to start mysql container: %w", err)
	}

	err = pingDatabase(ms.GetConnectionString())
	if err != nil {
		return fmt.Errorf("failed to ping mysql container: %w", err)
	}
	return nil
}

// Stop pauses (but does not remove) the container, so a later Start picks up
// the same data directory.
func (ms *MysqlContainer) Stop(ctx context.Context) error {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()

	if ms.container == nil {
		return nil
	} else if !ms.container.IsRunning() {
		utils.PrintAndLog("MySQL-%s container already stopped", ms.DBVersion)
		return nil
	}

	timeout := 10 * time.Second
	if err := ms.container.Stop(ctx, &timeout); err != nil {
		return fmt.Errorf("failed to stop mysql container: %w", err)
	}
	return nil
}

func (ms *MysqlContainer) Terminate(ctx context.Context) {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()

	if ms == nil {
		return
	}

	err := ms.container.Terminate(ctx)
	if err != nil {
		log.Errorf("failed to terminate mysql container: %v", err)
	}
}

func (ms *MysqlContainer) GetHostPort() (string, int, error) {
	if ms.container == nil {
		return "", -1, fmt.Errorf("mysql container is not started: nil")
	}

	ctx := context.Background()
	host, err := ms.container.Host(ctx)
	if err != nil {
		return "", -1, fmt.Errorf("failed to fetch host for mysql container: %w", err)
	}

	port, err := ms.container.MappedPort(ctx, nat.Port(DEFAULT_MYSQL_PORT))
	if err != nil {
		return "", -1, fmt.Errorf("failed to fetch mapped port for mysql container: %w", err)
	}

	return host, port.Int(), nil
}

func (ms *MysqlContainer) GetConfig() ContainerConfig {
	return ms.ContainerConfig
}

// GetConnectionString returns a server-wide DSN (no database), matching how
// the lifecycle commands connect. Uses root since the commands create and
// drop schemas.
func (ms *MysqlContainer) GetConnectionString() string {
	host, port, err := ms.GetHostPort()
	if err != nil {
		utils.ErrExit("failed to get host port for mysql connection string: %v", err)
	}

	// DSN format: user:password@tcp(host:port)/
	return fmt.Sprintf("root:%s@tcp(%s:%d)/", ms.Password, host, port)
}

func (ms *MysqlContainer) GetConnection() (*sql.DB, error) {
	if ms.container == nil {
		utils.ErrExit("mysql container is not started: nil")
	}

	db, err := sql.Open("mysql", ms.GetConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mysql: %w", err)
	}

	return db, nil
}

func (ms *MysqlContainer) ExecuteSqls(sqls ...string) {
	if ms == nil {
		utils.ErrExit("mysql container is not started: nil")
	}

	db, err := sql.Open("mysql", ms.GetConnectionString())
	if err != nil {
		utils.ErrExit("failed to connect to mysql for executing sqls: %w", err)
	}
	defer db.Close()

	for _, sqlStmt := range sqls {
		_, err := db.Exec(sqlStmt)
		if err != nil {
			utils.ErrExit("failed to execute sql '%s': %w", sqlStmt, err)
		}
	}
}

// pingDatabase waits for the server to accept connections. After a restart
// the port is mapped before mysqld finishes recovery, so retry for a while.
func pingDatabase(connStr string) error {
	db, err := sql.Open("mysql", connStr)
	if err != nil {
		return fmt.Errorf("open connection for ping: %w", err)
	}
	defer db.Close()

	var pingErr error
	for attempt := 0; attempt < 12; attempt++ {
		pingErr = db.Ping()
		if pingErr == nil {
			return nil
		}
		time.Sleep(5 * time.Second)
	}
	return pingErr
}
