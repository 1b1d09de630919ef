package testcontainers

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

// containerRegistry ensures one container per mysql version [Singleton Pattern]
// Limitation - go test spawns a different process per package, so containers
// are not shared across packages.
var (
	containerRegistry = make(map[string]*MysqlContainer)
	registryMutex     sync.Mutex
)

type ContainerConfig struct {
	DBVersion string
	User      string
	Password  string
	DBName    string
}

// NewMysqlContainer returns the registered container for the requested
// version, creating it on first use. Pass nil for defaults.
func NewMysqlContainer(containerConfig *ContainerConfig) *MysqlContainer {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	if containerConfig == nil {
		containerConfig = &ContainerConfig{}
	}
	setContainerConfigDefaultsIfNotProvided(containerConfig)

	containerName := fmt.Sprintf("mysql-%s", containerConfig.DBVersion)
	if container, exists := containerRegistry[containerName]; exists {
		log.Infof("container '%s' already exists in the registry", containerName)
		return container
	}

	container := &MysqlContainer{ContainerConfig: *containerConfig}
	containerRegistry[containerName] = container
	return container
}

// TerminateAllContainers is a best-effort cleanup at the end of a package's
// tests; the testcontainers reaper covers anything missed after the process
// exits.
func TerminateAllContainers() {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	ctx := context.Background()
	for name, container := range containerRegistry {
		log.Infof("terminating the container '%s'", name)
		container.Terminate(ctx)
	}
}

func setContainerConfigDefaultsIfNotProvided(config *ContainerConfig) {
	mysqlVersion := os.Getenv("MYSQL_VERSION")
	if mysqlVersion == "" {
		mysqlVersion = "8.4"
	}

	config.User = lo.Ternary(config.User == "", "cathook", config.User)
	config.Password = lo.Ternary(config.Password == "", "passsword", config.Password)
	config.DBVersion = lo.Ternary(config.DBVersion == "", mysqlVersion, config.DBVersion)
	config.DBName = lo.Ternary(config.DBName == "", "cathook", config.DBName)
}
