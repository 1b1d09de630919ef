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
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/connectorkit/cat-hook/src/secrets"
	"github.com/connectorkit/cat-hook/src/utils"
)

const schemaPlaceholder = "%s"

// Workspace locates the acceptance-test support files on disk: the template
// sources, the temp/ directory the rendered copies go to, and the secret
// configs of the connector under test.
type Workspace struct {
	SupportDir string
	SecretsDir string
}

func (w Workspace) TempDir() string {
	return filepath.Join(w.SupportDir, "temp")
}

func (w Workspace) CatalogTemplatePath() string {
	return filepath.Join(w.SupportDir, "configured_catalog_template.json")
}

func (w Workspace) CatalogCopyPath() string {
	return filepath.Join(w.TempDir(), "configured_catalog_copy.json")
}

func (w Workspace) IncrementalCatalogTemplatePath() string {
	return filepath.Join(w.SupportDir, "incremental_configured_catalog_template.json")
}

func (w Workspace) IncrementalCatalogCopyPath() string {
	return filepath.Join(w.TempDir(), "incremental_configured_catalog_copy.json")
}

func (w Workspace) AbnormalStateTemplatePath() string {
	return filepath.Join(w.SupportDir, "abnormal_state_template.json")
}

func (w Workspace) AbnormalStateCopyPath() string {
	return filepath.Join(w.TempDir(), "abnormal_state_copy.json")
}

func (w Workspace) SecretConfigPath() string {
	return filepath.Join(w.SecretsDir, "cat-config.json")
}

func (w Workspace) ActiveConfigPath() string {
	return filepath.Join(w.TempDir(), "config_active.json")
}

func (w Workspace) SecretConfigCDCPath() string {
	return filepath.Join(w.SecretsDir, "cat-config-cdc.json")
}

func (w Workspace) ActiveConfigCDCPath() string {
	return filepath.Join(w.TempDir(), "config_cdc_active.json")
}

// RenderTemplate substitutes schemaName for every placeholder occurrence.
// The catalog templates carry one placeholder, the abnormal state template
// two; replacing all of them keeps a single code path.
func RenderTemplate(content string, schemaName string) string {
	return strings.ReplaceAll(content, schemaPlaceholder, schemaName)
}

// WriteSupportingFiles materializes the five files the acceptance test run
// consumes: the three rendered templates plus the two active connector
// configs with the database field pointed at schemaName.
func (w Workspace) WriteSupportingFiles(schemaName string) error {
	log.Infof("writing schema name %q into supporting files", schemaName)

	err := utils.EnsureDir(w.TempDir())
	if err != nil {
		return err
	}

	templatePairs := []struct {
		src string
		dst string
	}{
		{w.CatalogTemplatePath(), w.CatalogCopyPath()},
		{w.IncrementalCatalogTemplatePath(), w.IncrementalCatalogCopyPath()},
		{w.AbnormalStateTemplatePath(), w.AbnormalStateCopyPath()},
	}
	for _, pair := range templatePairs {
		err = renderTemplateFile(pair.src, pair.dst, schemaName)
		if err != nil {
			return err
		}
	}

	configPairs := []struct {
		src string
		dst string
	}{
		{w.SecretConfigPath(), w.ActiveConfigPath()},
		{w.SecretConfigCDCPath(), w.ActiveConfigCDCPath()},
	}
	for _, pair := range configPairs {
		cfg, err := secrets.Load(pair.src)
		if err != nil {
			return err
		}
		err = cfg.WriteActive(pair.dst, schemaName)
		if err != nil {
			return err
		}
	}
	return nil
}

func renderTemplateFile(srcPath string, dstPath string, schemaName string) error {
	content, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("read template %q: %w", srcPath, err)
	}
	rendered := RenderTemplate(string(content), schemaName)
	err = os.WriteFile(dstPath, []byte(rendered), 0644)
	if err != nil {
		return fmt.Errorf("write rendered template %q: %w", dstPath, err)
	}
	return nil
}
