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
package cmd

import (
	"fmt"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/connectorkit/cat-hook/src/config"
)

type lineFormatter struct{}

var levelList = []string{
	"PANIC",
	"FATAL",
	"ERROR",
	"WARN",
	"INFO",
	"DEBUG",
	"TRACE",
}

func (lf *lineFormatter) Format(entry *log.Entry) ([]byte, error) {
	level := levelList[int(entry.Level)]
	fileName := filepath.Base(entry.Caller.File)
	// Example log line:
	// 2022-03-23 12:16:42 INFO main.go:27 Logging initialised.
	msg := fmt.Sprintf("%s %s %s:%d %s\n",
		entry.Time.Format("2006-01-02 15:04:05"), level,
		fileName, entry.Caller.Line, entry.Message)
	return []byte(msg), nil
}

// InitLogging routes log output to <logDir>/cat-hook.log with rotation.
// With no logDir the default stderr logger stays in place so CI output
// still carries the messages.
func InitLogging(logDir string) {
	level, err := log.ParseLevel(config.LogLevel)
	if err == nil {
		log.SetLevel(level)
	}

	if logDir == "" {
		return
	}

	logRotator := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "cat-hook.log"),
		MaxSize:    200, // 200 MB log size before rotation
		MaxBackups: 10,  // Allow upto 10 logs at once before deleting oldest logs.
	}
	log.SetOutput(logRotator)
	log.SetReportCaller(true)
	log.SetFormatter(&lineFormatter{})
	log.Info("Logging initialised.")
}
