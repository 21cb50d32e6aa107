// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package gostm32f4

import (
	"github.com/sirupsen/logrus"
)

var (
	logger *logrus.Logger = nil
)

const MaxLogLevel = logrus.DebugLevel

func init() {
	logger = logrus.New()
}

// SetLogger replaces the logger shared by all packages of this module.
func SetLogger(loggerInstance *logrus.Logger) {

	logger = loggerInstance
}

// Log returns the shared logger.
func Log() *logrus.Logger {
	return logger
}

// Prefixed returns an entry tagged for the prefixed text formatter.
func Prefixed(prefix string) *logrus.Entry {
	return logger.WithField("prefix", prefix)
}
