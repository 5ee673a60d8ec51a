// Copyright 2026 The magicbuf Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package magicbuf

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// pkgLogger holds an optional *logrus.Logger used only for the one event a
// caller embedding this package as a library cannot otherwise observe: a
// Buffer finalized without Close. The core addressing and
// construction paths never log on their own; SetLogger is an opt-in for
// callers (notably cmd/magicbufctl) that want visibility.
var pkgLogger atomic.Pointer[logrus.Logger]

// SetLogger installs l as the package's diagnostic logger. Passing nil
// disables logging. Safe to call concurrently with allocation/teardown.
func SetLogger(l *logrus.Logger) {
	pkgLogger.Store(l)
}

func logWarn(fields logrus.Fields, msg string) {
	if l := pkgLogger.Load(); l != nil {
		l.WithFields(fields).Warn(msg)
	}
}
