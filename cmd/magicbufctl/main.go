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

// Command magicbufctl drives a magicbuf.Buffer from the command line: it
// allocates one, optionally runs a self-test or benchmark against it, and
// reports the platform's allocation granularity. The core package itself
// remains CLI-free.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/sklose/magicbuf/pkg/magicbuf"
)

func main() {
	logger := logrus.New()
	magicbuf.SetLogger(logger)

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&infoCmd{}, "")
	subcommands.Register(&selftestCmd{logger: logger}, "")
	subcommands.Register(&benchCmd{logger: logger}, "")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
