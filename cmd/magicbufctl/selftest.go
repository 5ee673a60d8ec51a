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

package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/sklose/magicbuf/pkg/magicbuf"
)

// selftestCmd allocates a buffer and checks the alias law against it, for
// manual verification on a target machine without running the full test
// suite.
type selftestCmd struct {
	logger *logrus.Logger
	length int
}

func (*selftestCmd) Name() string     { return "selftest" }
func (*selftestCmd) Synopsis() string { return "allocate a buffer and verify the alias law holds" }
func (*selftestCmd) Usage() string    { return "selftest [-len=N]\n" }

func (c *selftestCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.length, "len", 1<<16, "buffer length in bytes, must be a power of two")
}

func (c *selftestCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b, err := magicbuf.New(c.length)
	if err != nil {
		c.logger.WithError(err).WithField("len", c.length).Error("allocation failed")
		return subcommands.ExitFailure
	}
	defer b.Close()

	n := b.Len()
	for _, i := range []int{0, 1, n / 2, n - 1} {
		const v = byte(0xA5)
		b.SetAt(i, v)
		if got := b.At(i + n); got != v {
			c.logger.WithFields(logrus.Fields{"offset": i, "mirror": i + n}).Error("alias law violated")
			return subcommands.ExitFailure
		}
	}

	c.logger.WithField("len", n).Info("self-test passed: alias law holds")
	return subcommands.ExitSuccess
}
