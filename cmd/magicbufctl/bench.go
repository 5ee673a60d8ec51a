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
	"time"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/sklose/magicbuf/pkg/magicbuf"
)

// benchCmd runs concurrent wrap-around writers against a single shared
// Buffer. Each worker owns a disjoint stripe of logical offsets, so the
// benchmark itself supplies the coordination the core package deliberately
// omits.
type benchCmd struct {
	logger     *logrus.Logger
	configPath string
}

func (*benchCmd) Name() string     { return "bench" }
func (*benchCmd) Synopsis() string { return "benchmark wrap-around writes across worker goroutines" }
func (*benchCmd) Usage() string    { return "bench [-config=path.toml]\n" }

func (c *benchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", "", "optional TOML config file")
}

func (c *benchCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadBenchConfig(c.configPath)
	if err != nil {
		c.logger.WithError(err).Error("loading config")
		return subcommands.ExitFailure
	}

	b, err := magicbuf.New(cfg.LenBytes)
	if err != nil {
		c.logger.WithError(err).WithField("len", cfg.LenBytes).Error("allocation failed")
		return subcommands.ExitFailure
	}
	defer b.Close()

	stripe := b.Len() / cfg.Workers
	var g errgroup.Group
	start := time.Now()
	for w := 0; w < cfg.Workers; w++ {
		base := w * stripe
		g.Go(func() error {
			payload := make([]byte, stripe)
			for it := 0; it < cfg.Iterations; it++ {
				view := b.WindowFrom(base)
				copy(view[:stripe], payload)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.logger.WithError(err).Error("benchmark worker failed")
		return subcommands.ExitFailure
	}

	elapsed := time.Since(start)
	totalBytes := int64(cfg.Workers) * int64(cfg.Iterations) * int64(stripe)
	c.logger.WithFields(logrus.Fields{
		"len_bytes":  cfg.LenBytes,
		"workers":    cfg.Workers,
		"iterations": cfg.Iterations,
		"elapsed":    elapsed,
		"throughput": float64(totalBytes) / elapsed.Seconds(),
	}).Info("bench complete")
	return subcommands.ExitSuccess
}
