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
	"fmt"

	"github.com/BurntSushi/toml"
)

// benchConfig is the optional TOML configuration accepted by the bench
// subcommand. The core library reads no configuration of its own; this
// exists solely for the CLI front-end.
type benchConfig struct {
	LenBytes   int `toml:"len_bytes"`
	Workers    int `toml:"workers"`
	Iterations int `toml:"iterations"`
}

func defaultBenchConfig() benchConfig {
	return benchConfig{
		LenBytes:   1 << 20,
		Workers:    4,
		Iterations: 1000,
	}
}

func loadBenchConfig(path string) (benchConfig, error) {
	cfg := defaultBenchConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return benchConfig{}, fmt.Errorf("loading %s: %w", path, err)
	}
	return cfg, nil
}
