// Copyright 2024 The Solaris Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"syscall"

	"github.com/solarisdb/lrucache/golibs/context"
	"github.com/solarisdb/lrucache/golibs/logging"
	"github.com/solarisdb/lrucache/pkg/soak"
	"github.com/solarisdb/lrucache/pkg/version"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lrucache",
		Short:         "lrucache runs the thread-safe LRU cache tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSoakCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.BuildVersionString())
		},
	}
}

func newSoakCmd() *cobra.Command {
	var (
		cfgFile  string
		logLevel string
		flagCfg  soak.Config
	)
	cmd := &cobra.Command{
		Use:   "soak",
		Short: "Run concurrent Put()/Get() against the cache and verify its consistency",
		Long: `The soak command starts the workers which Put() and Get() the keys of a small keys
space concurrently for the configured duration, then checks that the cache size
doesn't exceed the capacity and the recency list matches the index.

The settings are taken from the defaults, the config file (--config), the
environment variables with the ` + soak.EnvPrefix + `_ prefix and the flags, in the order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logging.SetLevel(lvl)

			cfg, err := soak.BuildConfig(cfgFile)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("capacity") {
				cfg.Capacity = flagCfg.Capacity
			}
			if flags.Changed("shards") {
				cfg.Shards = flagCfg.Shards
			}
			if flags.Changed("workers") {
				cfg.Workers = flagCfg.Workers
			}
			if flags.Changed("keys") {
				cfg.Keys = flagCfg.Keys
			}
			if flags.Changed("duration") {
				cfg.Duration = flagCfg.Duration
			}

			ctx, cancel := context.NewSignalsContext(syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			rep, err := soak.Run(ctx, cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rep)
			return nil
		},
	}
	def := soak.GetDefaultConfig()
	f := cmd.Flags()
	f.StringVar(&cfgFile, "config", "", "the config file (.yaml or .json)")
	f.StringVar(&logLevel, "log-level", logging.INFO.String(), "the log level: ERROR, WARN, INFO, DEBUG or TRACE")
	f.IntVar(&flagCfg.Capacity, "capacity", def.Capacity, "the cache capacity")
	f.IntVar(&flagCfg.Shards, "shards", def.Shards, "the number of the cache shards, 0 for the plain cache")
	f.IntVar(&flagCfg.Workers, "workers", def.Workers, "the number of concurrent workers")
	f.IntVar(&flagCfg.Keys, "keys", def.Keys, "the keys space size")
	f.StringVar(&flagCfg.Duration, "duration", def.Duration, "the run duration, like 500ms or 1m")
	return cmd
}
