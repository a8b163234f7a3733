/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/carverauto/uem-inventory/pkg/cli"
	"github.com/carverauto/uem-inventory/pkg/config"
	"github.com/carverauto/uem-inventory/pkg/inventory"
	"github.com/carverauto/uem-inventory/pkg/lifecycle"
	"github.com/carverauto/uem-inventory/pkg/logger"
	"github.com/carverauto/uem-inventory/pkg/version"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}

		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cmdCfg, err := cli.ParseFlags(os.Args[1:])
	if err != nil {
		return err
	}

	if cmdCfg.Help {
		cli.ShowHelp(os.Stdout)

		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logCfg := logger.DefaultConfig()

	// The dashboard owns the terminal; logs only go where LOG_OUTPUT points.
	if cmdCfg.Interactive() && os.Getenv("LOG_OUTPUT") == "" {
		logCfg.Output = logger.OutputDiscard
	}

	log, err := lifecycle.InitializeLogger(ctx, logCfg, version.GetVersion())
	if err != nil {
		return err
	}

	defer func() {
		if err := lifecycle.ShutdownLogger(); err != nil {
			log.Warn().Err(err).Msg("Failed to flush telemetry")
		}
	}()

	cfg, err := config.Load(ctx, log)
	if err != nil {
		return err
	}

	baseURL := cfg.APIBaseURL
	if cmdCfg.APIURL != "" {
		baseURL = cmdCfg.APIURL
	}

	client := inventory.NewClient(baseURL,
		inventory.WithLogger(lifecycle.CreateComponentLogger(log, "inventory")))

	log.Debug().
		Str("version", version.GetFullVersion()).
		Str("api_base_url", client.BaseURL()).
		Str("subcommand", cmdCfg.SubCmd).
		Msg("Starting uemctl")

	return cli.Run(ctx, cmdCfg, client, lifecycle.CreateComponentLogger(log, "dashboard"), os.Stdout)
}
