// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/adminbot/lib/admin"
	"github.com/bureau-foundation/adminbot/lib/clock"
	"github.com/bureau-foundation/adminbot/lib/config"
	"github.com/bureau-foundation/adminbot/lib/process"
	"github.com/bureau-foundation/adminbot/lib/service"
	"github.com/bureau-foundation/adminbot/lib/version"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		process.Fatal(err)
	}
}

func run(args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "--version":
			fmt.Printf("adminbot %s\n", version.Info())
			return nil
		case "version":
			fmt.Printf("adminbot %s\n", version.Full())
			return nil
		case "login":
			return runLogin(args[1:])
		}
	}
	return runServe(args)
}

func runServe(args []string) error {
	var configPath string
	flagSet := pflag.NewFlagSet("adminbot", pflag.ContinueOnError)
	flagSet.StringVarP(&configPath, "config", "c", "", "path to adminbot.yaml (default: $"+config.EnvVar+")")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return process.Usage("%v", err)
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return process.Usage("unexpected argument: %s", rest[0])
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	_, session, err := service.LoadSession(cfg.SessionFile, cfg.Homeserver, httpClient, logger)
	if err != nil {
		return fmt.Errorf("%w (run \"adminbot login <username>\" first)", err)
	}
	defer session.Close()

	userID, err := service.ValidateSession(ctx, session)
	if err != nil {
		return err
	}
	logger = logger.With("user_id", userID)

	bot, err := admin.New(admin.Config{
		Command:     cfg.Command,
		ControlRoom: cfg.ControlRoom,
	}, session, logger)
	if err != nil {
		return err
	}

	since, snapshot, err := service.InitialSync(ctx, session, admin.SyncFilter)
	if err != nil {
		return err
	}
	bot.HandleInitialSync(ctx, snapshot)

	logger.Info("adminbot running",
		"version", version.Info(),
		"homeserver", cfg.Homeserver,
		"command", cfg.Command,
		"control_room", cfg.ControlRoom,
		"commands_enabled", cfg.ControlRoomEnabled(),
	)
	if !cfg.ControlRoomEnabled() {
		logger.Warn("no control room configured, admin commands are disabled; invites are still handled")
	}

	err = service.RunSyncLoop(ctx, session, service.SyncConfig{
		Filter:     admin.SyncFilter,
		Timeout:    cfg.Sync.Timeout,
		MaxBackoff: cfg.Sync.MaxBackoff,
	}, since, bot.HandleSync, clock.Real(), logger)
	if err != nil {
		return err
	}
	logger.Info("shutting down")
	return nil
}

// loadConfig reads the file named by --config, or by ADMINBOT_CONFIG
// when the flag is empty.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `adminbot - Matrix room administration bot

Usage:
  adminbot [flags]
  adminbot login <username> [flags]
  adminbot --version
  adminbot version

Operators send "!<command> <subcommand>" in the control room. Run
"!<command>" there for the list of subcommands.

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
