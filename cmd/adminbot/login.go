// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/adminbot/lib/config"
	"github.com/bureau-foundation/adminbot/lib/process"
	"github.com/bureau-foundation/adminbot/lib/secret"
	"github.com/bureau-foundation/adminbot/lib/service"
	"github.com/bureau-foundation/adminbot/messaging"
)

const loginTimeout = 30 * time.Second

// loginParams are the parsed arguments of "adminbot login".
type loginParams struct {
	Username     string
	ConfigPath   string
	PasswordFile string
}

func parseLoginArgs(args []string) (loginParams, error) {
	var params loginParams
	flagSet := pflag.NewFlagSet("adminbot login", pflag.ContinueOnError)
	flagSet.StringVarP(&params.ConfigPath, "config", "c", "", "path to adminbot.yaml (default: $"+config.EnvVar+")")
	flagSet.StringVar(&params.PasswordFile, "password-file", "", "file containing the password, or - for stdin (default: prompt)")
	if err := flagSet.Parse(args); err != nil {
		return params, process.Usage("%v", err)
	}

	rest := flagSet.Args()
	if len(rest) < 1 {
		return params, process.Usage("username is required\n\nUsage: adminbot login <username> [flags]")
	}
	if len(rest) > 1 {
		return params, process.Usage("unexpected argument: %s", rest[1])
	}
	params.Username = rest[0]
	return params, nil
}

// runLogin logs in with a password, verifies the new session, and saves
// it to the configured session file.
func runLogin(args []string) error {
	params, err := parseLoginArgs(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(params.ConfigPath)
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg.LogLevel).With("command", "login")

	password, err := readLoginPassword(params.PasswordFile)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	defer password.Close()

	ctx, cancel := context.WithTimeout(context.Background(), loginTimeout)
	defer cancel()

	client, err := messaging.NewClient(messaging.ClientConfig{
		HomeserverURL: cfg.Homeserver,
		HTTPClient:    &http.Client{Timeout: cfg.HTTPTimeout},
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("create matrix client: %w", err)
	}

	session, err := client.Login(ctx, params.Username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	defer session.Close()

	userID, err := service.ValidateSession(ctx, session)
	if err != nil {
		return err
	}
	if err := service.SaveSession(cfg.SessionFile, cfg.Homeserver, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Logged in as %s\n", userID)
	fmt.Fprintf(os.Stderr, "Session saved to %s\n", cfg.SessionFile)
	return nil
}

// readLoginPassword reads the password from passwordFile ("-" reads one
// line of stdin) or, when passwordFile is empty, prompts on the
// terminal with echo disabled.
func readLoginPassword(passwordFile string) (*secret.Buffer, error) {
	if passwordFile != "" {
		return secret.ReadFromPath(passwordFile)
	}

	stdinFileDescriptor := int(os.Stdin.Fd())
	if !term.IsTerminal(stdinFileDescriptor) {
		return nil, fmt.Errorf("no terminal available for interactive password prompt (use --password-file)")
	}

	fmt.Fprint(os.Stderr, "Password: ")
	passwordBytes, err := term.ReadPassword(stdinFileDescriptor)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}

	buffer, err := secret.NewFromBytes(passwordBytes)
	secret.Zero(passwordBytes)
	if err != nil {
		return nil, err
	}
	return buffer, nil
}
