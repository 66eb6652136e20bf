// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/adminbot/lib/ref"
)

// writeConfig writes content to a file named name in a fresh temp dir.
func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Command != "admin" {
		t.Errorf("expected command=admin, got %s", cfg.Command)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected log_level=info, got %s", cfg.LogLevel)
	}
	if !cfg.ControlRoom.IsZero() {
		t.Errorf("expected no control room by default, got %s", cfg.ControlRoom)
	}
	if cfg.ControlRoomEnabled() {
		t.Error("ControlRoomEnabled should be false by default")
	}
}

func TestLoad_RequiresEnvVar(t *testing.T) {
	t.Setenv(EnvVar, "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when ADMINBOT_CONFIG not set, got nil")
	}
	if !strings.HasPrefix(err.Error(), "ADMINBOT_CONFIG environment variable not set") {
		t.Errorf("unexpected error message %q", err.Error())
	}
}

func TestLoad_WithEnvVar(t *testing.T) {
	path := writeConfig(t, "adminbot.yaml", `
homeserver: https://matrix.example.org
controlroom: "!control:example.org"
`)
	t.Setenv(EnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Homeserver != "https://matrix.example.org" {
		t.Errorf("expected homeserver from file, got %s", cfg.Homeserver)
	}
	if cfg.ControlRoom != ref.MustParseRoomID("!control:example.org") {
		t.Errorf("expected control room from file, got %s", cfg.ControlRoom)
	}
}

func TestLoadFile_YAML(t *testing.T) {
	t.Setenv("HOME", "/home/bot")
	path := writeConfig(t, "adminbot.yaml", `
homeserver: https://matrix.example.org
session_file: ${HOME}/state/session.json
command: ops
controlroom: "!control:example.org"
log_level: debug
http_timeout: 90s
sync:
  timeout: 45s
  max_backoff: 2m
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Command != "ops" {
		t.Errorf("command = %s", cfg.Command)
	}
	if cfg.SessionFile != "/home/bot/state/session.json" {
		t.Errorf("session_file = %s, want ${HOME} expanded", cfg.SessionFile)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log_level = %s", cfg.LogLevel)
	}
	if cfg.HTTPTimeout != 90*time.Second {
		t.Errorf("http_timeout = %s", cfg.HTTPTimeout)
	}
	if cfg.Sync.Timeout != 45*time.Second || cfg.Sync.MaxBackoff != 2*time.Minute {
		t.Errorf("sync = %+v", cfg.Sync)
	}
}

func TestLoadFile_JSONC(t *testing.T) {
	path := writeConfig(t, "adminbot.jsonc", `{
	// The homeserver the bot logs in to.
	"homeserver": "https://matrix.example.org",
	"controlroom": "!control:example.org",
	"sync": {"timeout": "10s"}, // trailing comma below is allowed
}`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Homeserver != "https://matrix.example.org" {
		t.Errorf("homeserver = %s", cfg.Homeserver)
	}
	if cfg.Sync.Timeout != 10*time.Second {
		t.Errorf("sync.timeout = %s", cfg.Sync.Timeout)
	}
	if cfg.Command != DefaultCommand {
		t.Errorf("command = %s, want default", cfg.Command)
	}
}

func TestLoadFile_ControlRoomUnset(t *testing.T) {
	path := writeConfig(t, "adminbot.yaml", `
homeserver: https://matrix.example.org
controlroom: ""
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.ControlRoomEnabled() {
		t.Errorf("empty controlroom must leave the feature disabled, got %s", cfg.ControlRoom)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "malformed control room",
			content: "homeserver: https://matrix.example.org\ncontrolroom: control\n",
			wantErr: "room ID must start with '!'",
		},
		{
			name:    "missing homeserver",
			content: "controlroom: \"!control:example.org\"\n",
			wantErr: "homeserver is required",
		},
		{
			name:    "homeserver not a URL",
			content: "homeserver: not a url\n",
			wantErr: "homeserver must be a URL",
		},
		{
			name:    "bad log level",
			content: "homeserver: https://matrix.example.org\nlog_level: loud\n",
			wantErr: "log_level must be one of",
		},
		{
			name:    "command with whitespace",
			content: "homeserver: https://matrix.example.org\ncommand: \"ad min\"\n",
			wantErr: "command \"ad min\" may only contain",
		},
		{
			name:    "http timeout shorter than long poll",
			content: "homeserver: https://matrix.example.org\nhttp_timeout: 10s\nsync:\n  timeout: 30s\n",
			wantErr: "http_timeout (10s) must exceed sync.timeout (30s)",
		},
		{
			name:    "zero backoff",
			content: "homeserver: https://matrix.example.org\nsync:\n  max_backoff: 0s\n",
			wantErr: "sync.max_backoff must be greater than 0",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := writeConfig(t, "adminbot.yaml", test.content)
			_, err := LoadFile(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), test.wantErr)
			}
		})
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate_ReportsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Command = ""
	cfg.LogLevel = "verbose"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"homeserver is required", "command is required", "log_level must be one of"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not contain %q", err.Error(), want)
		}
	}
}

func TestExpandVars(t *testing.T) {
	t.Setenv("ADMINBOT_TEST_DIR", "")
	got := expandVars("${ADMINBOT_TEST_DIR:-/var/lib/adminbot}/session.json", nil)
	if got != "/var/lib/adminbot/session.json" {
		t.Errorf("expandVars = %q", got)
	}
}

func TestLoadFile_Example(t *testing.T) {
	t.Setenv("HOME", "/home/bot")

	cfg, err := LoadFile("../../adminbot.example.yaml")
	if err != nil {
		t.Fatalf("example config does not load: %v", err)
	}
	if cfg.ControlRoom != ref.MustParseRoomID("!control:example.org") {
		t.Errorf("controlroom = %s", cfg.ControlRoom)
	}
	if cfg.SessionFile != "/home/bot/.config/adminbot/session.json" {
		t.Errorf("session_file = %s", cfg.SessionFile)
	}
	if cfg.Sync.Timeout != 30*time.Second || cfg.HTTPTimeout != 60*time.Second {
		t.Errorf("timeouts = %v / %v", cfg.Sync.Timeout, cfg.HTTPTimeout)
	}
}
