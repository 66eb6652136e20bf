// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/adminbot/lib/ref"
)

// EnvVar names the environment variable read by Load.
const EnvVar = "ADMINBOT_CONFIG"

// DefaultCommand is the trigger word used when the file sets none.
const DefaultCommand = "admin"

// Config is the admin bot configuration.
type Config struct {
	// Homeserver is the base URL of the Matrix homeserver.
	Homeserver string `yaml:"homeserver" validate:"required,url"`

	// SessionFile holds the access token written by "adminbot login".
	SessionFile string `yaml:"session_file" validate:"required"`

	// Command is the trigger word: "!<command> <subcommand> ...".
	Command string `yaml:"command" validate:"required"`

	// ControlRoom is the only room commands are accepted from. The zero
	// value disables every command.
	ControlRoom ref.RoomID `yaml:"controlroom"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// HTTPTimeout bounds every homeserver request, including the sync
	// long poll, so it must exceed Sync.Timeout.
	HTTPTimeout time.Duration `yaml:"http_timeout" validate:"gt=0"`

	// Sync configures the /sync loop.
	Sync SyncConfig `yaml:"sync"`
}

// SyncConfig configures the /sync long-poll loop.
type SyncConfig struct {
	// Timeout is the server-side long-poll wait.
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`

	// MaxBackoff caps the delay between failed sync attempts.
	MaxBackoff time.Duration `yaml:"max_backoff" validate:"gt=0"`
}

// Default returns the default configuration. Defaults fill fields the
// file leaves out; the file itself is still required.
func Default() *Config {
	return &Config{
		SessionFile: "${HOME}/.config/adminbot/session.json",
		Command:     DefaultCommand,
		LogLevel:    "info",
		HTTPTimeout: 60 * time.Second,
		Sync: SyncConfig{
			Timeout:    30 * time.Second,
			MaxBackoff: 30 * time.Second,
		},
	}
}

// Load loads configuration from the ADMINBOT_CONFIG environment variable.
// There are no fallbacks: if ADMINBOT_CONFIG is not set, this fails.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvVar)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your adminbot.yaml config file, or use --config flag", EnvVar)
	}
	return LoadFile(configPath)
}

// LoadFile loads and validates configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// loadFile merges a single configuration file into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data, err = jsonToYAML(data)
		if err != nil {
			return err
		}
	}

	return yaml.Unmarshal(data, c)
}

// jsonToYAML strips comments and trailing commas, then re-encodes the
// document as block YAML. Feeding JSON straight to the YAML decoder
// breaks on tab indentation.
func jsonToYAML(data []byte) ([]byte, error) {
	var document any
	if err := json.Unmarshal(jsonc.ToJSON(data), &document); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return yaml.Marshal(document)
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.SessionFile = expandVars(c.SessionFile, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// commandPattern restricts the trigger word to characters that cannot
// collide with the "!" prefix or the whitespace separator.
var commandPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// structValidator reports field names by their yaml keys.
var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if err := structValidator.Struct(c); err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			return err
		}
		for _, fieldError := range fieldErrors {
			errs = append(errs, describeFieldError(fieldError))
		}
	}

	if c.Command != "" && !commandPattern.MatchString(c.Command) {
		errs = append(errs, fmt.Errorf("command %q may only contain letters, digits, '.', '_' and '-'", c.Command))
	}

	if c.HTTPTimeout > 0 && c.HTTPTimeout <= c.Sync.Timeout {
		errs = append(errs, fmt.Errorf("http_timeout (%s) must exceed sync.timeout (%s)", c.HTTPTimeout, c.Sync.Timeout))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// describeFieldError turns a validator failure into a message keyed by
// the yaml path ("sync.max_backoff") instead of the Go struct path.
func describeFieldError(fieldError validator.FieldError) error {
	path := fieldError.Namespace()
	if _, rest, found := strings.Cut(path, "."); found {
		path = rest
	}
	switch fieldError.Tag() {
	case "required":
		return fmt.Errorf("%s is required", path)
	case "url":
		return fmt.Errorf("%s must be a URL, got %q", path, fieldError.Value())
	case "oneof":
		return fmt.Errorf("%s must be one of: %s", path, fieldError.Param())
	case "gt", "gte":
		return fmt.Errorf("%s must be %s %s, got %v", path, comparisonWord(fieldError.Tag()), fieldError.Param(), fieldError.Value())
	default:
		return fmt.Errorf("%s failed %q validation", path, fieldError.Tag())
	}
}

func comparisonWord(tag string) string {
	if tag == "gt" {
		return "greater than"
	}
	return "at least"
}

// ControlRoomEnabled reports whether a control room is configured.
func (c *Config) ControlRoomEnabled() bool {
	return !c.ControlRoom.IsZero()
}
