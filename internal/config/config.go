package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Review modes supported by the workflow.
const (
	ModeSequential = "sequential"
	ModeBatch      = "batch"
)

// DefaultBaseURL is the Asana REST endpoint used when nothing overrides it.
const DefaultBaseURL = "https://app.asana.com/api/1.0"

// ConfigFileName is looked up in the user's home directory.
const ConfigFileName = ".asana-update-summarizer.json"

// Config carries every runtime setting. It is constructed once by Load and
// passed explicitly to collaborators; nothing reads the environment after
// loading.
type Config struct {
	AccessToken  string
	BaseURL      string
	ReviewMode   string
	FailFastPost bool
	Clipboard    bool
	Verbose      bool
}

type loadOptions struct {
	envLookup func(string) (string, bool)
	readFile  func(string) ([]byte, error)
	homeDir   func() (string, error)
	overrides []Override
}

// Option customizes Load, mainly so tests can inject env and file lookups.
type Option func(*loadOptions)

// Override mutates the config after file and env values have been applied.
type Override func(*Config)

func WithEnv(lookup func(string) (string, bool)) Option {
	return func(o *loadOptions) { o.envLookup = lookup }
}

func WithFileReader(read func(string) ([]byte, error)) Option {
	return func(o *loadOptions) { o.readFile = read }
}

func WithHomeDir(home func() (string, error)) Option {
	return func(o *loadOptions) { o.homeDir = home }
}

func WithOverrides(overrides ...Override) Option {
	return func(o *loadOptions) { o.overrides = append(o.overrides, overrides...) }
}

// envAliases maps each setting to the environment variables that may provide
// it, in precedence order.
var envAliases = map[string][]string{
	"access_token": {"ASANA_ACCESS_TOKEN", "ASANA_PERSONAL_ACCESS_TOKEN"},
	"base_url":     {"ASANA_BASE_URL"},
	"review_mode":  {"ASANA_REVIEW_MODE"},
}

// Load builds the runtime config with precedence
// defaults < config file < environment < caller overrides.
func Load(opts ...Option) (Config, error) {
	options := loadOptions{
		envLookup: os.LookupEnv,
		readFile:  os.ReadFile,
		homeDir:   os.UserHomeDir,
	}
	for _, opt := range opts {
		opt(&options)
	}

	cfg := Config{
		BaseURL:    DefaultBaseURL,
		ReviewMode: ModeSequential,
		Clipboard:  true,
	}

	if err := applyFile(&cfg, options); err != nil {
		return Config{}, err
	}
	applyEnv(&cfg, options.envLookup)
	for _, override := range options.overrides {
		override(&cfg)
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.ReviewMode != ModeSequential && cfg.ReviewMode != ModeBatch {
		return Config{}, fmt.Errorf("invalid review mode %q (want %q or %q)", cfg.ReviewMode, ModeSequential, ModeBatch)
	}
	return cfg, nil
}

func applyFile(cfg *Config, options loadOptions) error {
	home, err := options.homeDir()
	if err != nil {
		return nil
	}
	path := filepath.Join(home, ConfigFileName)
	data, err := options.readFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigType("json")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	if v.IsSet("access_token") {
		cfg.AccessToken = v.GetString("access_token")
	}
	if v.IsSet("base_url") {
		cfg.BaseURL = v.GetString("base_url")
	}
	if v.IsSet("review_mode") {
		cfg.ReviewMode = v.GetString("review_mode")
	}
	if v.IsSet("fail_fast_post") {
		cfg.FailFastPost = v.GetBool("fail_fast_post")
	}
	if v.IsSet("clipboard") {
		cfg.Clipboard = v.GetBool("clipboard")
	}
	if v.IsSet("verbose") {
		cfg.Verbose = v.GetBool("verbose")
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	if val, ok := lookupAlias(lookup, envAliases["access_token"]); ok {
		cfg.AccessToken = val
	}
	if val, ok := lookupAlias(lookup, envAliases["base_url"]); ok {
		cfg.BaseURL = val
	}
	if val, ok := lookupAlias(lookup, envAliases["review_mode"]); ok {
		cfg.ReviewMode = val
	}
	if val, ok := lookup("ASANA_FAIL_FAST_POST"); ok {
		if parsed, err := strconv.ParseBool(val); err == nil {
			cfg.FailFastPost = parsed
		}
	}
	if val, ok := lookup("ASANA_NO_CLIPBOARD"); ok {
		if parsed, err := strconv.ParseBool(val); err == nil {
			cfg.Clipboard = !parsed
		}
	}
}

func lookupAlias(lookup func(string) (string, bool), names []string) (string, bool) {
	for _, name := range names {
		if val, ok := lookup(name); ok && strings.TrimSpace(val) != "" {
			return strings.TrimSpace(val), true
		}
	}
	return "", false
}
