// Package config loads ledgr settings through viper. An embedded default configuration is
// always read first; a .ledgr.yaml file and LEDGR_* environment variables override it.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aqlanhadi/ledgr/categorizer"
	"github.com/aqlanhadi/ledgr/extractor/opay"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultConfigYAML = `
sections:
  wallet:
    start: "Summary - Wallet Balance"
    end:
      - "Summary - OWealth Balance"
  secondary:
    start: "Summary - OWealth Balance"
    end:
      - "End Date"
      - "Date Printed"
categories:
  - category: "Airtime/Data"
    keywords: ["airtime", "mobile data"]
  - category: "Betting"
    keywords: ["betting", "bet9ja", "nairabet"]
  - category: "Shopping"
    keywords: ["shopping", "jumia", "supermarket"]
  - category: "Transfers"
    keywords: ["transfer to", "sent to"]
  - category: "Bills & Utilities"
    keywords: ["tv", "electricity", "bill"]
server:
  port: "8080"
  max_upload_bytes: 33554432
database:
  url: ""
log:
  level: warn
`

const envPrefix = "LEDGR"

type Config struct {
	Wallet     opay.Boundary
	Secondary  opay.Boundary
	Categories []categorizer.KeywordRule
	Server     ServerConfig
	Database   DatabaseConfig
	Log        LogConfig
}

type ServerConfig struct {
	Port           string
	MaxUploadBytes int64
}

type DatabaseConfig struct {
	URL string
}

type LogConfig struct {
	Level string
}

// Init prepares the global viper instance. cfgFile, when set, must exist; otherwise
// .ledgr.yaml is looked up in the working directory and then the home directory.
func Init(cfgFile string) error {
	// .env is optional
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigType("yaml")
	if err := viper.ReadConfig(bytes.NewBufferString(defaultConfigYAML)); err != nil {
		return fmt.Errorf("failed to load embedded configuration: %w", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".ledgr")
	}

	if err := viper.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// MarkerSeparator splits end markers given as one string, as in LEDGR_SECTIONS_WALLET_END.
const MarkerSeparator = "|"

// markers reads a list of end markers. Environment values arrive as a single string
// and markers contain spaces, so they are split on MarkerSeparator instead of whitespace.
func markers(key string) []string {
	s, ok := viper.Get(key).(string)
	if !ok {
		return viper.GetStringSlice(key)
	}
	var out []string
	for _, part := range strings.Split(s, MarkerSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Load returns a typed snapshot of the current viper state.
func Load() (Config, error) {
	cfg := Config{
		Wallet: opay.Boundary{
			Start: viper.GetString("sections.wallet.start"),
			End:   markers("sections.wallet.end"),
		},
		Secondary: opay.Boundary{
			Start: viper.GetString("sections.secondary.start"),
			End:   markers("sections.secondary.end"),
		},
		Server: ServerConfig{
			Port:           viper.GetString("server.port"),
			MaxUploadBytes: viper.GetInt64("server.max_upload_bytes"),
		},
		Database: DatabaseConfig{URL: viper.GetString("database.url")},
		Log:      LogConfig{Level: viper.GetString("log.level")},
	}

	if err := viper.UnmarshalKey("categories", &cfg.Categories); err != nil {
		return Config{}, fmt.Errorf("failed to decode categories: %w", err)
	}

	if cfg.Wallet.Start == "" {
		cfg.Wallet = opay.WalletSection
	}
	if cfg.Secondary.Start == "" {
		cfg.Secondary = opay.SecondarySection
	}
	return cfg, nil
}

// Rules builds the categorizer rule table. Without configured categories the built-in
// table is used.
func (c Config) Rules() ([]categorizer.Rule, error) {
	if len(c.Categories) == 0 {
		return categorizer.DefaultRules(), nil
	}
	rules, err := categorizer.FromKeywordRules(c.Categories)
	if err != nil {
		return nil, fmt.Errorf("invalid categories: %w", err)
	}
	return rules, nil
}

// ParserOptions turns the configured sections and categories into pipeline options.
func (c Config) ParserOptions() ([]opay.Option, error) {
	rules, err := c.Rules()
	if err != nil {
		return nil, err
	}
	opts := []opay.Option{opay.WithCategorizer(categorizer.New(rules...))}
	if c.Wallet.Start != "" && c.Secondary.Start != "" {
		opts = append(opts, opay.WithSections(c.Wallet, c.Secondary))
	}
	return opts, nil
}
