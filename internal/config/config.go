// Package config provides configuration management for cortex using Viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/aoatridge/cortex/internal/mcpconfig"
	"github.com/aoatridge/cortex/internal/paths"
	"github.com/aoatridge/cortex/internal/vault"
	"github.com/aoatridge/cortex/pkg/fileutil"
)

// EnvPrefix prefixes environment variable overrides (CORTEX_MCP_COMMAND, ...).
const EnvPrefix = "CORTEX"

// ConfigDirEnv overrides the directory searched for config.yaml.
const ConfigDirEnv = "CORTEX_CONFIG_DIR"

// DefaultBackupKeep is the number of config document backups kept after a write.
const DefaultBackupKeep = 10

// Config represents the top-level configuration structure.
type Config struct {
	// ClaudeConfig is the path of the Claude user config document.
	ClaudeConfig string `mapstructure:"claude_config" yaml:"claude_config"`

	// TemplatesDir replaces the embedded templates when set.
	TemplatesDir string `mapstructure:"templates_dir" yaml:"templates_dir"`

	MCP    MCPConfig    `mapstructure:"mcp" yaml:"mcp"`
	Vault  VaultConfig  `mapstructure:"vault" yaml:"vault"`
	Backup BackupConfig `mapstructure:"backup" yaml:"backup"`
}

// MCPConfig describes the MCP server entry cortex registers.
type MCPConfig struct {
	ServerName string   `mapstructure:"server_name" yaml:"server_name"`
	Command    string   `mapstructure:"command" yaml:"command"`
	Args       []string `mapstructure:"args" yaml:"args"`
}

// VaultConfig controls vault discovery.
type VaultConfig struct {
	SearchRoots []string `mapstructure:"search_roots" yaml:"search_roots"`
}

// BackupConfig controls backup retention. Keep of 0 keeps every backup.
type BackupConfig struct {
	Keep int `mapstructure:"keep" yaml:"keep"`
}

// Init resets Viper and installs cortex's defaults, search paths and
// environment bindings. Call this once at application startup before
// accessing config values.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		viper.AddConfigPath(dir)
	} else {
		viper.AddConfigPath(paths.AppConfigDir())
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	d := Defaults()
	viper.SetDefault("claude_config", d.ClaudeConfig)
	viper.SetDefault("templates_dir", d.TemplatesDir)
	viper.SetDefault("mcp.server_name", d.MCP.ServerName)
	viper.SetDefault("mcp.command", d.MCP.Command)
	viper.SetDefault("mcp.args", d.MCP.Args)
	viper.SetDefault("vault.search_roots", d.Vault.SearchRoots)
	viper.SetDefault("backup.keep", d.Backup.Keep)
}

// Defaults returns the configuration used when no file or environment
// override is present.
func Defaults() *Config {
	home := paths.Home()
	return &Config{
		ClaudeConfig: paths.ClaudeConfigPath(home),
		MCP: MCPConfig{
			ServerName: mcpconfig.DefaultServerName,
			Command:    mcpconfig.DefaultCommand,
			Args:       slices.Clone(mcpconfig.DefaultArgs),
		},
		Vault:  VaultConfig{SearchRoots: vault.DefaultRoots(home)},
		Backup: BackupConfig{Keep: DefaultBackupKeep},
	}
}

// DefaultPath returns where a new config file is created: config.yaml in
// $CORTEX_CONFIG_DIR, or in the XDG config directory.
func DefaultPath() string {
	dir := os.Getenv(ConfigDirEnv)
	if dir == "" {
		dir = paths.AppConfigDir()
	}
	return filepath.Join(dir, "config.yaml")
}

// WriteDefault writes the default configuration to path as YAML, creating
// the parent directory. An existing file is left untouched.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(Defaults())
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}
	if err := fileutil.AtomicWriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			// No config file in the search paths; defaults and env apply.
		case os.IsNotExist(err) && path != "":
			return nil, fmt.Errorf("config file not found at %s: %w", path, err)
		default:
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.ClaudeConfig = paths.ExpandHome(cfg.ClaudeConfig, paths.Home())
	cfg.TemplatesDir = paths.ExpandHome(cfg.TemplatesDir, paths.Home())
	for i, root := range cfg.Vault.SearchRoots {
		cfg.Vault.SearchRoots[i] = paths.ExpandHome(root, paths.Home())
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return nil, fmt.Errorf("validating config: %s: %w", strings.Join(msgs, "; "), errs[0])
	}

	return &cfg, nil
}

// FileUsed returns the config file Load read, or "" when defaults were used.
func FileUsed() string {
	return viper.ConfigFileUsed()
}
