// Package config provides configuration management for the cortex CLI.
//
// This package loads cortex's own optional configuration file. It is
// distinct from the Claude user config document, which is edited by the
// mcpconfig package.
//
// # Configuration File
//
// config.yaml is looked up in the current directory and then in
// <XDG config home>/cortex/ (or $CORTEX_CONFIG_DIR). Every key is optional:
//
//	claude_config: ~/.claude.json
//	templates_dir: ~/my-cortex-templates
//	mcp:
//	  server_name: obsidian
//	  command: npx
//	  args: ["-y", "github:aoatridge/mcp-obsidian"]
//	vault:
//	  search_roots: [~/obsidian, ~/Documents/Obsidian]
//	backup:
//	  keep: 10
//
// Each key can be overridden from the environment with the CORTEX_ prefix,
// dots replaced by underscores (CORTEX_MCP_COMMAND, CORTEX_BACKUP_KEEP).
//
// # Loading Configuration
//
//	config.Init()
//	cfg, err := config.Load("") // search default locations
//
// Loaded configurations are validated with [Validate]; invalid values are
// reported together in a single error.
package config
