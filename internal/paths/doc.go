// Package paths resolves the locations cortex reads and writes.
//
// # Project Layout
//
// A [Project] wraps a root directory and derives the files cortex manages:
//
//	<root>/CLAUDE.md           instructions file holding the managed section
//	<root>/.claude/commands/   cortex-*.md slash commands
//	<root>/.claude/agents/     cortex-*.md agents
//
// # User Files
//
// The Claude user config document lives at ~/.claude.json ([ClaudeConfigPath]).
// cortex's own optional config file lives under the XDG config home
// ([AppConfigDir]), resolved with github.com/adrg/xdg so that it follows
// platform conventions (~/.config on Linux, ~/Library/Application Support
// on macOS).
package paths
