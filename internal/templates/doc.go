// Package templates provides the files cortex installs into a project.
//
// The payload is embedded in the binary and has a fixed layout:
//
//	CLAUDE.md               body of the managed instructions section
//	commands/cortex-*.md    slash commands, copied to .claude/commands
//	agents/cortex-*.md      agents, copied to .claude/agents
//
// A directory with the same layout can replace the embedded payload (see
// [FromDir]). Only files named with the cortex- prefix and an .md extension
// are ever copied or removed, so user files in the same directories are left
// alone.
package templates
