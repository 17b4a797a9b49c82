// Package mcpconfig reads and edits the MCP server registry in the Claude
// user config document (~/.claude.json).
//
// The document is treated as an opaque JSON object: only the mcpServers key
// is interpreted, and every other key is written back unchanged. Numbers are
// decoded as json.Number so large integers keep their exact value.
//
// A missing file reads as an empty object. A file that is not a JSON object
// yields a [*ConfigParseError] and is never silently replaced. Every write
// first copies the current file to a timestamped sibling using the backup
// package.
package mcpconfig
