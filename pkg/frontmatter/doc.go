// Package frontmatter parses YAML frontmatter from Markdown templates.
//
// Frontmatter is delimited by lines containing only "---" at the start and end.
// The content between delimiters is parsed as YAML with gopkg.in/yaml.v3 and
// unmarshaled into the type parameter T. The remaining content after the
// closing delimiter is returned as the body.
//
//	type Meta struct {
//		Description string `yaml:"description"`
//	}
//
//	var meta Meta
//	body, err := frontmatter.MustParse(r, &meta)
//
// [ParseHeader] reads only up to the closing delimiter, which is enough for
// listings that show a description without loading the template body.
//
// Both Unix (LF) and Windows (CRLF) line endings are handled.
package frontmatter
