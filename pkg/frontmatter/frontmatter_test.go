package frontmatter

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
)

// templateMeta mirrors the frontmatter carried by command and agent templates.
type templateMeta struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Tools       []string `yaml:"tools"`
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantMeta templateMeta
		wantBody string
		wantErr  bool
	}{
		{
			name: "command template",
			input: `---
description: Research a topic and store findings in the vault
---

# Research
`,
			wantMeta: templateMeta{Description: "Research a topic and store findings in the vault"},
			wantBody: "\n# Research\n",
		},
		{
			name: "agent template with tools",
			input: `---
name: cortex-agent
description: Knowledge agent
tools:
  - Read
  - Grep
---
Body.
`,
			wantMeta: templateMeta{
				Name:        "cortex-agent",
				Description: "Knowledge agent",
				Tools:       []string{"Read", "Grep"},
			},
			wantBody: "Body.\n",
		},
		{
			name:     "no frontmatter returns full content",
			input:    "# Just markdown\n\nNo frontmatter here.",
			wantBody: "# Just markdown\n\nNo frontmatter here.",
		},
		{
			name:     "partial delimiter is not frontmatter",
			input:    "--\nname: nope\n--\n",
			wantBody: "--\nname: nope\n--\n",
		},
		{
			name: "multiline description",
			input: `---
description: |
  First line
  second line
name: multi
---
`,
			wantMeta: templateMeta{Name: "multi", Description: "First line\nsecond line\n"},
			wantBody: "",
		},
		{
			name: "invalid YAML",
			input: `---
description: [broken
  yaml
---
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var meta templateMeta
			body, err := Parse(strings.NewReader(tt.input), &meta)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if meta.Name != tt.wantMeta.Name {
				t.Errorf("name: got %q, want %q", meta.Name, tt.wantMeta.Name)
			}
			if meta.Description != tt.wantMeta.Description {
				t.Errorf("description: got %q, want %q", meta.Description, tt.wantMeta.Description)
			}
			if strings.Join(meta.Tools, ",") != strings.Join(tt.wantMeta.Tools, ",") {
				t.Errorf("tools: got %v, want %v", meta.Tools, tt.wantMeta.Tools)
			}
			if string(body) != tt.wantBody {
				t.Errorf("body: got %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestParse_CRLF(t *testing.T) {
	input := "---\r\nname: windows\r\ndescription: Uses CRLF\r\n---\r\n\r\nBody with CRLF.\r\n"

	var meta templateMeta
	body, err := Parse(strings.NewReader(input), &meta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Name != "windows" || meta.Description != "Uses CRLF" {
		t.Errorf("meta = %+v", meta)
	}
	if !strings.Contains(string(body), "Body with CRLF.") {
		t.Errorf("body = %q", body)
	}
}

func TestMustParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"missing frontmatter", "# Title\n", ErrMissingFrontmatter},
		{"empty input", "", ErrMissingFrontmatter},
		{"unterminated", "---\ndescription: open\n", ErrUnterminated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var meta templateMeta
			_, err := MustParse(strings.NewReader(tt.input), &meta)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("MustParse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("valid", func(t *testing.T) {
		var meta templateMeta
		body, err := MustParse(strings.NewReader("---\ndescription: ok\n---\nbody\n"), &meta)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if meta.Description != "ok" || string(body) != "body\n" {
			t.Errorf("got meta=%+v body=%q", meta, body)
		}
	})
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"with frontmatter", "---\ndescription: Optimize notes\n---\n# Body\n", "Optimize notes"},
		{"no frontmatter", "# Body\n", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var meta templateMeta
			if err := ParseHeader(strings.NewReader(tt.input), &meta); err != nil {
				t.Fatalf("ParseHeader() error = %v", err)
			}
			if meta.Description != tt.want {
				t.Errorf("description = %q, want %q", meta.Description, tt.want)
			}
		})
	}
}
