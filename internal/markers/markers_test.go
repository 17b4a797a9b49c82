package markers

import (
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixClock(t *testing.T, date string) {
	t.Helper()
	ts, err := time.Parse(dateLayout, date)
	require.NoError(t, err)
	orig := now
	now = func() time.Time { return ts }
	t.Cleanup(func() { now = orig })
}

func TestCreate(t *testing.T) {
	fixClock(t, "2025-01-31")

	got := Create("\n\n  # Body\nline two  \n\n", "1.0.0")
	want := `<!-- CORTEX:START version="1.0.0" installed="2025-01-31" -->` + "\n" +
		"# Body\nline two\n" +
		"<!-- CORTEX:END -->\n"
	assert.Equal(t, want, got)
}

func TestAppend(t *testing.T) {
	fixClock(t, "2025-01-31")
	section := Create("body", "1.0.0")

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"empty document", "", section},
		{"whitespace only", "  \n\n\t\n", section},
		{"existing content", "# Mine\n\nnotes\n\n\n", "# Mine\n\nnotes" + Separator + section},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Append(tt.doc, "body", "1.0.0")
			assert.Equal(t, tt.want, got)
			assert.True(t, HasSection(got))
			v, ok := ExtractVersion(got)
			assert.True(t, ok)
			assert.Equal(t, "1.0.0", v)
		})
	}
}

func TestExtract(t *testing.T) {
	fixClock(t, "2024-12-01")
	doc := Append("# Project\n", "\n  hello world \n", "2.3.4")

	v, ok := ExtractVersion(doc)
	require.True(t, ok)
	assert.Equal(t, "2.3.4", v)

	d, ok := ExtractInstallDate(doc)
	require.True(t, ok)
	assert.Equal(t, "2024-12-01", d)

	body, ok := ExtractBody(doc)
	require.True(t, ok)
	assert.Equal(t, "hello world", body)

	info, ok := Info(doc)
	require.True(t, ok)
	assert.Equal(t, SectionInfo{Version: "2.3.4", InstalledAt: "2024-12-01"}, info)

	_, ok = ExtractVersion("# nothing here\n")
	assert.False(t, ok)
	_, ok = ExtractBody("# nothing here\n")
	assert.False(t, ok)
	_, ok = Info("# nothing here\n")
	assert.False(t, ok)
}

func TestHasSection(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want bool
	}{
		{"empty", "", false},
		{"start only", StartPrefix + ` version="1" -->`, false},
		{"end only", EndMarker, false},
		{"both", StartPrefix + ` version="1" -->` + "\nx\n" + EndMarker, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasSection(tt.doc))
		})
	}
}

func TestRemove(t *testing.T) {
	fixClock(t, "2025-01-31")
	section := Create("body", "1.0.0")

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "appended after user content",
			doc:  Append("# Mine\n", "body", "1.0.0"),
			want: "# Mine\n",
		},
		{
			name: "section only",
			doc:  section,
			want: "\n",
		},
		{
			name: "section in the middle",
			doc:  "top\n\n" + section + "bottom\n",
			want: "top\n\nbottom\n",
		},
		{
			name: "separator elsewhere is preserved",
			doc:  Append("a\n\n---\n\nb\n", "body", "1.0.0"),
			want: "a\n\n---\n\nb\n",
		},
		{
			name: "user content after an appended section",
			doc:  Append("# Mine\n", "body", "1.0.0") + "## Added later by user\n",
			want: "# Mine\n## Added later by user\n",
		},
		{
			name: "section at the top followed by user content",
			doc:  section + "## Notes\n",
			want: "## Notes\n",
		},
		{
			name: "CRLF document",
			doc:  "# Mine\r\n" + crlfSeparator + strings.ReplaceAll(section, "\n", "\r\n") + "more\r\n",
			want: "# Mine\r\nmore\r\n",
		},
		{
			name: "CRLF document ending with the section",
			doc:  "# Mine\r\n\r\n" + strings.ReplaceAll(section, "\n", "\r\n"),
			want: "# Mine\r\n",
		},
		{
			name: "no section normalizes trailing whitespace",
			doc:  "just notes\n\n\n  ",
			want: "just notes\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Remove(tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.False(t, HasSection(got))

			again, err := Remove(got)
			require.NoError(t, err)
			assert.Equal(t, got, again, "Remove must be idempotent")
		})
	}
}

func TestRemove_SectionOnlyIsEmpty(t *testing.T) {
	got, err := Remove(Create("payload", "0.1.0"))
	require.NoError(t, err)
	assert.True(t, IsEmpty(got))
}

func TestReplace(t *testing.T) {
	fixClock(t, "2024-01-01")
	doc := Append("# Mine\n", "old body", "1.0.0")

	fixClock(t, "2025-06-15")
	got, err := Replace(doc, "new body", "2.0.0")
	require.NoError(t, err)

	v, _ := ExtractVersion(got)
	assert.Equal(t, "2.0.0", v)
	d, _ := ExtractInstallDate(got)
	assert.Equal(t, "2025-06-15", d)
	body, _ := ExtractBody(got)
	assert.Equal(t, "new body", body)
	assert.True(t, strings.HasPrefix(got, "# Mine"+Separator))
	assert.Equal(t, 1, strings.Count(got, StartPrefix))
}

func TestReplace_KeepsUserContentAfterSection(t *testing.T) {
	fixClock(t, "2025-01-31")
	doc := Append("# Mine\n", "old body", "1.0.0") + "## Added later by user\n"

	got, err := Replace(doc, "new body", "2.0.0")
	require.NoError(t, err)

	assert.Equal(t, Append("# Mine\n## Added later by user\n", "new body", "2.0.0"), got)
	assert.Contains(t, got, "# Mine\n## Added later by user"+Separator)

	again, err := Replace(got, "new body", "2.0.0")
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestReplace_WithoutSectionAppends(t *testing.T) {
	fixClock(t, "2025-01-31")
	got, err := Replace("# Mine\n", "body", "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, Append("# Mine\n", "body", "1.0.0"), got)
}

func TestValidate(t *testing.T) {
	fixClock(t, "2025-01-31")
	section := Create("body", "1.0.0")

	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"no delimiters", "# notes\n", false},
		{"single section", Append("# notes\n", "body", "1.0.0"), false},
		{"duplicate sections", section + "\n" + section, true},
		{"duplicate end", section + EndMarker + "\n", true},
		{"start without end", StartPrefix + ` version="1.0.0" -->` + "\nbody\n", true},
		{"end without start", "body\n" + EndMarker + "\n", true},
		{"end before start", EndMarker + "\n" + StartPrefix + ` version="1.0.0" -->` + "\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.doc)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrCorruptSection))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestMutationsRejectCorruptDocuments(t *testing.T) {
	fixClock(t, "2025-01-31")
	doc := Create("one", "1.0.0") + Separator + Create("two", "1.0.0")

	_, err := Remove(doc)
	assert.True(t, errors.Is(err, ErrCorruptSection))

	_, err = Replace(doc, "three", "2.0.0")
	assert.True(t, errors.Is(err, ErrCorruptSection))
}
