package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aoatridge/cortex/internal/errors"
)

func TestHome(t *testing.T) {
	got := Home()
	want, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("os.UserHomeDir() failed: %v", err)
	}
	if got != want {
		t.Errorf("Home() = %q, want %q", got, want)
	}
}

func TestResolveHome(t *testing.T) {
	got, err := ResolveHome()
	want, _ := os.UserHomeDir()

	if err != nil {
		if !errors.Is(err, ErrHomeDirNotFound) {
			t.Errorf("unexpected error type: %v", err)
		}
	} else if got != want {
		t.Errorf("ResolveHome() = %q, want %q", got, want)
	}
}

func TestAppConfigDir(t *testing.T) {
	got := AppConfigDir()
	if !filepath.IsAbs(got) {
		t.Errorf("AppConfigDir() = %q, want absolute path", got)
	}
	if !strings.HasPrefix(got, ConfigHome()) {
		t.Errorf("AppConfigDir() = %q, want path under ConfigHome %q", got, ConfigHome())
	}
	if filepath.Base(got) != AppName {
		t.Errorf("AppConfigDir() = %q, want path ending with %q", got, AppName)
	}
}

func TestClaudeConfigPath(t *testing.T) {
	got := ClaudeConfigPath("/home/user")
	want := filepath.Join("/home/user", ".claude.json")
	if got != want {
		t.Errorf("ClaudeConfigPath() = %q, want %q", got, want)
	}
}

func TestExpandHome(t *testing.T) {
	home := filepath.Join("/home", "user")
	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/notes", filepath.Join(home, "notes")},
		{"/abs/vault", "/abs/vault"},
		{"relative/vault", "relative/vault"},
		{"~other/vault", "~other/vault"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ExpandHome(tt.in, home); got != tt.want {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestProjectLayout(t *testing.T) {
	p := Project{Root: "/src/app"}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"instructions", p.InstructionsPath(), filepath.Join("/src/app", "CLAUDE.md")},
		{"commands", p.CommandsDir(), filepath.Join("/src/app", ".claude", "commands")},
		{"agents", p.AgentsDir(), filepath.Join("/src/app", ".claude", "agents")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestResolveProject(t *testing.T) {
	dir := t.TempDir()

	p, err := ResolveProject(dir)
	if err != nil {
		t.Fatalf("ResolveProject() error = %v", err)
	}
	if p.Root != dir {
		t.Errorf("Root = %q, want %q", p.Root, dir)
	}

	ok, err := p.Exists()
	if err != nil || !ok {
		t.Errorf("Exists() = %v, %v; want true, nil", ok, err)
	}

	missing := Project{Root: filepath.Join(dir, "missing")}
	ok, err = missing.Exists()
	if err != nil || ok {
		t.Errorf("Exists() on missing dir = %v, %v; want false, nil", ok, err)
	}

	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = Project{Root: file}.Exists()
	if !errors.Is(err, ErrNotDirectory) {
		t.Errorf("Exists() on file error = %v, want ErrNotDirectory", err)
	}

	wd, err := ResolveProject("")
	if err != nil {
		t.Fatalf("ResolveProject(\"\") error = %v", err)
	}
	if !filepath.IsAbs(wd.Root) {
		t.Errorf("Root = %q, want absolute path", wd.Root)
	}
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("creates new directory with default perms", func(t *testing.T) {
		path := filepath.Join(tmpDir, "new-dir")
		if err := EnsureDir(path, 0); err != nil {
			t.Fatalf("EnsureDir failed: %v", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat failed: %v", err)
		}
		if !info.IsDir() {
			t.Errorf("expected directory, got file")
		}
		if info.Mode().Perm() != DefaultDirPerm {
			t.Errorf("expected perm %o, got %o", DefaultDirPerm, info.Mode().Perm())
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		path := filepath.Join(tmpDir, "existing")
		if err := os.Mkdir(path, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := EnsureDir(path, 0o700); err != nil {
			t.Errorf("EnsureDir failed on existing directory: %v", err)
		}
	})
}
