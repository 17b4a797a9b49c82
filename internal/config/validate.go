package config

import (
	"errors"
	"path/filepath"
	"strings"
)

// Validation errors for configuration fields.
var (
	// ErrRequired indicates a mandatory field is empty.
	ErrRequired = errors.New("value required")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrNegative indicates a count is below zero.
	ErrNegative = errors.New("must not be negative")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.ClaudeConfig == "" {
		errs = append(errs, &FieldError{Field: "claude_config", Err: ErrRequired})
	} else if err := validatePath(cfg.ClaudeConfig); err != nil {
		errs = append(errs, &FieldError{Field: "claude_config", Value: cfg.ClaudeConfig, Err: err})
	}

	if err := validatePath(cfg.TemplatesDir); err != nil {
		errs = append(errs, &FieldError{Field: "templates_dir", Value: cfg.TemplatesDir, Err: err})
	}

	if strings.TrimSpace(cfg.MCP.ServerName) == "" {
		errs = append(errs, &FieldError{Field: "mcp.server_name", Err: ErrRequired})
	}
	if strings.TrimSpace(cfg.MCP.Command) == "" {
		errs = append(errs, &FieldError{Field: "mcp.command", Err: ErrRequired})
	}

	for _, root := range cfg.Vault.SearchRoots {
		if err := validatePath(root); err != nil {
			errs = append(errs, &FieldError{Field: "vault.search_roots", Value: root, Err: err})
		}
	}

	if cfg.Backup.Keep < 0 {
		errs = append(errs, &FieldError{Field: "backup.keep", Err: ErrNegative})
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths are valid (they mean "use default")
	if path == "" {
		return nil
	}

	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// FieldError represents an error for a specific config field.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return e.Field + ": " + e.Err.Error()
	}
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
