// Package secrets resolves credential values from configuration or files.
package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source describes where a secret value comes from. File takes precedence
// over Value when both are set.
type Source struct {
	// Name appears in error messages.
	Name string
	// Value is an inline secret from configuration or flags.
	Value string
	// File points to a file holding the secret.
	File string
}

// Load resolves and trims the secret. Missing or empty secrets are errors.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	if file := strings.TrimSpace(src.File); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}

		value := strings.TrimSpace(string(data))
		if value == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}

		return value, nil
	}

	value := strings.TrimSpace(src.Value)
	if value == "" {
		return "", fmt.Errorf("%s is not configured", name)
	}

	return value, nil
}
