// Package secrets resolves credential values that must never live in the
// main configuration file: the Gemini API key and the Postgres DSN.
package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source describes where one secret may come from. File wins over Value when
// both are set, so a config can carry a default that a mounted file overrides.
type Source struct {
	// Name appears in error messages.
	Name string
	// Value is an inline secret from configuration or a flag.
	Value string
	// File is a path to a file holding the secret.
	File string
}

// Load resolves the source to a trimmed secret value. An unusable source —
// unreadable file, empty file, nothing configured at all — is an error; a
// blank secret is never returned.
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
		if secret := strings.TrimSpace(string(data)); secret != "" {
			return secret, nil
		}
		return "", fmt.Errorf("%s file %q is empty", name, file)
	}

	if secret := strings.TrimSpace(src.Value); secret != "" {
		return secret, nil
	}

	return "", fmt.Errorf("%s is not configured", name)
}
