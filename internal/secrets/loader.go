package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source describes where an API key can come from.
type Source struct {
	// Name is used in error messages, e.g. "openai api key".
	Name string
	// Value is an inline secret from the config file or flags.
	Value string
	// File points to a file holding the secret. It wins over Value and Env.
	File string
	// Env is an environment variable consulted when File and Value are empty.
	Env string
}

// Load resolves the secret described by src. The result is always trimmed.
// An error is returned when none of the sources yields a usable value.
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

		secret := strings.TrimSpace(string(data))
		if secret == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return secret, nil
	}

	if secret := strings.TrimSpace(src.Value); secret != "" {
		return secret, nil
	}

	if env := strings.TrimSpace(src.Env); env != "" {
		if secret := strings.TrimSpace(os.Getenv(env)); secret != "" {
			return secret, nil
		}
		return "", fmt.Errorf("%s is not configured (set %s)", name, env)
	}

	return "", fmt.Errorf("%s is not configured", name)
}
