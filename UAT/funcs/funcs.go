// Package funcs holds function-shaped contracts, which stubby substitutes by reflection
// without generated code.
package funcs

import (
	"errors"
	"fmt"
	"strings"
)

// Lookup finds the count stored for key.
type Lookup func(key string) (int, bool)

// Hooks are the callbacks a Saver runs around a save.
type Hooks struct {
	Validate func(name string) error
	Format   func(format string, args ...any) string
}

// DefaultHooks accepts any non-empty name and formats with fmt.
func DefaultHooks() *Hooks {
	return &Hooks{
		Validate: func(name string) error {
			if strings.TrimSpace(name) == "" {
				return ErrEmptyName
			}

			return nil
		},
		Format: fmt.Sprintf,
	}
}

// Save validates name and returns the line a saver would write for it.
func Save(hooks *Hooks, name string, count int) (string, error) {
	err := hooks.Validate(name)
	if err != nil {
		return "", fmt.Errorf("saving %q: %w", name, err)
	}

	return hooks.Format("%s=%d", name, count), nil
}

// Exported variables.
var (
	ErrEmptyName = errors.New("empty name")
)
