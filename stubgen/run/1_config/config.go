// Package config loads stubgen's optional TOML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// DefaultPath is read when no --config flag is given. A missing file there is not an error.
const DefaultPath = ".stubgen.toml"

// Config controls how stubgen names and post-processes generated adapters.
type Config struct {
	// Suffix is appended to the interface name when --name is not given.
	Suffix string `toml:"suffix"`
	// FilePrefix starts every generated file name.
	FilePrefix string `toml:"file_prefix"`
	// Reorder runs go-reorder over the generated source.
	Reorder bool `toml:"reorder"`
	// LogLevel is a zerolog level name.
	LogLevel string `toml:"log_level"`
}

// Level parses LogLevel.
func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}

	return level, nil
}

// Exported variables.
var (
	ErrInvalid = errors.New("invalid stubgen config")
)

// Default returns the configuration used when no file sets a key.
func Default() Config {
	return Config{
		Suffix:     "Stub",
		FilePrefix: "generated_",
		Reorder:    true,
		LogLevel:   "info",
	}
}

// Load reads the config at path over the defaults. Keys the file omits keep their default.
// When required is false a missing file yields the defaults.
func Load(fileSys afero.Fs, path string, required bool) (Config, error) {
	cfg := Default()

	data, err := afero.ReadFile(fileSys, path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return cfg, nil
	}

	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	err = decoder.Decode(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
	}

	if cfg.Suffix == "" {
		return Config{}, fmt.Errorf("%w: %s: suffix cannot be empty", ErrInvalid, path)
	}

	_, err = cfg.Level()
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}
