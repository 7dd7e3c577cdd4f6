// stubgen generates stubby adapters for Go interfaces.
// Install it with `go install github.com/toejough/stubby/stubgen@latest` and, next to the
// interface or in a test file, add `//go:generate stubgen <Interface>`. The adapter is
// named <Interface>Stub unless `--name` says otherwise, and lands in generated_<name>.go
// (generated_<name>_test.go for test packages or test files) in the calling package.
// A .stubgen.toml next to the directive, or the file given by `--config`, can change the
// suffix, the file prefix, declaration reordering, and the log level.
package main

import (
	"fmt"
	"os"

	"github.com/dave/dst"
	"github.com/spf13/afero"

	"github.com/toejough/stubby/stubgen/run"
	load "github.com/toejough/stubby/stubgen/run/2_load"
)

func main() {
	fileSys := afero.NewOsFs()

	err := run.Run(os.Args, os.Getenv, fileSys, &packageLoader{fileSys: fileSys}, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// packageLoader parses packages from disk, relative to the working directory go generate
// runs stubgen in.
type packageLoader struct {
	fileSys afero.Fs
}

// Load loads a package by import path and returns its DST files.
func (pl *packageLoader) Load(importPath string) ([]*dst.File, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	files, err := load.PackageDST(pl.fileSys, workDir, importPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load package %q: %w", importPath, err)
	}

	return files, nil
}
