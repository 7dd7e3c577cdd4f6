package load

import (
	"errors"
	"fmt"
	"go/build"
	"go/token"
	"path/filepath"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"github.com/spf13/afero"
)

// PackageDST parses the package at importPath into DST files, without type checking.
// "." is workDir itself and includes its _test.go files; any other path excludes them.
// A bare name that matches a subdirectory of workDir holding .go files resolves to that
// subdirectory before go/build is consulted.
func PackageDST(fileSys afero.Fs, workDir, importPath string) ([]*dst.File, error) {
	dir, err := resolveDir(fileSys, workDir, importPath)
	if err != nil {
		return nil, err
	}

	entries, err := afero.ReadDir(fileSys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	includeTests := importPath == "."
	dec := decorator.NewDecorator(token.NewFileSet())
	files := make([]*dst.File, 0, len(entries))

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") {
			continue
		}

		if !includeTests && strings.HasSuffix(name, "_test.go") {
			continue
		}

		path := filepath.Join(dir, name)

		src, err := afero.ReadFile(fileSys, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		file, err := dec.ParseFile(path, src, 0)
		if err != nil {
			// a broken sibling file must not block generating from the healthy ones
			continue
		}

		files = append(files, file)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no parseable .go files in %s", ErrNoPackagesFound, dir)
	}

	return files, nil
}

// ResolveLocalPackagePath returns the absolute directory of a local subdirectory package
// named importPath, which lets a local "time" shadow the standard library's. Anything that
// is not a bare name, or has no such subdirectory, comes back unchanged.
func ResolveLocalPackagePath(fileSys afero.Fs, workDir, importPath string) string {
	if importPath == "." || strings.Contains(importPath, "/") {
		return importPath
	}

	localDir := filepath.Join(workDir, importPath)

	entries, err := afero.ReadDir(fileSys, localDir)
	if err != nil {
		return importPath
	}

	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".go") {
			return localDir
		}
	}

	return importPath
}

// Exported variables.
var (
	ErrNoPackagesFound = errors.New("no packages found")
)

func resolveDir(fileSys afero.Fs, workDir, importPath string) (string, error) {
	if importPath == "." {
		return workDir, nil
	}

	if resolved := ResolveLocalPackagePath(fileSys, workDir, importPath); resolved != importPath {
		return resolved, nil
	}

	pkg, err := build.Import(importPath, workDir, build.FindOnly)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrNoPackagesFound, importPath, err)
	}

	return pkg.Dir, nil
}
