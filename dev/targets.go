//go:build targ

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/akedrou/textdiff"
	"github.com/toejough/go-reorder"
	"github.com/toejough/targ"
	"github.com/toejough/targ/file"
	"github.com/toejough/targ/sh"
)

// Build builds the local stubgen binary.
func Build() error {
	fmt.Println("Building stubgen...")

	if err := os.MkdirAll("bin", 0o755); err != nil {
		return fmt.Errorf("failed to create bin directory: %w", err)
	}

	return sh.Run("go", "build", "-o", "bin/stubgen", "./stubgen")
}

// Check runs all checks & fixes on the code, in order of correctness.
func Check() error {
	fmt.Println("Checking...")

	return targ.Deps(
		Tidy,         // clean up the module dependencies
		FixImports,   // remove unused imports before anything reads the code
		Test,         // does our code work?
		ReorderDecls, // linter will yell about declaration order if not correct
		Lint,
	)
}

// CheckForFail runs all checks on the code for determining whether any fail.
func CheckForFail() error {
	fmt.Println("Checking...")

	// fastest to slowest
	return targ.Deps(
		ReorderDeclsCheck,
		LintForFail,
		TestForFail,
	)
}

// Clean cleans up the dev env.
func Clean() {
	fmt.Println("Cleaning...")
	os.Remove("coverage.out")
	os.RemoveAll("bin")
}

// FixImports runs goimports over the module.
func FixImports() error {
	fmt.Println("Fixing imports...")
	return sh.Run("goimports", "-w", ".")
}

// Generate runs go generate on all packages using the locally-built stubgen binary.
func Generate() error {
	fmt.Println("Generating...")

	if err := targ.Deps(Build); err != nil {
		return err
	}

	binDir, err := filepath.Abs("bin")
	if err != nil {
		return fmt.Errorf("failed to get absolute path for bin: %w", err)
	}

	cmd := exec.Command("go", "generate", "./...")
	cmd.Env = append(os.Environ(), "PATH="+binDir+string(filepath.ListSeparator)+os.Getenv("PATH"))
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

// Lint lints the codebase.
func Lint() error {
	fmt.Println("Linting...")
	return sh.Run("golangci-lint", "run")
}

// LintForFail lints the codebase purely to find out whether anything fails.
func LintForFail() error {
	fmt.Println("Linting to check for overall pass/fail...")

	return sh.Run(
		"golangci-lint", "run",
		"--fix=false",
		"--max-issues-per-linter=1",
		"--max-same-issues=1",
		"--allow-parallel-runners",
	)
}

// Mutate runs the mutation tests.
func Mutate() error {
	fmt.Println("Running mutation tests...")

	if err := targ.Deps(TestForFail); err != nil {
		return err
	}

	return sh.Run("go", "test", "-timeout=6000s", "-tags=mutation", "-ooze.v", "./dev/...", "-run=TestMutation")
}

// ReorderDecls reorders declarations in Go files per conventions.
func ReorderDecls() error {
	fmt.Println("Reordering declarations...")

	files, err := reorderCandidates()
	if err != nil {
		return err
	}

	reorderedCount := 0

	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		reordered, err := reorder.Source(string(content))
		if err != nil {
			fmt.Printf("Warning: failed to reorder %s: %v\n", path, err)

			continue
		}

		if string(content) == reordered {
			continue
		}

		err = os.WriteFile(path, []byte(reordered), 0o600)
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}

		fmt.Printf("  Reordered: %s\n", path)

		reorderedCount++
	}

	fmt.Printf("Reordered %d file(s).\n", reorderedCount)

	return nil
}

// ReorderDeclsCheck reports files that need reordering, with a diff, without modifying them.
func ReorderDeclsCheck() error {
	fmt.Println("Checking declaration order...")

	files, err := reorderCandidates()
	if err != nil {
		return err
	}

	outOfOrder := 0

	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		sectionOrder, err := reorder.AnalyzeSectionOrder(string(content))
		if err != nil {
			fmt.Printf("Warning: failed to analyze %s: %v\n", path, err)

			continue
		}

		reordered, err := reorder.Source(string(content))
		if err != nil || string(content) == reordered {
			continue
		}

		outOfOrder++

		fmt.Printf("\n%s:\n", path)

		for i, section := range sectionOrder.Sections {
			note := ""
			if section.Expected != i+1 {
				note = fmt.Sprintf(" <- should be #%d", section.Expected)
			}

			fmt.Printf("    %d. %-24s%s\n", i+1, section.Name, note)
		}

		fmt.Printf("\n%s\n", textdiff.Unified(path+" (current)", path+" (reordered)", string(content), reordered))
	}

	if outOfOrder > 0 {
		return fmt.Errorf("%d of %d file(s) need reordering; run 'targ reorder-decls'", outOfOrder, len(files))
	}

	fmt.Printf("All files are correctly ordered (%d files processed).\n", len(files))

	return nil
}

// Test runs the unit tests with race detection and coverage.
func Test() error {
	fmt.Println("Running unit tests...")

	if err := targ.Deps(Generate); err != nil {
		return err
	}

	return sh.Run(
		"go",
		"test",
		"-timeout=2m",
		"-race",
		"-count=1",
		"-coverprofile=coverage.out",
		"-coverpkg=./internal/...,./stubgen/...",
		"./...",
	)
}

// TestForFail runs the unit tests purely to find out whether any fail.
func TestForFail() error {
	fmt.Println("Running unit tests for overall pass/fail...")

	if err := targ.Deps(Generate); err != nil {
		return err
	}

	return sh.Run("go", "test", "-timeout=30s", "./...", "-failfast")
}

// Tidy tidies up go.mod.
func Tidy() error {
	fmt.Println("Tidying go.mod...")
	return sh.Run("go", "mod", "tidy")
}

// Watch re-runs Check whenever files change.
func Watch(ctx context.Context) error {
	fmt.Println("Watching...")

	return file.Watch(ctx, []string{"**/*.go", "**/*.toml"}, file.WatchOptions{}, func(changes file.ChangeSet) error {
		if !hasRelevantChanges(changes) {
			return nil
		}

		fmt.Println("Change detected...")

		targ.ResetDeps()

		err := Check()
		if err != nil {
			fmt.Println("continuing to watch after check failure (see errors above)")
		} else {
			fmt.Println("continuing to watch after all checks passed!")
		}

		return nil
	})
}

// hasRelevantChanges skips the files Check itself writes, which would otherwise retrigger it.
func hasRelevantChanges(changes file.ChangeSet) bool {
	allFiles := append(append(changes.Added, changes.Removed...), changes.Modified...)

	for _, f := range allFiles {
		if strings.Contains(f, "generated_") || strings.HasSuffix(f, "coverage.out") {
			continue
		}

		return true
	}

	return false
}

func isGeneratedFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, 200)

	n, err := f.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return strings.Contains(string(buf[:n]), "Code generated"), nil
}

// reorderCandidates lists the hand-written Go files of the module, skipping generated
// files, hidden directories, and the retrieval pack.
func reorderCandidates() ([]string, error) {
	var files []string

	err := filepath.WalkDir(".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			name := entry.Name()
			if path != "." && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor") {
				return filepath.SkipDir
			}

			return nil
		}

		if filepath.Ext(path) != ".go" || strings.Contains(path, "generated_") {
			return nil
		}

		generated, err := isGeneratedFile(path)
		if err != nil || generated {
			return err
		}

		files = append(files, path)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find Go files: %w", err)
	}

	return files, nil
}
