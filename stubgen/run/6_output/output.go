package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/toejough/go-reorder"
	"golang.org/x/tools/imports"
)

// Options controls naming and post-processing of the written file.
type Options struct {
	FilePrefix string
	Reorder    bool
}

// FileName is the file an adapter named stubName is written to: <prefix><stubName>.go, or
// <prefix><stubName>_test.go when generating for a test package or from a test file.
func FileName(stubName, pkgName, goFile, prefix string) string {
	base := strings.TrimSuffix(stubName, ".go")

	isTestFile := strings.HasSuffix(pkgName, "_test") || strings.HasSuffix(goFile, "_test.go")
	if isTestFile && !strings.HasSuffix(base, "_test") {
		base += "_test"
	}

	return prefix + base + ".go"
}

// WriteGeneratedCode finishes code and writes it next to the go:generate directive.
// Imports the adapter does not use are dropped and the result is gofmt'd; optionally
// declarations are reordered. A reorder failure is logged and the unordered code kept.
func WriteGeneratedCode(
	code, stubName, pkgName string,
	getEnv func(string) string,
	fileSys afero.Fs,
	opts Options,
	logger zerolog.Logger,
	out io.Writer,
) error {
	const generatedFilePermissions = 0o600

	filename := FileName(stubName, pkgName, getEnv("GOFILE"), opts.FilePrefix)

	processed, err := imports.Process(filename, []byte(code), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return fmt.Errorf("error formatting %s: %w", filename, err)
	}

	final := string(processed)

	if opts.Reorder {
		reordered, err := reorder.Source(final)
		if err != nil {
			logger.Warn().Err(err).Str("file", filename).Msg("failed to reorder, keeping generated order")
		} else {
			final = reordered
		}
	}

	err = afero.WriteFile(fileSys, filename, []byte(final), generatedFilePermissions)
	if err != nil {
		return fmt.Errorf("error writing %s: %w", filename, err)
	}

	logger.Debug().Str("file", filename).Int("bytes", len(final)).Msg("adapter written")

	_, _ = color.New(color.FgGreen).Fprintf(out, "%s written successfully.\n", filename)

	return nil
}
