// Package run implements the main logic for the stubgen tool in a testable way.
package run

import (
	"errors"
	"fmt"
	"io"

	"github.com/alexflint/go-arg"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	config "github.com/toejough/stubby/stubgen/run/1_config"
	detect "github.com/toejough/stubby/stubgen/run/3_detect"
	generate "github.com/toejough/stubby/stubgen/run/5_generate"
	output "github.com/toejough/stubby/stubgen/run/6_output"
)

// Exported variables.
var (
	ErrNoPackage = errors.New("GOPACKAGE is not set; run stubgen from a go:generate directive")
)

// Run executes stubgen: it parses args, loads the optional config from fileSys, finds the
// named interface through pkgLoader, and writes its adapter into the calling package.
// getEnv supplies GOPACKAGE and GOFILE, which go generate sets. Progress goes to out.
func Run(args []string, getEnv func(string) string, fileSys afero.Fs, pkgLoader detect.PackageLoader, out io.Writer) error {
	parsed, err := parseArgs(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(fileSys, parsed.Config)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, parsed.Verbose, out)
	if err != nil {
		return err
	}

	info, err := getGeneratorCallInfo(parsed, cfg, getEnv)
	if err != nil {
		return err
	}

	logger = logger.With().Str("interface", parsed.Interface).Str("package", info.pkgName).Logger()

	iface, err := findInterface(info, pkgLoader)
	if err != nil {
		return err
	}

	logger.Debug().Int("methods", len(iface.Methods)).Msg("interface detected")

	code, err := generate.Adapter(iface, info.pkgName, info.stubName)
	if err != nil {
		return err
	}

	return output.WriteGeneratedCode(code, info.stubName, info.pkgName, getEnv, fileSys,
		output.Options{FilePrefix: cfg.FilePrefix, Reorder: cfg.Reorder}, logger, out)
}

// cliArgs defines the command-line arguments for the generator.
type cliArgs struct {
	Interface string `arg:"positional,required" help:"interface to build an adapter for (e.g. Greeter or pkg.Greeter)"`
	Name      string `arg:"--name"              help:"name of the generated adapter (defaults to <Interface><suffix>)"`
	Config    string `arg:"--config"            help:"path to a TOML config file (defaults to .stubgen.toml if present)"`
	Verbose   bool   `arg:"-v,--verbose"        help:"log at debug level"`
}

// generatorInfo holds information gathered for generation.
type generatorInfo struct {
	pkgName, qualifier, localName, stubName string
}

// findInterface loads the package declaring the interface and detects it there.
// An unqualified name is looked up among the current package's files only.
func findInterface(info generatorInfo, pkgLoader detect.PackageLoader) (detect.Interface, error) {
	localFiles, err := pkgLoader.Load(".")
	if err != nil {
		return detect.Interface{}, fmt.Errorf("failed to load current package: %w", err)
	}

	if info.qualifier == "" {
		return detect.FindInterface(detect.FilesInPackage(localFiles, info.pkgName), info.localName, "")
	}

	importPath, err := detect.FindImportPath(localFiles, info.qualifier)
	if err != nil {
		return detect.Interface{}, err
	}

	files, err := pkgLoader.Load(importPath)
	if err != nil {
		return detect.Interface{}, fmt.Errorf("failed to load %s: %w", importPath, err)
	}

	iface, err := detect.FindInterface(files, info.localName, info.qualifier)
	if err != nil {
		return detect.Interface{}, err
	}

	iface.ImportPath = importPath

	return iface, nil
}

// getGeneratorCallInfo returns basic information about the current call to the generator.
func getGeneratorCallInfo(parsed cliArgs, cfg config.Config, getEnv func(string) string) (generatorInfo, error) {
	pkgName := getEnv("GOPACKAGE")
	if pkgName == "" {
		return generatorInfo{}, ErrNoPackage
	}

	qualifier, localName := detect.SplitQualified(parsed.Interface)

	stubName := parsed.Name
	if stubName == "" {
		stubName = localName + cfg.Suffix
	}

	return generatorInfo{
		pkgName:   pkgName,
		qualifier: qualifier,
		localName: localName,
		stubName:  stubName,
	}, nil
}

func loadConfig(fileSys afero.Fs, path string) (config.Config, error) {
	if path == "" {
		return config.Load(fileSys, config.DefaultPath, false)
	}

	return config.Load(fileSys, path, true)
}

// newLogger writes human-readable log lines to out at the configured level.
func newLogger(cfg config.Config, verbose bool, out io.Writer) (zerolog.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return zerolog.Nop(), err
	}

	if verbose {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{Out: out, NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}

	return zerolog.New(writer).Level(level).With().Str("tool", "stubgen").Logger(), nil
}

// parseArgs parses command-line arguments into cliArgs.
func parseArgs(args []string) (cliArgs, error) {
	var parsed cliArgs

	parser, err := arg.NewParser(arg.Config{Program: "stubgen"}, &parsed)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to create argument parser: %w", err)
	}

	var cmdArgs []string
	if len(args) > 1 {
		cmdArgs = args[1:]
	}

	err = parser.Parse(cmdArgs)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to parse arguments: %w", err)
	}

	return parsed, nil
}
