// Package detect finds the interface stubgen was asked for and flattens it into the
// method list an adapter must implement.
package detect

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dave/dst"

	"github.com/toejough/stubby/internal/core"
	astutil "github.com/toejough/stubby/stubgen/run/0_util"
)

// Import is one import spec a generated adapter may need.
type Import struct {
	Name string // alias, empty when the import is not renamed
	Path string
}

// Interface is a contract with its method set flattened over same-package embeds.
type Interface struct {
	Name string
	// Qualifier is the package name generated code uses for the contract; empty when the
	// adapter lives in the contract's own package.
	Qualifier  string
	ImportPath string
	// Methods are sorted by name.
	Methods []Method
	// Imports are those of every file declaring the contract or one of its embeds.
	Imports []Import
}

// Method is one method of a contract, with its types rendered as the adapter must spell them.
type Method struct {
	Name    string
	Params  []Param
	Results []string
}

// Param is one parameter. Unnamed and blank parameters get positional names.
type Param struct {
	Name string
	// Type is spelled as in the signature, so a variadic parameter's starts with "...".
	Type string
}

// PackageLoader loads the DST files of a package by import path, "." being the package
// stubgen runs in.
type PackageLoader interface {
	Load(importPath string) ([]*dst.File, error)
}

// Exported variables.
var (
	ErrPackageNotFound = errors.New("package not found")
	ErrSymbolNotFound  = errors.New("symbol not found")
	ErrReservedMethod  = errors.New("method name is reserved by the adapter")
)

// FilesInPackage keeps the files that declare package pkgName. A directory may hold both
// pkg and pkg_test; an adapter can only name unqualified types from its own package.
func FilesInPackage(files []*dst.File, pkgName string) []*dst.File {
	kept := make([]*dst.File, 0, len(files))

	for _, file := range files {
		if file.Name != nil && file.Name.Name == pkgName {
			kept = append(kept, file)
		}
	}

	return kept
}

// FindImportPath resolves the package name qualifier to an import path using the imports
// of files, by alias first and then by the last element of the path.
func FindImportPath(files []*dst.File, qualifier string) (string, error) {
	for _, file := range files {
		for _, imp := range file.Imports {
			importPath, err := strconv.Unquote(imp.Path.Value)
			if err != nil {
				continue
			}

			if imp.Name != nil {
				if imp.Name.Name == qualifier {
					return importPath, nil
				}

				continue
			}

			if assumedName(importPath) == qualifier {
				return importPath, nil
			}
		}
	}

	return "", fmt.Errorf("%w: no import of %q in the current package", ErrPackageNotFound, qualifier)
}

// FindInterface finds interface name in files and collects its methods. Interfaces embedded
// by bare name are flattened in; the builtin error contributes Error() string.
// Qualifier is applied to every exported identifier of the rendered signatures.
func FindInterface(files []*dst.File, name, qualifier string) (Interface, error) {
	collector := &methodCollector{
		files:    files,
		render:   astutil.Qualify(qualifier),
		methods:  make(map[string]Method),
		imports:  make(map[Import]bool),
		visiting: make(map[string]bool),
	}

	err := collector.collect(name)
	if err != nil {
		return Interface{}, err
	}

	iface := Interface{Name: name, Qualifier: qualifier}

	for _, method := range collector.methods {
		iface.Methods = append(iface.Methods, method)
	}

	sort.Slice(iface.Methods, func(i, j int) bool { return iface.Methods[i].Name < iface.Methods[j].Name })

	for imp := range collector.imports {
		iface.Imports = append(iface.Imports, imp)
	}

	sort.Slice(iface.Imports, func(i, j int) bool { return iface.Imports[i].Path < iface.Imports[j].Path })

	return iface, nil
}

// SplitQualified splits "pkg.Name" into its package qualifier and local name.
func SplitQualified(name string) (qualifier, local string) {
	before, after, found := strings.Cut(name, ".")
	if !found {
		return "", name
	}

	return before, after
}

// unexported constants.
const (
	// reservedMethod is how WhenOn reaches an adapter's interceptor.
	reservedMethod = "StubInterceptor"
)

// unexported variables.
var (
	//nolint:gochecknoglobals // compiled once
	majorVersionSuffix = regexp.MustCompile(`^v[0-9]+$`)
	//nolint:gochecknoglobals // identifiers the generated method bodies use
	reservedParamNames = map[string]bool{"s": true, "rets": true, "stubby": true}
)

type methodCollector struct {
	files    []*dst.File
	render   func(dst.Expr) string
	methods  map[string]Method
	imports  map[Import]bool
	visiting map[string]bool
}

func (c *methodCollector) addMethod(name string, funcType *dst.FuncType) error {
	if name == reservedMethod {
		return fmt.Errorf("%w: %s", ErrReservedMethod, name)
	}

	// overlapping embeds may declare the same method; Go requires them to be identical
	if _, seen := c.methods[name]; seen {
		return nil
	}

	method := Method{Name: name}

	if funcType.Params != nil {
		taken := declaredParamNames(funcType.Params)

		for _, field := range funcType.Params.List {
			typ := c.render(field.Type)

			names := field.Names
			if len(names) == 0 {
				names = []*dst.Ident{{Name: "_"}}
			}

			for _, ident := range names {
				method.Params = append(method.Params, Param{
					Name: paramName(ident.Name, len(method.Params), taken),
					Type: typ,
				})
			}
		}
	}

	if funcType.Results != nil {
		method.Results = astutil.ExpandFieldListTypes(funcType.Results.List, c.render)
	}

	c.methods[name] = method

	return nil
}

//nolint:cyclop // one case per kind of interface element
func (c *methodCollector) collect(name string) error {
	spec, file, found := findTypeSpec(c.files, name)
	if !found {
		return fmt.Errorf("%w: %s", ErrSymbolNotFound, name)
	}

	iface, isInterface := spec.Type.(*dst.InterfaceType)
	if !isInterface {
		return fmt.Errorf("%w: %s is %s, not an interface", core.ErrUnsupportedContractKind, name, kindOf(spec.Type))
	}

	if spec.TypeParams != nil && len(spec.TypeParams.List) > 0 {
		return fmt.Errorf("%w: %s is generic", core.ErrUnsupportedContractKind, name)
	}

	if c.visiting[name] {
		return nil
	}

	c.visiting[name] = true
	c.addImports(file)

	if iface.Methods == nil {
		return nil
	}

	for _, field := range iface.Methods.List {
		var err error

		switch typ := field.Type.(type) {
		case *dst.FuncType:
			for _, ident := range field.Names {
				err = c.addMethod(ident.Name, typ)
				if err != nil {
					break
				}
			}
		case *dst.Ident:
			err = c.collectEmbedded(name, typ.Name)
		case *dst.SelectorExpr:
			err = fmt.Errorf("%w: %s embeds %s from another package",
				core.ErrUnsupportedContractKind, name, astutil.StringifyExpr(typ))
		default:
			err = fmt.Errorf("%w: %s has a type set and can only constrain type parameters",
				core.ErrUnsupportedContractKind, name)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func (c *methodCollector) addImports(file *dst.File) {
	for _, imp := range file.Imports {
		importPath, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}

		spec := Import{Path: importPath}

		if imp.Name != nil {
			if imp.Name.Name == "_" || imp.Name.Name == "." {
				continue
			}

			spec.Name = imp.Name.Name
		}

		c.imports[spec] = true
	}
}

func (c *methodCollector) collectEmbedded(outer, embedded string) error {
	if embedded == "error" {
		return c.addMethod("Error", &dst.FuncType{
			Params:  &dst.FieldList{},
			Results: &dst.FieldList{List: []*dst.Field{{Type: &dst.Ident{Name: "string"}}}},
		})
	}

	err := c.collect(embedded)
	if errors.Is(err, ErrSymbolNotFound) {
		return fmt.Errorf("%w: %s embeds %s, which is not an interface in this package",
			core.ErrUnsupportedContractKind, outer, embedded)
	}

	return err
}

// declaredParamNames lists the parameter names a method declares and keeps as written.
func declaredParamNames(params *dst.FieldList) map[string]bool {
	names := make(map[string]bool)

	for _, field := range params.List {
		for _, ident := range field.Names {
			if ident.Name != "_" && !reservedParamNames[ident.Name] {
				names[ident.Name] = true
			}
		}
	}

	return names
}

// assumedName is the package name an unaliased import is referred to by: the last path
// element, skipping a major version suffix.
func assumedName(importPath string) string {
	base := path.Base(importPath)
	if majorVersionSuffix.MatchString(base) {
		base = path.Base(path.Dir(importPath))
	}

	return base
}

func findTypeSpec(files []*dst.File, name string) (*dst.TypeSpec, *dst.File, bool) {
	for _, file := range files {
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*dst.GenDecl)
			if !ok {
				continue
			}

			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*dst.TypeSpec)
				if ok && typeSpec.Name.Name == name {
					return typeSpec, file, true
				}
			}
		}
	}

	return nil, nil, false
}

func kindOf(expr dst.Expr) string {
	switch expr.(type) {
	case *dst.StructType:
		return "a struct"
	case *dst.FuncType:
		return "a func type"
	case *dst.MapType, *dst.ArrayType, *dst.ChanType:
		return "a container type"
	default:
		return "a named " + astutil.StringifyExpr(expr)
	}
}

// paramName returns the adapter's name for a parameter. Blank and reserved names are
// replaced by one not in taken, which is then marked taken.
func paramName(name string, index int, taken map[string]bool) string {
	var renamed string

	switch {
	case name == "" || name == "_":
		renamed = "arg" + strconv.Itoa(index)
	case reservedParamNames[name]:
		renamed = name + "Arg"
	default:
		return name
	}

	for taken[renamed] {
		renamed += "_"
	}

	taken[renamed] = true

	return renamed
}
