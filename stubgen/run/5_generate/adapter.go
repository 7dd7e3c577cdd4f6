// Package generate renders adapter source for a detected interface.
package generate

import (
	"bytes"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"
	"text/template"

	detect "github.com/toejough/stubby/stubgen/run/3_detect"
)

// StubbyImportPath is the package every adapter registers with.
const StubbyImportPath = "github.com/toejough/stubby"

// Adapter renders the source of the adapter stubName for iface, in package pkgName.
// The output is gofmt-clean but still carries every import of the contract's files;
// unused ones are dropped when the file is written.
func Adapter(iface detect.Interface, pkgName, stubName string) (string, error) {
	data := adapterData{
		PkgName:       pkgName,
		StubName:      stubName,
		InterfaceType: interfaceType(iface),
		Imports:       importBlock(iface),
		Methods:       make([]methodData, 0, len(iface.Methods)),
	}

	for _, method := range iface.Methods {
		data.Methods = append(data.Methods, newMethodData(method))
	}

	var buf bytes.Buffer

	err := adapterTmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("failed to render adapter %s: %w", stubName, err)
	}

	return buf.String(), nil
}

// unexported constants.
const adapterTemplate = `// Code generated by stubgen. DO NOT EDIT.

package {{.PkgName}}

import (
{{.Imports}})

// {{.StubName}} is a stubby adapter for {{.InterfaceType}}.
type {{.StubName}} struct {
	interceptor *stubby.Interceptor
}
{{range .Methods}}
func (s *{{$.StubName}}) {{.Name}}({{.Params}}){{.Results}} {
{{- if .Returns}}
	rets := s.interceptor.Intercept({{.Call}})

	return {{.Returns}}
{{- else}}
	s.interceptor.Intercept({{.Call}})
{{- end}}
}
{{end}}
// StubInterceptor returns the interceptor behind s.
func (s *{{.StubName}}) StubInterceptor() *stubby.Interceptor {
	return s.interceptor
}

func new{{.StubName}}(interceptor *stubby.Interceptor) {{.InterfaceType}} {
	return &{{.StubName}}{interceptor: interceptor}
}

func init() {
	stubby.Register[{{.InterfaceType}}](new{{.StubName}})
}
`

// unexported variables.
var (
	//nolint:gochecknoglobals // the template is a constant; parsing cannot fail at runtime
	adapterTmpl = template.Must(template.New("adapter").Parse(adapterTemplate))
)

type adapterData struct {
	PkgName       string
	StubName      string
	InterfaceType string
	Imports       string
	Methods       []methodData
}

type methodData struct {
	Name    string
	Params  string
	Results string
	Call    string
	Returns string
}

// importBlock renders the lines of the import block: standard library first, then a blank
// line, then everything else, each group sorted by path.
func importBlock(iface detect.Interface) string {
	specs := map[string]detect.Import{" " + StubbyImportPath: {Path: StubbyImportPath}}

	for _, imp := range iface.Imports {
		specs[imp.Name+" "+imp.Path] = imp
	}

	if iface.Qualifier != "" {
		contractImport := detect.Import{Path: iface.ImportPath}
		if path.Base(iface.ImportPath) != iface.Qualifier {
			contractImport.Name = iface.Qualifier
		}

		specs[contractImport.Name+" "+contractImport.Path] = contractImport
	}

	var std, other []detect.Import

	for _, imp := range specs {
		if isStdlib(imp.Path) {
			std = append(std, imp)
		} else {
			other = append(other, imp)
		}
	}

	var buf strings.Builder

	for i, group := range [][]detect.Import{std, other} {
		if len(group) == 0 {
			continue
		}

		if i > 0 && len(std) > 0 {
			buf.WriteString("\n")
		}

		sort.Slice(group, func(a, b int) bool {
			if group[a].Path != group[b].Path {
				return group[a].Path < group[b].Path
			}

			return group[a].Name < group[b].Name
		})

		for _, imp := range group {
			buf.WriteString("\t")

			if imp.Name != "" {
				buf.WriteString(imp.Name + " ")
			}

			buf.WriteString(strconv.Quote(imp.Path) + "\n")
		}
	}

	return buf.String()
}

func interfaceType(iface detect.Interface) string {
	if iface.Qualifier == "" {
		return iface.Name
	}

	return iface.Qualifier + "." + iface.Name
}

// isStdlib reports whether importPath looks like a standard library path: no dot in its
// first element.
func isStdlib(importPath string) bool {
	first, _, _ := strings.Cut(importPath, "/")

	return !strings.Contains(first, ".")
}

func newMethodData(method detect.Method) methodData {
	params := make([]string, 0, len(method.Params))
	call := []string{strconv.Quote(method.Name)}

	for _, param := range method.Params {
		params = append(params, param.Name+" "+param.Type)
		// variadic arguments travel as one trailing slice
		call = append(call, param.Name)
	}

	data := methodData{
		Name:   method.Name,
		Params: strings.Join(params, ", "),
		Call:   strings.Join(call, ", "),
	}

	switch len(method.Results) {
	case 0:
	case 1:
		data.Results = " " + method.Results[0]
	default:
		data.Results = " (" + strings.Join(method.Results, ", ") + ")"
	}

	returns := make([]string, 0, len(method.Results))
	for i, result := range method.Results {
		returns = append(returns, fmt.Sprintf("stubby.Result[%s](rets, %d)", result, i))
	}

	data.Returns = strings.Join(returns, ", ")

	return data
}
