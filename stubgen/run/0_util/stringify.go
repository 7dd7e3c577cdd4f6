// Package astutil renders DST type expressions back to Go source.
package astutil

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/dave/dst"
)

// ExpandFieldListTypes expands a field list into individual type strings.
// For fields with multiple names (e.g., "a, b int"), outputs the type once per name.
// For unnamed fields, outputs the type once.
func ExpandFieldListTypes(fields []*dst.Field, typeFormatter func(dst.Expr) string) []string {
	var parts []string

	for _, f := range fields {
		typeStr := typeFormatter(f.Type)

		count := len(f.Names)
		if count == 0 {
			count = 1
		}

		for range count {
			parts = append(parts, typeStr)
		}
	}

	return parts
}

// Qualify returns a formatter like StringifyExpr that prefixes every exported identifier with
// qualifier. Use it when rendering types declared in another package: the identifiers that
// were local there need the package name once the signature is copied elsewhere.
// An empty qualifier renders identifiers unchanged.
func Qualify(qualifier string) func(dst.Expr) string {
	p := printer{qualifier: qualifier}

	return p.expr
}

// StringifyExpr converts a DST expression to its string representation.
func StringifyExpr(expr dst.Expr) string {
	return printer{}.expr(expr)
}

type printer struct {
	qualifier string
}

//nolint:cyclop,funlen // Type-switch dispatcher handling all DST expression types; complexity is inherent
func (p printer) expr(expr dst.Expr) string {
	if expr == nil {
		return ""
	}

	switch typedExpr := expr.(type) {
	case *dst.Ident:
		return p.ident(typedExpr.Name)
	case *dst.BasicLit:
		return typedExpr.Value
	case *dst.SelectorExpr:
		// X is a package name; only the selector's own package decides how to refer to it.
		return printer{}.expr(typedExpr.X) + "." + typedExpr.Sel.Name
	case *dst.StarExpr:
		return "*" + p.expr(typedExpr.X)
	case *dst.ArrayType:
		if typedExpr.Len != nil {
			return "[" + p.expr(typedExpr.Len) + "]" + p.expr(typedExpr.Elt)
		}

		return "[]" + p.expr(typedExpr.Elt)
	case *dst.MapType:
		return "map[" + p.expr(typedExpr.Key) + "]" + p.expr(typedExpr.Value)
	case *dst.ChanType:
		switch typedExpr.Dir {
		case dst.SEND:
			return "chan<- " + p.expr(typedExpr.Value)
		case dst.RECV:
			return "<-chan " + p.expr(typedExpr.Value)
		default:
			return "chan " + p.expr(typedExpr.Value)
		}
	case *dst.InterfaceType:
		return p.interfaceType(typedExpr)
	case *dst.StructType:
		return p.structType(typedExpr)
	case *dst.FuncType:
		return "func" + p.signature(typedExpr)
	case *dst.Ellipsis:
		return "..." + p.expr(typedExpr.Elt)
	case *dst.IndexExpr:
		return p.expr(typedExpr.X) + "[" + p.expr(typedExpr.Index) + "]"
	case *dst.IndexListExpr:
		indices := make([]string, len(typedExpr.Indices))
		for i, idx := range typedExpr.Indices {
			indices[i] = p.expr(idx)
		}

		return p.expr(typedExpr.X) + "[" + strings.Join(indices, ", ") + "]"
	case *dst.ParenExpr:
		return "(" + p.expr(typedExpr.X) + ")"
	default:
		return fmt.Sprintf("%T", expr)
	}
}

func (p printer) ident(name string) string {
	if p.qualifier == "" || !token.IsExported(name) {
		return name
	}

	return p.qualifier + "." + name
}

// interfaceType renders an interface literal, one line for a single method and
// multi-line otherwise.
func (p printer) interfaceType(interfaceType *dst.InterfaceType) string {
	if interfaceType.Methods == nil || len(interfaceType.Methods.List) == 0 {
		return "interface{}"
	}

	var buf strings.Builder

	buf.WriteString("interface{")

	methodCount := len(interfaceType.Methods.List)

	for _, method := range interfaceType.Methods.List {
		if methodCount > 1 {
			buf.WriteString("\n\t")
		} else {
			buf.WriteString(" ")
		}

		if funcType, ok := method.Type.(*dst.FuncType); ok && len(method.Names) > 0 {
			buf.WriteString(method.Names[0].Name)
			buf.WriteString(p.signature(funcType))

			continue
		}

		buf.WriteString(p.expr(method.Type))
	}

	if methodCount > 1 {
		buf.WriteString("\n}")
	} else {
		buf.WriteString(" }")
	}

	return buf.String()
}

// signature renders a func type without its "func" keyword.
func (p printer) signature(funcType *dst.FuncType) string {
	var buf strings.Builder

	buf.WriteString("(")

	if funcType.Params != nil {
		buf.WriteString(strings.Join(ExpandFieldListTypes(funcType.Params.List, p.expr), ", "))
	}

	buf.WriteString(")")

	if funcType.Results == nil || len(funcType.Results.List) == 0 {
		return buf.String()
	}

	results := ExpandFieldListTypes(funcType.Results.List, p.expr)
	buf.WriteString(" ")

	if len(results) == 1 {
		buf.WriteString(results[0])

		return buf.String()
	}

	buf.WriteString("(" + strings.Join(results, ", ") + ")")

	return buf.String()
}

func (p printer) structType(structType *dst.StructType) string {
	if structType.Fields == nil || len(structType.Fields.List) == 0 {
		return "struct{}"
	}

	fields := make([]string, 0, len(structType.Fields.List))

	for _, field := range structType.Fields.List {
		var fieldStr strings.Builder

		if len(field.Names) > 0 {
			names := make([]string, len(field.Names))
			for i, name := range field.Names {
				names[i] = name.Name
			}

			fieldStr.WriteString(strings.Join(names, ", "))
			fieldStr.WriteString(" ")
		}

		fieldStr.WriteString(p.expr(field.Type))

		if field.Tag != nil {
			fieldStr.WriteString(" " + field.Tag.Value)
		}

		fields = append(fields, fieldStr.String())
	}

	return fmt.Sprintf("struct{ %s }", strings.Join(fields, "; "))
}
