package pygen

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"
)

// generator produces one output unit for one proto file. Each unit owns its
// own import set and text buffer; nothing is shared across files or across
// invocations.
type generator struct {
	printer
	params   params
	file     *descriptorpb.FileDescriptorProto
	resolver *resolver
	imports  *importSet

	// selfAlias is set in the RPC units, where the file's own types live in
	// the companion *_pb2 module rather than in the unit being generated.
	// The type stub leaves it empty and references local types bare.
	selfAlias string
}

func newGenerator(file *descriptorpb.FileDescriptorProto, r *resolver, p params) *generator {
	return &generator{
		params:   p,
		file:     file,
		resolver: r,
		imports:  newImportSet(),
	}
}

// typeRef returns the expression under which a resolved type is referenced
// from the unit being generated. Local types never record an import; foreign
// types record exactly one module import no matter how often they appear.
func (g *generator) typeRef(t typeEntry) string {
	if t.file == g.file {
		if g.selfAlias != "" {
			return g.selfAlias + "." + t.name
		}
		return t.name
	}
	g.imports.add(moduleImport(t.file.GetName()))
	return moduleAlias(t.file.GetName()) + "." + t.name
}

func (g *generator) header() string {
	syntax := g.file.GetSyntax()
	if syntax == "" {
		syntax = "proto2"
	}
	pkgComment := fmt.Sprintf(" (syntax %s)", syntax)
	if g.file.GetPackage() != "" {
		pkgComment = fmt.Sprintf(" (package \"%s\", syntax %s)", g.file.GetPackage(), syntax)
	}
	return fmt.Sprintf("# Generated by protoc-gen-pygrpc. DO NOT EDIT!\n# source: %s%s\n", g.file.GetName(), pkgComment)
}

// assemble concatenates the header, the sorted deduplicated imports and the
// generated body into the final unit content.
func (g *generator) assemble() string {
	var out strings.Builder
	out.WriteString(g.header())
	if !g.imports.empty() {
		out.WriteString("\n")
		for _, stmt := range g.imports.sorted() {
			out.WriteString(stmt)
			out.WriteString("\n")
		}
	}
	body := strings.TrimRight(g.String(), "\n")
	if body != "" {
		out.WriteString("\n")
		out.WriteString(body)
		out.WriteString("\n")
	}
	return out.String()
}

func (g *generator) qualifiedServiceName(svc *descriptorpb.ServiceDescriptorProto) string {
	if g.file.GetPackage() == "" {
		return svc.GetName()
	}
	return g.file.GetPackage() + "." + svc.GetName()
}

// toSnake converts a CamelCase method or dotted message name into the
// lower_snake identifier used for generated Python helpers.
func toSnake(name string) string {
	parts := strings.Split(name, ".")
	for i, part := range parts {
		var b strings.Builder
		for j, r := range part {
			if r >= 'A' && r <= 'Z' {
				if j > 0 {
					b.WriteByte('_')
				}
				b.WriteRune(r - 'A' + 'a')
			} else {
				b.WriteRune(r)
			}
		}
		parts[i] = b.String()
	}
	return strings.Join(parts, "_")
}
