package pygen

import (
	"fmt"
	"path"
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"
)

// typeEntry is one resolved message or enum declaration. Exactly one of
// message and enum is non-nil. name is the dotted name of the declaration
// within its file, without the package prefix (e.g. "Outer.Nested").
type typeEntry struct {
	file    *descriptorpb.FileDescriptorProto
	message *descriptorpb.DescriptorProto
	enum    *descriptorpb.EnumDescriptorProto
	name    string
}

// enumDefault returns the name of the first declared value, which is the
// implicit default of any field typed as this enum.
func (t typeEntry) enumDefault() string {
	return t.enum.Value[0].GetName()
}

// resolver indexes every message and enum declared by any file in the
// request, keyed by fully-qualified name with a leading dot, the form in
// which field and method descriptors carry type references.
type resolver struct {
	types map[string]typeEntry
}

func newResolver(files []*descriptorpb.FileDescriptorProto) *resolver {
	r := &resolver{types: make(map[string]typeEntry)}
	for _, file := range files {
		prefix := "."
		if file.GetPackage() != "" {
			prefix = "." + file.GetPackage() + "."
		}
		for _, enum := range file.EnumType {
			r.types[prefix+enum.GetName()] = typeEntry{file: file, enum: enum, name: enum.GetName()}
		}
		for _, msg := range file.MessageType {
			r.indexMessage(file, msg, prefix, "")
		}
	}
	return r
}

func (r *resolver) indexMessage(file *descriptorpb.FileDescriptorProto, msg *descriptorpb.DescriptorProto, fqnPrefix, namePrefix string) {
	fqn := fqnPrefix + msg.GetName()
	name := namePrefix + msg.GetName()
	r.types[fqn] = typeEntry{file: file, message: msg, name: name}
	for _, enum := range msg.EnumType {
		r.types[fqn+"."+enum.GetName()] = typeEntry{file: file, enum: enum, name: name + "." + enum.GetName()}
	}
	for _, nested := range msg.NestedType {
		r.indexMessage(file, nested, fqn+".", name+".")
	}
}

// lookup resolves a fully-qualified type reference. A name absent from the
// schema graph means the graph handed to us is malformed or incomplete, and
// synthesis cannot continue.
func (r *resolver) lookup(typeName string) (typeEntry, error) {
	t, ok := r.types[typeName]
	if !ok {
		return typeEntry{}, fmt.Errorf("unresolvable type reference %q: no file in the request declares it", typeName)
	}
	return t, nil
}

// moduleName returns the Python module generated for a proto file by the
// upstream message plugin: "a/b/c.proto" becomes "c_pb2" in package "a.b".
func moduleName(protoFile string) string {
	return strings.TrimSuffix(path.Base(protoFile), ".proto") + "_pb2"
}

// moduleAlias builds the deterministic alias under which a foreign module
// is imported: underscores are doubled and path separators become "_dot_",
// so "a/b/my_types.proto" yields "a_dot_b_dot_my__types__pb2".
func moduleAlias(protoFile string) string {
	stem := strings.TrimSuffix(protoFile, ".proto")
	stem = strings.ReplaceAll(stem, "_", "__")
	stem = strings.ReplaceAll(stem, "/", "_dot_")
	return stem + "__pb2"
}

// moduleImport builds the import statement for the module generated from
// protoFile, aliased so that references are unambiguous.
func moduleImport(protoFile string) string {
	dir := path.Dir(protoFile)
	if dir == "." {
		return fmt.Sprintf("import %s as %s", moduleName(protoFile), moduleAlias(protoFile))
	}
	pkg := strings.ReplaceAll(dir, "/", ".")
	return fmt.Sprintf("from %s import %s as %s", pkg, moduleName(protoFile), moduleAlias(protoFile))
}
