package pygen

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"
)

// syntheticOneofs reports which oneof declarations of msg exist only to
// carry a proto3 optional field. Those are not unions and get no accessor
// synthesis.
func syntheticOneofs(msg *descriptorpb.DescriptorProto) map[int32]bool {
	synthetic := make(map[int32]bool)
	for _, field := range msg.Field {
		if field.GetProto3Optional() && field.OneofIndex != nil {
			synthetic[field.GetOneofIndex()] = true
		}
	}
	return synthetic
}

// oneofMembers returns the fields belonging to the oneof at index.
func oneofMembers(msg *descriptorpb.DescriptorProto, index int32) []*descriptorpb.FieldDescriptorProto {
	var members []*descriptorpb.FieldDescriptorProto
	for _, field := range msg.Field {
		if field.OneofIndex != nil && field.GetOneofIndex() == index && !field.GetProto3Optional() {
			members = append(members, field)
		}
	}
	return members
}

// generateMessageStub declares one message class in the type stub: nested
// declarations, typed attributes with defaults, oneof accessor signatures
// and a constructor signature. Fields belonging to a real oneof are not
// declared as ordinary attributes; they are reachable only through the
// accessors and the constructor.
func (g *generator) generateMessageStub(msg *descriptorpb.DescriptorProto) error {
	g.p("class %s:", msg.GetName())
	g.in()

	for _, enum := range msg.EnumType {
		g.generateEnumStub(enum)
	}
	for _, nested := range msg.NestedType {
		if nested.GetOptions().GetMapEntry() {
			continue
		}
		if err := g.generateMessageStub(nested); err != nil {
			return err
		}
	}

	synthetic := syntheticOneofs(msg)

	var ctorArgs []string
	for _, field := range msg.Field {
		ft, err := g.mapField(field)
		if err != nil {
			return err
		}
		g.imports.add(ft.aux)
		name := escapePythonKeyword(field.GetName())

		inUnion := field.OneofIndex != nil && !field.GetProto3Optional() && !synthetic[field.GetOneofIndex()]
		switch {
		case inUnion:
			// Union members are constructor-settable but mutually
			// exclusive, so their parameter default is an unset marker.
			ctorArgs = append(ctorArgs, fmt.Sprintf("%s: typing.Optional[%s] = None", name, ft.expr))
			g.imports.add("import typing")
		case field.GetProto3Optional():
			g.imports.add("import typing")
			g.p("%s: typing.Optional[%s]", name, ft.expr)
			ctorArgs = append(ctorArgs, fmt.Sprintf("%s: typing.Optional[%s] = None", name, ft.expr))
		default:
			g.p("%s: %s", name, ft.expr)
			ctorArgs = append(ctorArgs, fmt.Sprintf("%s: %s = %s", name, ft.expr, ft.defaultVal))
		}
	}

	for i, oneof := range msg.OneofDecl {
		if synthetic[int32(i)] {
			continue
		}
		if err := g.generateOneofStub(msg, int32(i), oneof); err != nil {
			return err
		}
	}

	args := ""
	if len(ctorArgs) > 0 {
		args = ", " + strings.Join(ctorArgs, ", ")
	}
	g.p("def __init__(self%s) -> None: ...", args)

	g.out()
	g.p("")
	return nil
}

// generateOneofStub declares the three accessors of one union: the value
// accessor typed as an optional of the member types, the discriminator
// returning the active member's name, and the dict-shaped view.
func (g *generator) generateOneofStub(msg *descriptorpb.DescriptorProto, index int32, oneof *descriptorpb.OneofDescriptorProto) error {
	var memberTypes []string
	seen := make(map[string]bool)
	for _, field := range oneofMembers(msg, index) {
		ft, err := g.mapField(field)
		if err != nil {
			return err
		}
		g.imports.add(ft.aux)
		if !seen[ft.expr] {
			seen[ft.expr] = true
			memberTypes = append(memberTypes, ft.expr)
		}
	}

	valueType := "typing.Any"
	if len(memberTypes) == 1 {
		valueType = memberTypes[0]
	} else if len(memberTypes) > 1 {
		valueType = fmt.Sprintf("typing.Union[%s]", strings.Join(memberTypes, ", "))
	}

	g.imports.add("import typing")
	name := oneof.GetName()
	g.p("def %s_value(self) -> typing.Optional[%s]: ...", name, valueType)
	g.p("def %s_which(self) -> typing.Optional[str]: ...", name)
	g.p("def %s_dict(self) -> typing.Dict[str, typing.Any]: ...", name)
	return nil
}
