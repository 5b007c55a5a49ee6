package pygen

import (
	"fmt"

	"google.golang.org/protobuf/types/descriptorpb"
)

// fieldType is the mapping of one field onto the target language: the type
// expression, the default value expression evaluating to the kind's zero
// value, and an auxiliary import needed by the type expression ("" if none).
type fieldType struct {
	expr       string
	defaultVal string
	aux        string
}

// mapField maps one field description to its Python binding. Repeated
// fields wrap the element type in a list; a repeated field whose element is
// a nested map-entry message becomes a dict keyed by the entry's key type.
func (g *generator) mapField(field *descriptorpb.FieldDescriptorProto) (fieldType, error) {
	if field.GetLabel() == descriptorpb.FieldDescriptorProto_LABEL_REPEATED {
		if field.GetType() == descriptorpb.FieldDescriptorProto_TYPE_MESSAGE {
			entry, err := g.resolver.lookup(field.GetTypeName())
			if err != nil {
				return fieldType{}, err
			}
			if entry.message != nil && entry.message.GetOptions().GetMapEntry() {
				return g.mapEntryField(entry.message)
			}
		}
		elem, err := g.scalarField(field)
		if err != nil {
			return fieldType{}, err
		}
		return fieldType{
			expr:       fmt.Sprintf("typing.List[%s]", elem.expr),
			defaultVal: "[]",
			aux:        "import typing",
		}, nil
	}
	return g.scalarField(field)
}

// mapEntryField resolves the two fields of a map-entry message recursively
// and produces the keyed-mapping binding.
func (g *generator) mapEntryField(entry *descriptorpb.DescriptorProto) (fieldType, error) {
	key, err := g.mapField(entry.Field[0])
	if err != nil {
		return fieldType{}, err
	}
	value, err := g.mapField(entry.Field[1])
	if err != nil {
		return fieldType{}, err
	}
	return fieldType{
		expr:       fmt.Sprintf("typing.Dict[%s, %s]", key.expr, value.expr),
		defaultVal: "{}",
		aux:        "import typing",
	}, nil
}

func (g *generator) scalarField(field *descriptorpb.FieldDescriptorProto) (fieldType, error) {
	switch field.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_BYTES:
		return fieldType{expr: "bytes", defaultVal: "b''"}, nil
	case descriptorpb.FieldDescriptorProto_TYPE_STRING:
		return fieldType{expr: "str", defaultVal: "''"}, nil
	case descriptorpb.FieldDescriptorProto_TYPE_BOOL:
		return fieldType{expr: "bool", defaultVal: "False"}, nil
	case descriptorpb.FieldDescriptorProto_TYPE_DOUBLE,
		descriptorpb.FieldDescriptorProto_TYPE_FLOAT:
		return fieldType{expr: "float", defaultVal: "0.0"}, nil
	case descriptorpb.FieldDescriptorProto_TYPE_INT32,
		descriptorpb.FieldDescriptorProto_TYPE_INT64,
		descriptorpb.FieldDescriptorProto_TYPE_UINT32,
		descriptorpb.FieldDescriptorProto_TYPE_UINT64,
		descriptorpb.FieldDescriptorProto_TYPE_SINT32,
		descriptorpb.FieldDescriptorProto_TYPE_SINT64,
		descriptorpb.FieldDescriptorProto_TYPE_FIXED32,
		descriptorpb.FieldDescriptorProto_TYPE_FIXED64,
		descriptorpb.FieldDescriptorProto_TYPE_SFIXED32,
		descriptorpb.FieldDescriptorProto_TYPE_SFIXED64:
		return fieldType{expr: "int", defaultVal: "0"}, nil
	case descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		entry, err := g.resolver.lookup(field.GetTypeName())
		if err != nil {
			return fieldType{}, err
		}
		if entry.enum == nil {
			return fieldType{}, fmt.Errorf("field %s: %q is not an enum", field.GetName(), field.GetTypeName())
		}
		ref := g.typeRef(entry)
		return fieldType{expr: ref, defaultVal: ref + "." + entry.enumDefault()}, nil
	case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE:
		entry, err := g.resolver.lookup(field.GetTypeName())
		if err != nil {
			return fieldType{}, err
		}
		if entry.message == nil {
			return fieldType{}, fmt.Errorf("field %s: %q is not a message", field.GetName(), field.GetTypeName())
		}
		ref := g.typeRef(entry)
		return fieldType{expr: ref, defaultVal: ref + "()"}, nil
	default:
		return fieldType{}, fmt.Errorf("field %s: unsupported wire kind %s", field.GetName(), field.GetType())
	}
}
