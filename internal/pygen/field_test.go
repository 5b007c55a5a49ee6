package pygen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

func TestMapField_ScalarKinds(t *testing.T) {
	tests := []struct {
		kind        descriptorpb.FieldDescriptorProto_Type
		wantExpr    string
		wantDefault string
	}{
		{descriptorpb.FieldDescriptorProto_TYPE_BYTES, "bytes", "b''"},
		{descriptorpb.FieldDescriptorProto_TYPE_STRING, "str", "''"},
		{descriptorpb.FieldDescriptorProto_TYPE_BOOL, "bool", "False"},
		{descriptorpb.FieldDescriptorProto_TYPE_DOUBLE, "float", "0.0"},
		{descriptorpb.FieldDescriptorProto_TYPE_FLOAT, "float", "0.0"},
		{descriptorpb.FieldDescriptorProto_TYPE_INT32, "int", "0"},
		{descriptorpb.FieldDescriptorProto_TYPE_INT64, "int", "0"},
		{descriptorpb.FieldDescriptorProto_TYPE_UINT32, "int", "0"},
		{descriptorpb.FieldDescriptorProto_TYPE_UINT64, "int", "0"},
		{descriptorpb.FieldDescriptorProto_TYPE_SINT32, "int", "0"},
		{descriptorpb.FieldDescriptorProto_TYPE_SINT64, "int", "0"},
		{descriptorpb.FieldDescriptorProto_TYPE_FIXED32, "int", "0"},
		{descriptorpb.FieldDescriptorProto_TYPE_FIXED64, "int", "0"},
		{descriptorpb.FieldDescriptorProto_TYPE_SFIXED32, "int", "0"},
		{descriptorpb.FieldDescriptorProto_TYPE_SFIXED64, "int", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			g := testGenerator(testFile("test.proto", "test"))
			ft, err := g.mapField(scalarField("f", 1, tt.kind))
			require.NoError(t, err)
			assert.Equal(t, tt.wantExpr, ft.expr)
			assert.Equal(t, tt.wantDefault, ft.defaultVal)
			assert.True(t, g.imports.empty())
		})
	}
}

func TestMapField_EnumDefaultsToFirstValue(t *testing.T) {
	file := testFile("colors.proto", "palette")
	file.EnumType = []*descriptorpb.EnumDescriptorProto{testEnum("Color", "RED", "GREEN")}
	g := testGenerator(file)

	ft, err := g.mapField(typedField("color", 1, descriptorpb.FieldDescriptorProto_TYPE_ENUM, ".palette.Color"))
	require.NoError(t, err)
	assert.Equal(t, "Color", ft.expr)
	assert.Equal(t, "Color.RED", ft.defaultVal)
}

func TestMapField_ForeignEnum(t *testing.T) {
	local := testFile("main.proto", "app")
	foreign := testFile("colors.proto", "palette")
	foreign.EnumType = []*descriptorpb.EnumDescriptorProto{testEnum("Color", "RED", "GREEN")}
	g := testGenerator(local, foreign)

	ft, err := g.mapField(typedField("color", 1, descriptorpb.FieldDescriptorProto_TYPE_ENUM, ".palette.Color"))
	require.NoError(t, err)
	assert.Equal(t, "colors__pb2.Color", ft.expr)
	assert.Equal(t, "colors__pb2.Color.RED", ft.defaultVal)
	assert.Equal(t, []string{"import colors_pb2 as colors__pb2"}, g.imports.sorted())
}

func TestMapField_MessageConstructsZeroArg(t *testing.T) {
	file := testFile("items.proto", "shop")
	file.MessageType = []*descriptorpb.DescriptorProto{{Name: proto.String("Item")}}
	g := testGenerator(file)

	ft, err := g.mapField(typedField("item", 1, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, ".shop.Item"))
	require.NoError(t, err)
	assert.Equal(t, "Item", ft.expr)
	assert.Equal(t, "Item()", ft.defaultVal)
}

func TestMapField_RepeatedWrapsInList(t *testing.T) {
	g := testGenerator(testFile("test.proto", "test"))
	ft, err := g.mapField(repeated(scalarField("tags", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING)))
	require.NoError(t, err)
	assert.Equal(t, "typing.List[str]", ft.expr)
	assert.Equal(t, "[]", ft.defaultVal)
	assert.Equal(t, "import typing", ft.aux)
}

func TestMapField_MapEntryBecomesDict(t *testing.T) {
	file := testFile("res.proto", "res")
	file.MessageType = []*descriptorpb.DescriptorProto{
		{
			Name: proto.String("Resource"),
			Field: []*descriptorpb.FieldDescriptorProto{
				repeated(typedField("labels", 1, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, ".res.Resource.LabelsEntry")),
			},
			NestedType: []*descriptorpb.DescriptorProto{
				mapEntry("LabelsEntry",
					scalarField("key", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
					scalarField("value", 2, descriptorpb.FieldDescriptorProto_TYPE_INT64)),
			},
		},
	}
	g := testGenerator(file)

	ft, err := g.mapField(file.MessageType[0].Field[0])
	require.NoError(t, err)
	assert.Equal(t, "typing.Dict[str, int]", ft.expr)
	assert.Equal(t, "{}", ft.defaultVal)
}

func TestMapField_MapWithMessageValue(t *testing.T) {
	file := testFile("res.proto", "res")
	file.MessageType = []*descriptorpb.DescriptorProto{
		{Name: proto.String("Item")},
		{
			Name: proto.String("Resource"),
			Field: []*descriptorpb.FieldDescriptorProto{
				repeated(typedField("items", 1, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, ".res.Resource.ItemsEntry")),
			},
			NestedType: []*descriptorpb.DescriptorProto{
				mapEntry("ItemsEntry",
					scalarField("key", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
					typedField("value", 2, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, ".res.Item")),
			},
		},
	}
	g := testGenerator(file)

	ft, err := g.mapField(file.MessageType[1].Field[0])
	require.NoError(t, err)
	assert.Equal(t, "typing.Dict[str, Item]", ft.expr)
}

func TestMapField_UnsupportedKindIsFatal(t *testing.T) {
	g := testGenerator(testFile("test.proto", "test"))
	_, err := g.mapField(scalarField("g", 1, descriptorpb.FieldDescriptorProto_TYPE_GROUP))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported wire kind")
}

func TestMapField_UnresolvableReferenceIsFatal(t *testing.T) {
	g := testGenerator(testFile("test.proto", "test"))
	_, err := g.mapField(typedField("m", 1, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, ".test.Missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unresolvable type reference")
}
