package pygen

import "google.golang.org/protobuf/types/descriptorpb"

// generateEnumStub declares the enum type and one constant per declared
// value, each typed as an instance of the enum. The first declared value is
// the implicit default of any field referencing the enum.
func (g *generator) generateEnumStub(enum *descriptorpb.EnumDescriptorProto) {
	g.p("class %s:", enum.GetName())
	g.in()
	if len(enum.Value) == 0 {
		g.p("...")
	}
	for _, value := range enum.Value {
		g.p("%s: '%s'", value.GetName(), enum.GetName())
	}
	g.out()
	g.p("")
}
