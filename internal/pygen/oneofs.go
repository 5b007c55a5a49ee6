package pygen

import (
	"google.golang.org/protobuf/types/descriptorpb"
)

type oneofSite struct {
	msgName string // dotted class path within the module, e.g. "Outer.Inner"
	oneof   *descriptorpb.OneofDescriptorProto
}

func collectOneofs(msg *descriptorpb.DescriptorProto, prefix string, sites []oneofSite) []oneofSite {
	name := prefix + msg.GetName()
	synthetic := syntheticOneofs(msg)
	for i, oneof := range msg.OneofDecl {
		if synthetic[int32(i)] {
			continue
		}
		sites = append(sites, oneofSite{msgName: name, oneof: oneof})
	}
	for _, nested := range msg.NestedType {
		if nested.GetOptions().GetMapEntry() {
			continue
		}
		sites = collectOneofs(nested, name+".", sites)
	}
	return sites
}

// generateOneofBindings produces the fragment inserted into the upstream
// *_pb2.py module. It binds three accessors per union onto the already
// declared message classes, plus the shared unwrap helper. The empty string
// means the file has no unions and no insertion is needed.
//
// WhichOneof is the single source of truth for which member is active; both
// derived accessors consult it and never track state of their own. The
// unwrap assertion guards the representation invariant that an active
// member always has backing storage; it firing is a programming error in
// the message class, not a condition callers handle.
func generateOneofBindings(file *descriptorpb.FileDescriptorProto, r *resolver, p params) (string, error) {
	var sites []oneofSite
	for _, msg := range file.MessageType {
		sites = collectOneofs(msg, "", sites)
	}
	if len(sites) == 0 {
		return "", nil
	}

	g := newGenerator(file, r, p)
	g.p("def _unwrap_oneof(value):")
	g.in()
	g.p("assert value is not None, 'oneof member is set but its storage is empty'")
	g.p("return value")
	g.out()

	for _, site := range sites {
		fn := "_" + toSnake(site.msgName) + "_" + site.oneof.GetName()
		name := site.oneof.GetName()

		g.p("")
		g.p("")
		g.p("def %s_value(self):", fn)
		g.in()
		g.p("which = self.WhichOneof('%s')", name)
		g.p("if which is None:")
		g.in()
		g.p("return None")
		g.out()
		g.p("return _unwrap_oneof(getattr(self, which))")
		g.out()

		g.p("")
		g.p("")
		g.p("def %s_which(self):", fn)
		g.in()
		g.p("return self.WhichOneof('%s')", name)
		g.out()

		g.p("")
		g.p("")
		g.p("def %s_dict(self):", fn)
		g.in()
		g.p("which = self.WhichOneof('%s')", name)
		g.p("if which is None:")
		g.in()
		g.p("return {}")
		g.out()
		g.p("return {which: getattr(self, which)}")
		g.out()

		g.p("")
		g.p("")
		g.p("%s.%s_value = %s_value", site.msgName, name, fn)
		g.p("%s.%s_which = %s_which", site.msgName, name, fn)
		g.p("%s.%s_dict = %s_dict", site.msgName, name, fn)
	}

	return g.String(), nil
}
