package pygen

import (
	"google.golang.org/protobuf/types/descriptorpb"
)

// generateServicer emits the handler base class: one overridable method per
// RPC whose default body reports UNIMPLEMENTED on the call context and
// raises, so both wire-level and in-process callers observe the failure.
// Server-streaming defaults end in an unreachable yield so the method is a
// generator, which the runtime requires of streaming handlers.
func (g *generator) generateServicer(svc *descriptorpb.ServiceDescriptorProto, aio bool) {
	g.p("class %sServicer(object):", svc.GetName())
	g.in()
	g.p("\"\"\"Handler base for the %s service. Override the methods you implement.\"\"\"", g.qualifiedServiceName(svc))
	for _, m := range svc.Method {
		request := "request"
		if m.GetClientStreaming() {
			request = "request_iterator"
		}
		def := "def"
		if aio {
			def = "async def"
		}
		g.p("")
		g.p("%s %s(self, %s, context):", def, m.GetName(), request)
		g.in()
		g.p("context.set_code(grpc.StatusCode.UNIMPLEMENTED)")
		g.p("context.set_details('Method not implemented!')")
		g.p("raise NotImplementedError('Method not implemented!')")
		if m.GetServerStreaming() {
			g.p("yield  # unreachable; makes this handler a generator")
		}
		g.out()
	}
	g.out()
	g.p("")
}

// generateRegistration emits the function wiring handler methods to method
// names with their codecs and registering the mapping under the service's
// fully-qualified name. It does not validate handler completeness; an
// unoverridden method simply reaches the unimplemented default.
func (g *generator) generateRegistration(svc *descriptorpb.ServiceDescriptorProto) error {
	g.p("def add_%sServicer_to_server(servicer, server):", svc.GetName())
	g.in()
	g.p("rpc_method_handlers = {")
	g.in()
	for _, m := range svc.Method {
		inEntry, err := g.resolver.lookup(m.GetInputType())
		if err != nil {
			return err
		}
		outEntry, err := g.resolver.lookup(m.GetOutputType())
		if err != nil {
			return err
		}
		g.p("'%s': grpc.%s_rpc_method_handler(", m.GetName(), rpcShape(m))
		g.in()
		g.p("servicer.%s,", m.GetName())
		g.p("request_deserializer=%s.FromString,", g.typeRef(inEntry))
		g.p("response_serializer=%s.SerializeToString,", g.typeRef(outEntry))
		g.out()
		g.p("),")
	}
	g.out()
	g.p("}")
	g.p("generic_handler = grpc.method_handlers_generic_handler(")
	g.in()
	g.p("'%s', rpc_method_handlers)", g.qualifiedServiceName(svc))
	g.out()
	g.p("server.add_generic_rpc_handlers((generic_handler,))")
	g.out()
	g.p("")
	return nil
}
