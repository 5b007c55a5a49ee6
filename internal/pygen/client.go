package pygen

import (
	"fmt"
	"path"
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"
)

// rpcShape names the channel factory and the handler constructor for a
// method's streaming mode: unary_unary, unary_stream, stream_unary or
// stream_stream.
func rpcShape(m *descriptorpb.MethodDescriptorProto) string {
	in, out := "unary", "unary"
	if m.GetClientStreaming() {
		in = "stream"
	}
	if m.GetServerStreaming() {
		out = "stream"
	}
	return in + "_" + out
}

func (g *generator) addUtilitiesImport() string {
	dir := path.Dir(g.file.GetName())
	if dir == "." {
		g.imports.add(fmt.Sprintf("import %s", g.params.utilitiesModule))
	} else {
		g.imports.add(fmt.Sprintf("from %s import %s", strings.ReplaceAll(dir, "/", "."), g.params.utilitiesModule))
	}
	return g.params.utilitiesModule
}

// generateServiceStub emits the client class for one service: the
// constructor binds one multicallable per method under the method's
// fully-qualified RPC path, and one wrapper method per RPC selects the call
// shape for the streaming mode. The aio flag picks the deferred variant;
// the wrappers themselves read the same either way because the channel
// decides whether a call blocks or returns a future.
func (g *generator) generateServiceStub(svc *descriptorpb.ServiceDescriptorProto, aio bool) error {
	fullName := g.qualifiedServiceName(svc)
	g.p("class %sStub(object):", svc.GetName())
	g.in()
	if aio {
		g.p("\"\"\"Deferred client for the %s service.\"\"\"", fullName)
	} else {
		g.p("\"\"\"Blocking client for the %s service.\"\"\"", fullName)
	}
	g.p("")
	g.p("def __init__(self, channel):")
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
		g.p("self._%s = channel.%s(", toSnake(m.GetName()), rpcShape(m))
		g.in()
		g.p("'/%s/%s',", fullName, m.GetName())
		g.p("request_serializer=%s.SerializeToString,", g.typeRef(inEntry))
		g.p("response_deserializer=%s.FromString,", g.typeRef(outEntry))
		g.out()
		g.p(")")
	}
	g.out()
	for _, m := range svc.Method {
		g.p("")
		if err := g.generateClientMethod(m, aio); err != nil {
			return err
		}
	}
	g.out()
	g.p("")
	return nil
}

func (g *generator) generateClientMethod(m *descriptorpb.MethodDescriptorProto, aio bool) error {
	name := toSnake(m.GetName())
	switch {
	case m.GetClientStreaming() && m.GetServerStreaming():
		utilities := g.addUtilitiesImport()
		stream, call := "RequestStream", "BidiCall"
		if aio {
			stream, call = "AsyncRequestStream", "AsyncBidiCall"
		}
		g.p("def %s(self, timeout=None, metadata=None):", m.GetName())
		g.in()
		g.p("requests = %s.%s()", utilities, stream)
		g.p("responses = self._%s(requests, timeout=timeout, metadata=metadata)", name)
		g.p("return %s.%s(requests, responses)", utilities, call)
		g.out()
	case m.GetClientStreaming():
		g.p("def %s(self, request_iterator, timeout=None, metadata=None):", m.GetName())
		g.in()
		g.p("return self._%s(request_iterator, timeout=timeout, metadata=metadata)", name)
		g.out()
	default:
		// Unary input: the request message's own fields become named
		// parameters, and the request is rebuilt before the call.
		return g.generateUnaryInputMethod(m)
	}
	return nil
}

func (g *generator) generateUnaryInputMethod(m *descriptorpb.MethodDescriptorProto) error {
	inEntry, err := g.resolver.lookup(m.GetInputType())
	if err != nil {
		return err
	}
	if inEntry.message == nil {
		return fmt.Errorf("method %s: input type %q is not a message", m.GetName(), m.GetInputType())
	}
	msg := inEntry.message
	synthetic := syntheticOneofs(msg)

	var args []string
	var ctorKwargs []string
	var condSets []string
	for _, field := range msg.Field {
		ft, err := g.mapField(field)
		if err != nil {
			return err
		}
		raw := field.GetName()
		pname := escapeParamName(raw)
		keyword := pyReservedKeywords[raw]
		inUnion := field.OneofIndex != nil && !field.GetProto3Optional() && !synthetic[field.GetOneofIndex()]

		if inUnion || field.GetProto3Optional() {
			args = append(args, pname+"=None")
			singularMessage := field.GetType() == descriptorpb.FieldDescriptorProto_TYPE_MESSAGE &&
				field.GetLabel() != descriptorpb.FieldDescriptorProto_LABEL_REPEATED
			// Keyword field names cannot appear after a dot, so the
			// attribute is reached through getattr/setattr instead.
			var assign string
			switch {
			case keyword && singularMessage:
				assign = fmt.Sprintf("getattr(request, '%s').CopyFrom(%s)", raw, pname)
			case keyword:
				assign = fmt.Sprintf("setattr(request, '%s', %s)", raw, pname)
			case singularMessage:
				assign = fmt.Sprintf("request.%s.CopyFrom(%s)", raw, pname)
			default:
				assign = fmt.Sprintf("request.%s = %s", raw, pname)
			}
			condSets = append(condSets, fmt.Sprintf("if %s is not None:\n    %s", pname, assign))
		} else {
			args = append(args, pname+"="+ft.defaultVal)
			if keyword {
				ctorKwargs = append(ctorKwargs, fmt.Sprintf("**{'%s': %s}", raw, pname))
			} else {
				ctorKwargs = append(ctorKwargs, fmt.Sprintf("%s=%s", raw, pname))
			}
		}
	}

	argList := ""
	if len(args) > 0 {
		argList = strings.Join(args, ", ") + ", "
	}
	g.p("def %s(self, %stimeout=None, metadata=None):", m.GetName(), argList)
	g.in()
	g.p("request = %s(%s)", g.typeRef(inEntry), strings.Join(ctorKwargs, ", "))
	for _, cond := range condSets {
		g.p("%s", cond)
	}
	g.p("return self._%s(request, timeout=timeout, metadata=metadata)", toSnake(m.GetName()))
	g.out()
	return nil
}
