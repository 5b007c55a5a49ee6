// Package pygen synthesizes Python gRPC bindings from a protoc code
// generator request: a typed interface stub per file, blocking and deferred
// client/server units for files with services, oneof accessor insertions
// into the upstream *_pb2 modules, and one shared stream-adapter module per
// output directory.
package pygen

import (
	"fmt"
	"path"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"
)

func findFile(files []*descriptorpb.FileDescriptorProto, name string) *descriptorpb.FileDescriptorProto {
	for _, f := range files {
		if f.GetName() == name {
			return f
		}
	}
	return nil
}

func outputStem(protoFile string) string {
	return strings.TrimSuffix(protoFile, ".proto") + "_pb2"
}

// Generate runs one full synthesis pass over the requested files. Any
// resolution or mapping failure aborts the invocation; no partial artifact
// set is returned.
func Generate(req *pluginpb.CodeGeneratorRequest) (*pluginpb.CodeGeneratorResponse, error) {
	p := parseParameters(req.Parameter)
	r := newResolver(req.ProtoFile)

	resp := &pluginpb.CodeGeneratorResponse{}
	resp.SupportedFeatures = proto.Uint64(uint64(pluginpb.CodeGeneratorResponse_FEATURE_PROTO3_OPTIONAL))

	// One utilities module per output directory, shared by every file in it.
	utilitiesEmitted := make(map[string]bool)

	for _, fileName := range req.FileToGenerate {
		file := findFile(req.ProtoFile, fileName)
		if file == nil {
			return nil, fmt.Errorf("file %q requested but not present in the request", fileName)
		}

		stub, err := generateStubFile(file, r, p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fileName, err)
		}
		// The stub stem is configurable; the insertion target and RPC
		// units keep the upstream _pb2 naming.
		stubStem := strings.TrimSuffix(fileName, ".proto") + p.stubSuffix
		resp.File = append(resp.File, &pluginpb.CodeGeneratorResponse_File{
			Name:    proto.String(stubStem + ".pyi"),
			Content: proto.String(stub),
		})

		bindings, err := generateOneofBindings(file, r, p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fileName, err)
		}
		if bindings != "" {
			resp.File = append(resp.File, &pluginpb.CodeGeneratorResponse_File{
				Name:           proto.String(outputStem(fileName) + ".py"),
				InsertionPoint: proto.String("module_scope"),
				Content:        proto.String(bindings),
			})
		}

		if len(file.Service) == 0 {
			continue
		}

		sync, err := generateRPCFile(file, r, p, false)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fileName, err)
		}
		resp.File = append(resp.File, &pluginpb.CodeGeneratorResponse_File{
			Name:    proto.String(outputStem(fileName) + "_grpc.py"),
			Content: proto.String(sync),
		})

		aio, err := generateRPCFile(file, r, p, true)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fileName, err)
		}
		resp.File = append(resp.File, &pluginpb.CodeGeneratorResponse_File{
			Name:    proto.String(outputStem(fileName) + "_grpc_aio.py"),
			Content: proto.String(aio),
		})

		dir := path.Dir(fileName)
		if !utilitiesEmitted[dir] {
			utilitiesEmitted[dir] = true
			utilitiesName := p.utilitiesModule + ".py"
			if dir != "." {
				utilitiesName = dir + "/" + utilitiesName
			}
			resp.File = append(resp.File, &pluginpb.CodeGeneratorResponse_File{
				Name:    proto.String(utilitiesName),
				Content: proto.String(utilitiesSource),
			})
		}
	}

	return resp, nil
}

// generateStubFile produces the type stub unit: enum and message
// declarations with typed attributes, defaults and oneof accessor
// signatures. Local types are referenced bare; foreign types through their
// module alias.
func generateStubFile(file *descriptorpb.FileDescriptorProto, r *resolver, p params) (string, error) {
	g := newGenerator(file, r, p)
	for _, enum := range file.EnumType {
		g.generateEnumStub(enum)
	}
	for _, msg := range file.MessageType {
		if err := g.generateMessageStub(msg); err != nil {
			return "", err
		}
	}
	return g.assemble(), nil
}

// generateRPCFile produces one RPC unit for a file with services: client
// stubs, servicer skeletons and registration functions. The aio flag
// selects the deferred variant. Both variants reference message types
// through the file's companion *_pb2 module.
func generateRPCFile(file *descriptorpb.FileDescriptorProto, r *resolver, p params, aio bool) (string, error) {
	g := newGenerator(file, r, p)
	g.selfAlias = moduleAlias(file.GetName())
	g.imports.add("import grpc")
	g.imports.add(moduleImport(file.GetName()))

	for _, svc := range file.Service {
		if err := g.generateServiceStub(svc, aio); err != nil {
			return "", err
		}
		g.p("")
		g.generateServicer(svc, aio)
		g.p("")
		if err := g.generateRegistration(svc); err != nil {
			return "", err
		}
	}
	return g.assemble(), nil
}
