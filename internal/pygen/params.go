package pygen

import "strings"

type params struct {
	utilitiesModule string
	stubSuffix      string
}

func parseParameters(paramStr *string) params {
	p := params{utilitiesModule: "rpc_utilities", stubSuffix: "_pb2"} // defaults
	if paramStr == nil {
		return p
	}

	for _, param := range strings.Split(*paramStr, ",") {
		if strings.HasPrefix(param, "utilities_module=") {
			name := strings.TrimPrefix(param, "utilities_module=")
			if name != "" {
				p.utilitiesModule = name
			}
		}
		if strings.HasPrefix(param, "stub_suffix=") {
			suffix := strings.TrimPrefix(param, "stub_suffix=")
			if suffix != "" {
				p.stubSuffix = suffix
			}
		}
	}
	return p
}

// Python reserved keywords that cannot be used as attribute or parameter
// names in generated code
var pyReservedKeywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
}

// Escape Python reserved keywords by adding '_' suffix, matching what the
// upstream python plugin does for conflicting identifiers.
func escapePythonKeyword(name string) string {
	if pyReservedKeywords[name] {
		return name + "_"
	}
	return name
}

// Names already bound in a generated client method signature.
var pyReservedParams = map[string]bool{
	"self":     true,
	"request":  true,
	"timeout":  true,
	"metadata": true,
}

func escapeParamName(name string) string {
	name = escapePythonKeyword(name)
	if pyReservedParams[name] {
		return name + "_"
	}
	return name
}
