package pygen

import (
	"fmt"
	"strings"
)

// printer accumulates generated source text line by line. The indent
// string is prepended to every line written through p.
type printer struct {
	b      strings.Builder
	indent string
}

func (pr *printer) p(format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...)
	if line == "" {
		pr.b.WriteString("\n")
		return
	}
	for _, part := range strings.Split(line, "\n") {
		if part == "" {
			pr.b.WriteString("\n")
			continue
		}
		pr.b.WriteString(pr.indent)
		pr.b.WriteString(part)
		pr.b.WriteString("\n")
	}
}

func (pr *printer) in() {
	pr.indent += "    "
}

func (pr *printer) out() {
	if len(pr.indent) >= 4 {
		pr.indent = pr.indent[:len(pr.indent)-4]
	}
}

func (pr *printer) String() string {
	return pr.b.String()
}
