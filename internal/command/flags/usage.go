// Package flags holds helpers shared by the command line flag sets.
package flags

import (
	"bytes"
	"flag"
	"fmt"
	"strings"
)

// Usage appends the flag defaults of fs to the help text txt.
func Usage(txt string, fs *flag.FlagSet) string {
	var buf bytes.Buffer

	buf.WriteString(strings.TrimRight(txt, "\n"))
	buf.WriteString("\n")

	if fs == nil {
		return buf.String()
	}

	first := true
	fs.VisitAll(func(f *flag.Flag) {
		if first {
			buf.WriteString("\nCommand Options:\n")
			first = false
		}
		fmt.Fprintf(&buf, "\n  -%s=%s\n", f.Name, f.DefValue)
		fmt.Fprintf(&buf, "     %s\n", f.Usage)
	})

	return buf.String()
}
