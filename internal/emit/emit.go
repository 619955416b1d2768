// Package emit renders the compiler listing: the three-address code
// followed by the reference run's output as comment lines.
package emit

import (
	"fmt"
	"io"
	"strings"

	"github.com/tinyrange/mathseq/internal/interp"
	"github.com/tinyrange/mathseq/internal/ir"
)

type emitter struct {
	o io.Writer
}

func (e *emitter) emit(format string, args ...any) {
	fmt.Fprintf(e.o, format, args...)
	io.WriteString(e.o, "\n")
}

func (e *emitter) comment(format string, args ...any) {
	e.emit("; "+format, args...)
}

// Listing returns the listing for source name. A nil run omits the
// program output section.
func Listing(name string, code []ir.Instr, run *interp.Result) string {
	var b strings.Builder
	WriteListing(&b, name, code, run)
	return b.String()
}

func WriteListing(w io.Writer, name string, code []ir.Instr, run *interp.Result) {
	e := &emitter{o: w}
	e.comment("MathSeq Compiler Output")
	e.comment("Source: %s", name)
	e.comment("=======================")
	e.emit("")
	for _, in := range code {
		e.emit("%s", in)
	}
	if run == nil {
		return
	}
	e.emit("")
	e.comment("Program Output")
	e.comment("--------------")
	if len(run.Output) == 0 {
		e.comment("(no print statements)")
	}
	for _, out := range run.Output {
		// keep multi-line values inside the comment block
		for _, line := range strings.Split(out, "\n") {
			e.comment("%s", line)
		}
	}
	if run.Err != nil {
		e.comment("Execution skipped: %v", run.Err)
		return
	}
	e.comment("Exit Code: %d", run.ExitCode)
}
