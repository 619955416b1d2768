// Package driver runs the whole pipeline over one source text: parse,
// analyze, lower to three-address code, optimize and run the reference
// interpreter.
package driver

import (
	"errors"
	"fmt"

	"github.com/tinyrange/mathseq/internal/ast"
	"github.com/tinyrange/mathseq/internal/diag"
	"github.com/tinyrange/mathseq/internal/interp"
	"github.com/tinyrange/mathseq/internal/ir"
	"github.com/tinyrange/mathseq/internal/lexer"
	"github.com/tinyrange/mathseq/internal/logging"
	"github.com/tinyrange/mathseq/internal/parser"
	"github.com/tinyrange/mathseq/internal/sema"
)

// ErrSemantic is returned, wrapped, when analysis reports errors.
var ErrSemantic = errors.New("semantic analysis failed")

type Options struct {
	Optimize bool
	Debug    bool
	// Input feeds the input built-in. Nil behaves as an empty stream.
	Input  interp.LineReader
	Logger *logging.Logger
}

func DefaultOptions() Options {
	return Options{Optimize: true}
}

// Result holds every intermediate product. Fields after the failing phase
// are zero.
type Result struct {
	Name        string
	Tokens      []lexer.Token
	Program     *ast.Program
	Diagnostics *diag.Engine
	Raw         []ir.Instr
	Optimized   []ir.Instr
	Stats       []ir.PassStats
	Exec        interp.Result
}

// Code returns the instructions the listing shows.
func (r *Result) Code() []ir.Instr {
	if r.Optimized != nil {
		return r.Optimized
	}
	return r.Raw
}

func Compile(name, src string, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = logging.New("driver", opts.Debug)
	}
	res := &Result{Name: name}

	log.Debug("lexing %s", name)
	res.Tokens = lexer.Tokenize(src)

	log.Debug("parsing")
	prog, err := parser.Parse(src)
	if err != nil {
		return res, err
	}
	res.Program = prog

	log.Debug("semantic analysis")
	an := sema.New()
	ok := an.Analyze(prog)
	res.Diagnostics = an.Diagnostics()
	res.Diagnostics.Report(log.With("sema"))
	if !ok {
		return res, fmt.Errorf("%w: %d error(s)", ErrSemantic, res.Diagnostics.ErrorCount())
	}

	log.Debug("generating three-address code")
	raw, err := ir.Generate(prog)
	if err != nil {
		return res, err
	}
	res.Raw = raw
	log.Debug("generated %d instructions", len(raw))

	if opts.Optimize {
		log.Debug("optimizing")
		res.Optimized, res.Stats = ir.OptimizeWith(raw, log.With("optimizer"))
	}

	log.Debug("running")
	var iopts []interp.Option
	if opts.Input != nil {
		iopts = append(iopts, interp.WithInput(opts.Input))
	}
	res.Exec = interp.New(prog, iopts...).Run()
	if res.Exec.Err != nil {
		log.Debug("execution stopped: %v", res.Exec.Err)
	}
	return res, nil
}
