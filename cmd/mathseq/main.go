package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tinyrange/mathseq/internal/ast"
	"github.com/tinyrange/mathseq/internal/driver"
	"github.com/tinyrange/mathseq/internal/emit"
	"github.com/tinyrange/mathseq/internal/interp"
	"github.com/tinyrange/mathseq/internal/lexer"
	"github.com/tinyrange/mathseq/internal/logging"
	"github.com/tinyrange/mathseq/internal/parser"
)

func printVersion() {
	fmt.Println("mathseq version 0.1")
}

func printUsage() {
	printVersion()
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  mathseq [FLAGS] FILE")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Printf("  %s=true enables debug logging of the compiler phases.\n", logging.DebugEnv)
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}

func tokenizeFile(src string, out io.Writer) error {
	for _, tok := range lexer.Tokenize(src) {
		fmt.Fprintf(out, "%s:%s:%d:%d\n", tok.Type, tok.Lex, tok.Line, tok.Col)
		if tok.Type == lexer.ILLEGAL {
			return fmt.Errorf("illegal token %q at %d:%d", tok.Lex, tok.Line, tok.Col)
		}
	}
	return nil
}

func dumpAST(src string, out io.Writer) error {
	prog, err := parser.Parse(src)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, ast.Dump(prog))
	return err
}

func stdinIsTerminal() bool {
	fi, err := os.Stdin.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

// historyFile keeps the lines typed at input prompts between runs.
const historyFile = ".mathseq_history"

// terminalInput opens a line-editing reader with its history loaded. The
// returned function saves the history and restores the terminal.
func terminalInput(log *logging.Logger) (*interp.LinerReader, func()) {
	lr := interp.NewLinerReader()
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		if _, err := lr.ReadHistory(f); err != nil {
			log.Debug("reading history %s: %v", histPath, err)
		}
		f.Close()
	}
	return lr, func() {
		if f, err := os.Create(histPath); err == nil {
			if _, err := lr.WriteHistory(f); err != nil {
				log.Debug("writing history %s: %v", histPath, err)
			}
			f.Close()
		}
		lr.Close()
	}
}

func compileFile(path string, src string, opts driver.Options, out io.Writer) error {
	res, err := driver.Compile(filepath.Base(path), src, opts)
	if err != nil {
		return err
	}
	return writeListing(res, out)
}

func writeListing(res *driver.Result, out io.Writer) error {
	_, err := io.WriteString(out, emit.Listing(res.Name, res.Code(), &res.Exec))
	return err
}

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = printUsage
	version := flag.Bool("version", false, "Print version info and exit.")
	outputPath := flag.String("o", "-", "File to write the listing to, - for stdout.")
	tokenize := flag.Bool("tokens", false, "Print the token stream and exit.")
	printAST := flag.Bool("ast", false, "Print the syntax tree and exit.")
	noOpt := flag.Bool("no-opt", false, "Emit the unoptimized three-address code.")
	debug := flag.Bool("debug", false, "Enable debug logging.")
	flag.Parse()

	if *version {
		printVersion()
		return 0
	}
	if flag.NArg() != 1 {
		printUsage()
		return 2
	}
	path := flag.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read source file %s: %s\n", path, err)
		return 1
	}
	src := string(data)

	var out io.WriteCloser = os.Stdout
	if *outputPath != "-" {
		out, err = os.Create(*outputPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open output file %s: %s\n", *outputPath, err)
			return 1
		}
		defer out.Close()
	}

	switch {
	case *tokenize:
		err = tokenizeFile(src, out)
	case *printAST:
		err = dumpAST(src, out)
	default:
		opts := driver.DefaultOptions()
		opts.Optimize = !*noOpt
		opts.Debug = *debug
		log := logging.New("mathseq", *debug)
		opts.Logger = log
		if interp.TerminalSupported() && stdinIsTerminal() {
			lr, done := terminalInput(log)
			defer done()
			opts.Input = lr
		} else {
			opts.Input = interp.NewReader(os.Stdin, os.Stderr)
		}
		err = compileFile(path, src, opts, out)
		if err == nil && *outputPath != "-" {
			log.Info("listing written to %s", *outputPath)
		}
		defer log.PrintSummary(os.Stderr)
		if log.HasErrors() {
			return 1
		}
	}
	if err != nil {
		if !errors.Is(err, driver.ErrSemantic) {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}
	return 0
}
