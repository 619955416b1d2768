package interp

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/peterh/liner"
)

// LineReader supplies lines to the input built-in. It returns io.EOF when
// no more input is available.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

type scanReader struct {
	sc     *bufio.Scanner
	prompt io.Writer
}

// NewReader reads lines from r. Prompts are written to prompt unless it is
// nil.
func NewReader(r io.Reader, prompt io.Writer) LineReader {
	return &scanReader{sc: bufio.NewScanner(r), prompt: prompt}
}

func (s *scanReader) ReadLine(prompt string) (string, error) {
	if s.prompt != nil {
		io.WriteString(s.prompt, prompt)
	}
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.sc.Text(), nil
}

// LinerReader reads from the terminal with line editing and keeps entered
// lines in its history.
type LinerReader struct {
	st *liner.State
}

func NewLinerReader() *LinerReader {
	st := liner.NewLiner()
	st.SetCtrlCAborts(true)
	return &LinerReader{st: st}
}

func (l *LinerReader) ReadLine(prompt string) (string, error) {
	line, err := l.st.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		l.st.AppendHistory(line)
	}
	return line, nil
}

// ReadHistory and WriteHistory persist entered lines between runs.
func (l *LinerReader) ReadHistory(r io.Reader) (int, error)  { return l.st.ReadHistory(r) }
func (l *LinerReader) WriteHistory(w io.Writer) (int, error) { return l.st.WriteHistory(w) }

// Close restores the terminal mode.
func (l *LinerReader) Close() error { return l.st.Close() }

// TerminalSupported reports whether line editing is available.
func TerminalSupported() bool { return liner.TerminalSupported() }

// parseInputLine turns one input line into an integer: an integer literal,
// else a float truncated toward zero, else 0.
func parseInputLine(line string) int64 {
	line = strings.TrimSpace(line)
	if line == "" {
		return 0
	}
	if n, err := strconv.ParseInt(line, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(line, 64); err == nil {
		return int64(f)
	}
	return 0
}
