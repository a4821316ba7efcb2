package builtins

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/ironcamel-lang/ironcamel/internal/value"
)

// handle is a tagged variant of the four kinds of open-file record
// (spec.md §3 "Global state": buffered reader, buffered writer, stdin,
// stdout).
type handle struct {
	kind    handleKind
	reader  *bufio.Reader
	writer  *bufio.Writer
	closeFn func() error
}

type handleKind int

const (
	kindReader handleKind = iota
	kindWriter
	kindStdin
	kindStdout
)

// Handles is the open-file table: a mapping from handle name to an open
// file record, owned by the interpreter and mutated only while executing
// `main` (spec.md §5 "Resource model").
type Handles struct {
	table map[string]*handle
}

// NewHandles returns a table with the pre-registered stdin/stdout handles
// (spec.md §4.4 "Standard handles stdin and stdout are pre-registered").
func NewHandles(stdin io.Reader, stdout io.Writer) *Handles {
	return &Handles{
		table: map[string]*handle{
			"stdin":  {kind: kindStdin, reader: bufio.NewReader(stdin)},
			"stdout": {kind: kindStdout, writer: bufio.NewWriter(stdout)},
		},
	}
}

// Flush flushes any buffered stdout/file writers; called once at the end
// of `main` so partial output is not lost (spec.md §7 "Partial output
// already written ... is not rolled back" implies it must actually reach
// the stream).
func (h *Handles) Flush() error {
	for _, rec := range h.table {
		if rec.writer != nil {
			if err := rec.writer.Flush(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close releases every file handle opened during execution (spec.md §3
// "released at process exit").
func (h *Handles) Close() {
	for _, rec := range h.table {
		if rec.closeFn != nil {
			_ = rec.closeFn()
		}
	}
}

// ioProcNames is the closed set of I/O built-in names, reachable only
// through the `@` statement forms (spec.md §4.4, §6), never through
// ordinary parenthesized call syntax.
var ioProcNames = map[string]bool{
	"fopen_read":  true,
	"fopen_write": true,
	"readstr":     true,
	"writeline":   true,
	"writelist":   true,
}

// IsIOProc reports whether name is one of the I/O built-ins.
func IsIOProc(name string) bool { return ioProcNames[name] }

// HandleError reports an I/O mode mismatch or missing handle (spec.md §7
// "io" error kind).
type HandleError struct {
	Handle string
	Reason string
}

func (e *HandleError) Error() string {
	return fmt.Sprintf("handle %q: %s", e.Handle, e.Reason)
}

// OpenRead opens path for reading and registers it under name. Failure to
// open is fatal (spec.md §4.5 FileOpen).
func (h *Handles) OpenRead(name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening %s for read", path)
	}
	h.table[name] = &handle{kind: kindReader, reader: bufio.NewReader(f), closeFn: f.Close}
	return nil
}

// OpenWrite creates path for writing and registers it under name.
func (h *Handles) OpenWrite(name, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "opening %s for write", path)
	}
	w := bufio.NewWriter(f)
	h.table[name] = &handle{kind: kindWriter, writer: w, closeFn: func() error {
		if ferr := w.Flush(); ferr != nil {
			return ferr
		}
		return f.Close()
	}}
	return nil
}

// ReadLine reads one line from the named handle. A trailing newline is
// stripped for stdin; a file's raw line (including its terminator, if any)
// is returned unmodified — an observable contract spec.md §5 calls out
// explicitly.
func (h *Handles) ReadLine(name string) (string, error) {
	rec, ok := h.table[name]
	if !ok {
		return "", &HandleError{Handle: name, Reason: "no such handle"}
	}
	if rec.kind != kindReader && rec.kind != kindStdin {
		return "", &HandleError{Handle: name, Reason: "not open for reading"}
	}
	line, err := rec.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Wrapf(err, "reading from %s", name)
	}
	if err == io.EOF && line == "" {
		return "", errors.Wrapf(io.EOF, "reading from %s", name)
	}
	if rec.kind == kindStdin {
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
	}
	return line, nil
}

// formatValue renders a value the way writeline/writelist do: integers and
// booleans by their literal text, strings verbatim (spec.md §4.4).
func formatValue(v value.Value) (string, error) {
	switch v := v.(type) {
	case value.Integer:
		return v.String(), nil
	case value.Bool:
		return v.String(), nil
	case value.String:
		return v.V, nil
	default:
		return "", &value.TypeMismatchError{Where: "writeline/writelist", Want: "integer, bool, or string", Got: v}
	}
}

// WriteLine formats v and appends a newline (spec.md §4.4 `writeline`).
func (h *Handles) WriteLine(name string, v value.Value) error {
	rec, err := h.writer(name)
	if err != nil {
		return err
	}
	s, err := formatValue(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(rec, s)
	return err
}

// WriteList formats each element of l followed by a single space, closing
// with one newline (spec.md §4.4 `writelist`).
func (h *Handles) WriteList(name string, l *value.List) error {
	rec, err := h.writer(name)
	if err != nil {
		return err
	}
	for _, v := range l.ToSlice() {
		s, err := formatValue(v)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprint(rec, s, " "); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(rec)
	return err
}

func (h *Handles) writer(name string) (*bufio.Writer, error) {
	rec, ok := h.table[name]
	if !ok {
		return nil, &HandleError{Handle: name, Reason: "no such handle"}
	}
	if rec.kind != kindWriter && rec.kind != kindStdout {
		return nil, &HandleError{Handle: name, Reason: "not open for writing"}
	}
	return rec.writer, nil
}
