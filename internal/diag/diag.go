// Package diag renders Ironcamel's fatal diagnostics: a single line naming
// the error kind and location, with a source-line-and-caret excerpt,
// followed by process termination (spec.md §7). No diagnostic is ever
// recovered; the first one aborts execution.
package diag

import (
	"fmt"
	"strings"

	"github.com/ironcamel-lang/ironcamel/internal/token"
)

// Kind is one of the error categories spec.md §7 enumerates.
type Kind string

const (
	Lexical Kind = "lexical"
	Syntax  Kind = "syntactic"
	Name    Kind = "name"
	Arity   Kind = "arity"
	TypeErr Kind = "type"
	IO      Kind = "io"
	Runtime Kind = "runtime"
)

// Error is a single fatal diagnostic: its kind, the offending construct's
// position (or the variable/function name when position is unavailable),
// and a human-readable message.
type Error struct {
	Kind    Kind
	Pos     token.Position
	Subject string // offending variable/function name, when applicable
	Message string
}

func (e *Error) Error() string { return e.Message }

// New builds a diagnostic.
func New(kind Kind, pos token.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// NewNamed builds a diagnostic for a failure identified by name rather than
// (or in addition to) a token position, e.g. an undefined variable.
func NewNamed(kind Kind, pos token.Position, subject, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: pos, Subject: subject, Message: fmt.Sprintf(format, args...)}
}

// Format renders the diagnostic with a source line and caret: a header
// naming the kind and location, the offending source line, and a caret
// pointing at the column.
func (e *Error) Format(source, file string) string {
	var sb strings.Builder

	if file != "" {
		fmt.Fprintf(&sb, "%s error in %s:%s\n", e.Kind, file, e.Pos)
	} else {
		fmt.Fprintf(&sb, "%s error at %s\n", e.Kind, e.Pos)
	}

	if line := sourceLine(source, e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		col := e.Pos.Column
		if col < 1 {
			col = 1
		}
		sb.WriteString(strings.Repeat(" ", len(prefix)+col-1))
		sb.WriteString("^\n")
	}

	sb.WriteString(e.Message)
	if e.Subject != "" {
		fmt.Fprintf(&sb, " (%s)", e.Subject)
	}
	return sb.String()
}

func sourceLine(source string, line int) string {
	if source == "" || line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}
