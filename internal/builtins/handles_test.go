package builtins

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironcamel-lang/ironcamel/internal/value"
)

func TestStdinLineStripsNewlineFileDoesNot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(path, []byte("a,b c,,d\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	h := NewHandles(strings.NewReader("hello\n"), &bytes.Buffer{})

	stdinLine, err := h.ReadLine("stdin")
	if err != nil {
		t.Fatal(err)
	}
	if stdinLine != "hello" {
		t.Fatalf("stdin line = %q, want %q (trailing newline stripped)", stdinLine, "hello")
	}

	if err := h.OpenRead("f", path); err != nil {
		t.Fatal(err)
	}
	fileLine, err := h.ReadLine("f")
	if err != nil {
		t.Fatal(err)
	}
	if fileLine != "a,b c,,d\n" {
		t.Fatalf("file line = %q, want raw line with terminator", fileLine)
	}
}

func TestOpenWriteAndWriteList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	h := NewHandles(strings.NewReader(""), &bytes.Buffer{})
	if err := h.OpenWrite("out", path); err != nil {
		t.Fatal(err)
	}
	l := value.FromSlice([]value.Value{value.Integer{V: 1}, value.Integer{V: 2}, value.Integer{V: 3}})
	if err := h.WriteList("out", l); err != nil {
		t.Fatal(err)
	}
	h.Close()

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "1 2 3 \n" {
		t.Fatalf("file contents = %q, want %q", got, "1 2 3 \n")
	}
}

func TestWriteToUnopenedHandleIsError(t *testing.T) {
	h := NewHandles(strings.NewReader(""), &bytes.Buffer{})
	if err := h.WriteLine("nope", value.Integer{V: 1}); err == nil {
		t.Fatal("expected a HandleError for an unopened handle")
	}
}

func TestOpenReadMissingFileIsError(t *testing.T) {
	h := NewHandles(strings.NewReader(""), &bytes.Buffer{})
	if err := h.OpenRead("f", "/no/such/file.txt"); err == nil {
		t.Fatal("expected an error opening a missing file")
	}
}

func TestIsIOProc(t *testing.T) {
	for _, name := range []string{"fopen_read", "fopen_write", "readstr", "writeline", "writelist"} {
		if !IsIOProc(name) {
			t.Fatalf("IsIOProc(%q) = false, want true", name)
		}
	}
	if IsIOProc("+") {
		t.Fatal("IsIOProc(\"+\") = true, want false")
	}
}
