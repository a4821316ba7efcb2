package lexer

import (
	"testing"

	"github.com/ironcamel-lang/ironcamel/internal/token"
)

// TestKeywordPrefixDisambiguation checks that an identifier beginning with a
// keyword's spelling tokenizes as one IDENT, never a keyword followed by a
// remainder (spec.md §8 property 1).
func TestKeywordPrefixDisambiguation(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"iffy", "iffy"},
		{"letter", "letter"},
		{"thenceforth", "thenceforth"},
		{"elsewhere", "elsewhere"},
		{"truest", "truest"},
		{"falsetto", "falsetto"},
		{"fnord", "fnord"},
	}
	for _, tt := range tests {
		toks, err := Tokenize(tt.input)
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", tt.input, err)
		}
		if len(toks) != 2 || toks[0].Type != token.IDENT || toks[0].Literal != tt.want {
			t.Fatalf("Tokenize(%q) = %v, want one IDENT %q then EOF", tt.input, toks, tt.want)
		}
	}
}

func TestKeywordsStillRecognized(t *testing.T) {
	tests := []struct {
		input string
		want  token.Type
	}{
		{"fn", token.FN},
		{"let", token.LET},
		{"if", token.IF},
		{"then", token.THEN},
		{"else", token.ELSE},
		{"true", token.TRUE},
		{"false", token.FALSE},
	}
	for _, tt := range tests {
		toks, err := Tokenize(tt.input)
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", tt.input, err)
		}
		if toks[0].Type != tt.want {
			t.Fatalf("Tokenize(%q)[0].Type = %v, want %v", tt.input, toks[0].Type, tt.want)
		}
	}
}

func TestOperatorsAsIdentTokens(t *testing.T) {
	toks, err := Tokenize("40 + 2")
	if err != nil {
		t.Fatal(err)
	}
	want := []token.Type{token.INT, token.IDENT, token.INT, token.EOF}
	if len(toks) != len(want) {
		t.Fatalf("Tokenize(\"40 + 2\") = %v, want %d tokens", toks, len(want))
	}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Fatalf("token %d: got %v, want %v", i, toks[i].Type, tt)
		}
	}
	if toks[1].Literal != "+" {
		t.Fatalf("operator literal = %q, want %q", toks[1].Literal, "+")
	}
}

func TestLongestMatchOperators(t *testing.T) {
	tests := []struct {
		input string
		types []token.Type
	}{
		{"<=", []token.Type{token.IDENT, token.EOF}},
		{">=", []token.Type{token.IDENT, token.EOF}},
		{"==", []token.Type{token.IDENT, token.EOF}},
		{">>", []token.Type{token.READ_ARR, token.EOF}},
		{"<<", []token.Type{token.WRITE_ARR, token.EOF}},
	}
	for _, tt := range tests {
		toks, err := Tokenize(tt.input)
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", tt.input, err)
		}
		if len(toks) != len(tt.types) {
			t.Fatalf("Tokenize(%q) = %v, want %d tokens", tt.input, toks, len(tt.types))
		}
		for i, want := range tt.types {
			if toks[i].Type != want {
				t.Fatalf("Tokenize(%q)[%d].Type = %v, want %v", tt.input, i, toks[i].Type, want)
			}
		}
	}
}

func TestNumberLeadingZeroRejected(t *testing.T) {
	if _, err := Tokenize("007"); err == nil {
		t.Fatal("expected an error for a leading-zero integer literal")
	}
	toks, err := Tokenize("0")
	if err != nil {
		t.Fatalf("Tokenize(\"0\"): %v", err)
	}
	if toks[0].Type != token.INT || toks[0].IntValue != 0 {
		t.Fatalf("Tokenize(\"0\") = %v, want a single INT 0", toks)
	}
}

func TestStringEscapesAndNFC(t *testing.T) {
	toks, err := Tokenize(`"a\tb\nc"`)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if toks[0].Type != token.STRING || toks[0].Literal != "a\tb\nc" {
		t.Fatalf("got %q, want %q", toks[0].Literal, "a\tb\nc")
	}

	// "e" followed by a combining acute accent composes to U+00E9 under NFC.
	toks, err = Tokenize("\"é\"")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if toks[0].Type != token.STRING || toks[0].Literal != "é" {
		t.Fatalf("got %q, want %q", toks[0].Literal, "é")
	}
}

func TestUnterminatedStringIsLexicalError(t *testing.T) {
	_, err := Tokenize(`"abc`)
	if err == nil {
		t.Fatal("expected an unterminated string error")
	}
	if _, ok := err.(*Error); !ok {
		t.Fatalf("err = %T, want *lexer.Error", err)
	}
}

func TestUnrecognizedCharacter(t *testing.T) {
	_, err := Tokenize("let x = 1; #")
	if err == nil {
		t.Fatal("expected an unrecognized-character error")
	}
}

func TestComments(t *testing.T) {
	toks, err := Tokenize("let x = 1; // trailing comment\nx")
	if err != nil {
		t.Fatal(err)
	}
	var literals []string
	for _, tk := range toks {
		literals = append(literals, tk.Literal)
	}
	if toks[len(toks)-1].Type != token.EOF {
		t.Fatalf("last token should be EOF, got %v", toks[len(toks)-1])
	}
}
