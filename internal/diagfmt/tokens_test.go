package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"chainalign/internal/source"
	"chainalign/internal/token"
)

func sampleStream() *token.Stream {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.js", []byte("a\n  .b"))
	f := fs.Get(id)
	mk := func(kind token.Kind, start, end uint32) token.Token {
		return token.Token{
			Kind:  kind,
			Span:  source.Span{File: id, Start: start, End: end},
			Text:  string(f.Content[start:end]),
			Start: f.Position(start),
			End:   f.Position(end),
		}
	}
	return token.NewStream([]token.Token{
		mk(token.Identifier, 0, 1),
		mk(token.Dot, 4, 5),
		mk(token.Identifier, 5, 6),
	})
}

func TestFormatTokensPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, sampleStream()); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "Dot") || !strings.Contains(lines[1], "at 2:3-2:4 (leading)") {
		t.Errorf("unexpected dot line: %q", lines[1])
	}
}

func TestFormatTokensJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, sampleStream()); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out) != 3 || out[2].Kind != "Identifier" || out[2].Position != "trailing" || out[2].Line != 2 {
		t.Fatalf("unexpected tokens: %+v", out)
	}
}
