package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"chainalign/internal/source"
	"chainalign/internal/token"
)

type TokenOutput struct {
	Kind     string      `json:"kind"`
	Text     string      `json:"text,omitempty"`
	Span     source.Span `json:"span"`
	Line     uint32      `json:"line"`
	Col      uint32      `json:"col"`
	Position string      `json:"position"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, stream *token.Stream) error {
	for i := 0; i < stream.Len(); i++ {
		tok := stream.At(i)
		if _, err := fmt.Fprintf(w, "%3d: %-15s %q at %d:%d-%d:%d (%s)\n",
			i+1, tok.Kind.String(), tok.Text,
			tok.Start.Line, tok.Start.Col, tok.End.Line, tok.End.Col,
			stream.Position(i)); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, stream *token.Stream) error {
	output := make([]TokenOutput, 0, stream.Len())
	for i := 0; i < stream.Len(); i++ {
		tok := stream.At(i)
		output = append(output, TokenOutput{
			Kind:     tok.Kind.String(),
			Text:     tok.Text,
			Span:     tok.Span,
			Line:     tok.Start.Line,
			Col:      tok.Start.Col,
			Position: stream.Position(i).String(),
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
