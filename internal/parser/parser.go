package parser

import (
	"errors"
	"fmt"
	"sync"

	"chainalign/internal/ast"
	"chainalign/internal/source"
	"chainalign/internal/token"
)

// ErrParseFailed is returned when tree-sitter produced no tree at all
// (cancelled or out of memory); syntax errors are not reported this way.
var ErrParseFailed = errors.New("parse failed")

// Parser analyzes source files. It is safe for concurrent use.
type Parser struct {
	mu    sync.Mutex
	pools map[Language]*pool
}

// New returns a Parser; grammars are loaded on first use.
func New() *Parser {
	return &Parser{pools: make(map[Language]*pool)}
}

func (p *Parser) poolFor(lang Language) (*pool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if pl, ok := p.pools[lang]; ok {
		return pl, nil
	}
	grammar, err := loadLanguage(lang)
	if err != nil {
		return nil, err
	}
	pl := newPool(grammar)
	p.pools[lang] = pl
	return pl, nil
}

// Parse analyzes f using the grammar selected by its extension.
func (p *Parser) Parse(f *source.File) (*ast.File, error) {
	lang, ok := DetectLanguage(f.Path)
	if !ok {
		return nil, fmt.Errorf("parser: %s: %w", f.Path, ErrUnsupportedLanguage)
	}
	return p.ParseAs(lang, f)
}

// ParseAs analyzes f with an explicit grammar.
func (p *Parser) ParseAs(lang Language, f *source.File) (*ast.File, error) {
	pl, err := p.poolFor(lang)
	if err != nil {
		return nil, fmt.Errorf("parser: %s: %w", f.Path, err)
	}
	sp := pl.get()
	if sp == nil {
		return nil, fmt.Errorf("parser: %s: grammar %s rejected by tree-sitter: %w", f.Path, lang, ErrParseFailed)
	}
	defer pl.put(sp)

	tree := sp.Parse(f.Content, nil)
	if tree == nil {
		return nil, fmt.Errorf("parser: %s: %w", f.Path, ErrParseFailed)
	}
	defer tree.Close()

	root := tree.RootNode()
	b := newBuilder(f)
	if err := b.collect(root, "", ""); err != nil {
		return nil, fmt.Errorf("parser: %s: %w", f.Path, err)
	}

	out := &ast.File{
		Tokens:    token.NewStream(b.toks),
		HasErrors: root.HasError(),
	}
	for i := uint(0); i < root.NamedChildCount(); i++ {
		if n := b.keep(b.expr(root.NamedChild(i))); n != nil {
			out.Roots = append(out.Roots, n)
		}
	}
	return out, nil
}
