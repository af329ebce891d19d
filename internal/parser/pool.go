package parser

import (
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// pool recycles tree-sitter parsers for one grammar. A tree-sitter parser is
// not safe for concurrent use, so each goroutine leases its own.
type pool struct {
	lang *sitter.Language
	pool sync.Pool
}

func newPool(lang *sitter.Language) *pool {
	p := &pool{lang: lang}
	p.pool = sync.Pool{
		New: func() any {
			sp := sitter.NewParser()
			if err := sp.SetLanguage(lang); err != nil {
				sp.Close()
				return nil
			}
			return sp
		},
	}
	return p
}

func (p *pool) get() *sitter.Parser {
	sp, _ := p.pool.Get().(*sitter.Parser)
	return sp
}

func (p *pool) put(sp *sitter.Parser) {
	if sp == nil {
		return
	}
	sp.Reset()
	p.pool.Put(sp)
}
