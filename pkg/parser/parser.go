// Package parser builds the positioned tree model from source text using
// tree-sitter grammars. Comments are split into a separate tree and indexed,
// together with multi-line literals, in [source.Contents].
package parser

import (
	"context"
	"fmt"
	"sync"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/Sumatoshi-tech/stylewalk/pkg/node"
	"github.com/Sumatoshi-tech/stylewalk/pkg/source"
)

// File is the parsed form of one source file.
type File struct {
	Name     string
	Language string
	Root     *node.Node
	Comments *node.Node
	Contents *source.Contents
}

// Option configures a [Parser].
type Option func(*Parser)

// WithTabWidth sets the tab width recorded in file contents.
func WithTabWidth(width int) Option {
	return func(p *Parser) {
		p.tabWidth = width
	}
}

// WithLanguage forces every file to be parsed with the named grammar
// instead of detecting it.
func WithLanguage(lang *Language) Option {
	return func(p *Parser) {
		p.forced = lang
	}
}

// Parser turns source text into trees. It is safe for concurrent use;
// tree-sitter parsers are pooled per language.
type Parser struct {
	tabWidth int
	forced   *Language
	pools    map[string]*sync.Pool
}

// New creates a parser.
func New(opts ...Option) *Parser {
	p := &Parser{
		tabWidth: source.DefaultTabWidth,
		pools:    make(map[string]*sync.Pool, len(languages)),
	}

	for _, opt := range opts {
		opt(p)
	}

	for name, lang := range languages {
		p.pools[name] = &sync.Pool{
			New: func() any {
				tsParser := sitter.NewParser()
				tsParser.SetLanguage(lang.grammar())

				return tsParser
			},
		}
	}

	return p
}

// Parse builds the tree of content. Malformed source yields a *ParseError
// and no tree.
func (p *Parser) Parse(ctx context.Context, name string, content []byte) (*File, error) {
	lang := p.forced
	if lang == nil {
		detected, err := Detect(name, content)
		if err != nil {
			return nil, err
		}

		lang = detected
	}

	err := ctx.Err()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	pool := p.pools[lang.Name]

	tsParser, ok := pool.Get().(*sitter.Parser)
	if !ok {
		return nil, errPoolType
	}

	defer pool.Put(tsParser)

	tree, err := tsParser.ParseString(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.IsNull() {
		return nil, &ParseError{File: name, Line: 1, Msg: "empty syntax tree"}
	}

	lines := source.NewLineIndex(content)

	b := &treeBuilder{
		file:     name,
		lang:     lang,
		content:  content,
		lines:    lines,
		contents: source.NewContents(name, lines, p.tabWidth),
	}

	perr := b.firstError(root)
	if perr != nil {
		return nil, perr
	}

	syntax, comments := b.build(root)

	return &File{
		Name:     name,
		Language: lang.Name,
		Root:     syntax,
		Comments: comments,
		Contents: b.contents,
	}, nil
}
