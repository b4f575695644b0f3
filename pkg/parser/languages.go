package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"unsafe"

	sitter "github.com/alexaandru/go-tree-sitter-bare"
	golang "github.com/alexaandru/go-sitter-forest/go"
	"github.com/alexaandru/go-sitter-forest/java"
	"github.com/src-d/enry/v2"

	"github.com/Sumatoshi-tech/stylewalk/pkg/node"
)

// ErrUnsupportedLanguage is returned for files no grammar is registered for.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Language describes one grammar and how its comments and literals map onto
// the tree model.
type Language struct {
	Name string

	grammar  func() *sitter.Language
	comments map[string]node.Kind
	literals map[string]struct{}
}

func newLanguage(name string, fn func() unsafe.Pointer, comments map[string]node.Kind, literals ...string) *Language {
	lang := &Language{
		Name:     name,
		grammar:  sync.OnceValue(func() *sitter.Language { return sitter.NewLanguage(fn()) }),
		comments: comments,
		literals: make(map[string]struct{}, len(literals)),
	}

	for _, kind := range literals {
		lang.literals[kind] = struct{}{}
	}

	return lang
}

// languages maps lower-case language names to grammars.
var languages = map[string]*Language{ //nolint:gochecknoglobals // static grammar table.
	"go": newLanguage("go", golang.GetLanguage,
		map[string]node.Kind{"comment": ""},
		"raw_string_literal", "interpreted_string_literal"),
	"java": newLanguage("java", java.GetLanguage,
		map[string]node.Kind{"line_comment": node.KindLineComment, "block_comment": node.KindBlockComment},
		"string_literal", "text_block"),
}

// Lookup returns the grammar registered under name.
func Lookup(name string) (*Language, error) {
	lang, ok := languages[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, name)
	}

	return lang, nil
}

// Languages returns the supported language names, sorted.
func Languages() []string {
	names := make([]string, 0, len(languages))
	for name := range languages {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Detect guesses the language of a file from its name, falling back to
// content analysis when the name alone is ambiguous.
func Detect(filename string, content []byte) (*Language, error) {
	detected := enry.GetLanguage(filepath.Base(filename), nil)
	if detected == "" {
		detected = enry.GetLanguage(filepath.Base(filename), content)
	}

	if detected == "" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, filename)
	}

	return Lookup(detected)
}

// commentKind normalizes a grammar comment kind, reporting false for
// anything that is not a comment.
func (l *Language) commentKind(grammarKind, text string) (node.Kind, bool) {
	kind, ok := l.comments[grammarKind]
	if !ok {
		return "", false
	}

	if kind != "" {
		return kind, true
	}

	if strings.HasPrefix(text, "//") {
		return node.KindLineComment, true
	}

	return node.KindBlockComment, true
}

func (l *Language) isLiteral(grammarKind string) bool {
	_, ok := l.literals[grammarKind]

	return ok
}
