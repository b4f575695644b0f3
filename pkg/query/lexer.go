package query

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokName
	tokString
	tokNumber
	tokSlash
	tokDoubleSlash
	tokAxisSep
	tokLBracket
	tokRBracket
	tokLParen
	tokRParen
	tokAt
	tokComma
	tokPipe
	tokEq
	tokNeq
	tokLt
	tokLte
	tokGt
	tokGte
	tokDot
	tokDotDot
	tokStar
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// entityDecoder resolves the entities the query generator emits inside
// string literals. It runs in a single pass, so "&amp;lt;" decodes to "&lt;".
//
//nolint:gochecknoglobals // Immutable replacer.
var entityDecoder = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&apos;", "'",
	"&quot;", `"`,
	"&amp;", "&",
)

//nolint:gochecknoglobals // Static lookup table.
var punctuation = []struct {
	text string
	kind tokenKind
}{
	{"//", tokDoubleSlash},
	{"::", tokAxisSep},
	{"!=", tokNeq},
	{"<=", tokLte},
	{">=", tokGte},
	{"..", tokDotDot},
	{"/", tokSlash},
	{"[", tokLBracket},
	{"]", tokRBracket},
	{"(", tokLParen},
	{")", tokRParen},
	{"@", tokAt},
	{",", tokComma},
	{"|", tokPipe},
	{"=", tokEq},
	{"<", tokLt},
	{">", tokGt},
	{"*", tokStar},
}

func tokenize(input string) ([]token, error) {
	var tokens []token

	src := input

	for pos := 0; pos < len(src); {
		char, size := utf8.DecodeRuneInString(src[pos:])

		switch {
		case unicode.IsSpace(char):
			pos += size

		case char == '\'' || char == '"':
			text, next, err := scanString(src, pos)
			if err != nil {
				return nil, err
			}

			tokens = append(tokens, token{kind: tokString, text: text, pos: pos})
			pos = next

		case isDigit(src[pos]) || (char == '.' && pos+1 < len(src) && isDigit(src[pos+1])):
			end := pos
			for end < len(src) && (isDigit(src[end]) || src[end] == '.') {
				end++
			}

			tokens = append(tokens, token{kind: tokNumber, text: src[pos:end], pos: pos})
			pos = end

		case isNameStart(char):
			end := pos + size
			for end < len(src) {
				next, nextSize := utf8.DecodeRuneInString(src[end:])
				if !isNamePart(next) {
					break
				}

				end += nextSize
			}

			tokens = append(tokens, token{kind: tokName, text: src[pos:end], pos: pos})
			pos = end

		default:
			tok, ok := scanPunctuation(src, pos)
			if !ok {
				return nil, newSyntaxError(src, pos, "unexpected character %q", char)
			}

			tokens = append(tokens, tok)
			pos += len(tok.text)
		}
	}

	return append(tokens, token{kind: tokEOF, pos: len(src)}), nil
}

func scanPunctuation(src string, pos int) (token, bool) {
	for _, candidate := range punctuation {
		if strings.HasPrefix(src[pos:], candidate.text) {
			return token{kind: candidate.kind, text: candidate.text, pos: pos}, true
		}
	}

	if src[pos] == '.' {
		return token{kind: tokDot, text: ".", pos: pos}, true
	}

	return token{}, false
}

// scanString reads a quoted literal starting at pos. A doubled delimiter
// stands for the delimiter itself; entities are decoded afterwards.
func scanString(src string, pos int) (text string, next int, err error) {
	quote := src[pos]

	var sb strings.Builder

	for idx := pos + 1; idx < len(src); idx++ {
		if src[idx] != quote {
			sb.WriteByte(src[idx])

			continue
		}

		if idx+1 < len(src) && src[idx+1] == quote {
			sb.WriteByte(quote)
			idx++

			continue
		}

		return entityDecoder.Replace(sb.String()), idx + 1, nil
	}

	return "", 0, newSyntaxError(src, pos, "unterminated string literal")
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isNameStart(char rune) bool {
	return char == '_' || unicode.IsLetter(char)
}

func isNamePart(char rune) bool {
	return isNameStart(char) || unicode.IsDigit(char) || char == '-'
}
