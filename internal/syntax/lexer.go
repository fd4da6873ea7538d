package syntax

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// token is the lexer's output unit. trivia holds the raw bytes (whitespace
// and comments) between the previous token and this one, so the token
// stream round-trips to the original source.
type token struct {
	text   string
	trivia string
	offset int
}

func (t token) isEOF() bool { return t.text == "" }

// lex splits src into tokens. The lexer is tolerant: any byte it does not
// recognize becomes a single-byte token. The only hard failures are an
// unterminated string literal or block comment.
func lex(src []byte) ([]token, error) {
	var toks []token
	i := 0
	for {
		triviaStart := i
		var err error
		i, err = skipTrivia(src, i)
		if err != nil {
			return nil, err
		}
		trivia := string(src[triviaStart:i])
		if i >= len(src) {
			// the EOF token carries any trailing trivia
			toks = append(toks, token{text: "", trivia: trivia, offset: i})
			return toks, nil
		}

		start := i
		switch b := src[i]; {
		case b == '@':
			i++
			i = scanIdent(src, i)
		case isIdentStart(rune(b)):
			i = scanIdent(src, i)
		case b >= '0' && b <= '9':
			i = scanNumber(src, i)
		case b == '"':
			var serr error
			i, serr = scanString(src, i)
			if serr != nil {
				return nil, serr
			}
		default:
			_, size := utf8.DecodeRune(src[i:])
			i += size
		}
		toks = append(toks, token{text: string(src[start:i]), trivia: trivia, offset: start})
	}
}

func skipTrivia(src []byte, i int) (int, error) {
	for i < len(src) {
		switch {
		case src[i] == ' ' || src[i] == '\t' || src[i] == '\n' || src[i] == '\r':
			i++
		case src[i] == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case src[i] == '/' && i+1 < len(src) && src[i+1] == '*':
			end := i + 2
			for end+1 < len(src) && !(src[end] == '*' && src[end+1] == '/') {
				end++
			}
			if end+1 >= len(src) {
				return i, fmt.Errorf("unterminated block comment at offset %d", i)
			}
			i = end + 2
		default:
			return i, nil
		}
	}
	return i, nil
}

func scanIdent(src []byte, i int) int {
	for i < len(src) {
		r, size := utf8.DecodeRune(src[i:])
		if !isIdentPart(r) {
			break
		}
		i += size
	}
	return i
}

func scanNumber(src []byte, i int) int {
	for i < len(src) && (src[i] >= '0' && src[i] <= '9' || src[i] == '.' || src[i] == '_') {
		i++
	}
	return i
}

func scanString(src []byte, i int) (int, error) {
	start := i
	i++ // opening quote
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
		case '"':
			return i + 1, nil
		case '\n':
			return i, fmt.Errorf("unterminated string literal at offset %d", start)
		default:
			i++
		}
	}
	return i, fmt.Errorf("unterminated string literal at offset %d", start)
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
