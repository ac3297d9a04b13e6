package expr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Nabagata/scim/spec"
)

type tokenKind int

const (
	tokWord tokenKind = iota
	tokString
	tokNumber
	tokBool
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	num  float64
	b    bool
}

// tokenize scans a filter string into a flat token list. Attribute path segments and operator
// keywords are both lexed as tokWord; the parser distinguishes them by grammar position.
func tokenize(filter string) ([]token, error) {
	var tokens []token
	runes := []rune(filter)
	i, n := 0, len(runes)

	for i < n {
		c := runes[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			tokens = append(tokens, token{kind: tokLParen})
			i++
		case c == ')':
			tokens = append(tokens, token{kind: tokRParen})
			i++
		case c == '"':
			lit, consumed, err := scanString(runes[i:])
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokString, text: lit})
			i += consumed
		case isNumberStart(runes, i):
			lit, consumed := scanNumber(runes[i:])
			num, err := strconv.ParseFloat(lit, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid number %q", spec.ErrInvalidFilter, lit)
			}
			tokens = append(tokens, token{kind: tokNumber, text: lit, num: num})
			i += consumed
		case isWordRune(c):
			lit, consumed := scanWord(runes[i:])
			i += consumed
			switch strings.ToLower(lit) {
			case "true":
				tokens = append(tokens, token{kind: tokBool, b: true})
			case "false":
				tokens = append(tokens, token{kind: tokBool, b: false})
			default:
				tokens = append(tokens, token{kind: tokWord, text: lit})
			}
		default:
			return nil, fmt.Errorf("%w: unexpected character %q", spec.ErrInvalidFilter, string(c))
		}
	}

	return tokens, nil
}

func isWordRune(c rune) bool {
	return c == '_' || c == '-' || c == ':' || c == '.' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isNumberStart(runes []rune, i int) bool {
	c := runes[i]
	if c >= '0' && c <= '9' {
		return true
	}
	return c == '-' && i+1 < len(runes) && runes[i+1] >= '0' && runes[i+1] <= '9'
}

func scanWord(runes []rune) (string, int) {
	j := 0
	for j < len(runes) && isWordRune(runes[j]) {
		j++
	}
	return string(runes[:j]), j
}

func scanNumber(runes []rune) (string, int) {
	j := 0
	if runes[j] == '-' {
		j++
	}
	for j < len(runes) && (runes[j] >= '0' && runes[j] <= '9' || runes[j] == '.' || runes[j] == 'e' || runes[j] == 'E' || runes[j] == '+' || runes[j] == '-') {
		j++
	}
	return string(runes[:j]), j
}

func scanString(runes []rune) (string, int, error) {
	var b strings.Builder
	j := 1 // skip opening quote
	for j < len(runes) {
		c := runes[j]
		if c == '\\' && j+1 < len(runes) {
			b.WriteRune(runes[j+1])
			j += 2
			continue
		}
		if c == '"' {
			return b.String(), j + 1, nil
		}
		b.WriteRune(c)
		j++
	}
	return "", 0, fmt.Errorf("%w: unterminated string literal", spec.ErrInvalidFilter)
}
