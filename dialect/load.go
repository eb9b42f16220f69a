package dialect

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/dhamidi/parse/value"
)

// Load reads dialect text into a block of values. The input is the
// contents of a block without the outer brackets, so `some "a" | end`
// loads the same block as `[some "a" | end]` spliced in a rule.
func Load(input []byte) (*value.Block, error) {
	r := &reader{}
	lexer := NewLexer(input)
	for {
		tok := lexer.NextToken()
		if tok.Kind == TokenWhitespace || tok.Kind == TokenComment {
			continue
		}
		if tok.Kind == TokenError {
			return nil, fmt.Errorf("line %d: %s", tok.Span.Start.Line, tok.Literal)
		}
		r.tokens = append(r.tokens, tok)
		if tok.Kind == TokenEOF {
			break
		}
	}
	elems, err := r.readUntil(TokenEOF)
	if err != nil {
		return nil, err
	}
	return value.NewBlock(elems...), nil
}

// LoadString is Load over a string.
func LoadString(input string) (*value.Block, error) {
	return Load([]byte(input))
}

type reader struct {
	tokens []Token
	pos    int
}

func (r *reader) peek() Token {
	if r.pos >= len(r.tokens) {
		return Token{Kind: TokenEOF}
	}
	return r.tokens[r.pos]
}

func (r *reader) advance() Token {
	tok := r.peek()
	if r.pos < len(r.tokens) {
		r.pos++
	}
	return tok
}

// readUntil collects values up to the closing token, which is
// consumed.
func (r *reader) readUntil(closing TokenKind) ([]value.Value, error) {
	var elems []value.Value
	for {
		tok := r.peek()
		if tok.Kind == closing {
			r.advance()
			return elems, nil
		}
		if tok.Kind == TokenEOF {
			return nil, fmt.Errorf("line %d: missing %s", tok.Span.Start.Line, closing)
		}
		v, err := r.readValue()
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
}

func (r *reader) readValue() (value.Value, error) {
	tok := r.advance()
	switch tok.Kind {
	case TokenWord:
		return wordValue(tok.Literal), nil
	case TokenSetWord:
		return value.SetWord(tok.Literal), nil
	case TokenGetWord:
		return value.GetWord(tok.Literal), nil
	case TokenLitWord:
		return value.LitWord(tok.Literal), nil
	case TokenPath:
		return pathValue(tok.Literal)
	case TokenInteger:
		n, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad integer %q", tok.Span.Start.Line, tok.Literal)
		}
		return value.Integer(n), nil
	case TokenString:
		return value.NewText(tok.Literal), nil
	case TokenChar:
		return value.Char([]rune(tok.Literal)[0]), nil
	case TokenBinary:
		data, err := hex.DecodeString(tok.Literal)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad binary", tok.Span.Start.Line)
		}
		return value.NewBinary(data), nil
	case TokenBar:
		return value.Bar{}, nil
	case TokenComma:
		return value.Comma{}, nil
	case TokenQuote:
		v, err := r.readValue()
		if err != nil {
			return nil, err
		}
		return value.Quoted{V: v}, nil
	case TokenLBracket:
		elems, err := r.readUntil(TokenRBracket)
		if err != nil {
			return nil, err
		}
		return value.NewBlock(elems...), nil
	case TokenLParen:
		elems, err := r.readUntil(TokenRParen)
		if err != nil {
			return nil, err
		}
		return value.NewGroup(elems...), nil
	case TokenGetLParen:
		elems, err := r.readUntil(TokenRParen)
		if err != nil {
			return nil, err
		}
		return value.NewGetGroup(elems...), nil
	}
	return nil, fmt.Errorf("line %d: unexpected %s", tok.Span.Start.Line, tok.Kind)
}

// wordValue maps the self-evaluating spellings onto their values:
// true/false load as logic, none as none, and a known `type!` spelling
// as a datatype.
func wordValue(spelling string) value.Value {
	switch strings.ToLower(spelling) {
	case "true":
		return value.Logic(true)
	case "false":
		return value.Logic(false)
	case "none":
		return value.None{}
	}
	if strings.HasSuffix(spelling, "!") {
		if kind, ok := value.KindByName(strings.ToLower(spelling)); ok {
			return value.Datatype(kind)
		}
	}
	return value.Word(spelling)
}

func pathValue(literal string) (value.Value, error) {
	parts := strings.Split(literal, "/")
	segments := make([]value.Value, len(parts))
	for i, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("bad path %q", literal)
		}
		if n, err := strconv.ParseInt(part, 10, 64); err == nil {
			segments[i] = value.Integer(n)
			continue
		}
		segments[i] = value.Word(part)
	}
	return &value.Path{Segments: segments}, nil
}
