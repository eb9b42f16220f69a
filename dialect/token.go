// Package dialect loads the textual rule dialect into value blocks:
// `some "a" | copy v to "b"` becomes the block the engine interprets.
package dialect

type Position struct {
	Offset int
	Line   int
	Column int
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenComment

	TokenWord
	TokenSetWord
	TokenGetWord
	TokenLitWord
	TokenPath
	TokenInteger
	TokenString
	TokenChar
	TokenBinary

	TokenLBracket
	TokenRBracket
	TokenLParen
	TokenRParen
	TokenGetLParen
	TokenBar
	TokenComma
	TokenQuote
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:        "EOF",
	TokenError:      "Error",
	TokenWhitespace: "Whitespace",
	TokenComment:    "Comment",
	TokenWord:       "Word",
	TokenSetWord:    "SetWord",
	TokenGetWord:    "GetWord",
	TokenLitWord:    "LitWord",
	TokenPath:       "Path",
	TokenInteger:    "Integer",
	TokenString:     "String",
	TokenChar:       "Char",
	TokenBinary:     "Binary",
	TokenLBracket:   "[",
	TokenRBracket:   "]",
	TokenLParen:     "(",
	TokenRParen:     ")",
	TokenGetLParen:  ":(",
	TokenBar:        "|",
	TokenComma:      ",",
	TokenQuote:      "'",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
}
