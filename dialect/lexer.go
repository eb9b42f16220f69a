package dialect

import "strings"

type Lexer struct {
	input  []byte
	pos    int
	line   int
	column int
}

func NewLexer(input []byte) *Lexer {
	return &Lexer{
		input:  input,
		pos:    0,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

// isWordByte reports bytes that can appear in a word spelling. Words
// are generous: letters, digits, and most punctuation that is not
// claimed by another token form.
func isWordByte(ch byte) bool {
	switch {
	case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		return true
	case ch >= 0x80: // any non-ASCII byte continues a word
		return true
	}
	return strings.IndexByte("-?!*+=.<>&^~_", ch) >= 0
}

func isWordStart(ch byte) bool {
	if ch >= '0' && ch <= '9' {
		return false
	}
	return isWordByte(ch)
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func (l *Lexer) NextToken() Token {
	startPos := l.Position()

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Span: Span{Start: startPos, End: startPos}}
	}

	ch := l.peek()

	if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
		return l.scanWhitespace(startPos)
	}
	if ch == ';' {
		return l.scanComment(startPos)
	}

	switch ch {
	case '[':
		return l.single(startPos, TokenLBracket)
	case ']':
		return l.single(startPos, TokenRBracket)
	case '(':
		return l.single(startPos, TokenLParen)
	case ')':
		return l.single(startPos, TokenRParen)
	case '|':
		return l.single(startPos, TokenBar)
	case ',':
		return l.single(startPos, TokenComma)
	case '"':
		return l.scanString(startPos)
	case '#':
		if l.peekN(1) == '"' {
			return l.scanChar(startPos)
		}
		if l.peekN(1) == '{' {
			return l.scanBinary(startPos)
		}
		return l.errorToken(startPos, "stray #")
	case '\'':
		l.advance()
		if isWordStart(l.peek()) {
			return l.scanWordish(startPos, TokenLitWord)
		}
		return Token{Kind: TokenQuote, Span: Span{Start: startPos, End: l.Position()}, Literal: "'"}
	case ':':
		if l.peekN(1) == '(' {
			l.advanceN(2)
			return Token{Kind: TokenGetLParen, Span: Span{Start: startPos, End: l.Position()}, Literal: ":("}
		}
		l.advance()
		if !isWordStart(l.peek()) {
			return l.errorToken(startPos, "stray :")
		}
		return l.scanWordish(startPos, TokenGetWord)
	}

	if isDigit(ch) || ((ch == '-' || ch == '+') && isDigit(l.peekN(1))) {
		return l.scanInteger(startPos)
	}

	if isWordStart(ch) {
		return l.scanWordish(startPos, TokenWord)
	}

	l.advance()
	return l.errorToken(startPos, "unexpected character "+string(rune(ch)))
}

func (l *Lexer) single(start Position, kind TokenKind) Token {
	ch := l.advance()
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: l.Position()},
		Literal: string(rune(ch)),
	}
}

func (l *Lexer) errorToken(start Position, msg string) Token {
	return Token{
		Kind:    TokenError,
		Span:    Span{Start: start, End: l.Position()},
		Literal: msg,
	}
}

func (l *Lexer) scanWhitespace(start Position) Token {
	for {
		ch := l.peek()
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			l.advance()
		} else {
			break
		}
	}
	end := l.Position()
	return Token{
		Kind:    TokenWhitespace,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

func (l *Lexer) scanComment(start Position) Token {
	for l.peek() != 0 && l.peek() != '\n' {
		l.advance()
	}
	end := l.Position()
	return Token{
		Kind:    TokenComment,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

// scanWordish scans a word run, possibly with /-separated path
// segments, after any leading sigil has been consumed. The literal
// excludes the sigil and any trailing set-word colon.
func (l *Lexer) scanWordish(start Position, kind TokenKind) Token {
	litStart := l.pos
	segments := 1
	for {
		for isWordByte(l.peek()) {
			l.advance()
		}
		if kind == TokenWord && l.peek() == '/' && (isWordStart(l.peekN(1)) || isDigit(l.peekN(1))) {
			segments++
			l.advance()
			for isDigit(l.peek()) {
				l.advance()
			}
			continue
		}
		break
	}
	literal := string(l.input[litStart:l.pos])
	if segments > 1 {
		kind = TokenPath
	} else if kind == TokenWord && l.peek() == ':' && l.peekN(1) != '(' {
		l.advance()
		kind = TokenSetWord
	}
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: l.Position()},
		Literal: literal,
	}
}

func (l *Lexer) scanInteger(start Position) Token {
	if l.peek() == '-' || l.peek() == '+' {
		l.advance()
	}
	for isDigit(l.peek()) {
		l.advance()
	}
	end := l.Position()
	return Token{
		Kind:    TokenInteger,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

// scanString scans a quoted string with caret escapes: ^" ^^ ^/ ^-.
// The literal holds the decoded text.
func (l *Lexer) scanString(start Position) Token {
	l.advance() // opening quote
	var sb strings.Builder
	for {
		ch := l.peek()
		if ch == 0 || ch == '\n' {
			return l.errorToken(start, "unterminated string")
		}
		if ch == '"' {
			l.advance()
			break
		}
		if ch == '^' {
			l.advance()
			esc, ok := caretEscape(l.advance())
			if !ok {
				return l.errorToken(start, "bad escape in string")
			}
			sb.WriteByte(esc)
			continue
		}
		sb.WriteByte(l.advance())
	}
	return Token{
		Kind:    TokenString,
		Span:    Span{Start: start, End: l.Position()},
		Literal: sb.String(),
	}
}

// scanChar scans #"x". The literal holds the decoded character.
func (l *Lexer) scanChar(start Position) Token {
	l.advanceN(2) // #"
	ch := l.advance()
	if ch == 0 {
		return l.errorToken(start, "unterminated char")
	}
	if ch == '^' {
		esc, ok := caretEscape(l.advance())
		if !ok {
			return l.errorToken(start, "bad escape in char")
		}
		ch = esc
	}
	if l.advance() != '"' {
		return l.errorToken(start, "unterminated char")
	}
	return Token{
		Kind:    TokenChar,
		Span:    Span{Start: start, End: l.Position()},
		Literal: string(rune(ch)),
	}
}

// scanBinary scans #{hex digits}, whitespace allowed between digits.
// The literal holds the raw hex digits only.
func (l *Lexer) scanBinary(start Position) Token {
	l.advanceN(2) // #{
	var sb strings.Builder
	for {
		ch := l.peek()
		if ch == 0 {
			return l.errorToken(start, "unterminated binary")
		}
		if ch == '}' {
			l.advance()
			break
		}
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			l.advance()
			continue
		}
		if !isHexDigit(ch) {
			return l.errorToken(start, "bad hex digit in binary")
		}
		sb.WriteByte(l.advance())
	}
	if sb.Len()%2 != 0 {
		return l.errorToken(start, "odd number of hex digits in binary")
	}
	return Token{
		Kind:    TokenBinary,
		Span:    Span{Start: start, End: l.Position()},
		Literal: sb.String(),
	}
}

func caretEscape(ch byte) (byte, bool) {
	switch ch {
	case '/':
		return '\n', true
	case '-':
		return '\t', true
	case '"':
		return '"', true
	case '^':
		return '^', true
	}
	return 0, false
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
