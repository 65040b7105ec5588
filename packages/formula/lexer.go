package formula

import "unicode/utf8"

// LexerContext defines the context for lexing
type LexerContext struct {
	// KeepSpace returns Space tokens instead of dropping them, so the
	// token sources concatenate back to the input.
	KeepSpace bool

	// ExpectedKinds, when non-empty, is the set of kinds the input may
	// contain. Space is always allowed.
	ExpectedKinds map[Kind]bool
}

// Lexer tokenizes spreadsheet formula expressions. the input is taken as
// given; a leading '=' is the caller's to strip.
type Lexer struct {
	input   string
	pos     int
	tokens  []Token
	context *LexerContext
}

// NewLexer creates a new lexer for the given formula input
func NewLexer(input string) *Lexer {
	return NewLexerWithContext(input, &LexerContext{})
}

// NewLexerWithContext creates a new lexer with specific context
func NewLexerWithContext(input string, context *LexerContext) *Lexer {
	if context == nil {
		context = &LexerContext{}
	}
	return &Lexer{
		input:   input,
		pos:     0,
		tokens:  []Token{},
		context: context,
	}
}

// NewLexerForReference creates a lexer specifically for parsing cell
// references or ranges, optionally sheet-qualified
func NewLexerForReference(input string) *Lexer {
	return NewLexerWithContext(input, &LexerContext{
		ExpectedKinds: map[Kind]bool{
			KindSheetName:   true,
			KindCellAddress: true,
			KindCellRange:   true,
		},
	})
}

// Parse tokenizes a formula with the default context
func Parse(text string) ([]Token, error) {
	return NewLexer(text).Tokenize()
}

// Tokenize tokenizes the entire input. on failure no tokens are returned.
func (l *Lexer) Tokenize() ([]Token, error) {
	l.pos = 0
	l.tokens = l.tokens[:0]

	for l.pos < len(l.input) {
		tok, err := l.nextToken()
		if err != nil {
			l.tokens = l.tokens[:0]
			return nil, err
		}
		l.pos += len(tok.Source)

		if tok.Kind == KindSpace && !l.context.KeepSpace {
			continue
		}
		l.tokens = append(l.tokens, tok)
	}

	result := make([]Token, len(l.tokens))
	copy(result, l.tokens)
	return result, nil
}

// nextToken returns the token at the current position: the longest match
// in tokenRules, the earlier rule winning a tie
func (l *Lexer) nextToken() (Token, error) {
	rest := l.input[l.pos:]

	var best *tokenRule
	bestLen := 0
	for i := range tokenRules {
		rule := &tokenRules[i]
		if n := rule.match(rest); n > bestLen {
			best, bestLen = rule, n
		}
	}

	if best == nil || !l.allowed(best.kind) {
		ch, _ := utf8.DecodeRuneInString(rest)
		return Token{}, NewLexError(l.pos, ch)
	}

	src := rest[:bestLen]
	tok := Token{Kind: best.kind, Source: src, Pos: l.pos}
	if best.decode != nil {
		value, err := best.decode(src)
		if err != nil {
			ch, _ := utf8.DecodeRuneInString(rest)
			return Token{}, &LexError{Pos: l.pos, Char: ch, Err: err}
		}
		tok.Value = value
	}
	return tok, nil
}

// allowed checks the kind against the context's expected kinds
func (l *Lexer) allowed(kind Kind) bool {
	if len(l.context.ExpectedKinds) == 0 || kind == KindSpace {
		return true
	}
	return l.context.ExpectedKinds[kind]
}
