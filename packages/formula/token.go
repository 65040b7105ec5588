// Package formula is the front end of a spreadsheet formula engine: it
// tokenizes formula text, walks token sequences with a rewindable cursor and
// coerces operands the way spreadsheet arithmetic does.
package formula

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind represents the different types of tokens in formulas
type Kind int

const (
	// operand literals
	KindInteger Kind = iota
	KindFloat
	KindString

	// references
	KindCellAddress
	KindCellRange
	KindSheetName

	// identifiers
	KindFunction
	KindName

	// operators
	KindAdd
	KindSubtract
	KindDivide
	KindMultiply
	KindConcat
	KindExponent
	KindCompareNotEq
	KindCompareGTE
	KindCompareLTE
	KindCompareGT
	KindCompareLT
	KindCompareEq
	KindLeftBracket
	KindRightBracket

	// structural
	KindSeparator
	KindSpace
)

var kindNames = [...]string{
	KindInteger:      "Integer",
	KindFloat:        "Float",
	KindString:       "String",
	KindCellAddress:  "CellAddress",
	KindCellRange:    "CellRange",
	KindSheetName:    "SheetName",
	KindFunction:     "Function",
	KindName:         "Name",
	KindAdd:          "Add",
	KindSubtract:     "Subtract",
	KindDivide:       "Divide",
	KindMultiply:     "Multiply",
	KindConcat:       "Concat",
	KindExponent:     "Exponent",
	KindCompareNotEq: "CompareNotEq",
	KindCompareGTE:   "CompareGTE",
	KindCompareLTE:   "CompareLTE",
	KindCompareGT:    "CompareGT",
	KindCompareLT:    "CompareLT",
	KindCompareEq:    "CompareEq",
	KindLeftBracket:  "LeftBracket",
	KindRightBracket: "RightBracket",
	KindSeparator:    "Separator",
	KindSpace:        "Space",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) IsOperand() bool {
	return k >= KindInteger && k <= KindString
}

func (k Kind) IsReference() bool {
	return k >= KindCellAddress && k <= KindSheetName
}

func (k Kind) IsIdentifier() bool {
	return k == KindFunction || k == KindName
}

func (k Kind) IsOperator() bool {
	return k >= KindAdd && k <= KindRightBracket
}

func (k Kind) IsStructural() bool {
	return k == KindSeparator || k == KindSpace
}

// CellCoord is a decoded cell address. absolute markers ($) are not kept,
// so $A$4, $A4, A$4 and A4 are all {A 4}.
type CellCoord struct {
	Column string
	Row    int
}

// Index returns the 0-based row and column of the coordinate
func (c CellCoord) Index() (row int, col int, err error) {
	col, err = ColumnIndex(c.Column)
	if err != nil {
		return 0, 0, err
	}
	if c.Row < 1 {
		return 0, 0, NewDomainError("CellCoord.Index", c.Row, "row number must be positive")
	}
	return c.Row - 1, col, nil
}

func (c CellCoord) String() string {
	return c.Column + strconv.Itoa(c.Row)
}

// CellRangeCoord is a decoded range, e.g. A$4:AAA5
type CellRangeCoord struct {
	Start CellCoord
	End   CellCoord
}

func (r CellRangeCoord) String() string {
	return r.Start.String() + ":" + r.End.String()
}

// Token represents a lexical token with position information. Source is
// the exact input text the token matched and Value its decoded form.
type Token struct {
	Kind   Kind
	Source string
	Pos    int // byte position in input
	Value  any
}

func (t Token) String() string {
	if t.Value == nil {
		return fmt.Sprintf("%s(%q)", t.Kind, t.Source)
	}
	return fmt.Sprintf("%s(%v)", t.Kind, t.Value)
}

// Int returns the value of an Integer token
func (t Token) Int() int {
	v, _ := t.Value.(int)
	return v
}

// Float returns the value of a Float token
func (t Token) Float() float64 {
	v, _ := t.Value.(float64)
	return v
}

// Text returns the value of a String, SheetName, Function or Name token
func (t Token) Text() string {
	v, _ := t.Value.(string)
	return v
}

// Cell returns the value of a CellAddress token
func (t Token) Cell() CellCoord {
	v, _ := t.Value.(CellCoord)
	return v
}

// Range returns the value of a CellRange token
func (t Token) Range() CellRangeCoord {
	v, _ := t.Value.(CellRangeCoord)
	return v
}

// matcher returns the length in bytes of the match at the start of s, or 0
type matcher func(s string) int

// decoder turns the matched source into the token's value
type decoder func(src string) (any, error)

// tokenRule is one row of the lexer's priority table
type tokenRule struct {
	kind   Kind
	match  matcher
	decode decoder
}

// tokenRules is ordered most specific first. the lexer takes the longest
// match and breaks ties by this order.
var tokenRules = []tokenRule{
	{KindCellRange, matchCellRange, decodeCellRange},
	{KindCellAddress, matchCellAddress, decodeCellAddress},
	{KindSheetName, matchSheetName, decodeSheetName},
	{KindFloat, matchFloat, decodeFloat},
	{KindInteger, matchDigits, decodeInteger},
	{KindString, matchString, decodeString},
	{KindFunction, matchFunction, decodeText},
	{KindName, matchWord, decodeText},
	{KindSpace, matchSpace, nil},
	{KindCompareNotEq, matchLiteral("<>"), nil},
	{KindCompareGTE, matchLiteral(">="), nil},
	{KindCompareLTE, matchLiteral("<="), nil},
	{KindCompareGT, matchLiteral(">"), nil},
	{KindCompareLT, matchLiteral("<"), nil},
	{KindCompareEq, matchLiteral("="), nil},
	{KindAdd, matchLiteral("+"), nil},
	{KindSubtract, matchLiteral("-"), nil},
	{KindDivide, matchLiteral("/"), nil},
	{KindMultiply, matchLiteral("*"), nil},
	{KindConcat, matchLiteral("&"), nil},
	{KindExponent, matchLiteral("^"), nil},
	{KindLeftBracket, matchLiteral("("), nil},
	{KindRightBracket, matchLiteral(")"), nil},
	{KindSeparator, matchLiteral(","), nil},
}

// character classification helpers

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isUpper(ch byte) bool {
	return ch >= 'A' && ch <= 'Z'
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func matchLiteral(lit string) matcher {
	return func(s string) int {
		if strings.HasPrefix(s, lit) {
			return len(lit)
		}
		return 0
	}
}

func matchDigits(s string) int {
	n := 0
	for n < len(s) && isDigit(s[n]) {
		n++
	}
	return n
}

func matchUpper(s string) int {
	n := 0
	for n < len(s) && isUpper(s[n]) {
		n++
	}
	return n
}

func matchSpace(s string) int {
	n := 0
	for n < len(s) && isSpace(s[n]) {
		n++
	}
	return n
}

// matchWord matches a run of letters, digits and underscores
func matchWord(s string) int {
	n := 0
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if !isWordRune(r) {
			break
		}
		n += size
	}
	return n
}

// matchFloat matches digits '.' digits
func matchFloat(s string) int {
	whole := matchDigits(s)
	if whole == 0 || whole >= len(s) || s[whole] != '.' {
		return 0
	}
	frac := matchDigits(s[whole+1:])
	if frac == 0 {
		return 0
	}
	return whole + 1 + frac
}

// matchString matches a double-quoted literal; "" inside is an escaped quote
func matchString(s string) int {
	if len(s) == 0 || s[0] != '"' {
		return 0
	}
	for i := 1; i < len(s); i++ {
		if s[i] != '"' {
			continue
		}
		if i+1 < len(s) && s[i+1] == '"' {
			i++
			continue
		}
		return i + 1
	}
	return 0
}

// matchCellAddress matches an optional $, column letters, an optional $
// and row digits
func matchCellAddress(s string) int {
	n := 0
	if n < len(s) && s[n] == '$' {
		n++
	}
	letters := matchUpper(s[n:])
	if letters == 0 {
		return 0
	}
	n += letters
	if n < len(s) && s[n] == '$' {
		n++
	}
	digits := matchDigits(s[n:])
	if digits == 0 {
		return 0
	}
	n += digits
	// LOG10( is a function call, not a cell
	if n < len(s) && s[n] == '(' {
		return 0
	}
	return n
}

func matchCellRange(s string) int {
	first := matchCellAddress(s)
	if first == 0 || first >= len(s) || s[first] != ':' {
		return 0
	}
	second := matchCellAddress(s[first+1:])
	if second == 0 {
		return 0
	}
	return first + 1 + second
}

// matchSheetName matches 'any name'! or word!
func matchSheetName(s string) int {
	if len(s) == 0 {
		return 0
	}
	n := 0
	if s[0] == '\'' {
		end := strings.IndexByte(s[1:], '\'')
		if end <= 0 {
			return 0 // unclosed or empty
		}
		n = end + 2
	} else {
		n = matchWord(s)
		if n == 0 {
			return 0
		}
	}
	if n >= len(s) || s[n] != '!' {
		return 0
	}
	return n + 1
}

// matchFunction matches an uppercase letter, then uppercase letters and
// digits, immediately followed by '('. the bracket is left for the next
// token.
func matchFunction(s string) int {
	if len(s) == 0 || !isUpper(s[0]) {
		return 0
	}
	n := 1
	for n < len(s) && (isUpper(s[n]) || isDigit(s[n])) {
		n++
	}
	if n >= len(s) || s[n] != '(' {
		return 0
	}
	return n
}

func decodeText(src string) (any, error) {
	return src, nil
}

func decodeInteger(src string) (any, error) {
	return strconv.Atoi(src)
}

func decodeFloat(src string) (any, error) {
	return strconv.ParseFloat(src, 64)
}

func decodeString(src string) (any, error) {
	return strings.ReplaceAll(src[1:len(src)-1], `""`, `"`), nil
}

func decodeSheetName(src string) (any, error) {
	name := src[:len(src)-1] // drop '!'
	if strings.HasPrefix(name, "'") {
		name = name[1 : len(name)-1]
	}
	return name, nil
}

func decodeCellAddress(src string) (any, error) {
	return parseCellCoord(src)
}

func decodeCellRange(src string) (any, error) {
	colon := strings.IndexByte(src, ':')
	start, err := parseCellCoord(src[:colon])
	if err != nil {
		return nil, err
	}
	end, err := parseCellCoord(src[colon+1:])
	if err != nil {
		return nil, err
	}
	return CellRangeCoord{Start: start, End: end}, nil
}

// parseCellCoord decodes a matched address such as $AB$12, dropping the
// absolute markers
func parseCellCoord(src string) (CellCoord, error) {
	s := strings.ReplaceAll(src, "$", "")
	letters := matchUpper(s)
	if _, err := DecodeColumn(s[:letters]); err != nil {
		return CellCoord{}, err
	}
	row, err := strconv.Atoi(s[letters:])
	if err != nil {
		return CellCoord{}, err
	}
	return CellCoord{Column: s[:letters], Row: row}, nil
}
