package formula

import "fmt"

// AppErrorCode represents gRPC-style codes for structural failures, the
// ones that stop a formula from being processed at all. spreadsheet faults
// (#DIV/0! and friends) are ErrorValues, not AppErrors.
type AppErrorCode int

const (
	// OK indicates the operation completed successfully.
	OK AppErrorCode = 0

	// InvalidArgument indicates the caller passed malformed input, such as
	// a formula the lexer cannot tokenize or text that is not a number.
	InvalidArgument AppErrorCode = 3

	// OutOfRange means an operation was attempted past the valid range,
	// like column index 0 or reading past the end of a cursor.
	OutOfRange AppErrorCode = 11
)

func (c AppErrorCode) String() string {
	switch c {
	case OK:
		return "OK"
	case InvalidArgument:
		return "InvalidArgument"
	case OutOfRange:
		return "OutOfRange"
	default:
		return fmt.Sprintf("AppErrorCode(%d)", int(c))
	}
}

// AppError is implemented by every structural error in this package
type AppError interface {
	error
	Code() AppErrorCode
}

// LexError reports the position and character where no token kind matched.
// Err is set when a token matched but its value could not be decoded.
type LexError struct {
	Pos  int  // byte offset in the input
	Char rune // offending character
	Err  error
}

func NewLexError(pos int, char rune) *LexError {
	return &LexError{Pos: pos, Char: char}
}

func (e *LexError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot decode token at position %d: %v", e.Pos, e.Err)
	}
	return fmt.Sprintf("unexpected character %q at position %d", e.Char, e.Pos)
}

func (e *LexError) Unwrap() error {
	return e.Err
}

func (e *LexError) Code() AppErrorCode {
	return InvalidArgument
}

// DomainError is returned by the column codec for inputs outside its domain
type DomainError struct {
	Op      string
	Value   any
	Message string
}

func NewDomainError(op string, value any, message string) *DomainError {
	return &DomainError{Op: op, Value: value, Message: message}
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s(%v): %s", e.Op, e.Value, e.Message)
}

func (e *DomainError) Code() AppErrorCode {
	return OutOfRange
}

// CoercionError is returned when a value has no numeric or text form
type CoercionError struct {
	Value  any
	Target string // "number" or "text"
}

func NewCoercionError(value any, target string) *CoercionError {
	return &CoercionError{Value: value, Target: target}
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("cannot convert %v (%T) to %s", e.Value, e.Value, e.Target)
}

func (e *CoercionError) Code() AppErrorCode {
	return InvalidArgument
}

// ExhaustedError is returned by Cursor.Next when there is no next element
type ExhaustedError struct {
	Len int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("cursor exhausted after %d elements", e.Len)
}

func (e *ExhaustedError) Code() AppErrorCode {
	return OutOfRange
}
