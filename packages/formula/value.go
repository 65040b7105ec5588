package formula

import (
	"fmt"
	"strings"
)

// Primitive represents the values formula operands can hold.
// types:
//   - float64, int and other Go numbers: numeric values
//   - string, []byte: text values
//   - bool: boolean values (TRUE/FALSE)
//   - nil: empty/null cells
//   - ErrorValue: error values (#DIV/0!, #VALUE!, etc.)
type Primitive any

// ErrorCode represents standard spreadsheet error codes following
// Excel conventions. zero means the error carries no code.
type ErrorCode uint8

const (
	ErrorCodeNone  ErrorCode = 0
	ErrorCodeNull  ErrorCode = 1 // #NULL! - no cells in common between ranges
	ErrorCodeDiv0  ErrorCode = 2 // #DIV/0! - division by zero
	ErrorCodeValue ErrorCode = 3 // #VALUE! - wrong type of argument or operand
	ErrorCodeRef   ErrorCode = 4 // #REF! - invalid cell reference
	ErrorCodeName  ErrorCode = 5 // #NAME? - unrecognized function name
	ErrorCodeNum   ErrorCode = 6 // #NUM! - number too large or small to be represented
	ErrorCodeNA    ErrorCode = 7 // #N/A - not enough arguments for function
	ErrorCodeOther ErrorCode = 8 // #ERROR! - all other errors
)

// ErrorMapper maps error code numbers to their string representations
var ErrorMapper = map[ErrorCode]string{
	ErrorCodeNull:  "#NULL!",
	ErrorCodeDiv0:  "#DIV/0!",
	ErrorCodeValue: "#VALUE!",
	ErrorCodeRef:   "#REF!",
	ErrorCodeName:  "#NAME?",
	ErrorCodeNum:   "#NUM!",
	ErrorCodeNA:    "#N/A",
	ErrorCodeOther: "#ERROR!",
}

// defaultTemplates is used when an error value is built without a template
var defaultTemplates = map[ErrorCode]string{
	ErrorCodeNull:  "#NULL! no cells in common between {left} and {right}",
	ErrorCodeDiv0:  "#DIV/0! division by zero",
	ErrorCodeValue: "#VALUE! wrong type of operand: {value}",
	ErrorCodeRef:   "#REF! invalid reference: {ref}",
	ErrorCodeName:  "#NAME? unknown name: {name}",
	ErrorCodeNum:   "#NUM! number out of range: {value}",
	ErrorCodeNA:    "#N/A value not available",
	ErrorCodeOther: "#ERROR! {message}",
}

func (c ErrorCode) String() string {
	if s, ok := ErrorMapper[c]; ok {
		return s
	}
	return ""
}

// ErrorValue is a spreadsheet fault carried as an operand. evaluators pass
// it along instead of computing, so it surfaces as the formula's result.
// the text is rendered from the fields only when Error is called.
type ErrorValue interface {
	error
	ErrorCode() ErrorCode
	Template() string
	Fields() map[string]any
}

// SpreadsheetError is the ErrorValue used for the standard error codes
type SpreadsheetError struct {
	Code   ErrorCode
	Format string
	Values map[string]any
}

// NewSpreadsheetError builds an error value. an empty template falls back to
// the default for the code. fields are not rendered here.
func NewSpreadsheetError(code ErrorCode, template string, fields map[string]any) *SpreadsheetError {
	if template == "" {
		template = defaultTemplates[code]
	}
	return &SpreadsheetError{
		Code:   code,
		Format: template,
		Values: fields,
	}
}

func (e *SpreadsheetError) Error() string {
	return RenderError(e.Code, e.Format, e.Values)
}

func (e *SpreadsheetError) ErrorCode() ErrorCode {
	return e.Code
}

func (e *SpreadsheetError) Template() string {
	return e.Format
}

func (e *SpreadsheetError) Fields() map[string]any {
	return e.Values
}

// Display returns the short cell text, e.g. "#DIV/0!"
func (e *SpreadsheetError) Display() string {
	return e.Code.String()
}

// RenderError formats an error value as "Code <n>: <template>". the code
// part is left out when code is zero, the template part when it renders to
// nothing.
func RenderError(code ErrorCode, template string, fields map[string]any) string {
	parts := make([]string, 0, 2)
	if code != ErrorCodeNone {
		parts = append(parts, fmt.Sprintf("Code %d", int(code)))
	}
	if msg := interpolate(template, fields); msg != "" {
		parts = append(parts, msg)
	}
	return strings.Join(parts, ": ")
}

// interpolate replaces {name} placeholders with the text form of
// fields[name]. unknown placeholders and unconvertible values stay as-is.
func interpolate(template string, fields map[string]any) string {
	if !strings.Contains(template, "{") {
		return template
	}

	var sb strings.Builder
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			sb.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			sb.WriteString(rest)
			break
		}
		end += open

		sb.WriteString(rest[:open])
		name := rest[open+1 : end]
		placeholder := rest[open : end+1]

		value, ok := fields[name]
		if !ok {
			sb.WriteString(placeholder)
		} else if text, err := ToText(value); err != nil {
			sb.WriteString(placeholder)
		} else {
			sb.WriteString(text)
		}
		rest = rest[end+1:]
	}
	return sb.String()
}

// IsErrorValue reports whether v is an error value
func IsErrorValue(v Primitive) bool {
	_, ok := v.(ErrorValue)
	return ok
}
