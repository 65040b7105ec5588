package formula

import "fmt"

// Reference is a standalone cell or range address such as "B2",
// "Sheet1!A1:C3" or "'My Sheet'!$A$1"
type Reference struct {
	Sheet   string // empty when not sheet-qualified
	Start   CellCoord
	End     CellCoord // equal to Start for a single cell
	IsRange bool
}

func (r Reference) String() string {
	s := r.Start.String()
	if r.IsRange {
		s += ":" + r.End.String()
	}
	if r.Sheet != "" {
		return fmt.Sprintf("'%s'!%s", r.Sheet, s)
	}
	return s
}

// ParseReference parses a cell reference or range from a string, for
// callers like grid storage that address cells by text outside a formula
func ParseReference(input string) (Reference, error) {
	tokens, err := NewLexerForReference(input).Tokenize()
	if err != nil {
		return Reference{}, err
	}

	var ref Reference
	cursor := NewCursor(tokens...)

	tok, err := cursor.Next()
	if err != nil {
		return Reference{}, NewLexError(len(input), 0)
	}
	if tok.Kind == KindSheetName {
		ref.Sheet = tok.Text()
		if tok, err = cursor.Next(); err != nil {
			return Reference{}, NewLexError(len(input), 0)
		}
	}

	switch tok.Kind {
	case KindCellAddress:
		ref.Start = tok.Cell()
		ref.End = ref.Start
	case KindCellRange:
		rng := tok.Range()
		ref.Start, ref.End, ref.IsRange = rng.Start, rng.End, true
	default:
		return Reference{}, NewLexError(tok.Pos, firstRune(tok.Source))
	}

	if extra, err := cursor.Next(); err == nil {
		return Reference{}, NewLexError(extra.Pos, firstRune(extra.Source))
	}
	return ref, nil
}

// CellIndex parses a single cell address like "A1" or "Sheet1!B2" into its
// sheet name and 0-based row and column
func CellIndex(address string) (sheet string, row int, col int, err error) {
	ref, err := ParseReference(address)
	if err != nil {
		return "", 0, 0, err
	}
	if ref.IsRange {
		return "", 0, 0, NewDomainError("CellIndex", address, "address is a range, not a cell")
	}
	row, col, err = ref.Start.Index()
	if err != nil {
		return "", 0, 0, err
	}
	return ref.Sheet, row, col, nil
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
