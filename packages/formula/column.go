package formula

import "math"

// columnBase is the number of letters in a column digit. column letters use
// bijective base-26, so there is no zero digit: A=1 ... Z=26, AA=27.
const columnBase = 26

// EncodeColumn converts a 1-based column index to its letters (1 -> A,
// 26 -> Z, 27 -> AA)
func EncodeColumn(index int) (string, error) {
	if index < 1 {
		return "", NewDomainError("EncodeColumn", index, "column index must be >= 1")
	}

	// collect digits least-significant first, then reverse
	var digits []byte
	for index > 0 {
		quotient, remainder := index/columnBase, index%columnBase
		if remainder == 0 {
			// no zero digit: take Z and borrow one from the quotient
			remainder = columnBase
			quotient--
		}
		digits = append(digits, byte('A'+remainder-1))
		index = quotient
	}

	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits), nil
}

// DecodeColumn converts column letters to a 1-based index (A -> 1, Z -> 26,
// AA -> 27). letters must be non-empty and uppercase A-Z.
func DecodeColumn(letters string) (int, error) {
	if letters == "" {
		return 0, NewDomainError("DecodeColumn", letters, "column letters must not be empty")
	}

	index := 0
	for i := 0; i < len(letters); i++ {
		ch := letters[i]
		if ch < 'A' || ch > 'Z' {
			return 0, NewDomainError("DecodeColumn", letters, "column letters must be uppercase A-Z")
		}
		digit := int(ch-'A') + 1
		if index > (math.MaxInt-digit)/columnBase {
			return 0, NewDomainError("DecodeColumn", letters, "column index overflows int")
		}
		index = index*columnBase + digit
	}
	return index, nil
}

// ColumnIndex is DecodeColumn shifted to a 0-based index, which is what grid
// storage addresses cells with.
func ColumnIndex(letters string) (int, error) {
	index, err := DecodeColumn(letters)
	if err != nil {
		return 0, err
	}
	return index - 1, nil
}

// ColumnLetters is the inverse of ColumnIndex.
func ColumnLetters(index int) (string, error) {
	if index < 0 {
		return "", NewDomainError("ColumnLetters", index, "column index must be >= 0")
	}
	return EncodeColumn(index + 1)
}
