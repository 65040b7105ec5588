package formula

import (
	"fmt"
	"strings"
	"testing"
)

func BenchmarkLexSimpleFormula(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := Parse("'List 1'!A$4:AAA5 + SUM(1,2)"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLexLongSum(b *testing.B) {
	var sb strings.Builder
	sb.WriteString("SUM(")
	for i := 1; i <= 500; i++ {
		if i > 1 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "Sheet1!%s%d", mustEncode(b, i%702+1), i)
	}
	sb.WriteString(")")
	formula := sb.String()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(formula); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkColumnRoundTrip(b *testing.B) {
	for i := 0; i < b.N; i++ {
		letters, _ := EncodeColumn(i%18278 + 1)
		if _, err := DecodeColumn(letters); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCoerceSequence(b *testing.B) {
	values := []Primitive{1, "2.5", true, nil, "text", 3.25, []byte("4")}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, err := range CoerceSequence(values...) {
			if err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkCursorBacktracking(b *testing.B) {
	tokens, err := Parse("IF(A1>=10,\"big\"&B2,C3^2)")
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c := NewCursor(tokens...)
		for !c.IsEnded() {
			c.Next()
			c.Next()
			c.StepBack(1)
		}
	}
}

func mustEncode(b *testing.B, index int) string {
	letters, err := EncodeColumn(index)
	if err != nil {
		b.Fatal(err)
	}
	return letters
}
