package formula

import (
	"errors"
	"math"
	"testing"
)

func TestToNumeric(t *testing.T) {
	tests := []struct {
		name  string
		input Primitive
		want  float64
	}{
		{"true", true, 1},
		{"false", false, 0},
		{"nil", nil, 0},
		{"empty string", "", 0},
		{"numeric text", "3.5", 3.5},
		{"padded text", "  42 ", 42},
		{"negative text", "-1e3", -1000},
		{"bytes", []byte("2.25"), 2.25},
		{"float64", 5.54, 5.54},
		{"int", 4, 4},
		{"int64", int64(-7), -7},
		{"uint8", uint8(255), 255},
		{"float32", float32(0.5), 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToNumeric(tt.input)
			if err != nil {
				t.Fatalf("ToNumeric(%v) failed: %v", tt.input, err)
			}
			if math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("ToNumeric(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestToNumericFailures(t *testing.T) {
	inputs := []Primitive{
		"abc",
		"1,5",
		"Inf",
		"-infinity",
		"NaN",
		"0x1p4",
		"0x10",
		"1_000",
		"1e400",
		[]byte("x"),
		struct{}{},
		[]int{1},
		NewSpreadsheetError(ErrorCodeDiv0, "", nil),
	}

	for _, input := range inputs {
		_, err := ToNumeric(input)
		var coercionErr *CoercionError
		if !errors.As(err, &coercionErr) {
			t.Errorf("ToNumeric(%v) error = %v, want *CoercionError", input, err)
			continue
		}
		if coercionErr.Target != "number" {
			t.Errorf("Target = %q, want number", coercionErr.Target)
		}
		if coercionErr.Code() != InvalidArgument {
			t.Errorf("Code() = %v, want InvalidArgument", coercionErr.Code())
		}
	}
}

type stringerValue struct{}

func (stringerValue) String() string { return "stringer" }

func TestToText(t *testing.T) {
	tests := []struct {
		name  string
		input Primitive
		want  string
	}{
		{"string", "hello", "hello"},
		{"bytes", []byte("héllo"), "héllo"},
		{"int", 42, "42"},
		{"int64", int64(-3), "-3"},
		{"uint", uint(7), "7"},
		{"integral float", 3.0, "3"},
		{"float", 5.54, "5.54"},
		{"large float", 1e21, "1e+21"},
		{"true", true, "TRUE"},
		{"false", false, "FALSE"},
		{"nil", nil, ""},
		{"stringer", stringerValue{}, "stringer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToText(tt.input)
			if err != nil {
				t.Fatalf("ToText(%v) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ToText(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToTextFailures(t *testing.T) {
	for _, input := range []Primitive{[]byte{0xff, 0xfe}, struct{}{}, map[string]int{}} {
		_, err := ToText(input)
		var coercionErr *CoercionError
		if !errors.As(err, &coercionErr) {
			t.Errorf("ToText(%v) error = %v, want *CoercionError", input, err)
		}
	}
}

func collect(values ...Primitive) ([]Primitive, error) {
	var out []Primitive
	for v, err := range CoerceSequence(values...) {
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}

func TestCoerceSequence(t *testing.T) {
	got, err := collect(true, nil, "3.5", "abc", 7, []byte("hi"))
	if err != nil {
		t.Fatalf("CoerceSequence failed: %v", err)
	}

	want := []Primitive{1.0, 0.0, 3.5, "abc", 7.0, "hi"}
	if len(got) != len(want) {
		t.Fatalf("got %d values %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d = %v (%T), want %v (%T)", i, got[i], got[i], want[i], want[i])
		}
	}
}

func TestCoerceSequenceShortCircuitsOnErrorValue(t *testing.T) {
	div0 := NewSpreadsheetError(ErrorCodeDiv0, "", nil)

	got, err := collect(div0, 5)
	if err != div0 {
		t.Fatalf("error = %v, want the same error value", err)
	}
	if len(got) != 0 {
		t.Errorf("values before the error = %v, want none", got)
	}

	got, err = collect(1, "2", div0, struct{}{})
	if err != div0 {
		t.Fatalf("error = %v, want the same error value", err)
	}
	if len(got) != 2 {
		t.Errorf("values before the error = %v, want 2", got)
	}

	var errValue ErrorValue
	if !errors.As(err, &errValue) || errValue.ErrorCode() != ErrorCodeDiv0 {
		t.Errorf("errors.As(ErrorValue) failed for %v", err)
	}
}

func TestCoerceSequenceIsLazy(t *testing.T) {
	// a value after the point where the caller stops must not be coerced,
	// so an unconvertible value there causes no error
	count := 0
	for v, err := range CoerceSequence(1, 2, struct{}{}) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		count++
		if v == 2.0 {
			break
		}
	}
	if count != 2 {
		t.Errorf("consumed %d values, want 2", count)
	}
}

func TestCoerceSequenceStopsOnUnconvertible(t *testing.T) {
	got, err := collect(1, struct{}{}, 3)
	var coercionErr *CoercionError
	if !errors.As(err, &coercionErr) {
		t.Fatalf("error = %v, want *CoercionError", err)
	}
	if len(got) != 1 {
		t.Errorf("values before the error = %v, want 1", got)
	}
}

func TestFirstErrorValue(t *testing.T) {
	ref := NewSpreadsheetError(ErrorCodeRef, "", map[string]any{"ref": "Z0"})
	na := NewSpreadsheetError(ErrorCodeNA, "", nil)

	got, ok := FirstErrorValue(1, "x", ref, na)
	if !ok || got != ref {
		t.Errorf("FirstErrorValue = %v, %v, want %v", got, ok, ref)
	}
	if _, ok := FirstErrorValue(1, "x", nil); ok {
		t.Error("FirstErrorValue found an error among plain values")
	}
}
