package value

import (
	"testing"

	"github.com/kr/pretty"
)

func TestTruthiness(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"nil is falsy", Nil(), false},
		{"zero int is falsy", Int(0), false},
		{"zero float is falsy", Flt(0), false},
		{"nonzero int is truthy", Int(1), true},
		{"negative int is truthy", Int(-1), true},
		{"empty string is truthy", Str(""), true},
		{"empty array is truthy", EmptyArr(), true},
		{"empty map is truthy", EmptyMap(), true},
		{"empty bytes is truthy", Byt(nil), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.v.Truthy(); got != tc.want {
				t.Errorf("Truthy() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestArithmeticPromotion(t *testing.T) {
	sum, err := Add(Int(1), Flt(2.5))
	if err != nil {
		t.Fatal(err)
	}
	if sum.Tag() != Float || sum.AsFloat() != 3.5 {
		t.Errorf("got %# v, want float 3.5", pretty.Formatter(sum))
	}
}

func TestIntegerDivisionTruncatesTowardZero(t *testing.T) {
	v, err := Div(Int(-7), Int(2))
	if err != nil {
		t.Fatal(err)
	}
	if v.AsInt() != -3 {
		t.Errorf("got %d, want -3", v.AsInt())
	}
}

func TestDivideByZero(t *testing.T) {
	if _, err := Div(Int(1), Int(0)); err == nil {
		t.Fatal("expected error dividing by zero")
	}
	if _, err := Mod(Int(1), Int(0)); err == nil {
		t.Fatal("expected error for modulo by zero")
	}
}

func TestModRequiresIntegers(t *testing.T) {
	if _, err := Mod(Flt(1), Int(2)); err == nil {
		t.Fatal("expected error for float operand to %")
	}
}

func TestStringConcat(t *testing.T) {
	v, err := Add(Str("abc"), Str("def"))
	if err != nil {
		t.Fatal(err)
	}
	if v.AsString() != "abcdef" {
		t.Errorf("got %q", v.AsString())
	}
}

func TestUpdateAddStringWithNumber(t *testing.T) {
	v, err := UpdateAdd(Str("n="), Int(5))
	if err != nil {
		t.Fatal(err)
	}
	if v.AsString() != "n=5" {
		t.Errorf("got %q, want %q", v.AsString(), "n=5")
	}
}

func TestUpdateAddBytesWithNumber(t *testing.T) {
	v, err := UpdateAdd(Byt([]byte{0x01}), Int(0x41))
	if err != nil {
		t.Fatal(err)
	}
	if v.ToString() != "0141" {
		t.Errorf("got %q, want %q", v.ToString(), "0141")
	}
}

func TestComparisonMixedTagsError(t *testing.T) {
	if _, err := Compare("<", Str("a"), Int(1)); err == nil {
		t.Fatal("expected error comparing string and integer")
	}
}

func TestComparisonStringLexicographic(t *testing.T) {
	v, err := Compare("<", Str("abc"), Str("abd"))
	if err != nil {
		t.Fatal(err)
	}
	if !v.Truthy() {
		t.Error("expected \"abc\" < \"abd\"")
	}
}

func TestEqualityReflexivity(t *testing.T) {
	vals := []Value{
		Nil(), Int(5), Flt(5.5), Str("hi"), Byt([]byte("hi")),
		Arr([]Value{Int(1), Int(2)}), MapFromPairs([]Value{Str("a")}, []Value{Int(1)}),
	}
	for _, v := range vals {
		if !Equal(v, v) {
			t.Errorf("%#v is not equal to itself", pretty.Formatter(v))
		}
	}
}

func TestStringBytesNotEqual(t *testing.T) {
	if Equal(Str("ab"), Byt([]byte("ab"))) {
		t.Error("String and Bytes of identical content must compare unequal (different tags)")
	}
}

func TestNumericEqualityAcrossIntFloat(t *testing.T) {
	if !Equal(Int(3), Flt(3.0)) {
		t.Error("3 (int) should equal 3.0 (float)")
	}
}

func TestCopyIndependence(t *testing.T) {
	a := Arr([]Value{Int(0), Int(1)})
	b := a.Copy()
	b, err := IndexSet(b, Int(0), Int(99))
	if err != nil {
		t.Fatal(err)
	}
	got, err := IndexGet(a, Int(0))
	if err != nil {
		t.Fatal(err)
	}
	if got.AsInt() != 0 {
		t.Errorf("mutating the copy affected the original: a[0] = %d", got.AsInt())
	}
}

func TestIndexArray(t *testing.T) {
	a := Arr([]Value{Int(10), Int(20), Int(30)})
	v, err := IndexGet(a, Int(1))
	if err != nil {
		t.Fatal(err)
	}
	if v.AsInt() != 20 {
		t.Errorf("got %d, want 20", v.AsInt())
	}
	a, err = IndexSet(a, Int(1), Int(99))
	if err != nil {
		t.Fatal(err)
	}
	v, _ = IndexGet(a, Int(1))
	if v.AsInt() != 99 {
		t.Errorf("got %d, want 99", v.AsInt())
	}
}

func TestIndexOutOfRange(t *testing.T) {
	a := Arr([]Value{Int(1)})
	if _, err := IndexGet(a, Int(5)); err == nil {
		t.Fatal("expected out-of-range error")
	}
}

func TestMapIndexMissingIsNull(t *testing.T) {
	m := EmptyMap()
	v, err := IndexGet(m, Str("missing"))
	if err != nil {
		t.Fatal(err)
	}
	if !v.IsNull() {
		t.Errorf("expected nil for missing key, got %s", v.ToString())
	}
}

func TestMapAutoInsert(t *testing.T) {
	m := EmptyMap()
	m, err := IndexSet(m, Str("x"), Int(1))
	if err != nil {
		t.Fatal(err)
	}
	v, _ := IndexGet(m, Str("x"))
	if v.AsInt() != 1 {
		t.Errorf("got %d, want 1", v.AsInt())
	}
}

func TestMapOrderedIteration(t *testing.T) {
	m := MapFromPairs([]Value{Str("y"), Str("x")}, []Value{Int(2), Int(1)})
	entries := MapEntries(m)
	if len(entries) != 2 || entries[0].Key.AsString() != "x" || entries[1].Key.AsString() != "y" {
		t.Errorf("expected ascending key order x,y; got %#v", pretty.Formatter(entries))
	}
}

func TestSliceRoundTrip(t *testing.T) {
	a := Arr([]Value{Int(0), Int(1), Int(2), Int(3), Int(4)})
	for i := 0; i <= 5; i++ {
		for j := i; j <= 5; j++ {
			s, err := Slice(a, Int(int64(i)), Int(int64(j)))
			if err != nil {
				t.Fatalf("slice [%d:%d]: %v", i, j, err)
			}
			n, _ := s.Length()
			if n != j-i {
				t.Fatalf("len(v[%d:%d]) = %d, want %d", i, j, n, j-i)
			}
			for k := 0; k < n; k++ {
				got, _ := IndexGet(s, Int(int64(k)))
				want, _ := IndexGet(a, Int(int64(i+k)))
				if !Equal(got, want) {
					t.Fatalf("(v[%d:%d])[%d] = %v, want %v", i, j, k, got, want)
				}
			}
		}
	}
}

func TestSliceDefaults(t *testing.T) {
	s := Str("hello")
	v, err := Slice(s, Nil(), Nil())
	if err != nil {
		t.Fatal(err)
	}
	if v.AsString() != "hello" {
		t.Errorf("got %q", v.AsString())
	}
}

func TestSliceOutOfRange(t *testing.T) {
	a := Arr([]Value{Int(1), Int(2)})
	if _, err := Slice(a, Int(0), Int(5)); err == nil {
		t.Fatal("expected out-of-range slice error")
	}
}

func TestBytesToStringIsHex(t *testing.T) {
	b := Byt([]byte{0x48, 0x65})
	if b.ToString() != "4865" {
		t.Errorf("got %q, want %q", b.ToString(), "4865")
	}
}

func TestBitwiseOperators(t *testing.T) {
	v, err := BAnd(Int(0b1100), Int(0b1010))
	if err != nil {
		t.Fatal(err)
	}
	if v.AsInt() != 0b1000 {
		t.Errorf("got %b, want %b", v.AsInt(), 0b1000)
	}
	if _, err := BAnd(Flt(1), Int(1)); err == nil {
		t.Fatal("expected type error for float operand to &")
	}
}

func TestUnaryOperators(t *testing.T) {
	v, err := Neg(Int(5))
	if err != nil {
		t.Fatal(err)
	}
	if v.AsInt() != -5 {
		t.Errorf("got %d, want -5", v.AsInt())
	}
	if Not(Int(0)).AsInt() != 1 {
		t.Error("!0 should be 1")
	}
	if Not(Str("x")).AsInt() != 0 {
		t.Error("!\"x\" should be 0 (truthy string negated)")
	}
}
