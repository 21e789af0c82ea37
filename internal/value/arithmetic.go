package value

import (
	"fmt"

	"graphscript/internal/gerrors"
)

func isNumeric(v Value) bool { return v.tag == Integer || v.tag == Float }

// promote returns both operands as float64 and reports whether either
// side was already Float, per spec §4.1's "promotion to Float if either
// side is Float" rule.
func promote(a, b Value) (af, bf float64, float bool) {
	return numeric(a), numeric(b), a.tag == Float || b.tag == Float
}

// Add implements `+`: numeric addition with Float promotion, String/Bytes
// concatenation. `+=`'s extra numeric-append behavior lives in UpdateAdd,
// since plain `+` does not accept mixed String/numeric operands.
func Add(a, b Value) (Value, error) {
	switch {
	case isNumeric(a) && isNumeric(b):
		return addNumeric(a, b), nil
	case a.tag == String && b.tag == String:
		return Value{tag: String, bytes: append(append([]byte{}, a.bytes...), b.bytes...)}, nil
	case a.tag == Bytes && b.tag == Bytes:
		return Value{tag: Bytes, bytes: append(append([]byte{}, a.bytes...), b.bytes...)}, nil
	default:
		return Nil(), typeErr("+", a, b)
	}
}

func addNumeric(a, b Value) Value {
	af, bf, isFloat := promote(a, b)
	if isFloat {
		return Flt(af + bf)
	}
	return Int(a.i + b.i)
}

// UpdateAdd implements `+=`'s widened right-hand side: numeric append to
// String renders the textual form; numeric append to Bytes appends the
// low byte (spec §4.1).
func UpdateAdd(a, b Value) (Value, error) {
	if a.tag == String {
		if isNumeric(b) {
			return Value{tag: String, bytes: append(append([]byte{}, a.bytes...), []byte(b.ToString())...)}, nil
		}
		if b.tag == String {
			return Add(a, b)
		}
	}
	if a.tag == Bytes {
		if isNumeric(b) {
			lo := byte(toInt(b))
			return Value{tag: Bytes, bytes: append(append([]byte{}, a.bytes...), lo)}, nil
		}
		if b.tag == Bytes {
			return Add(a, b)
		}
	}
	return Add(a, b)
}

func toInt(v Value) int64 {
	if v.tag == Integer {
		return v.i
	}
	return int64(v.f)
}

func numericBinary(op string, a, b Value, ints func(x, y int64) (int64, error), floats func(x, y float64) float64) (Value, error) {
	if !isNumeric(a) || !isNumeric(b) {
		return Nil(), typeErr(op, a, b)
	}
	af, bf, isFloat := promote(a, b)
	if isFloat {
		return Flt(floats(af, bf)), nil
	}
	r, err := ints(a.i, b.i)
	if err != nil {
		return Nil(), err
	}
	return Int(r), nil
}

func Sub(a, b Value) (Value, error) {
	return numericBinary("-", a, b,
		func(x, y int64) (int64, error) { return x - y, nil },
		func(x, y float64) float64 { return x - y })
}

func Mul(a, b Value) (Value, error) {
	return numericBinary("*", a, b,
		func(x, y int64) (int64, error) { return x * y, nil },
		func(x, y float64) float64 { return x * y })
}

func Div(a, b Value) (Value, error) {
	return numericBinary("/", a, b,
		func(x, y int64) (int64, error) {
			if y == 0 {
				return 0, gerrors.New(gerrors.RangeError, "integer division by zero")
			}
			return x / y, nil // truncates toward zero (Go's integer division semantics)
		},
		func(x, y float64) float64 { return x / y })
}

// Mod implements `%`, which spec §4.1 requires to be defined only for two
// Integers.
func Mod(a, b Value) (Value, error) {
	if a.tag != Integer || b.tag != Integer {
		return Nil(), gerrors.New(gerrors.TypeMismatch, "%% requires two integers, got %s and %s", a.tag, b.tag)
	}
	if b.i == 0 {
		return Nil(), gerrors.New(gerrors.RangeError, "integer division by zero")
	}
	return Int(a.i % b.i), nil
}

func Neg(a Value) (Value, error) {
	switch a.tag {
	case Integer:
		return Int(-a.i), nil
	case Float:
		return Flt(-a.f), nil
	default:
		return Nil(), gerrors.New(gerrors.TypeMismatch, "unary - requires a number, got %s", a.tag)
	}
}

func Not(a Value) Value { return TruthyInt(!a.Truthy()) }

func requireInt(op string, a Value) (int64, error) {
	if a.tag != Integer {
		return 0, gerrors.New(gerrors.TypeMismatch, "%s requires an integer, got %s", op, a.tag)
	}
	return a.i, nil
}

func bitwise(op string, a, b Value, f func(x, y int64) int64) (Value, error) {
	x, err := requireInt(op, a)
	if err != nil {
		return Nil(), err
	}
	y, err := requireInt(op, b)
	if err != nil {
		return Nil(), err
	}
	return Int(f(x, y)), nil
}

func BAnd(a, b Value) (Value, error) { return bitwise("&", a, b, func(x, y int64) int64 { return x & y }) }
func BOr(a, b Value) (Value, error)  { return bitwise("|", a, b, func(x, y int64) int64 { return x | y }) }
func BXor(a, b Value) (Value, error) { return bitwise("^", a, b, func(x, y int64) int64 { return x ^ y }) }
func LShift(a, b Value) (Value, error) {
	return bitwise("<<", a, b, func(x, y int64) int64 { return x << uint64(y) })
}
func RShift(a, b Value) (Value, error) {
	return bitwise(">>", a, b, func(x, y int64) int64 { return x >> uint64(y) })
}

func BNot(a Value) (Value, error) {
	x, err := requireInt("~", a)
	if err != nil {
		return Nil(), err
	}
	return Int(^x), nil
}

// Compare implements <, <=, >, >=: numeric for numeric pairs, lexicographic
// for (String, String); any other mix is an error (spec §4.1).
func Compare(op string, a, b Value) (Value, error) {
	var lt, eq bool
	switch {
	case isNumeric(a) && isNumeric(b):
		af, bf, _ := promote(a, b)
		lt, eq = af < bf, af == bf
	case a.tag == String && b.tag == String:
		as, bs := string(a.bytes), string(b.bytes)
		lt, eq = as < bs, as == bs
	default:
		return Nil(), gerrors.New(gerrors.TypeMismatch, "%s not defined between %s and %s", op, a.tag, b.tag)
	}
	switch op {
	case "<":
		return TruthyInt(lt), nil
	case "<=":
		return TruthyInt(lt || eq), nil
	case ">":
		return TruthyInt(!lt && !eq), nil
	case ">=":
		return TruthyInt(!lt), nil
	default:
		return Nil(), fmt.Errorf("unknown comparison operator %q", op)
	}
}

func typeErr(op string, a, b Value) error {
	return gerrors.New(gerrors.TypeMismatch, "%s not defined between %s and %s", op, a.tag, b.tag)
}
