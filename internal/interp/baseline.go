package interp

import (
	"encoding/hex"
	"fmt"

	"graphscript/internal/context"
	"graphscript/internal/gerrors"
	"graphscript/internal/hostfn"
	"graphscript/internal/value"
)

// registerBaseline installs the host functions every script can rely on
// without an explicit extension import (spec §6.2): Println, len, typeof,
// ToString, append, bytes, string, BytesFromHexString, close, exit,
// require.
func registerBaseline(reg *hostfn.Registry) {
	reg.Register("Println", func(args []value.Value, ctx *context.Context, vm hostfn.VM) (value.Value, error) {
		parts := make([]interface{}, len(args))
		for i, a := range args {
			parts[i] = a.ToString()
		}
		fmt.Println(parts...)
		return value.Nil(), nil
	})

	reg.Register("len", func(args []value.Value, ctx *context.Context, vm hostfn.VM) (value.Value, error) {
		if err := arity("len", args, 1); err != nil {
			return value.Nil(), err
		}
		n, err := args[0].Length()
		if err != nil {
			return value.Nil(), err
		}
		return value.Int(int64(n)), nil
	})

	reg.Register("typeof", func(args []value.Value, ctx *context.Context, vm hostfn.VM) (value.Value, error) {
		if err := arity("typeof", args, 1); err != nil {
			return value.Nil(), err
		}
		return value.Str(args[0].TypeName()), nil
	})

	reg.Register("ToString", func(args []value.Value, ctx *context.Context, vm hostfn.VM) (value.Value, error) {
		if err := arity("ToString", args, 1); err != nil {
			return value.Nil(), err
		}
		return value.Str(args[0].ToString()), nil
	})

	reg.Register("append", func(args []value.Value, ctx *context.Context, vm hostfn.VM) (value.Value, error) {
		if len(args) < 1 {
			return value.Nil(), gerrors.New(gerrors.TypeMismatch, "append requires an array or bytes as its first argument")
		}
		switch args[0].Tag() {
		case value.Array:
			elems := append([]value.Value{}, args[0].AsArray()...)
			elems = append(elems, args[1:]...)
			return value.Arr(elems), nil
		case value.Bytes:
			buf := append([]byte{}, args[0].AsBytes()...)
			for _, a := range args[1:] {
				appended, err := appendToBytes(buf, a)
				if err != nil {
					return value.Nil(), err
				}
				buf = appended
			}
			return value.Byt(buf), nil
		default:
			return value.Nil(), gerrors.New(gerrors.TypeMismatch, "append requires an array or bytes as its first argument")
		}
	})

	reg.Register("bytes", func(args []value.Value, ctx *context.Context, vm hostfn.VM) (value.Value, error) {
		if err := arity("bytes", args, 1); err != nil {
			return value.Nil(), err
		}
		switch args[0].Tag() {
		case value.String, value.Bytes:
			return value.Byt(args[0].AsBytes()), nil
		default:
			return value.Nil(), gerrors.New(gerrors.TypeMismatch, "bytes() requires a string or bytes value, got %s", args[0].TypeName())
		}
	})

	reg.Register("string", func(args []value.Value, ctx *context.Context, vm hostfn.VM) (value.Value, error) {
		if err := arity("string", args, 1); err != nil {
			return value.Nil(), err
		}
		switch args[0].Tag() {
		case value.String, value.Bytes:
			return value.Str(string(args[0].AsBytes())), nil
		default:
			return value.Str(args[0].ToString()), nil
		}
	})

	reg.Register("BytesFromHexString", func(args []value.Value, ctx *context.Context, vm hostfn.VM) (value.Value, error) {
		if err := arity("BytesFromHexString", args, 1); err != nil {
			return value.Nil(), err
		}
		if args[0].Tag() != value.String {
			return value.Nil(), gerrors.New(gerrors.TypeMismatch, "BytesFromHexString requires a string, got %s", args[0].TypeName())
		}
		decoded, err := hex.DecodeString(args[0].AsString())
		if err != nil {
			return value.Nil(), gerrors.Wrap(err, gerrors.RangeError, "BytesFromHexString: invalid hex string")
		}
		return value.Byt(decoded), nil
	})

	reg.Register("close", func(args []value.Value, ctx *context.Context, vm hostfn.VM) (value.Value, error) {
		if err := arity("close", args, 1); err != nil {
			return value.Nil(), err
		}
		if args[0].Tag() != value.ResourceTag {
			return value.Nil(), gerrors.New(gerrors.TypeMismatch, "close() requires a resource, got %s", args[0].TypeName())
		}
		ref := args[0].AsResource()
		if err := ref.Close(); err != nil {
			return value.Nil(), gerrors.Wrap(err, gerrors.HostError, "close")
		}
		return value.Nil(), nil
	})

	reg.Register("exit", func(args []value.Value, ctx *context.Context, vm hostfn.VM) (value.Value, error) {
		v := value.Nil()
		if len(args) > 0 {
			v = args[0]
		}
		ctx.SetExit(v)
		return v, nil
	})

	reg.Register("require", func(args []value.Value, ctx *context.Context, vm hostfn.VM) (value.Value, error) {
		if err := arity("require", args, 1); err != nil {
			return value.Nil(), err
		}
		if args[0].Tag() != value.String {
			return value.Nil(), gerrors.New(gerrors.TypeMismatch, "require() requires a string name, got %s", args[0].TypeName())
		}
		if err := vm.Require(args[0].AsString(), ctx); err != nil {
			return value.Nil(), err
		}
		return value.Nil(), nil
	})
}

func arity(name string, args []value.Value, want int) error {
	if len(args) != want {
		return gerrors.New(gerrors.ArityMismatch, "%s expects %d argument(s), got %d", name, want, len(args))
	}
	return nil
}

// appendToBytes implements one element of append(bytes, ...)'s element
// rules: Bytes and Integer args concatenate/append a byte directly, an
// Integer-only Array appends one byte per element, anything else is a
// TypeMismatch.
func appendToBytes(buf []byte, v value.Value) ([]byte, error) {
	switch v.Tag() {
	case value.Bytes:
		return append(buf, v.AsBytes()...), nil
	case value.Integer:
		return append(buf, byte(v.AsInt())), nil
	case value.Array:
		elems := v.AsArray()
		for _, e := range elems {
			if e.Tag() != value.Integer {
				return nil, gerrors.New(gerrors.TypeMismatch, "only an Integer array can append to bytes")
			}
		}
		for _, e := range elems {
			buf = append(buf, byte(e.AsInt()))
		}
		return buf, nil
	default:
		return nil, gerrors.New(gerrors.TypeMismatch, "value of type %s can't append to bytes", v.TypeName())
	}
}
