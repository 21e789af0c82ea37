// Package humanizemod registers human-readable formatting host functions
// backed by github.com/dustin/go-humanize (spec §3 domain-stack wiring).
package humanizemod

import (
	"graphscript/internal/context"
	"graphscript/internal/gerrors"
	"graphscript/internal/hostfn"
	"graphscript/internal/value"

	"github.com/dustin/go-humanize"
)

// Register installs humanizeBytes, humanizeComma, and humanizeOrdinal.
func Register(reg *hostfn.Registry) {
	reg.Register("humanizeBytes", func(args []value.Value, ctx *context.Context, vm hostfn.VM) (value.Value, error) {
		if len(args) != 1 || args[0].Tag() != value.Integer {
			return value.Nil(), gerrors.New(gerrors.TypeMismatch, "humanizeBytes requires a single integer argument")
		}
		return value.Str(humanize.Bytes(uint64(args[0].AsInt()))), nil
	})

	reg.Register("humanizeComma", func(args []value.Value, ctx *context.Context, vm hostfn.VM) (value.Value, error) {
		if len(args) != 1 || args[0].Tag() != value.Integer {
			return value.Nil(), gerrors.New(gerrors.TypeMismatch, "humanizeComma requires a single integer argument")
		}
		return value.Str(humanize.Comma(args[0].AsInt())), nil
	})

	reg.Register("humanizeOrdinal", func(args []value.Value, ctx *context.Context, vm hostfn.VM) (value.Value, error) {
		if len(args) != 1 || args[0].Tag() != value.Integer {
			return value.Nil(), gerrors.New(gerrors.TypeMismatch, "humanizeOrdinal requires a single integer argument")
		}
		return value.Str(humanize.Ordinal(int(args[0].AsInt()))), nil
	})
}
