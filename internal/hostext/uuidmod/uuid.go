// Package uuidmod registers uuid-generation host functions, an opt-in
// extension module scripts enable by calling Register (spec §3's host
// extension surface is additive to the baseline set).
package uuidmod

import (
	"graphscript/internal/context"
	"graphscript/internal/gerrors"
	"graphscript/internal/hostfn"
	"graphscript/internal/value"

	"github.com/google/uuid"
)

// Register installs uuidNew and uuidIsValid into reg.
func Register(reg *hostfn.Registry) {
	reg.Register("uuidNew", func(args []value.Value, ctx *context.Context, vm hostfn.VM) (value.Value, error) {
		return value.Str(uuid.New().String()), nil
	})

	reg.Register("uuidIsValid", func(args []value.Value, ctx *context.Context, vm hostfn.VM) (value.Value, error) {
		if len(args) != 1 || args[0].Tag() != value.String {
			return value.Nil(), gerrors.New(gerrors.TypeMismatch, "uuidIsValid requires a single string argument")
		}
		_, err := uuid.Parse(args[0].AsString())
		return value.TruthyInt(err == nil), nil
	})
}
