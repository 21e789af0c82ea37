// Package cryptomod registers password-hashing host functions backed by
// golang.org/x/crypto/bcrypt, grounded on the teacher's cryptoanalysis
// module's password-hash-checking primitives (spec §3).
package cryptomod

import (
	"graphscript/internal/context"
	"graphscript/internal/gerrors"
	"graphscript/internal/hostfn"
	"graphscript/internal/value"

	"golang.org/x/crypto/bcrypt"
)

// Register installs bcryptHash and bcryptVerify.
func Register(reg *hostfn.Registry) {
	reg.Register("bcryptHash", func(args []value.Value, ctx *context.Context, vm hostfn.VM) (value.Value, error) {
		if len(args) != 1 || args[0].Tag() != value.String {
			return value.Nil(), gerrors.New(gerrors.TypeMismatch, "bcryptHash requires a single string argument")
		}
		hash, err := bcrypt.GenerateFromPassword(args[0].AsBytes(), bcrypt.DefaultCost)
		if err != nil {
			return value.Nil(), gerrors.Wrap(err, gerrors.HostError, "bcryptHash")
		}
		return value.Str(string(hash)), nil
	})

	reg.Register("bcryptVerify", func(args []value.Value, ctx *context.Context, vm hostfn.VM) (value.Value, error) {
		if len(args) != 2 || args[0].Tag() != value.String || args[1].Tag() != value.String {
			return value.Nil(), gerrors.New(gerrors.TypeMismatch, "bcryptVerify requires (hash, password) strings")
		}
		err := bcrypt.CompareHashAndPassword(args[0].AsBytes(), args[1].AsBytes())
		return value.TruthyInt(err == nil), nil
	})
}
