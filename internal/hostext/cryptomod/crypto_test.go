package cryptomod

import (
	"testing"

	"graphscript/internal/context"
	"graphscript/internal/hostfn"
	"graphscript/internal/value"
)

func TestBcryptHashAndVerify(t *testing.T) {
	reg := hostfn.NewRegistry()
	Register(reg)

	hashFn, _ := reg.Lookup("bcryptHash")
	hash, err := hashFn([]value.Value{value.Str("correct horse battery staple")}, context.NewRoot(), nil)
	if err != nil {
		t.Fatal(err)
	}

	verifyFn, _ := reg.Lookup("bcryptVerify")
	ok, err := verifyFn([]value.Value{hash, value.Str("correct horse battery staple")}, context.NewRoot(), nil)
	if err != nil || ok.AsInt() != 1 {
		t.Fatalf("expected matching password to verify, got %v err=%v", ok, err)
	}

	bad, err := verifyFn([]value.Value{hash, value.Str("wrong")}, context.NewRoot(), nil)
	if err != nil || bad.AsInt() != 0 {
		t.Fatalf("expected wrong password to fail verification, got %v err=%v", bad, err)
	}
}
