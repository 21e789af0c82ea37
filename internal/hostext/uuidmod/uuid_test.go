package uuidmod

import (
	"testing"

	"graphscript/internal/context"
	"graphscript/internal/hostfn"
	"graphscript/internal/value"
)

func TestUUIDNewIsValid(t *testing.T) {
	reg := hostfn.NewRegistry()
	Register(reg)

	newFn, _ := reg.Lookup("uuidNew")
	id, err := newFn(nil, context.NewRoot(), nil)
	if err != nil {
		t.Fatal(err)
	}

	validFn, _ := reg.Lookup("uuidIsValid")
	ok, err := validFn([]value.Value{id}, context.NewRoot(), nil)
	if err != nil || ok.AsInt() != 1 {
		t.Fatalf("expected generated uuid to validate, got %v err=%v", ok, err)
	}
}

func TestUUIDIsValidRejectsGarbage(t *testing.T) {
	reg := hostfn.NewRegistry()
	Register(reg)
	validFn, _ := reg.Lookup("uuidIsValid")
	ok, err := validFn([]value.Value{value.Str("not-a-uuid")}, context.NewRoot(), nil)
	if err != nil || ok.AsInt() != 0 {
		t.Fatalf("expected invalid uuid to report false, got %v err=%v", ok, err)
	}
}
