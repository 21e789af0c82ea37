package dbmod

import (
	"testing"

	"graphscript/internal/context"
	"graphscript/internal/hostfn"
	"graphscript/internal/value"
)

func TestOpenExecQueryRoundTrip(t *testing.T) {
	reg := hostfn.NewRegistry()
	Register(reg)
	ctx := context.NewRoot()

	open, _ := reg.Lookup("dbOpen")
	conn, err := open([]value.Value{value.Str("sqlite3"), value.Str(":memory:")}, ctx, nil)
	if err != nil {
		t.Fatal(err)
	}

	exec, _ := reg.Lookup("dbExec")
	if _, err := exec([]value.Value{conn, value.Str("CREATE TABLE t (id INTEGER, name TEXT)")}, ctx, nil); err != nil {
		t.Fatal(err)
	}
	affected, err := exec([]value.Value{conn, value.Str("INSERT INTO t VALUES (?, ?)"), value.Int(1), value.Str("alice")}, ctx, nil)
	if err != nil || affected.AsInt() != 1 {
		t.Fatalf("expected 1 row affected, got %v err=%v", affected, err)
	}

	query, _ := reg.Lookup("dbQuery")
	rows, err := query([]value.Value{conn, value.Str("SELECT id, name FROM t")}, ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := rows.Length(); n != 1 {
		t.Fatalf("expected 1 row, got %d", n)
	}
}

func TestDbOpenRejectsUnsupportedDriver(t *testing.T) {
	reg := hostfn.NewRegistry()
	Register(reg)
	open, _ := reg.Lookup("dbOpen")
	if _, err := open([]value.Value{value.Str("oracle"), value.Str("")}, context.NewRoot(), nil); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
