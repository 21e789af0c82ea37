// Package dbmod registers SQL host functions over database/sql, grounded
// on the teacher's internal/database package which holds a DBConnection
// wrapping *sql.DB per driver (spec §3). The supported driver names match
// the teacher's blank-imported set: mysql, postgres, sqlite3, sqlserver.
package dbmod

import (
	"database/sql"

	"graphscript/internal/context"
	"graphscript/internal/gerrors"
	"graphscript/internal/hostfn"
	"graphscript/internal/value"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

var driverNames = map[string]string{
	"mysql":     "mysql",
	"postgres":  "postgres",
	"sqlite3":   "sqlite3",
	"sqlserver": "sqlserver",
}

// connection adapts *sql.DB to value.Resource so it can be wrapped in a
// Resource-tagged Value and travel through scripts like any other value.
type connection struct {
	db     *sql.DB
	closed bool
}

func (c *connection) Close() error {
	c.closed = true
	return c.db.Close()
}

func (c *connection) IsAvailable() bool { return !c.closed }

// Register installs dbOpen, dbQuery, and dbExec.
func Register(reg *hostfn.Registry) {
	reg.Register("dbOpen", func(args []value.Value, ctx *context.Context, vm hostfn.VM) (value.Value, error) {
		if len(args) != 2 || args[0].Tag() != value.String || args[1].Tag() != value.String {
			return value.Nil(), gerrors.New(gerrors.TypeMismatch, "dbOpen requires (driver, dsn) strings")
		}
		driver, ok := driverNames[args[0].AsString()]
		if !ok {
			return value.Nil(), gerrors.New(gerrors.RangeError, "dbOpen: unsupported driver %q", args[0].AsString())
		}
		db, err := sql.Open(driver, args[1].AsString())
		if err != nil {
			return value.Nil(), gerrors.Wrap(err, gerrors.HostError, "dbOpen")
		}
		ref := value.NewResourceRef(&connection{db: db})
		return value.Res(ref), nil
	})

	reg.Register("dbQuery", func(args []value.Value, ctx *context.Context, vm hostfn.VM) (value.Value, error) {
		conn, queryArgs, err := resolveQueryArgs("dbQuery", args)
		if err != nil {
			return value.Nil(), err
		}
		rows, err := conn.db.Query(args[1].AsString(), queryArgs...)
		if err != nil {
			return value.Nil(), gerrors.Wrap(err, gerrors.HostError, "dbQuery")
		}
		defer rows.Close()
		return scanRows(rows)
	})

	reg.Register("dbExec", func(args []value.Value, ctx *context.Context, vm hostfn.VM) (value.Value, error) {
		conn, queryArgs, err := resolveQueryArgs("dbExec", args)
		if err != nil {
			return value.Nil(), err
		}
		result, err := conn.db.Exec(args[1].AsString(), queryArgs...)
		if err != nil {
			return value.Nil(), gerrors.Wrap(err, gerrors.HostError, "dbExec")
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return value.Nil(), gerrors.Wrap(err, gerrors.HostError, "dbExec")
		}
		return value.Int(affected), nil
	})
}

func resolveQueryArgs(name string, args []value.Value) (*connection, []interface{}, error) {
	if len(args) < 2 || args[0].Tag() != value.ResourceTag || args[1].Tag() != value.String {
		return nil, nil, gerrors.New(gerrors.TypeMismatch, "%s requires (connection, query, ...args)", name)
	}
	conn, ok := args[0].AsResource().Unwrap().(*connection)
	if !ok {
		return nil, nil, gerrors.New(gerrors.TypeMismatch, "%s: resource is not a database connection", name)
	}
	if !args[0].AsResource().IsAvailable() {
		return nil, nil, gerrors.New(gerrors.HostError, "%s: connection is closed", name)
	}
	queryArgs := make([]interface{}, len(args)-2)
	for i, a := range args[2:] {
		queryArgs[i] = toSQLParam(a)
	}
	return conn, queryArgs, nil
}

func toSQLParam(v value.Value) interface{} {
	switch v.Tag() {
	case value.Integer:
		return v.AsInt()
	case value.Float:
		return v.AsFloat()
	case value.String:
		return v.AsString()
	case value.Bytes:
		return v.AsBytes()
	case value.Null:
		return nil
	default:
		return v.ToString()
	}
}

// scanRows renders a *sql.Rows result as an Array of Maps keyed by column
// name, the natural shape for a script to iterate with ForIn.
func scanRows(rows *sql.Rows) (value.Value, error) {
	cols, err := rows.Columns()
	if err != nil {
		return value.Nil(), gerrors.Wrap(err, gerrors.HostError, "dbQuery: columns")
	}
	var out []value.Value
	for rows.Next() {
		raw := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return value.Nil(), gerrors.Wrap(err, gerrors.HostError, "dbQuery: scan")
		}
		keys := make([]value.Value, len(cols))
		vals := make([]value.Value, len(cols))
		for i, col := range cols {
			keys[i] = value.Str(col)
			vals[i] = fromSQLValue(raw[i])
		}
		out = append(out, value.MapFromPairs(keys, vals))
	}
	if out == nil {
		out = []value.Value{}
	}
	return value.Arr(out), nil
}

func fromSQLValue(raw interface{}) value.Value {
	switch v := raw.(type) {
	case nil:
		return value.Nil()
	case int64:
		return value.Int(v)
	case float64:
		return value.Flt(v)
	case bool:
		return value.TruthyInt(v)
	case []byte:
		return value.Str(string(v))
	case string:
		return value.Str(v)
	default:
		return value.Str("")
	}
}
