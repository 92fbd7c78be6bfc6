// Declarative schema changes.
//
// A Change describes one forward DDL operation as plain data. The reverse operation is derived from the
// same data, so forward and backward definitions cannot drift apart.
package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type Change struct {
	CreateTable Table
}

type Table struct {
	Name    string
	Columns []Column
}

type Column struct {
	Name       string
	Type       ColumnType
	PrimaryKey bool
	Nullable   bool
}

type ColumnType int

const (
	TypeString ColumnType = iota
	TypeInt
	TypeBool
	TypeDate
)

func (t ColumnType) sql() string {
	switch t {
	case TypeString:
		return "text"
	case TypeInt:
		return "bigint"
	case TypeBool:
		return "boolean"
	case TypeDate:
		return "date"
	default:
		panic(fmt.Errorf("unknown column type: %d", t))
	}
}

// Queryable is the part of the migration transaction a Change needs. A database/sql adapter satisfies it
// just as well, which is what the tests use.
type Queryable interface {
	Exec(sql string, args ...any) (pgconn.CommandTag, error)
}

// ConflictError means Apply found a table with the same name already in the schema. Not recoverable here,
// the runner aborts the batch.
type ConflictError struct {
	Table string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("table already exists: %s", e.Table)
}

// NotFoundError means Revert didn't find the table. Revert is strict: reverting a change that was never
// applied is an error, not a no-op.
type NotFoundError struct {
	Table string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("table does not exist: %s", e.Table)
}

func (c Change) Apply(q Queryable) error {
	_, err := q.Exec(c.CreateTable.CreateSQL())
	return classify(err, c.CreateTable.Name)
}

func (c Change) Revert(q Queryable) error {
	_, err := q.Exec(fmt.Sprintf(`drop table "%s"`, c.CreateTable.Name))
	return classify(err, c.CreateTable.Name)
}

func (c Change) MustApply(q Queryable) {
	if err := c.Apply(q); err != nil {
		panic(err)
	}
}

func (c Change) MustRevert(q Queryable) {
	if err := c.Revert(q); err != nil {
		panic(err)
	}
}

func (t Table) CreateSQL() string {
	var b strings.Builder
	fmt.Fprintf(&b, `create table "%s" (`, t.Name)
	for i, column := range t.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, `"%s" %s`, column.Name, column.Type.sql())
		if column.PrimaryKey {
			b.WriteString(" primary key")
		} else if !column.Nullable {
			b.WriteString(" not null")
		}
	}
	b.WriteString(")")
	return b.String()
}

func classify(err error, table string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.DuplicateTable:
			return &ConflictError{Table: table}
		case pgerrcode.UndefinedTable:
			return &NotFoundError{Table: table}
		}
		return err
	}

	// modernc.org/sqlite reports DDL failures as a generic SQLITE_ERROR, the message is all there is
	msg := err.Error()
	switch {
	case strings.Contains(msg, "already exists"):
		return &ConflictError{Table: table}
	case strings.Contains(msg, "no such table"):
		return &NotFoundError{Table: table}
	}
	return err
}
