package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// binder accumulates positional arguments and hands out $n placeholders.
type binder struct {
	args []any
}

func (b *binder) bind(value any) string {
	b.args = append(b.args, value)
	return "$" + strconv.Itoa(len(b.args))
}

// expand replaces each '?' in expr with the next bound placeholder.
func (b *binder) expand(expr string, values []any) string {
	if len(values) == 0 {
		return expr
	}
	var out strings.Builder
	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && next < len(values) {
			out.WriteString(b.bind(values[next]))
			next++
			continue
		}
		out.WriteByte(expr[i])
	}
	return out.String()
}

// Condition is one predicate of a WHERE clause; predicates are joined with AND.
type Condition func(b *binder) string

func Eq(column string, value any) Condition {
	return func(b *binder) string {
		return column + " = " + b.bind(value)
	}
}

func In(column string, values []any) Condition {
	return func(b *binder) string {
		if len(values) == 0 {
			return "1=0"
		}
		parts := make([]string, 0, len(values))
		for _, v := range values {
			parts = append(parts, b.bind(v))
		}
		return column + " IN (" + strings.Join(parts, ", ") + ")"
	}
}

// InStrings is In for string ids.
func InStrings(column string, values []string) Condition {
	items := make([]any, 0, len(values))
	for _, v := range values {
		items = append(items, v)
	}
	return In(column, items)
}

// Expr embeds raw SQL, binding each '?' to the next argument.
func Expr(expr string, args ...any) Condition {
	return func(b *binder) string {
		return b.expand(expr, args)
	}
}

func writeWhere(buf *strings.Builder, b *binder, conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			buf.WriteString(" WHERE ")
		} else {
			buf.WriteString(" AND ")
		}
		buf.WriteString(c(b))
	}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
	suffix  string
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (s *SelectBuilder) From(table string) *SelectBuilder {
	s.table = table
	return s
}

func (s *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	s.where = append(s.where, conditions...)
	return s
}

func (s *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	s.orderBy = append(s.orderBy, parts...)
	return s
}

func (s *SelectBuilder) Limit(limit int) *SelectBuilder {
	s.limit = limit
	return s
}

// Suffix appends trailing SQL such as "FOR UPDATE".
func (s *SelectBuilder) Suffix(sql string) *SelectBuilder {
	s.suffix = strings.TrimSpace(sql)
	return s
}

func (s *SelectBuilder) ToSQL() (string, []any, error) {
	if len(s.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(s.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var (
		buf strings.Builder
		b   binder
	)
	buf.WriteString("SELECT ")
	buf.WriteString(strings.Join(s.columns, ", "))
	buf.WriteString(" FROM ")
	buf.WriteString(s.table)
	writeWhere(&buf, &b, s.where)
	if len(s.orderBy) > 0 {
		buf.WriteString(" ORDER BY ")
		buf.WriteString(strings.Join(s.orderBy, ", "))
	}
	if s.limit > 0 {
		buf.WriteString(" LIMIT ")
		buf.WriteString(strconv.Itoa(s.limit))
	}
	if s.suffix != "" {
		buf.WriteString(" ")
		buf.WriteString(s.suffix)
	}

	return buf.String(), b.args, nil
}

type InsertBuilder struct {
	table      string
	columns    []string
	rows       [][]any
	suffix     string
	suffixArgs []any
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (i *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	i.columns = append([]string(nil), columns...)
	return i
}

func (i *InsertBuilder) Values(values ...any) *InsertBuilder {
	i.rows = append(i.rows, append([]any(nil), values...))
	return i
}

// Suffix appends trailing SQL such as an ON CONFLICT clause; '?' binds args.
func (i *InsertBuilder) Suffix(sql string, args ...any) *InsertBuilder {
	i.suffix = strings.TrimSpace(sql)
	i.suffixArgs = args
	return i
}

func (i *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(i.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(i.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(i.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	var (
		buf strings.Builder
		b   binder
	)
	buf.WriteString("INSERT INTO ")
	buf.WriteString(i.table)
	buf.WriteString(" (")
	buf.WriteString(strings.Join(i.columns, ", "))
	buf.WriteString(") VALUES ")

	for rowIdx, row := range i.rows {
		if len(row) != len(i.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(i.columns))
		}
		if rowIdx > 0 {
			buf.WriteString(", ")
		}
		holders := make([]string, 0, len(row))
		for _, value := range row {
			holders = append(holders, b.bind(value))
		}
		buf.WriteString("(")
		buf.WriteString(strings.Join(holders, ", "))
		buf.WriteString(")")
	}

	if i.suffix != "" {
		buf.WriteString(" ")
		buf.WriteString(b.expand(i.suffix, i.suffixArgs))
	}

	return buf.String(), b.args, nil
}

type assignment struct {
	column string
	value  any
	expr   string
	isExpr bool
}

type UpdateBuilder struct {
	table  string
	sets   []assignment
	where  []Condition
	suffix string
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (u *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	u.sets = append(u.sets, assignment{column: column, value: value})
	return u
}

// SetExpr assigns raw SQL; a single '?' in expr binds value when value is non-nil.
func (u *UpdateBuilder) SetExpr(column, expr string, value ...any) *UpdateBuilder {
	u.sets = append(u.sets, assignment{column: column, expr: expr, isExpr: true, value: value})
	return u
}

func (u *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	u.where = append(u.where, conditions...)
	return u
}

func (u *UpdateBuilder) Suffix(sql string) *UpdateBuilder {
	u.suffix = strings.TrimSpace(sql)
	return u
}

func (u *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(u.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(u.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}

	var (
		buf strings.Builder
		b   binder
	)
	buf.WriteString("UPDATE ")
	buf.WriteString(u.table)
	buf.WriteString(" SET ")
	for idx, set := range u.sets {
		if idx > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(set.column)
		buf.WriteString(" = ")
		if set.isExpr {
			args, _ := set.value.([]any)
			buf.WriteString(b.expand(set.expr, args))
			continue
		}
		buf.WriteString(b.bind(set.value))
	}

	writeWhere(&buf, &b, u.where)
	if u.suffix != "" {
		buf.WriteString(" ")
		buf.WriteString(u.suffix)
	}

	return buf.String(), b.args, nil
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (d *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	d.where = append(d.where, conditions...)
	return d
}

func (d *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(d.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}

	var (
		buf strings.Builder
		b   binder
	)
	buf.WriteString("DELETE FROM ")
	buf.WriteString(d.table)
	writeWhere(&buf, &b, d.where)
	return buf.String(), b.args, nil
}
