package sql

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/syssam/loam/dialect"
)

// Op is the single statement kind a builder compiles. A builder starts in
// OpSelect and transitions at most once, when one of the write terminals is
// invoked. One builder instance builds exactly one logical statement.
type Op uint8

// Builder operations.
const (
	OpSelect Op = iota
	OpInsert
	OpUpdate
	OpDelete
)

// String returns the SQL verb of the operation.
func (o Op) String() string {
	switch o {
	case OpInsert:
		return "INSERT"
	case OpUpdate:
		return "UPDATE"
	case OpDelete:
		return "DELETE"
	default:
		return "SELECT"
	}
}

// TableSchema is the minimal schema contract the builder needs from a bound
// entity: its table, its primary key and its declared column names.
type TableSchema interface {
	TableName() string
	PrimaryKey() string
	ColumnNames() []string
}

// Builder accumulates the state of one SQL statement and compiles it into
// dialect-correct, injection-safe SQL with positional parameter bindings.
//
// A Builder is a single-writer object: it must not be shared across
// concurrent logical requests, and a fresh builder must be constructed per
// statement. Fluent mutators record the first error encountered and turn
// all subsequent calls into no-ops; terminals surface that error.
type Builder struct {
	drv     dialect.ExecQuerier
	dialect string
	table   string // validated, unquoted
	qtable  string // quoted form
	schema  TableSchema
	op      Op
	stmt    string // compiled write statement, built once by the write terminal

	columns []string
	preds   []frag
	havings []frag
	joins   []string
	groups  []string
	orders  []string
	limit   int
	offset  int

	binds map[string]any
	seq   int

	err error
}

// NewBuilder returns a builder for the given dialect. The builder compiles
// SQL without a driver; bind one with Driver to execute.
func NewBuilder(d string) *Builder {
	return &Builder{
		dialect: d,
		binds:   make(map[string]any),
		limit:   -1,
		offset:  -1,
	}
}

// Driver binds the execution shim used by the terminal methods.
func (b *Builder) Driver(drv dialect.ExecQuerier) *Builder {
	b.drv = drv
	return b
}

// Table sets the target table. The name is validated and quoted eagerly so
// later clauses can reference it.
func (b *Builder) Table(name string) *Builder {
	if b.err != nil {
		return b
	}
	q, err := Quote(b.dialect, name)
	if err != nil {
		b.err = err
		return b
	}
	b.table, b.qtable = name, q
	return b
}

// Bind attaches an entity schema to the builder. The schema supplies the
// primary key used by projection completion and by generated-key recovery.
// The target table is taken from the schema unless already set.
func (b *Builder) Bind(s TableSchema) *Builder {
	b.schema = s
	if b.table == "" {
		return b.Table(s.TableName())
	}
	return b
}

// Err returns the first error recorded by the fluent chain, if any.
func (b *Builder) Err() error { return b.err }

// placeholder binds a value under the next unique placeholder name and
// returns the internal marker embedded in fragments. Markers are rewritten
// to dialect-positional parameters when the statement is finalized.
func (b *Builder) placeholder(value any) string {
	b.seq++
	name := "v" + strconv.Itoa(b.seq)
	b.binds[name] = value
	return ":" + name
}

// Select replaces the projection. No fields, or the single field "*",
// selects all columns. An explicit field list is completed with the bound
// schema's qualified primary key unless the key is already present or the
// list contains no standard column at all (pure raw/aggregate projections
// are left alone).
func (b *Builder) Select(fields ...string) *Builder {
	if b.err != nil {
		return b
	}
	b.columns = fields
	return b
}

// Where adds a predicate joined with AND. The two-argument form implies the
// "=" operator; the three-argument form supplies an explicit operator:
//
//	b.Where("age", 21)          // age = 21
//	b.Where("age", ">=", 21)    // age >= 21
func (b *Builder) Where(col string, args ...any) *Builder {
	return b.where(and, col, args...)
}

// OrWhere is like Where with the OR conjunction.
func (b *Builder) OrWhere(col string, args ...any) *Builder {
	return b.where(or, col, args...)
}

func (b *Builder) where(conj, col string, args ...any) *Builder {
	if b.err != nil {
		return b
	}
	switch len(args) {
	case 1:
		b.addCondition(&b.preds, conj, col, "=", args[0])
	case 2:
		op, ok := args[0].(string)
		if !ok {
			b.err = invalidf("operator must be a string, got %T", args[0])
			return b
		}
		b.addCondition(&b.preds, conj, col, op, args[1])
	default:
		b.err = invalidf("where requires (column, value) or (column, operator, value)")
	}
	return b
}

// WhereIn adds an IN predicate. The values may be given variadically or as
// a single slice; an empty list is an error, never an always-false match.
func (b *Builder) WhereIn(col string, values ...any) *Builder {
	if b.err != nil {
		return b
	}
	if len(values) == 1 {
		if elems, ok := sliceValues(values[0]); ok {
			values = elems
		}
	}
	b.addCondition(&b.preds, and, col, "IN", values)
	return b
}

// WhereExists adds an EXISTS predicate from a sub-query builder. The
// sub-query's bindings are merged into this builder under fresh placeholder
// names.
func (b *Builder) WhereExists(sub *Builder) *Builder {
	if b.err != nil {
		return b
	}
	if sub.err != nil {
		b.err = sub.err
		return b
	}
	if sub.table == "" {
		b.err = statef("exists sub-query has no table set")
		return b
	}
	subq, err := sub.compileSelect()
	if err != nil {
		b.err = err
		return b
	}
	merged := tokenRe.ReplaceAllStringFunc(subq, func(tok string) string {
		return b.placeholder(sub.binds[tok[1:]])
	})
	b.preds = append(b.preds, frag{sql: "EXISTS (" + merged + ")", conj: and})
	return b
}

// Join adds an INNER JOIN clause. The join operator is validated against
// the same allow-list used for predicates.
func (b *Builder) Join(table, left, op, right string) *Builder {
	return b.join("INNER", table, left, op, right)
}

// LeftJoin adds a LEFT JOIN clause.
func (b *Builder) LeftJoin(table, left, op, right string) *Builder {
	return b.join("LEFT", table, left, op, right)
}

// RightJoin adds a RIGHT JOIN clause.
func (b *Builder) RightJoin(table, left, op, right string) *Builder {
	return b.join("RIGHT", table, left, op, right)
}

func (b *Builder) join(kind, table, left, op, right string) *Builder {
	if b.err != nil {
		return b
	}
	qt, err := Quote(b.dialect, table)
	if err != nil {
		b.err = err
		return b
	}
	ql, err := Quote(b.dialect, left)
	if err != nil {
		b.err = err
		return b
	}
	qr, err := Quote(b.dialect, right)
	if err != nil {
		b.err = err
		return b
	}
	nop, err := normalizeOp(op)
	if err != nil {
		b.err = err
		return b
	}
	b.joins = append(b.joins, kind+" JOIN "+qt+" ON "+ql+" "+nop+" "+qr)
	return b
}

// OrderBy appends an ORDER BY clause. Direction defaults to ASC.
func (b *Builder) OrderBy(col string, dir ...string) *Builder {
	if b.err != nil {
		return b
	}
	q, err := Quote(b.dialect, col)
	if err != nil {
		b.err = err
		return b
	}
	d := "ASC"
	if len(dir) > 0 {
		d = strings.ToUpper(strings.TrimSpace(dir[0]))
		if d != "ASC" && d != "DESC" {
			b.err = invalidf("order direction must be ASC or DESC, got %q", dir[0])
			return b
		}
	}
	b.orders = append(b.orders, q+" "+d)
	return b
}

// GroupBy appends GROUP BY columns.
func (b *Builder) GroupBy(cols ...string) *Builder {
	if b.err != nil {
		return b
	}
	for _, c := range cols {
		q, err := Quote(b.dialect, c)
		if err != nil {
			b.err = err
			return b
		}
		b.groups = append(b.groups, q)
	}
	return b
}

// Having adds a HAVING fragment. The column may be an aggregate expression,
// which is emitted verbatim after a statement-termination check. Bound
// values are still parameterized; the punctuation check is defense in
// depth, not a substitute for binding.
func (b *Builder) Having(col, op string, value any) *Builder {
	if b.err != nil {
		return b
	}
	if stmtPunct(col) {
		b.err = invalidf("having expression %q contains statement punctuation", col)
		return b
	}
	if raw, ok := value.(*dialect.RawExpr); ok && stmtPunct(raw.Expr()) {
		b.err = invalidf("having raw value contains statement punctuation")
		return b
	}
	if !strings.ContainsAny(col, "(*") {
		b.addCondition(&b.havings, and, col, op, value)
		return b
	}
	nop, err := normalizeOp(op)
	if err != nil {
		b.err = err
		return b
	}
	rhs := ""
	if raw, ok := value.(*dialect.RawExpr); ok {
		rhs = raw.Expr()
	} else {
		rhs = b.placeholder(value)
	}
	b.havings = append(b.havings, frag{sql: col + " " + nop + " " + rhs, conj: and})
	return b
}

// stmtPunct reports whether the expression carries punctuation associated
// with statement termination or comments.
func stmtPunct(s string) bool {
	return strings.ContainsRune(s, ';') || strings.Contains(s, "--") || strings.Contains(s, "/*")
}

// Limit caps the number of returned rows. Negative values are rejected.
func (b *Builder) Limit(n int) *Builder {
	if b.err != nil {
		return b
	}
	if n < 0 {
		b.err = invalidf("limit must not be negative, got %d", n)
		return b
	}
	b.limit = n
	return b
}

// Offset skips the given number of rows. Negative values are rejected.
func (b *Builder) Offset(n int) *Builder {
	if b.err != nil {
		return b
	}
	if n < 0 {
		b.err = invalidf("offset must not be negative, got %d", n)
		return b
	}
	b.offset = n
	return b
}

// tokenRe matches the internal placeholder markers embedded in fragments.
var tokenRe = regexp.MustCompile(`:v\d+\b`)

// finalize rewrites internal placeholder markers to the dialect's
// positional parameters and extracts the bound values in marker order.
func (b *Builder) finalize(q string) (string, []any) {
	locs := tokenRe.FindAllStringIndex(q, -1)
	if len(locs) == 0 {
		return q, []any{}
	}
	args := make([]any, 0, len(locs))
	var sb strings.Builder
	last := 0
	for i, loc := range locs {
		sb.WriteString(q[last:loc[0]])
		args = append(args, b.binds[q[loc[0]+1:loc[1]]])
		if b.dialect == dialect.Postgres {
			sb.WriteString("$")
			sb.WriteString(strconv.Itoa(i + 1))
		} else {
			sb.WriteString("?")
		}
		last = loc[1]
	}
	sb.WriteString(q[last:])
	return sb.String(), args
}

// aliasRe splits "expr AS alias" projections.
var aliasRe = regexp.MustCompile(`(?i)\s+as\s+`)

// compileProjection renders the SELECT list, completing it with the bound
// schema's qualified primary key when appropriate.
func (b *Builder) compileProjection() (string, error) {
	fields := b.columns
	if len(fields) == 0 || (len(fields) == 1 && fields[0] == "*") {
		return "*", nil
	}
	var (
		out         []string
		hasStandard bool
		pkPresent   bool
		pk          string
	)
	if b.schema != nil {
		pk = b.schema.PrimaryKey()
	}
	for _, f := range fields {
		f = strings.TrimSpace(f)
		// Aggregates, expressions and numeric literals are emitted
		// verbatim; they are not standard columns and never trigger
		// primary-key completion.
		if strings.ContainsAny(f, "(*") || (f != "" && f[0] >= '0' && f[0] <= '9') {
			if stmtPunct(f) {
				return "", invalidf("projection %q contains statement punctuation", f)
			}
			out = append(out, f)
			continue
		}
		parts := aliasRe.Split(f, 2)
		qcol, err := Quote(b.dialect, parts[0])
		if err != nil {
			return "", err
		}
		expr := qcol
		if len(parts) == 2 {
			alias := parts[1]
			if !identOK(alias) || strings.Contains(alias, ".") {
				return "", invalidf("malformed alias %q", alias)
			}
			expr += " AS " + quoteRune(b.dialect) + alias + quoteRune(b.dialect)
		}
		out = append(out, expr)
		hasStandard = true
		if pk != "" && (parts[0] == pk || parts[0] == b.table+"."+pk) {
			pkPresent = true
		}
	}
	if pk != "" && hasStandard && !pkPresent {
		qpk, err := Quote(b.dialect, b.table+"."+pk)
		if err != nil {
			return "", err
		}
		out = append([]string{qpk}, out...)
	}
	return strings.Join(out, ", "), nil
}

// compileSelect renders the SELECT statement with internal placeholder
// markers still embedded.
func (b *Builder) compileSelect() (string, error) {
	proj, err := b.compileProjection()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(proj)
	sb.WriteString(" FROM ")
	sb.WriteString(b.qtable)
	for _, j := range b.joins {
		sb.WriteString(" ")
		sb.WriteString(j)
	}
	if len(b.preds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(joinFrags(b.preds))
	}
	if len(b.groups) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(b.groups, ", "))
	}
	if len(b.havings) > 0 {
		sb.WriteString(" HAVING ")
		sb.WriteString(joinFrags(b.havings))
	}
	if len(b.orders) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orders, ", "))
	}
	if b.limit >= 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(b.limit))
	}
	if b.offset >= 0 {
		sb.WriteString(" OFFSET ")
		sb.WriteString(strconv.Itoa(b.offset))
	}
	return sb.String(), nil
}

// compile renders the current operation. Write statements are compiled once
// by their terminal and replayed from there, keeping compile idempotent.
func (b *Builder) compile() (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	if b.table == "" {
		return "", nil, statef("no table set")
	}
	var (
		q   string
		err error
	)
	if b.op == OpSelect {
		q, err = b.compileSelect()
		if err != nil {
			return "", nil, err
		}
	} else {
		q = b.stmt
	}
	fq, args := b.finalize(q)
	return fq, args, nil
}

// SQL returns the compiled statement and its bindings for introspection.
// It fails if no table is set, or if the builder holds an UPDATE: update
// SQL is only observable by executing it.
func (b *Builder) SQL() (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	if b.op == OpUpdate {
		return "", nil, statef("UPDATE SQL is only observable through execution")
	}
	return b.compile()
}

// transition pins the builder to a write operation. A builder whose
// operation was already pinned refuses further terminals.
func (b *Builder) transition(to Op) error {
	if b.op != OpSelect {
		return statef("builder already holds a %s statement", b.op)
	}
	b.op = to
	return nil
}

// requireSelect guards the read terminals.
func (b *Builder) requireSelect() error {
	if b.err != nil {
		return b.err
	}
	if b.op != OpSelect {
		return statef("builder already holds a %s statement", b.op)
	}
	if b.table == "" {
		return statef("no table set")
	}
	if b.drv == nil {
		return statef("no driver bound")
	}
	return nil
}

func (b *Builder) queryRows(ctx context.Context, query string, args []any) ([]map[string]any, error) {
	var rows Rows
	if err := b.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, wrapExecError(query, err)
	}
	return ScanMaps(rows)
}

func (b *Builder) execStmt(ctx context.Context, query string, args []any) (Result, error) {
	var res Result
	if err := b.drv.Exec(ctx, query, args, &res); err != nil {
		return nil, wrapExecError(query, err)
	}
	return res, nil
}

// All executes the SELECT and returns every row as a column-keyed map.
func (b *Builder) All(ctx context.Context) ([]map[string]any, error) {
	if err := b.requireSelect(); err != nil {
		return nil, err
	}
	q, args, err := b.compile()
	if err != nil {
		return nil, err
	}
	return b.queryRows(ctx, q, args)
}

// First executes the SELECT with LIMIT 1 and returns the first row, or nil
// when no row matches.
func (b *Builder) First(ctx context.Context) (map[string]any, error) {
	if err := b.requireSelect(); err != nil {
		return nil, err
	}
	prev := b.limit
	b.limit = 1
	defer func() { b.limit = prev }()
	rows, err := b.All(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// Count executes SELECT COUNT(*) over the current predicates. The prior
// projection, ordering, limit and offset are restored under all exit paths,
// including execution failures.
func (b *Builder) Count(ctx context.Context) (int, error) {
	if err := b.requireSelect(); err != nil {
		return 0, err
	}
	prevCols, prevOrders, prevLimit, prevOffset := b.columns, b.orders, b.limit, b.offset
	defer func() {
		b.columns, b.orders, b.limit, b.offset = prevCols, prevOrders, prevLimit, prevOffset
	}()
	b.columns = []string{"COUNT(*) AS aggregate"}
	b.orders = nil
	b.limit, b.offset = -1, -1
	q, args, err := b.compile()
	if err != nil {
		return 0, err
	}
	rows, err := b.queryRows(ctx, q, args)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return toInt(rows[0]["aggregate"])
}

// Exists reports whether any row matches the current predicates.
func (b *Builder) Exists(ctx context.Context) (bool, error) {
	if err := b.requireSelect(); err != nil {
		return false, err
	}
	prevCols, prevLimit := b.columns, b.limit
	defer func() { b.columns, b.limit = prevCols, prevLimit }()
	b.columns = []string{"1 AS one"}
	b.limit = 1
	q, args, err := b.compile()
	if err != nil {
		return false, err
	}
	rows, err := b.queryRows(ctx, q, args)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// Page is one page of results produced by Paginate.
type Page struct {
	Data        []map[string]any `json:"data"`
	Total       int              `json:"total"`
	PerPage     int              `json:"per_page"`
	CurrentPage int              `json:"current_page"`
	LastPage    int              `json:"last_page"`
}

// Paginate computes the total row count, then fetches the requested page.
// Both page and perPage must be at least 1.
func (b *Builder) Paginate(ctx context.Context, page, perPage int) (*Page, error) {
	if err := b.requireSelect(); err != nil {
		return nil, err
	}
	if page < 1 || perPage < 1 {
		return nil, invalidf("page and perPage must be >= 1, got page=%d perPage=%d", page, perPage)
	}
	total, err := b.Count(ctx)
	if err != nil {
		return nil, err
	}
	prevLimit, prevOffset := b.limit, b.offset
	defer func() { b.limit, b.offset = prevLimit, prevOffset }()
	b.limit = perPage
	b.offset = (page - 1) * perPage
	data, err := b.All(ctx)
	if err != nil {
		return nil, err
	}
	return &Page{
		Data:        data,
		Total:       total,
		PerPage:     perPage,
		CurrentPage: page,
		LastPage:    (total + perPage - 1) / perPage,
	}, nil
}

// Chunk pages through the result set with Paginate until a short page is
// returned, invoking fn once per page.
func (b *Builder) Chunk(ctx context.Context, size int, fn func(page int, rows []map[string]any) error) error {
	if size < 1 {
		return invalidf("chunk size must be >= 1, got %d", size)
	}
	for page := 1; ; page++ {
		p, err := b.Paginate(ctx, page, size)
		if err != nil {
			return err
		}
		if len(p.Data) > 0 {
			if err := fn(page, p.Data); err != nil {
				return err
			}
		}
		if len(p.Data) < size {
			return nil
		}
	}
}

// Cursor executes the SELECT and streams rows one at a time instead of
// materializing the full result set. The caller owns Close.
func (b *Builder) Cursor(ctx context.Context) (*Cursor, error) {
	if err := b.requireSelect(); err != nil {
		return nil, err
	}
	q, args, err := b.compile()
	if err != nil {
		return nil, err
	}
	var rows Rows
	if err := b.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, wrapExecError(q, err)
	}
	columns, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, err
	}
	return &Cursor{rows: rows, columns: columns}, nil
}

// Cursor streams SELECT results row by row.
type Cursor struct {
	rows    Rows
	columns []string
	current map[string]any
	err     error
}

// Next advances to the next row, reporting false at the end of the set or
// on error.
func (c *Cursor) Next() bool {
	if c.err != nil || !c.rows.Next() {
		if c.err == nil {
			c.err = c.rows.Err()
		}
		return false
	}
	row, err := scanRow(c.rows, c.columns)
	if err != nil {
		c.err = err
		return false
	}
	c.current = row
	return true
}

// Row returns the current row.
func (c *Cursor) Row() map[string]any { return c.current }

// Err returns the first error encountered while iterating.
func (c *Cursor) Err() error { return c.err }

// Close releases the underlying rows.
func (c *Cursor) Close() error { return c.rows.Close() }

// Insert executes an INSERT of one row or a batch. Column names are taken
// from the first row and sanitized once; every row contributes one indexed
// placeholder tuple to a single multi-row VALUES clause. The returned
// slice holds the recovered primary keys, which may be empty for batch
// inserts with driver-generated keys on dialects without RETURNING.
func (b *Builder) Insert(ctx context.Context, rows ...map[string]any) ([]any, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.drv == nil {
		return nil, statef("no driver bound")
	}
	if b.table == "" {
		return nil, statef("no table set")
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, invalidf("insert requires at least one non-empty row")
	}
	if err := b.transition(OpInsert); err != nil {
		return nil, err
	}
	cols := make([]string, 0, len(rows[0]))
	for c := range rows[0] {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	qcols := make([]string, len(cols))
	for i, c := range cols {
		q, err := Quote(b.dialect, c)
		if err != nil {
			return nil, err
		}
		qcols[i] = q
	}
	tuples := make([]string, len(rows))
	for ri, row := range rows {
		vals := make([]string, len(cols))
		for ci, c := range cols {
			v, ok := row[c]
			if !ok {
				vals[ci] = "NULL"
				continue
			}
			if raw, isRaw := v.(*dialect.RawExpr); isRaw {
				vals[ci] = raw.Expr()
				continue
			}
			vals[ci] = b.placeholder(v)
		}
		tuples[ri] = "(" + strings.Join(vals, ", ") + ")"
	}
	b.stmt = "INSERT INTO " + b.qtable + " (" + strings.Join(qcols, ", ") + ") VALUES " + strings.Join(tuples, ", ")

	pk := ""
	if b.schema != nil {
		pk = b.schema.PrimaryKey()
	}
	if pk != "" && dialect.SupportsReturning(b.dialect) {
		qpk, err := Quote(b.dialect, pk)
		if err != nil {
			return nil, err
		}
		b.stmt += " RETURNING " + qpk
		q, args := b.finalize(b.stmt)
		res, err := b.queryRows(ctx, q, args)
		if err != nil {
			return nil, err
		}
		ids := make([]any, 0, len(res))
		for _, r := range res {
			ids = append(ids, r[pk])
		}
		return ids, nil
	}
	q, args := b.finalize(b.stmt)
	res, err := b.execStmt(ctx, q, args)
	if err != nil {
		return nil, err
	}
	return recoverInsertIDs(b.dialect, pk, rows, res)
}

// Update executes an UPDATE of the given assignments over the current
// predicates. Raw expression values are interpolated verbatim per
// assignment; all other values are bound. Empty data is a no-op returning
// false, not an error: "nothing to do" is distinguished from "failed".
func (b *Builder) Update(ctx context.Context, data map[string]any) (bool, error) {
	if b.err != nil {
		return false, b.err
	}
	if len(data) == 0 {
		return false, nil
	}
	if b.drv == nil {
		return false, statef("no driver bound")
	}
	if b.table == "" {
		return false, statef("no table set")
	}
	if err := b.transition(OpUpdate); err != nil {
		return false, err
	}
	cols := make([]string, 0, len(data))
	for c := range data {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	assigns := make([]string, len(cols))
	for i, c := range cols {
		q, err := Quote(b.dialect, c)
		if err != nil {
			return false, err
		}
		if raw, ok := data[c].(*dialect.RawExpr); ok {
			assigns[i] = q + " = " + raw.Expr()
			continue
		}
		assigns[i] = q + " = " + b.placeholder(data[c])
	}
	b.stmt = "UPDATE " + b.qtable + " SET " + strings.Join(assigns, ", ")
	if len(b.preds) > 0 {
		b.stmt += " WHERE " + joinFrags(b.preds)
	}
	q, args := b.finalize(b.stmt)
	if _, err := b.execStmt(ctx, q, args); err != nil {
		return false, err
	}
	return true, nil
}

// Delete executes a DELETE over the current predicates and returns the
// number of affected rows.
//
// A builder with no predicates deletes every row in the table. That is the
// intended contract, not a guarded edge case: callers issuing mass deletes
// must scope them explicitly with Where.
func (b *Builder) Delete(ctx context.Context) (int64, error) {
	if b.err != nil {
		return 0, b.err
	}
	if b.drv == nil {
		return 0, statef("no driver bound")
	}
	if b.table == "" {
		return 0, statef("no table set")
	}
	if err := b.transition(OpDelete); err != nil {
		return 0, err
	}
	b.stmt = "DELETE FROM " + b.qtable
	if len(b.preds) > 0 {
		b.stmt += " WHERE " + joinFrags(b.preds)
	}
	q, args := b.finalize(b.stmt)
	res, err := b.execStmt(ctx, q, args)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Exec compiles and executes the current statement, returning the driver
// result. It is the low-level escape hatch used when no row data is
// expected back.
func (b *Builder) Exec(ctx context.Context) (Result, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.drv == nil {
		return nil, statef("no driver bound")
	}
	q, args, err := b.compile()
	if err != nil {
		return nil, err
	}
	return b.execStmt(ctx, q, args)
}

// toInt normalizes the driver-native COUNT value.
func toInt(v any) (int, error) {
	switch v := v.(type) {
	case int64:
		return int(v), nil
	case int:
		return v, nil
	case float64:
		return int(v), nil
	case []byte:
		return strconv.Atoi(string(v))
	case string:
		return strconv.Atoi(v)
	default:
		return 0, fmt.Errorf("sql: unexpected count type %T", v)
	}
}
