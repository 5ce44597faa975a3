package sql

import (
	"reflect"
	"strings"

	"github.com/syssam/loam/dialect"
)

// Predicate conjunctions.
const (
	and = "AND"
	or  = "OR"
)

// operators is the fixed allow-list of predicate and join operators.
// Anything else is rejected before a statement is built.
var operators = map[string]struct{}{
	"=":      {},
	"<>":     {},
	"<":      {},
	">":      {},
	"<=":     {},
	">=":     {},
	"LIKE":   {},
	"ILIKE":  {},
	"IS":     {},
	"IS NOT": {},
	"IN":     {},
}

// frag is one WHERE/HAVING fragment tagged with its conjunction. The first
// fragment of a predicate list is emitted without its conjunction; every
// later fragment carries exactly the conjunction it was added with.
type frag struct {
	sql  string
	conj string
}

// joinFrags emits a predicate list, applying the first-fragment rule.
func joinFrags(frags []frag) string {
	var sb strings.Builder
	for i, f := range frags {
		if i > 0 {
			sb.WriteString(" ")
			sb.WriteString(f.conj)
			sb.WriteString(" ")
		}
		sb.WriteString(f.sql)
	}
	return sb.String()
}

// normalizeOp uppercases and validates an operator against the allow-list.
func normalizeOp(op string) (string, error) {
	n := strings.Join(strings.Fields(strings.ToUpper(op)), " ")
	if _, ok := operators[n]; !ok {
		return "", invalidf("unsupported operator %q", op)
	}
	return n, nil
}

// addCondition builds a single predicate fragment plus its parameter
// binding(s) and appends it to the given fragment list. Raw expression
// values are interpolated verbatim after the operator; all other values
// produce exactly one uniquely named placeholder each.
func (b *Builder) addCondition(frags *[]frag, conj, col, op string, value any) {
	if b.err != nil {
		return
	}
	qcol, err := Quote(b.dialect, col)
	if err != nil {
		b.err = err
		return
	}
	nop, err := normalizeOp(op)
	if err != nil {
		b.err = err
		return
	}
	switch nop {
	case "IS", "IS NOT":
		// A deliberate restriction: IS and IS NOT compare against NULL
		// only, not against arbitrary omitted values.
		if value != nil {
			b.err = invalidf("operator %s requires NULL value", nop)
			return
		}
		*frags = append(*frags, frag{sql: qcol + " " + nop + " NULL", conj: conj})
	case "IN":
		elems, ok := sliceValues(value)
		if !ok {
			b.err = invalidf("operator IN requires a slice value for column %q", col)
			return
		}
		if len(elems) == 0 {
			b.err = invalidf("operator IN requires a non-empty list for column %q", col)
			return
		}
		marks := make([]string, len(elems))
		for i, e := range elems {
			if raw, ok := e.(*dialect.RawExpr); ok {
				marks[i] = raw.Expr()
				continue
			}
			marks[i] = b.placeholder(e)
		}
		*frags = append(*frags, frag{sql: qcol + " IN (" + strings.Join(marks, ", ") + ")", conj: conj})
	default:
		if raw, ok := value.(*dialect.RawExpr); ok {
			*frags = append(*frags, frag{sql: qcol + " " + nop + " " + raw.Expr(), conj: conj})
			return
		}
		*frags = append(*frags, frag{sql: qcol + " " + nop + " " + b.placeholder(value), conj: conj})
	}
}

// sliceValues flattens a slice or array value of any element type.
func sliceValues(value any) ([]any, bool) {
	if vs, ok := value.([]any); ok {
		return vs, true
	}
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
