package loam

import (
	"fmt"
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/syssam/loam/dialect/sql"
	"github.com/syssam/loam/schema/field"
)

// Schema describes one entity: its table, columns, primary key and
// relations. A Schema is declared once, usually at package level, and
// shared by every Model built on it.
//
//	users := loam.NewSchema("user",
//		field.BigInt("id").PrimaryKey().AutoIncrement(),
//		field.Varchar("name"),
//		field.Varchar("email").Size(120).Unique(),
//	).HasMany("posts", posts, "user_id")
type Schema struct {
	name      string
	table     string
	columns   []*field.Column
	pk        string
	relations map[string]*Relation
}

// NewSchema declares a schema for the named entity. The table name is the
// pluralized snake_case form of the entity name ("user" becomes "users",
// "OrderItem" becomes "order_items"); override it with Table. The primary
// key is the first column marked PrimaryKey, falling back to a column
// named "id" when none is marked.
func NewSchema(name string, columns ...*field.Column) *Schema {
	s := &Schema{
		name:      name,
		table:     inflect.Pluralize(inflect.Underscore(name)),
		columns:   columns,
		relations: make(map[string]*Relation),
	}
	for _, c := range columns {
		if c.Descriptor().PrimaryKey || c.Descriptor().AutoIncrement {
			s.pk = c.Name()
			break
		}
	}
	if s.pk == "" {
		for _, c := range columns {
			if c.Name() == "id" {
				s.pk = "id"
				break
			}
		}
	}
	return s
}

// Table overrides the derived table name.
func (s *Schema) Table(name string) *Schema {
	s.table = name
	return s
}

// Name returns the entity name.
func (s *Schema) Name() string { return s.name }

// TableName returns the table the schema maps to.
func (s *Schema) TableName() string { return s.table }

// PrimaryKey returns the primary key column name, or "" when the schema
// has none.
func (s *Schema) PrimaryKey() string { return s.pk }

// ColumnNames returns the declared column names in declaration order.
func (s *Schema) ColumnNames() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name()
	}
	return names
}

// Column returns the declaration of the named column, or nil.
func (s *Schema) Column(name string) *field.Column {
	for _, c := range s.columns {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// Relation returns the named relation, or nil.
func (s *Schema) Relation(name string) *Relation {
	return s.relations[name]
}

// CreateSQL renders a CREATE TABLE IF NOT EXISTS statement for the given
// dialect. Every column is resolved and validated on the way.
func (s *Schema) CreateSQL(d string) (string, error) {
	if len(s.columns) == 0 {
		return "", fmt.Errorf("loam: schema %q has no columns", s.name)
	}
	qt, err := sql.Quote(d, s.table)
	if err != nil {
		return "", err
	}
	clauses := make([]string, len(s.columns))
	for i, c := range s.columns {
		def, err := c.Resolve(d)
		if err != nil {
			return "", err
		}
		clauses[i] = def.SQL
	}
	return "CREATE TABLE IF NOT EXISTS " + qt + " (" + strings.Join(clauses, ", ") + ")", nil
}

// DropSQL renders a DROP TABLE IF EXISTS statement for the given dialect.
func (s *Schema) DropSQL(d string) (string, error) {
	qt, err := sql.Quote(d, s.table)
	if err != nil {
		return "", err
	}
	return "DROP TABLE IF EXISTS " + qt, nil
}

var _ sql.TableSchema = (*Schema)(nil)
