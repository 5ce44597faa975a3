package loam

import (
	"context"
	"fmt"
)

// RelationKind enumerates the supported relation shapes.
type RelationKind uint8

// Relation kinds.
const (
	BelongsTo RelationKind = iota
	HasOne
	HasMany
	BelongsToMany
)

// String returns the relation kind name.
func (k RelationKind) String() string {
	switch k {
	case BelongsTo:
		return "belongs_to"
	case HasOne:
		return "has_one"
	case HasMany:
		return "has_many"
	case BelongsToMany:
		return "belongs_to_many"
	}
	return "unknown"
}

// Relation declares a link between two schemas. Relations are loaded
// eagerly: one additional query per relation regardless of how many parent
// records are being hydrated.
type Relation struct {
	Kind       RelationKind
	Name       string
	Related    *Schema
	ForeignKey string // fk column on the owning side

	// Pivot wiring, used by BelongsToMany only.
	PivotTable   string
	PivotLocal   string // pivot column referencing this schema's key
	PivotRelated string // pivot column referencing the related schema's key
}

// BelongsTo declares that this schema holds a foreign key to the related
// schema's primary key.
func (s *Schema) BelongsTo(name string, related *Schema, foreignKey string) *Schema {
	s.relations[name] = &Relation{Kind: BelongsTo, Name: name, Related: related, ForeignKey: foreignKey}
	return s
}

// HasOne declares that the related schema holds a foreign key to this
// schema's primary key, with at most one related row per record.
func (s *Schema) HasOne(name string, related *Schema, foreignKey string) *Schema {
	s.relations[name] = &Relation{Kind: HasOne, Name: name, Related: related, ForeignKey: foreignKey}
	return s
}

// HasMany declares that the related schema holds a foreign key to this
// schema's primary key.
func (s *Schema) HasMany(name string, related *Schema, foreignKey string) *Schema {
	s.relations[name] = &Relation{Kind: HasMany, Name: name, Related: related, ForeignKey: foreignKey}
	return s
}

// BelongsToMany declares a many-to-many relation through a pivot table.
func (s *Schema) BelongsToMany(name string, related *Schema, pivot, pivotLocal, pivotRelated string) *Schema {
	s.relations[name] = &Relation{
		Kind:         BelongsToMany,
		Name:         name,
		Related:      related,
		PivotTable:   pivot,
		PivotLocal:   pivotLocal,
		PivotRelated: pivotRelated,
	}
	return s
}

// keyOf normalizes a key value for dictionary grouping. Driver-native
// integer widths and byte slices all collapse to one comparable form.
func keyOf(v any) string {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}

// With eager loads the named relations onto the given records. Each
// relation costs exactly one query, keyed over the distinct parent keys.
func (m *Model) With(ctx context.Context, records []*Record, names ...string) error {
	for _, name := range names {
		rel := m.schema.Relation(name)
		if rel == nil {
			return NewQueryError(m.schema.TableName(), "with",
				fmt.Errorf("unknown relation %q on %s", name, m.schema.Name()))
		}
		if err := m.loadRelation(ctx, rel, records); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) loadRelation(ctx context.Context, rel *Relation, parents []*Record) error {
	if len(parents) == 0 {
		return nil
	}
	switch rel.Kind {
	case BelongsTo:
		return m.loadBelongsTo(ctx, rel, parents)
	case HasOne, HasMany:
		return m.loadHas(ctx, rel, parents)
	case BelongsToMany:
		return m.loadBelongsToMany(ctx, rel, parents)
	}
	return NewQueryError(m.schema.TableName(), "with", fmt.Errorf("unknown relation kind %d", rel.Kind))
}

// distinctKeys collects the unique, non-nil values of the given field over
// all parents, preserving first-seen order.
func distinctKeys(parents []*Record, field string) []any {
	seen := make(map[string]struct{}, len(parents))
	keys := make([]any, 0, len(parents))
	for _, p := range parents {
		v := p.Get(field)
		if v == nil {
			continue
		}
		k := keyOf(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, v)
	}
	return keys
}

func (m *Model) loadBelongsTo(ctx context.Context, rel *Relation, parents []*Record) error {
	keys := distinctKeys(parents, rel.ForeignKey)
	if len(keys) == 0 {
		for _, p := range parents {
			p.setRelation(rel.Name, (*Record)(nil))
		}
		return nil
	}
	rows, err := m.builderFor(rel.Related).
		WhereIn(rel.Related.PrimaryKey(), keys).
		All(ctx)
	if err != nil {
		return NewQueryError(rel.Related.TableName(), "with", err)
	}
	dict := make(map[string]*Record, len(rows))
	for _, row := range rows {
		dict[keyOf(row[rel.Related.PrimaryKey()])] = newRecord(rel.Related, row)
	}
	for _, p := range parents {
		var match *Record
		if v := p.Get(rel.ForeignKey); v != nil {
			match = dict[keyOf(v)]
		}
		p.setRelation(rel.Name, match)
	}
	return nil
}

// attachEmpty marks a to-many or to-one relation as loaded with no rows.
// A requested relation is always attached, even when no parent carries a
// usable key.
func attachEmpty(rel *Relation, parents []*Record) {
	for _, p := range parents {
		if rel.Kind == HasOne {
			p.setRelation(rel.Name, (*Record)(nil))
			continue
		}
		p.setRelation(rel.Name, []*Record{})
	}
}

func (m *Model) loadHas(ctx context.Context, rel *Relation, parents []*Record) error {
	keys := distinctKeys(parents, m.schema.PrimaryKey())
	if len(keys) == 0 {
		attachEmpty(rel, parents)
		return nil
	}
	rows, err := m.builderFor(rel.Related).
		WhereIn(rel.ForeignKey, keys).
		All(ctx)
	if err != nil {
		return NewQueryError(rel.Related.TableName(), "with", err)
	}
	groups := make(map[string][]*Record, len(parents))
	for _, row := range rows {
		k := keyOf(row[rel.ForeignKey])
		groups[k] = append(groups[k], newRecord(rel.Related, row))
	}
	for _, p := range parents {
		children := groups[keyOf(p.Get(m.schema.PrimaryKey()))]
		if rel.Kind == HasOne {
			var first *Record
			if len(children) > 0 {
				first = children[0]
			}
			p.setRelation(rel.Name, first)
			continue
		}
		if children == nil {
			children = []*Record{}
		}
		p.setRelation(rel.Name, children)
	}
	return nil
}

func (m *Model) loadBelongsToMany(ctx context.Context, rel *Relation, parents []*Record) error {
	keys := distinctKeys(parents, m.schema.PrimaryKey())
	if len(keys) == 0 {
		attachEmpty(rel, parents)
		return nil
	}
	// The pivot key rides along under an alias so rows can be grouped back
	// onto their parents after the join.
	alias := "pivot_" + rel.PivotLocal
	related := rel.Related.TableName()
	rows, err := m.builderFor(rel.Related).
		Select(
			related+".*",
			rel.PivotTable+"."+rel.PivotLocal+" AS "+alias,
		).
		Join(rel.PivotTable, related+"."+rel.Related.PrimaryKey(), "=", rel.PivotTable+"."+rel.PivotRelated).
		WhereIn(rel.PivotTable+"."+rel.PivotLocal, keys).
		All(ctx)
	if err != nil {
		return NewQueryError(related, "with", err)
	}
	groups := make(map[string][]*Record, len(parents))
	for _, row := range rows {
		k := keyOf(row[alias])
		delete(row, alias)
		groups[k] = append(groups[k], newRecord(rel.Related, row))
	}
	for _, p := range parents {
		children := groups[keyOf(p.Get(m.schema.PrimaryKey()))]
		if children == nil {
			children = []*Record{}
		}
		p.setRelation(rel.Name, children)
	}
	return nil
}
