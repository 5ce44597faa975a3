package loam

// A Record is one hydrated row of a schema: a field map plus a dirty set
// tracking in-memory changes and a cache of loaded relations.
type Record struct {
	schema    *Schema
	fields    map[string]any
	dirty     map[string]struct{}
	relations map[string]any
}

// newRecord hydrates a row into a clean record.
func newRecord(s *Schema, row map[string]any) *Record {
	return &Record{
		schema:    s,
		fields:    row,
		dirty:     make(map[string]struct{}),
		relations: make(map[string]any),
	}
}

// NewRecord returns an empty record of the schema, for building up a row
// before Create.
func NewRecord(s *Schema) *Record {
	return newRecord(s, make(map[string]any))
}

// Schema returns the schema the record belongs to.
func (r *Record) Schema() *Schema { return r.schema }

// Get returns the value of the named field, or nil.
func (r *Record) Get(name string) any { return r.fields[name] }

// Set assigns a field value and marks it dirty.
func (r *Record) Set(name string, v any) *Record {
	r.fields[name] = v
	r.dirty[name] = struct{}{}
	return r
}

// ID returns the primary key value, or nil when the schema has no primary
// key or the record was never persisted.
func (r *Record) ID() any {
	if pk := r.schema.PrimaryKey(); pk != "" {
		return r.fields[pk]
	}
	return nil
}

// Fields returns a copy of the field map.
func (r *Record) Fields() map[string]any {
	out := make(map[string]any, len(r.fields))
	for k, v := range r.fields {
		out[k] = v
	}
	return out
}

// Dirty returns the changed fields since the record was hydrated or last
// saved.
func (r *Record) Dirty() map[string]any {
	out := make(map[string]any, len(r.dirty))
	for k := range r.dirty {
		out[k] = r.fields[k]
	}
	return out
}

// IsDirty reports whether the record carries unsaved changes.
func (r *Record) IsDirty() bool { return len(r.dirty) > 0 }

// clean resets the dirty set after a successful write.
func (r *Record) clean() {
	r.dirty = make(map[string]struct{})
}

func (r *Record) setRelation(name string, v any) {
	r.relations[name] = v
}

// One returns an eager-loaded to-one relation. It fails with a
// NotLoadedError when the relation was never loaded; a loaded relation
// with no matching row returns nil.
func (r *Record) One(name string) (*Record, error) {
	v, ok := r.relations[name]
	if !ok {
		return nil, NewNotLoadedError(name)
	}
	rec, _ := v.(*Record)
	return rec, nil
}

// Many returns an eager-loaded to-many relation. It fails with a
// NotLoadedError when the relation was never loaded.
func (r *Record) Many(name string) ([]*Record, error) {
	v, ok := r.relations[name]
	if !ok {
		return nil, NewNotLoadedError(name)
	}
	recs, _ := v.([]*Record)
	return recs, nil
}
