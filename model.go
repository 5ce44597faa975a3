package loam

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/syssam/loam/dialect"
	"github.com/syssam/loam/dialect/sql"
)

// Model binds a Schema to a driver and provides record-level operations on
// top of the query builder. A Model is safe for concurrent use; every query
// runs on a fresh builder.
type Model struct {
	schema  *Schema
	drv     dialect.Driver
	dialect string
	cache   Cache
	ttl     time.Duration
	logger  *slog.Logger
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithCache enables result caching for All with the given backend and TTL.
// Writes through the model invalidate the table's entries.
func WithCache(c Cache, ttl time.Duration) ModelOption {
	return func(m *Model) {
		m.cache = c
		m.ttl = ttl
	}
}

// WithLogger sets the slog logger used by the model.
func WithLogger(l *slog.Logger) ModelOption {
	return func(m *Model) {
		m.logger = l
	}
}

// NewModel returns a Model for the schema on the given driver.
func NewModel(drv dialect.Driver, schema *Schema, opts ...ModelOption) *Model {
	m := &Model{
		schema:  schema,
		drv:     drv,
		dialect: drv.Dialect(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Schema returns the model's schema.
func (m *Model) Schema() *Schema { return m.schema }

// Query returns a fresh builder bound to the model's schema and driver.
func (m *Model) Query() *sql.Builder {
	return sql.NewBuilder(m.dialect).Driver(m.drv).Bind(m.schema)
}

// builderFor returns a fresh builder targeting another schema's table,
// without binding it. Relation loads select exactly the columns they ask
// for.
func (m *Model) builderFor(s *Schema) *sql.Builder {
	return sql.NewBuilder(m.dialect).Driver(m.drv).Table(s.TableName())
}

// All fetches every row of the table and hydrates it, eager loading the
// named relations. When a cache is configured the row set is served from
// it on repeat queries.
func (m *Model) All(ctx context.Context, with ...string) ([]*Record, error) {
	rows, err := m.cachedAll(ctx, m.Query())
	if err != nil {
		return nil, NewQueryError(m.schema.TableName(), "all", err)
	}
	records := m.hydrate(rows)
	if err := m.With(ctx, records, with...); err != nil {
		return nil, err
	}
	return records, nil
}

// Find fetches the record with the given primary key, eager loading the
// named relations. A missing row is a NotFoundError.
func (m *Model) Find(ctx context.Context, id any, with ...string) (*Record, error) {
	pk := m.schema.PrimaryKey()
	if pk == "" {
		return nil, NewQueryError(m.schema.TableName(), "find", fmt.Errorf("schema %q has no primary key", m.schema.Name()))
	}
	row, err := m.Query().Where(pk, id).First(ctx)
	if err != nil {
		return nil, NewQueryError(m.schema.TableName(), "find", err)
	}
	if row == nil {
		return nil, NewNotFoundErrorWithID(m.schema.TableName(), id)
	}
	rec := newRecord(m.schema, row)
	if err := m.With(ctx, []*Record{rec}, with...); err != nil {
		return nil, err
	}
	return rec, nil
}

// Only fetches the single row matched by the builder. Zero rows is a
// NotFoundError, more than one a NotSingularError. Only pins LIMIT 2 on
// the given builder to detect surplus rows cheaply; like every terminal,
// it consumes the builder, which must not be reused afterwards.
func (m *Model) Only(ctx context.Context, b *sql.Builder) (*Record, error) {
	rows, err := b.Limit(2).All(ctx)
	if err != nil {
		return nil, NewQueryError(m.schema.TableName(), "only", err)
	}
	switch len(rows) {
	case 0:
		return nil, NewNotFoundError(m.schema.TableName())
	case 1:
		return newRecord(m.schema, rows[0]), nil
	default:
		return nil, NewNotSingularError(m.schema.TableName(), len(rows))
	}
}

// Create inserts one row and returns the hydrated record. The recovered
// primary key, when available, is filled into the record.
func (m *Model) Create(ctx context.Context, fields map[string]any) (*Record, error) {
	records, err := m.CreateMany(ctx, fields)
	if err != nil {
		return nil, err
	}
	return records[0], nil
}

// CreateMany inserts a batch of rows in one statement and returns the
// hydrated records. Primary keys are filled in when the dialect allows
// recovering them.
func (m *Model) CreateMany(ctx context.Context, rows ...map[string]any) ([]*Record, error) {
	ids, err := m.Query().Insert(ctx, rows...)
	if err != nil {
		return nil, NewMutationError(m.schema.TableName(), "create", err)
	}
	pk := m.schema.PrimaryKey()
	records := make([]*Record, len(rows))
	for i, row := range rows {
		fields := make(map[string]any, len(row))
		for k, v := range row {
			fields[k] = v
		}
		if pk != "" && len(ids) == len(rows) {
			fields[pk] = ids[i]
		}
		records[i] = newRecord(m.schema, fields)
	}
	m.invalidate(ctx)
	return records, nil
}

// Save writes the record's dirty fields back. A clean record is a no-op.
func (m *Model) Save(ctx context.Context, r *Record) error {
	if !r.IsDirty() {
		return nil
	}
	pk := m.schema.PrimaryKey()
	if pk == "" || r.ID() == nil {
		return NewMutationError(m.schema.TableName(), "update", fmt.Errorf("record has no primary key value"))
	}
	if _, err := m.Query().Where(pk, r.ID()).Update(ctx, r.Dirty()); err != nil {
		return NewMutationError(m.schema.TableName(), "update", err)
	}
	r.clean()
	m.invalidate(ctx)
	return nil
}

// Delete removes the record's row.
func (m *Model) Delete(ctx context.Context, r *Record) error {
	pk := m.schema.PrimaryKey()
	if pk == "" || r.ID() == nil {
		return NewMutationError(m.schema.TableName(), "delete", fmt.Errorf("record has no primary key value"))
	}
	if _, err := m.Query().Where(pk, r.ID()).Delete(ctx); err != nil {
		return NewMutationError(m.schema.TableName(), "delete", err)
	}
	m.invalidate(ctx)
	return nil
}

// CreateTable creates the schema's table if it does not exist.
func (m *Model) CreateTable(ctx context.Context) error {
	q, err := m.schema.CreateSQL(m.dialect)
	if err != nil {
		return err
	}
	return m.drv.Exec(ctx, q, []any{}, nil)
}

// DropTable drops the schema's table if it exists.
func (m *Model) DropTable(ctx context.Context) error {
	q, err := m.schema.DropSQL(m.dialect)
	if err != nil {
		return err
	}
	m.invalidate(ctx)
	return m.drv.Exec(ctx, q, []any{}, nil)
}

func (m *Model) hydrate(rows []map[string]any) []*Record {
	records := make([]*Record, len(rows))
	for i, row := range rows {
		records[i] = newRecord(m.schema, row)
	}
	return records
}

// cachedAll runs the builder's SELECT through the result cache when one is
// configured. Cache failures fall back to the database silently.
func (m *Model) cachedAll(ctx context.Context, b *sql.Builder) ([]map[string]any, error) {
	if m.cache == nil {
		return b.All(ctx)
	}
	q, args, err := b.SQL()
	if err != nil {
		return nil, err
	}
	key := CacheKey{Table: m.schema.TableName(), SQL: q, Args: args}.String()
	if data, err := m.cache.Get(ctx, key); err == nil && data != nil {
		if rows, err := decodeRows(data); err == nil {
			m.logger.LogAttrs(ctx, slog.LevelDebug, "cache hit", slog.String("key", key))
			return rows, nil
		}
	}
	rows, err := b.All(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := encodeRows(rows); err == nil {
		if err := m.cache.Set(ctx, key, data, m.ttl); err != nil {
			m.logger.LogAttrs(ctx, slog.LevelWarn, "cache set failed", slog.String("key", key), slog.Any("error", err))
		}
	}
	return rows, nil
}

func (m *Model) invalidate(ctx context.Context) {
	if m.cache == nil {
		return
	}
	if err := m.cache.DeletePrefix(ctx, m.schema.TableName()+":"); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "cache invalidation failed", slog.String("table", m.schema.TableName()), slog.Any("error", err))
	}
}
