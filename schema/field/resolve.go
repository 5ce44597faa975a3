package field

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/syssam/loam/dialect"
	"github.com/syssam/loam/dialect/sql"
)

// Declaration bounds. Lengths follow the strictest backend so a declaration
// that validates once is valid on every dialect.
const (
	defaultSize      = 255
	maxSize          = 65535
	maxBitSize       = 64
	defaultPrecision = 10
	defaultScale     = 0
	maxPrecision     = 65
	maxScale         = 30
	maxFsp           = 6
)

// Definition is a resolved column: the native type of the target dialect
// and the full column clause ready to be embedded in CREATE TABLE.
type Definition struct {
	Name       string
	NativeType string
	SQL        string
}

// Resolve validates the declaration and maps it to the given dialect.
func (c *Column) Resolve(d string) (*Definition, error) {
	desc := &c.desc
	switch d {
	case dialect.MySQL, dialect.Postgres, dialect.SQLite:
	default:
		return nil, fmt.Errorf("field: dialect %q: %w", d, ErrUnsupportedType)
	}
	if !desc.Type.Valid() {
		return nil, fmt.Errorf("field: type of column %q: %w", desc.Name, ErrUnsupportedType)
	}
	quoted, err := sql.Quote(d, desc.Name)
	if err != nil {
		return nil, validationf(desc.Name, "invalid column name")
	}
	if err := desc.validate(); err != nil {
		return nil, err
	}
	native := nativeType(d, desc)
	clause, err := desc.clause(d, quoted, native)
	if err != nil {
		return nil, err
	}
	return &Definition{Name: desc.Name, NativeType: native, SQL: clause}, nil
}

// MustResolve is like Resolve but panics on invalid declarations. It is
// intended for schemas declared as package-level literals.
func (c *Column) MustResolve(d string) *Definition {
	def, err := c.Resolve(d)
	if err != nil {
		panic(err)
	}
	return def
}

func (d *Descriptor) validate() error {
	t := d.Type
	switch {
	case t.Sized():
		size := d.Size
		if size == 0 {
			break
		}
		max := maxSize
		if t == TypeBit {
			max = maxBitSize
		}
		if size < 1 || size > max {
			return validationf(d.Name, "size %d out of range [1, %d]", size, max)
		}
	case t.Numeric():
		if !d.hasPrecision {
			break
		}
		if d.Precision < 1 || d.Precision > maxPrecision {
			return validationf(d.Name, "precision %d out of range [1, %d]", d.Precision, maxPrecision)
		}
		if d.Scale < 0 || d.Scale > maxScale {
			return validationf(d.Name, "scale %d out of range [0, %d]", d.Scale, maxScale)
		}
		if d.Scale > d.Precision {
			return validationf(d.Name, "scale %d exceeds precision %d", d.Scale, d.Precision)
		}
	case t.Temporal():
		if d.hasPrecision && (d.Precision < 0 || d.Precision > maxFsp) {
			return validationf(d.Name, "fractional seconds precision %d out of range [0, %d]", d.Precision, maxFsp)
		}
	case t.Enumerated():
		if len(d.Values) == 0 {
			return validationf(d.Name, "%s requires at least one value", t)
		}
		seen := make(map[string]struct{}, len(d.Values))
		for _, v := range d.Values {
			if v == "" {
				return validationf(d.Name, "%s values must not be empty", t)
			}
			if _, ok := seen[v]; ok {
				return validationf(d.Name, "duplicate %s value %q", t, v)
			}
			seen[v] = struct{}{}
		}
		if d.HasDefault {
			s, ok := d.Default.(string)
			if !ok {
				return validationf(d.Name, "%s default must be a string, got %T", t, d.Default)
			}
			if _, ok := seen[s]; !ok {
				return validationf(d.Name, "default %q outside the declared values", s)
			}
		}
	}
	if d.HasDefault {
		if err := d.validateDefault(); err != nil {
			return err
		}
	}
	if d.AutoIncrement {
		if !t.integer() {
			return validationf(d.Name, "auto increment requires an integer type, got %s", t)
		}
		if !d.PrimaryKey && t != TypeSerial {
			return validationf(d.Name, "auto increment requires a primary key column")
		}
		if d.HasDefault {
			return validationf(d.Name, "auto increment column cannot have a default")
		}
	}
	if ref := d.Ref; ref != nil {
		if ref.Table == "" || ref.Column == "" {
			return validationf(d.Name, "foreign key requires both table and column")
		}
		for _, action := range []string{ref.OnDelete, ref.OnUpdate} {
			if _, err := normalizeAction(action); err != nil {
				return validationf(d.Name, "%v", err)
			}
		}
	}
	return nil
}

func (d *Descriptor) validateDefault() error {
	if _, ok := d.Default.(*dialect.RawExpr); ok {
		return nil
	}
	switch d.Type {
	case TypeBool:
		switch d.Default {
		case true, false, 0, 1:
			return nil
		}
		return validationf(d.Name, "boolean default must be true, false, 0 or 1, got %v", d.Default)
	case TypeUUID:
		s, ok := d.Default.(string)
		if !ok {
			return validationf(d.Name, "uuid default must be a string, got %T", d.Default)
		}
		id, err := uuid.Parse(s)
		if err != nil || id.String() != s {
			return validationf(d.Name, "uuid default %q is not in canonical form", s)
		}
	}
	return nil
}

// Referential actions accepted by OnDelete and OnUpdate.
var actions = map[string]string{
	"":            "",
	"CASCADE":     "CASCADE",
	"SET NULL":    "SET NULL",
	"SET DEFAULT": "SET DEFAULT",
	"RESTRICT":    "RESTRICT",
	"NO ACTION":   "NO ACTION",
}

func normalizeAction(action string) (string, error) {
	n := strings.Join(strings.Fields(strings.ToUpper(action)), " ")
	a, ok := actions[n]
	if !ok {
		return "", fmt.Errorf("unknown referential action %q", action)
	}
	return a, nil
}

// nativeType maps a validated declaration to the dialect's native type.
func nativeType(d string, desc *Descriptor) string {
	t := desc.Type
	switch d {
	case dialect.Postgres:
		return postgresType(t, desc)
	case dialect.SQLite:
		return sqliteType(t, desc)
	default:
		return mysqlType(t, desc)
	}
}

func sized(base string, size, def int) string {
	if size == 0 {
		size = def
	}
	return base + "(" + strconv.Itoa(size) + ")"
}

func numericType(base string, desc *Descriptor) string {
	p, s := desc.Precision, desc.Scale
	if !desc.hasPrecision {
		p, s = defaultPrecision, defaultScale
	}
	return base + "(" + strconv.Itoa(p) + ", " + strconv.Itoa(s) + ")"
}

func fsp(base string, desc *Descriptor) string {
	if !desc.hasPrecision {
		return base
	}
	return base + "(" + strconv.Itoa(desc.Precision) + ")"
}

func mysqlType(t Type, desc *Descriptor) string {
	switch t {
	case TypeTinyInt:
		return "TINYINT"
	case TypeSmallInt:
		return "SMALLINT"
	case TypeMediumInt:
		return "MEDIUMINT"
	case TypeInt, TypeInteger:
		return "INT"
	case TypeBigInt:
		return "BIGINT"
	case TypeDecimal, TypeNumeric:
		return numericType("DECIMAL", desc)
	case TypeFloat:
		return "FLOAT"
	case TypeDouble:
		return "DOUBLE"
	case TypeReal:
		return "REAL"
	case TypeBit:
		return sized("BIT", desc.Size, 1)
	case TypeBool:
		return "TINYINT(1)"
	case TypeSerial:
		return "SERIAL"
	case TypeDate:
		return "DATE"
	case TypeDateTime:
		return fsp("DATETIME", desc)
	case TypeTimestamp:
		return fsp("TIMESTAMP", desc)
	case TypeTime:
		return fsp("TIME", desc)
	case TypeYear:
		return "YEAR"
	case TypeChar:
		return sized("CHAR", desc.Size, defaultSize)
	case TypeVarchar:
		return sized("VARCHAR", desc.Size, defaultSize)
	case TypeTinyText:
		return "TINYTEXT"
	case TypeText:
		return "TEXT"
	case TypeMediumText:
		return "MEDIUMTEXT"
	case TypeLongText:
		return "LONGTEXT"
	case TypeBinary:
		return sized("BINARY", desc.Size, defaultSize)
	case TypeVarBinary:
		return sized("VARBINARY", desc.Size, defaultSize)
	case TypeTinyBlob:
		return "TINYBLOB"
	case TypeBlob:
		return "BLOB"
	case TypeMediumBlob:
		return "MEDIUMBLOB"
	case TypeLongBlob:
		return "LONGBLOB"
	case TypeEnum:
		return "ENUM(" + enumLiterals(desc.Values) + ")"
	case TypeSet:
		return "SET(" + enumLiterals(desc.Values) + ")"
	case TypeJSON, TypeJSONB:
		return "JSON"
	case TypeUUID:
		return "CHAR(36)"
	case TypeGeometry:
		return "GEOMETRY"
	case TypePoint:
		return "POINT"
	case TypeLineString:
		return "LINESTRING"
	case TypePolygon:
		return "POLYGON"
	}
	return ""
}

func postgresType(t Type, desc *Descriptor) string {
	switch t {
	case TypeTinyInt, TypeSmallInt:
		return "SMALLINT"
	case TypeMediumInt, TypeInt, TypeInteger:
		return "INTEGER"
	case TypeBigInt:
		return "BIGINT"
	case TypeDecimal, TypeNumeric:
		return numericType("NUMERIC", desc)
	case TypeFloat, TypeReal:
		return "REAL"
	case TypeDouble:
		return "DOUBLE PRECISION"
	case TypeBit:
		return sized("BIT", desc.Size, 1)
	case TypeBool:
		return "BOOLEAN"
	case TypeSerial:
		return "SERIAL"
	case TypeDate:
		return "DATE"
	case TypeDateTime, TypeTimestamp:
		return fsp("TIMESTAMP", desc)
	case TypeTime:
		return fsp("TIME", desc)
	case TypeYear:
		return "SMALLINT"
	case TypeChar:
		return sized("CHAR", desc.Size, defaultSize)
	case TypeVarchar:
		return sized("VARCHAR", desc.Size, defaultSize)
	case TypeTinyText, TypeText, TypeMediumText, TypeLongText:
		return "TEXT"
	case TypeBinary, TypeVarBinary, TypeTinyBlob, TypeBlob, TypeMediumBlob, TypeLongBlob:
		return "BYTEA"
	case TypeEnum, TypeSet:
		return "TEXT"
	case TypeJSON:
		return "JSON"
	case TypeJSONB:
		return "JSONB"
	case TypeUUID:
		return "UUID"
	case TypeGeometry:
		return "GEOMETRY"
	case TypePoint:
		return "POINT"
	case TypeLineString:
		return "PATH"
	case TypePolygon:
		return "POLYGON"
	}
	return ""
}

func sqliteType(t Type, desc *Descriptor) string {
	switch t {
	case TypeTinyInt, TypeSmallInt, TypeMediumInt, TypeInt, TypeInteger, TypeBigInt, TypeSerial, TypeBit, TypeYear:
		return "INTEGER"
	case TypeBool:
		return "INTEGER"
	case TypeDecimal, TypeNumeric:
		return numericType("DECIMAL", desc)
	case TypeFloat, TypeDouble, TypeReal:
		return "REAL"
	case TypeDate:
		return "DATE"
	case TypeDateTime:
		return "DATETIME"
	case TypeTimestamp:
		return "TIMESTAMP"
	case TypeTime:
		return "TIME"
	case TypeChar:
		return sized("CHAR", desc.Size, defaultSize)
	case TypeVarchar:
		return sized("VARCHAR", desc.Size, defaultSize)
	case TypeTinyText, TypeText, TypeMediumText, TypeLongText:
		return "TEXT"
	case TypeBinary, TypeVarBinary, TypeTinyBlob, TypeBlob, TypeMediumBlob, TypeLongBlob:
		return "BLOB"
	case TypeEnum, TypeSet:
		return "TEXT"
	case TypeJSON, TypeJSONB:
		return "TEXT"
	case TypeUUID:
		return "TEXT"
	case TypeGeometry, TypePoint, TypeLineString, TypePolygon:
		return "BLOB"
	}
	return ""
}

func enumLiterals(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
	}
	return strings.Join(quoted, ", ")
}

// clause renders the full column clause of a CREATE TABLE statement.
func (d *Descriptor) clause(dlct, quoted, native string) (string, error) {
	parts := []string{quoted}
	switch {
	case d.AutoIncrement && dlct == dialect.SQLite:
		// SQLite ties AUTOINCREMENT to the INTEGER PRIMARY KEY rowid alias.
		parts = append(parts, "INTEGER PRIMARY KEY AUTOINCREMENT")
	case d.AutoIncrement && dlct == dialect.Postgres:
		serial := "SERIAL"
		if d.Type == TypeBigInt {
			serial = "BIGSERIAL"
		}
		parts = append(parts, serial, "PRIMARY KEY")
	case d.AutoIncrement:
		if d.Unsigned {
			native += " UNSIGNED"
		}
		parts = append(parts, native, "NOT NULL", "AUTO_INCREMENT", "PRIMARY KEY")
	default:
		if d.Unsigned && dlct == dialect.MySQL && d.Type.integer() {
			native += " UNSIGNED"
		}
		parts = append(parts, native)
		// MySQL's SERIAL alias already expands to NOT NULL AUTO_INCREMENT.
		if !d.Nullable && d.Type != TypeSerial {
			parts = append(parts, "NOT NULL")
		}
		if d.HasDefault {
			parts = append(parts, "DEFAULT "+dialect.QuoteLiteral(d.Default))
		}
		if d.PrimaryKey {
			parts = append(parts, "PRIMARY KEY")
		}
	}
	if d.Unique {
		parts = append(parts, "UNIQUE")
	}
	// Enum domains become CHECK constraints on backends without a native
	// enum type. Sets stay free-form text there.
	if d.Type == TypeEnum && dlct != dialect.MySQL {
		parts = append(parts, "CHECK ("+quoted+" IN ("+enumLiterals(d.Values)+"))")
	}
	if d.Ref != nil {
		ref, err := d.refClause(dlct)
		if err != nil {
			return "", err
		}
		parts = append(parts, ref)
	}
	return strings.Join(parts, " "), nil
}

func (d *Descriptor) refClause(dlct string) (string, error) {
	qt, err := sql.Quote(dlct, d.Ref.Table)
	if err != nil {
		return "", validationf(d.Name, "invalid foreign key table %q", d.Ref.Table)
	}
	qc, err := sql.Quote(dlct, d.Ref.Column)
	if err != nil {
		return "", validationf(d.Name, "invalid foreign key column %q", d.Ref.Column)
	}
	clause := "REFERENCES " + qt + " (" + qc + ")"
	if a, _ := normalizeAction(d.Ref.OnDelete); a != "" {
		clause += " ON DELETE " + a
	}
	if a, _ := normalizeAction(d.Ref.OnUpdate); a != "" {
		clause += " ON UPDATE " + a
	}
	return clause, nil
}
