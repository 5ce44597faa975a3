package field

// A Column declares one logical column through a fluent builder. The
// declaration is validated and mapped to a native dialect type by Resolve.
//
//	field.Varchar("email").Size(120).Unique()
//	field.Decimal("price").Precision(12, 2).Default("0.00")
//	field.Enum("status").Values("pending", "active").Default("pending")
type Column struct {
	desc Descriptor
}

// Descriptor holds the raw declaration of a column. It is produced by the
// fluent builder and consumed by Resolve; most callers never construct one
// directly.
type Descriptor struct {
	Name          string
	Type          Type
	Size          int // length of sized types, 0 means the type default
	Precision     int // decimal precision, or fractional seconds of temporal types
	Scale         int
	hasPrecision  bool
	Values        []string // enum/set domain
	Nullable      bool
	Unique        bool
	PrimaryKey    bool
	AutoIncrement bool
	Unsigned      bool
	Default       any
	HasDefault    bool
	Comment       string
	Ref           *Reference
}

// Reference declares a foreign key to another table's column together with
// its referential actions.
type Reference struct {
	Table    string
	Column   string
	OnDelete string
	OnUpdate string
}

// New returns a column declaration of the given logical type. The typed
// constructors below are the usual entry points.
func New(name string, t Type) *Column {
	return &Column{desc: Descriptor{Name: name, Type: t}}
}

// Integer family.
func TinyInt(name string) *Column { return New(name, TypeTinyInt) }
func SmallInt(name string) *Column { return New(name, TypeSmallInt) }
func MediumInt(name string) *Column { return New(name, TypeMediumInt) }
func Int(name string) *Column { return New(name, TypeInt) }
func Integer(name string) *Column { return New(name, TypeInteger) }
func BigInt(name string) *Column { return New(name, TypeBigInt) }
func Serial(name string) *Column { return New(name, TypeSerial) }

// Exact and approximate numerics.
func Decimal(name string) *Column { return New(name, TypeDecimal) }
func Numeric(name string) *Column { return New(name, TypeNumeric) }
func Float(name string) *Column { return New(name, TypeFloat) }
func Double(name string) *Column { return New(name, TypeDouble) }
func Real(name string) *Column { return New(name, TypeReal) }
func Bit(name string) *Column { return New(name, TypeBit) }
func Bool(name string) *Column { return New(name, TypeBool) }

// Temporal types.
func Date(name string) *Column { return New(name, TypeDate) }
func DateTime(name string) *Column { return New(name, TypeDateTime) }
func Timestamp(name string) *Column { return New(name, TypeTimestamp) }
func Time(name string) *Column { return New(name, TypeTime) }
func Year(name string) *Column { return New(name, TypeYear) }

// Character types.
func Char(name string) *Column { return New(name, TypeChar) }
func Varchar(name string) *Column { return New(name, TypeVarchar) }
func TinyText(name string) *Column { return New(name, TypeTinyText) }
func Text(name string) *Column { return New(name, TypeText) }
func MediumText(name string) *Column { return New(name, TypeMediumText) }
func LongText(name string) *Column { return New(name, TypeLongText) }

// Binary types.
func Binary(name string) *Column { return New(name, TypeBinary) }
func VarBinary(name string) *Column { return New(name, TypeVarBinary) }
func TinyBlob(name string) *Column { return New(name, TypeTinyBlob) }
func Blob(name string) *Column { return New(name, TypeBlob) }
func MediumBlob(name string) *Column { return New(name, TypeMediumBlob) }
func LongBlob(name string) *Column { return New(name, TypeLongBlob) }

// Enumerated and structured types.
func Enum(name string) *Column { return New(name, TypeEnum) }
func Set(name string) *Column { return New(name, TypeSet) }
func JSON(name string) *Column { return New(name, TypeJSON) }
func JSONB(name string) *Column { return New(name, TypeJSONB) }
func UUID(name string) *Column { return New(name, TypeUUID) }

// Spatial types.
func Geometry(name string) *Column { return New(name, TypeGeometry) }
func Point(name string) *Column { return New(name, TypePoint) }
func LineString(name string) *Column { return New(name, TypeLineString) }
func Polygon(name string) *Column { return New(name, TypePolygon) }

// Size sets the length of a sized type: char, varchar, binary, varbinary
// and bit.
func (c *Column) Size(n int) *Column {
	c.desc.Size = n
	return c
}

// Precision sets the precision/scale pair of a decimal type. For temporal
// types, use Fsp.
func (c *Column) Precision(precision, scale int) *Column {
	c.desc.Precision = precision
	c.desc.Scale = scale
	c.desc.hasPrecision = true
	return c
}

// Fsp sets the fractional-seconds precision of a temporal type.
func (c *Column) Fsp(n int) *Column {
	c.desc.Precision = n
	c.desc.hasPrecision = true
	return c
}

// Values sets the value domain of an enum or set column.
func (c *Column) Values(values ...string) *Column {
	c.desc.Values = values
	return c
}

// Nullable marks the column as accepting NULL. Columns are NOT NULL by
// default.
func (c *Column) Nullable() *Column {
	c.desc.Nullable = true
	return c
}

// Unique adds a unique constraint on the column.
func (c *Column) Unique() *Column {
	c.desc.Unique = true
	return c
}

// PrimaryKey marks the column as the table's primary key.
func (c *Column) PrimaryKey() *Column {
	c.desc.PrimaryKey = true
	return c
}

// AutoIncrement marks an integer primary key as auto-incrementing.
func (c *Column) AutoIncrement() *Column {
	c.desc.AutoIncrement = true
	return c
}

// Unsigned marks an integer column as unsigned. Only MySQL renders the
// modifier; other dialects ignore it.
func (c *Column) Unsigned() *Column {
	c.desc.Unsigned = true
	return c
}

// Default sets the column default. Use dialect.Raw for expression defaults
// such as CURRENT_TIMESTAMP.
func (c *Column) Default(v any) *Column {
	c.desc.Default = v
	c.desc.HasDefault = true
	return c
}

// Comment attaches a comment to the declaration. It is informational and
// not rendered into DDL.
func (c *Column) Comment(s string) *Column {
	c.desc.Comment = s
	return c
}

// References declares a foreign key to table.column.
func (c *Column) References(table, column string) *Column {
	c.desc.Ref = &Reference{Table: table, Column: column}
	return c
}

// OnDelete sets the ON DELETE referential action. Valid actions are
// CASCADE, SET NULL, SET DEFAULT, RESTRICT and NO ACTION.
func (c *Column) OnDelete(action string) *Column {
	if c.desc.Ref == nil {
		c.desc.Ref = &Reference{}
	}
	c.desc.Ref.OnDelete = action
	return c
}

// OnUpdate sets the ON UPDATE referential action.
func (c *Column) OnUpdate(action string) *Column {
	if c.desc.Ref == nil {
		c.desc.Ref = &Reference{}
	}
	c.desc.Ref.OnUpdate = action
	return c
}

// Descriptor returns the raw declaration.
func (c *Column) Descriptor() *Descriptor { return &c.desc }

// Name returns the declared column name.
func (c *Column) Name() string { return c.desc.Name }
