package field

// A Type is a logical column type. Logical types are dialect-neutral;
// Resolve maps them to the native type of a concrete dialect.
type Type uint8

// Logical column types.
const (
	TypeInvalid Type = iota
	TypeTinyInt
	TypeSmallInt
	TypeMediumInt
	TypeInt
	TypeInteger
	TypeBigInt
	TypeDecimal
	TypeNumeric
	TypeFloat
	TypeDouble
	TypeReal
	TypeBit
	TypeBool
	TypeSerial
	TypeDate
	TypeDateTime
	TypeTimestamp
	TypeTime
	TypeYear
	TypeChar
	TypeVarchar
	TypeTinyText
	TypeText
	TypeMediumText
	TypeLongText
	TypeBinary
	TypeVarBinary
	TypeTinyBlob
	TypeBlob
	TypeMediumBlob
	TypeLongBlob
	TypeEnum
	TypeSet
	TypeJSON
	TypeJSONB
	TypeUUID
	TypeGeometry
	TypePoint
	TypeLineString
	TypePolygon
	endTypes
)

var typeNames = [...]string{
	TypeInvalid:    "invalid",
	TypeTinyInt:    "tinyint",
	TypeSmallInt:   "smallint",
	TypeMediumInt:  "mediumint",
	TypeInt:        "int",
	TypeInteger:    "integer",
	TypeBigInt:     "bigint",
	TypeDecimal:    "decimal",
	TypeNumeric:    "numeric",
	TypeFloat:      "float",
	TypeDouble:     "double",
	TypeReal:       "real",
	TypeBit:        "bit",
	TypeBool:       "boolean",
	TypeSerial:     "serial",
	TypeDate:       "date",
	TypeDateTime:   "datetime",
	TypeTimestamp:  "timestamp",
	TypeTime:       "time",
	TypeYear:       "year",
	TypeChar:       "char",
	TypeVarchar:    "varchar",
	TypeTinyText:   "tinytext",
	TypeText:       "text",
	TypeMediumText: "mediumtext",
	TypeLongText:   "longtext",
	TypeBinary:     "binary",
	TypeVarBinary:  "varbinary",
	TypeTinyBlob:   "tinyblob",
	TypeBlob:       "blob",
	TypeMediumBlob: "mediumblob",
	TypeLongBlob:   "longblob",
	TypeEnum:       "enum",
	TypeSet:        "set",
	TypeJSON:       "json",
	TypeJSONB:      "jsonb",
	TypeUUID:       "uuid",
	TypeGeometry:   "geometry",
	TypePoint:      "point",
	TypeLineString: "linestring",
	TypePolygon:    "polygon",
}

// String returns the logical name of the type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[TypeInvalid]
}

// Valid reports whether the type is a known logical type.
func (t Type) Valid() bool { return t > TypeInvalid && t < endTypes }

// Numeric reports whether the type carries a precision/scale pair.
func (t Type) Numeric() bool { return t == TypeDecimal || t == TypeNumeric }

// Sized reports whether the type carries a length parameter.
func (t Type) Sized() bool {
	switch t {
	case TypeChar, TypeVarchar, TypeBinary, TypeVarBinary, TypeBit:
		return true
	}
	return false
}

// Enumerated reports whether the type carries a value domain.
func (t Type) Enumerated() bool { return t == TypeEnum || t == TypeSet }

// Temporal reports whether the type accepts a fractional-seconds precision.
func (t Type) Temporal() bool {
	switch t {
	case TypeDateTime, TypeTimestamp, TypeTime:
		return true
	}
	return false
}

// integer reports whether the type is a plain integer column, the only
// family that may auto-increment.
func (t Type) integer() bool {
	switch t {
	case TypeTinyInt, TypeSmallInt, TypeMediumInt, TypeInt, TypeInteger, TypeBigInt, TypeSerial:
		return true
	}
	return false
}
