package schema

// Kind identifies the family a field belongs to and decides its default column type.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindBoolean
	KindText
)

// defaultColumnTypes maps each kind to the DDL used when a field does not set one.
var defaultColumnTypes = map[Kind]string{
	KindString:  "varchar(100)",
	KindInteger: "bigint",
	KindFloat:   "real",
	KindBoolean: "boolean",
	KindText:    "text",
}

// DefaultColumnType returns the column type used for kind when no DDL is given.
func DefaultColumnType(kind Kind) string {
	if ddl, ok := defaultColumnTypes[kind]; ok {
		return ddl
	}
	return defaultColumnTypes[KindString]
}

// String returns the constructor-style name of the kind, e.g. "StringField".
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "IntegerField"
	case KindFloat:
		return "FloatField"
	case KindBoolean:
		return "BooleanField"
	case KindText:
		return "TextField"
	default:
		return "StringField"
	}
}
