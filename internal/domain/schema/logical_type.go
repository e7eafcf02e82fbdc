package schema

// LogicalType is the schema-level type of a column, independent of how
// cells are stored in memory
type LogicalType string

const (
	LogicalInteger  LogicalType = "integer"
	LogicalFloat    LogicalType = "float"
	LogicalString   LogicalType = "string"
	LogicalBoolean  LogicalType = "boolean"
	LogicalDatetime LogicalType = "datetime"
)

// Attribute paths the package treats specially
const (
	PathName        = "identity.name"
	PathLogicalType = "type.logical_type"
)

var knownLogicalTypes = map[LogicalType]bool{
	LogicalInteger:  true,
	LogicalFloat:    true,
	LogicalString:   true,
	LogicalBoolean:  true,
	LogicalDatetime: true,
}

// ParseLogicalType reports whether s names a known logical type
func ParseLogicalType(s string) (LogicalType, bool) {
	lt := LogicalType(s)
	return lt, knownLogicalTypes[lt]
}

func (lt LogicalType) String() string {
	return string(lt)
}
