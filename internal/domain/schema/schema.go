package schema

// Column is one schema entry: its name (from identity.name) and the full
// attribute record it was declared with
type Column struct {
	Name       string
	Attributes Attributes
}

// LogicalType returns the column's declared logical type, or "" if none
func (c Column) LogicalType() LogicalType {
	v, ok := c.Attributes.Leaf(PathLogicalType)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return LogicalType(s)
}

// Schema is the ordered list of column entries loaded from a schema description
type Schema struct {
	Source  string
	Columns []Column
}

// Names returns column names in declaration order
func (s *Schema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Column looks up an entry by name
func (s *Schema) Column(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Clone returns a deep copy of the schema
func (s *Schema) Clone() *Schema {
	out := &Schema{
		Source:  s.Source,
		Columns: make([]Column, len(s.Columns)),
	}
	for i, c := range s.Columns {
		out.Columns[i] = Column{Name: c.Name, Attributes: c.Attributes.Clone()}
	}
	return out
}
