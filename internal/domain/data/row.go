package data

// Row represents a single table row
// Key = column name, Value = cell value
type Row struct {
	Label string // row label, empty when the frame has no index
	Data  map[string]interface{}
}

// NewRow creates a new Row with the given data
func NewRow(data map[string]interface{}) Row {
	return Row{Data: data}
}

// Copy creates a copy of the row to prevent mutation
func (r Row) Copy() Row {
	copy := make(map[string]interface{}, len(r.Data))
	for k, v := range r.Data {
		copy[k] = v
	}
	return Row{
		Label: r.Label,
		Data:  copy,
	}
}
