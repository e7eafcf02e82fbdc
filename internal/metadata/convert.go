package metadata

import (
	"github.com/leengari/metaframe/internal/domain/errors"
	"github.com/leengari/metaframe/internal/domain/schema"
)

// castColumn converts every cell of a column to the in-memory
// representation of target. Nil cells stay nil. The input is not modified.
func castColumn(column string, vals []interface{}, target schema.LogicalType) ([]interface{}, error) {
	out := make([]interface{}, len(vals))
	for i, v := range vals {
		if v == nil {
			continue
		}
		converted, ok := schema.Cast(v, target)
		if !ok {
			return nil, &errors.ConversionError{
				Column: column,
				Row:    i,
				Value:  v,
				Target: target.String(),
			}
		}
		out[i] = converted
	}
	return out, nil
}
