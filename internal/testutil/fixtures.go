package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leengari/metaframe/internal/domain/data"
)

// TwoIntegerSchemaYAML declares columns a and b, both integer
const TwoIntegerSchemaYAML = `schema:
  - identity:
      name: a
    type:
      logical_type: integer
  - identity:
      name: b
    type:
      logical_type: integer
`

// CreateFrame builds a frame or fails the test
func CreateFrame(t *testing.T, columns []string, values map[string][]interface{}) *data.Frame {
	t.Helper()
	f, err := data.NewFrame(columns, values)
	if err != nil {
		t.Fatalf("failed to create frame: %v", err)
	}
	return f
}

// CreateTwoIntegerFrame returns {a: [1, 2], b: [3, 4]}
func CreateTwoIntegerFrame(t *testing.T) *data.Frame {
	t.Helper()
	return CreateFrame(t, []string{"a", "b"}, map[string][]interface{}{
		"a": {int64(1), int64(2)},
		"b": {int64(3), int64(4)},
	})
}

// WriteFile writes content into a file under a fresh temp directory
// and returns its path
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
