package writer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/metaframe/internal/domain/schema"
	"github.com/leengari/metaframe/internal/storage/loader"
	"github.com/leengari/metaframe/internal/testutil"
)

func TestEncodeSchemaOrdersKeys(t *testing.T) {
	s := &schema.Schema{Columns: []schema.Column{{
		Name: "a",
		Attributes: schema.Attributes{
			"description": "first",
			"type":        map[string]interface{}{"logical_type": "float"},
			"identity":    map[string]interface{}{"name": "a"},
		},
	}}}

	raw, err := EncodeSchema(s)
	assert.NilError(t, err)

	out := string(raw)
	identity := strings.Index(out, "identity:")
	typ := strings.Index(out, "type:")
	desc := strings.Index(out, "description:")
	assert.Assert(t, identity >= 0 && identity < typ && typ < desc, "unexpected key order:\n%s", out)
	assert.Assert(t, strings.HasPrefix(out, "schema:\n"))
}

func TestWriteSchemaFileReloads(t *testing.T) {
	original, err := loader.ParseSchema([]byte(testutil.TwoIntegerSchemaYAML), "")
	assert.NilError(t, err)

	changed := original.Clone()
	assert.NilError(t, changed.Columns[0].Attributes.Assign(schema.PathLogicalType, "float"))

	path := filepath.Join(t.TempDir(), "out", "schema.yaml")
	assert.NilError(t, WriteSchemaFile(path, changed))

	_, err = os.Stat(path + ".tmp")
	assert.Assert(t, os.IsNotExist(err), "temp file should be renamed away")

	reloaded, err := loader.LoadSchemaFile(path, nil)
	assert.NilError(t, err)
	assert.DeepEqual(t, reloaded.Names(), []string{"a", "b"})

	a, _ := reloaded.Column("a")
	b, _ := reloaded.Column("b")
	assert.Equal(t, a.LogicalType(), schema.LogicalFloat)
	assert.Equal(t, b.LogicalType(), schema.LogicalInteger)
}

func TestWriteSchemaFileRejectsNil(t *testing.T) {
	assert.ErrorContains(t, WriteSchemaFile("x.yaml", nil), "cannot save schema")
}
