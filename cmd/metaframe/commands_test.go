package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow/go/v17/arrow/ipc"
	"gotest.tools/v3/assert"

	"github.com/leengari/metaframe/internal/domain/schema"
	"github.com/leengari/metaframe/internal/storage/loader"
	"github.com/leengari/metaframe/internal/testutil"
)

func testApp() *App {
	return &App{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func testSources(t *testing.T) SourceFlags {
	t.Helper()
	return SourceFlags{
		Schema: testutil.WriteFile(t, "schema.yaml", testutil.TwoIntegerSchemaYAML),
		Data:   testutil.WriteFile(t, "data.csv", "a,b\n1,3\n2,4\n"),
	}
}

func TestParseScalar(t *testing.T) {
	v, err := parseScalar("float")
	assert.NilError(t, err)
	assert.Equal(t, v, "float")

	v, err = parseScalar("3")
	assert.NilError(t, err)
	assert.Equal(t, v, 3)

	v, err = parseScalar("true")
	assert.NilError(t, err)
	assert.Equal(t, v, true)

	_, err = parseScalar("{a: 1}")
	assert.ErrorContains(t, err, "expected a scalar")
}

func TestSetCmdWritesUpgradedSchema(t *testing.T) {
	out := filepath.Join(t.TempDir(), "upgraded.yaml")
	cmd := &SetCmd{
		SourceFlags: testSources(t),
		Column:      "a",
		Path:        schema.PathLogicalType,
		Value:       "float",
		Write:       out,
	}
	assert.NilError(t, cmd.Run(testApp()))

	s, err := loader.LoadSchemaFile(out, nil)
	assert.NilError(t, err)
	a, _ := s.Column("a")
	assert.Equal(t, a.LogicalType(), schema.LogicalFloat)
}

func TestSetCmdRevertKeepsSchema(t *testing.T) {
	out := filepath.Join(t.TempDir(), "reverted.yaml")
	cmd := &SetCmd{
		SourceFlags: testSources(t),
		Column:      "a",
		Path:        schema.PathLogicalType,
		Value:       "float",
		Revert:      true,
		Write:       out,
	}
	assert.NilError(t, cmd.Run(testApp()))

	s, err := loader.LoadSchemaFile(out, nil)
	assert.NilError(t, err)
	a, _ := s.Column("a")
	assert.Equal(t, a.LogicalType(), schema.LogicalInteger)
}

func TestSetCmdUnknownColumn(t *testing.T) {
	cmd := &SetCmd{SourceFlags: testSources(t), Column: "z", Path: schema.PathLogicalType, Value: "float"}
	assert.ErrorContains(t, cmd.Run(testApp()), "unknown column")
}

func TestExportCmdWritesArrowFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "table.arrow")
	cmd := &ExportCmd{SourceFlags: testSources(t), Out: out}
	assert.NilError(t, cmd.Run(testApp()))

	f, err := os.Open(out)
	assert.NilError(t, err)
	defer f.Close()

	r, err := ipc.NewFileReader(f)
	assert.NilError(t, err)
	defer r.Close()

	assert.Equal(t, r.NumRecords(), 1)
	assert.Equal(t, r.Schema().NumFields(), 2)
	assert.Equal(t, r.Schema().Field(0).Name, "a")
}

func TestInspectCmd(t *testing.T) {
	cmd := &InspectCmd{SourceFlags: testSources(t)}
	assert.NilError(t, cmd.Run(testApp()))
}
