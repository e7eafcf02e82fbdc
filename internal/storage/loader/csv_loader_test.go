package loader

import (
	"strings"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/metaframe/internal/testutil"
)

func TestReadCSVInfersCells(t *testing.T) {
	raw := "id,score,active,name\n1,2.5,true,ann\n2,,FALSE,\n"

	f, err := ReadCSV(strings.NewReader(raw))
	assert.NilError(t, err)

	testutil.AssertColumns(t, f, []string{"id", "score", "active", "name"}, "csv columns")
	testutil.AssertRowCount(t, f, 2, "csv rows")

	id, _ := f.Column("id")
	assert.DeepEqual(t, id, []interface{}{int64(1), int64(2)})
	score, _ := f.Column("score")
	assert.DeepEqual(t, score, []interface{}{2.5, nil})
	active, _ := f.Column("active")
	assert.DeepEqual(t, active, []interface{}{true, false})
	name, _ := f.Column("name")
	assert.DeepEqual(t, name, []interface{}{"ann", nil})
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.ErrorContains(t, err, "missing header")

	_, err = ReadCSV(strings.NewReader("a,b\n1\n"))
	assert.Assert(t, err != nil)
}

func TestLoadCSVFile(t *testing.T) {
	path := testutil.WriteFile(t, "data.csv", "a,b\n1,3\n2,4\n")

	f, err := LoadCSVFile(path, nil)
	assert.NilError(t, err)
	testutil.AssertFramesEqual(t, f, testutil.CreateTwoIntegerFrame(t), "loaded csv")
}
