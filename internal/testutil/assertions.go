package testutil

import (
	"testing"

	"github.com/leengari/metaframe/internal/domain/data"
)

// AssertRowCount checks if the frame has the expected number of rows
func AssertRowCount(t *testing.T, f *data.Frame, expected int, context string) {
	t.Helper()
	if f.Len() != expected {
		t.Errorf("%s: expected %d rows, got %d", context, expected, f.Len())
	}
}

// AssertColumns checks the frame's column names and their order
func AssertColumns(t *testing.T, f *data.Frame, expected []string, context string) {
	t.Helper()
	actual := f.Columns()
	if len(actual) != len(expected) {
		t.Errorf("%s: expected columns %v, got %v", context, expected, actual)
		return
	}
	for i := range expected {
		if actual[i] != expected[i] {
			t.Errorf("%s: expected columns %v, got %v", context, expected, actual)
			return
		}
	}
}

// AssertFramesEqual checks two frames are identical, cell types included
func AssertFramesEqual(t *testing.T, actual, expected *data.Frame, context string) {
	t.Helper()
	if !actual.Equal(expected) {
		t.Errorf("%s: frames differ\nexpected:\n%s\ngot:\n%s", context, expected, actual)
	}
}

// AssertNoError checks that an error is nil
func AssertNoError(t *testing.T, err error, context string) {
	t.Helper()
	if err != nil {
		t.Errorf("%s: expected no error, got: %v", context, err)
	}
}

// AssertError checks that an error is not nil
func AssertError(t *testing.T, err error, context string) {
	t.Helper()
	if err == nil {
		t.Errorf("%s: expected an error, got nil", context)
	}
}
