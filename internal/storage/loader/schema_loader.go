package loader

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/leengari/metaframe/internal/domain/errors"
	"github.com/leengari/metaframe/internal/domain/schema"
)

const memorySource = "<memory>"

// LoadSchemaFile reads and parses a YAML schema description from disk
func LoadSchemaFile(path string, logger *slog.Logger) (*schema.Schema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	s, err := ParseSchema(raw, path)
	if err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Info("schema loaded",
			slog.String("path", path),
			slog.Int("columns", len(s.Columns)),
		)
	}

	return s, nil
}

// ReadSchema parses a YAML schema description from r
func ReadSchema(r io.Reader, source string) (*schema.Schema, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	return ParseSchema(raw, source)
}

// ParseSchema parses a document of the form
//
//	schema:
//	  - identity: {name: a}
//	    type: {logical_type: integer}
//
// into an ordered schema. Every entry keeps all of its keys as attributes.
func ParseSchema(raw []byte, source string) (*schema.Schema, error) {
	if source == "" {
		source = memorySource
	}

	var doc map[string]interface{}
	if err := yaml.NewDecoder(bytes.NewReader(raw)).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, &errors.ParseError{Source: source, Entry: -1, Reason: "empty document"}
		}
		return nil, &errors.ParseError{Source: source, Entry: -1, Reason: "invalid YAML", Err: err}
	}

	rawEntries, ok := doc["schema"]
	if !ok {
		return nil, &errors.ParseError{Source: source, Entry: -1, Field: "schema", Reason: "missing top-level key"}
	}
	entries, ok := rawEntries.([]interface{})
	if !ok {
		return nil, &errors.ParseError{Source: source, Entry: -1, Field: "schema", Reason: "expected a sequence of column definitions"}
	}

	s := &schema.Schema{
		Source:  source,
		Columns: make([]schema.Column, 0, len(entries)),
	}
	seen := make(map[string]bool, len(entries))

	for i, rawEntry := range entries {
		col, err := parseColumn(rawEntry, i, source)
		if err != nil {
			return nil, err
		}
		if seen[col.Name] {
			return nil, &errors.ParseError{
				Source: source,
				Entry:  i,
				Field:  schema.PathName,
				Reason: fmt.Sprintf("duplicate column %q", col.Name),
			}
		}
		seen[col.Name] = true
		s.Columns = append(s.Columns, col)
	}

	return s, nil
}

func parseColumn(raw interface{}, i int, source string) (schema.Column, error) {
	fail := func(field, reason string) (schema.Column, error) {
		return schema.Column{}, &errors.ParseError{Source: source, Entry: i, Field: field, Reason: reason}
	}

	entry, ok := normalize(raw).(map[string]interface{})
	if !ok {
		return fail("", "column definition must be a mapping")
	}

	identity, ok := entry["identity"].(map[string]interface{})
	if !ok {
		return fail("identity", "missing or not a mapping")
	}
	name, ok := identity["name"].(string)
	if !ok || name == "" {
		return fail(schema.PathName, "missing or not a non-empty string")
	}

	if rawType, exists := entry["type"]; exists {
		typ, ok := rawType.(map[string]interface{})
		if !ok {
			return fail("type", "not a mapping")
		}
		if rawLT, exists := typ["logical_type"]; exists {
			lt, ok := rawLT.(string)
			if !ok {
				return fail(schema.PathLogicalType, "not a string")
			}
			if _, known := schema.ParseLogicalType(lt); !known {
				return fail(schema.PathLogicalType, fmt.Sprintf("unknown logical type %q", lt))
			}
		}
	}

	return schema.Column{Name: name, Attributes: schema.Attributes(entry)}, nil
}

// normalize converts decoded mappings with non-string keys into
// map[string]interface{} all the way down
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = normalize(e)
		}
		return out
	case []interface{}:
		for i, e := range t {
			t[i] = normalize(e)
		}
		return t
	default:
		return v
	}
}
