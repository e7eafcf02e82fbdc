package writer

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/leengari/metaframe/internal/domain/schema"
)

// leading keys are written first; everything else follows in sorted order
var leadingKeys = []string{"identity", "type"}

// EncodeSchema renders a schema back into the YAML layout it was loaded from
func EncodeSchema(s *schema.Schema) ([]byte, error) {
	entries := &yaml.Node{Kind: yaml.SequenceNode}
	for _, col := range s.Columns {
		node, err := encodeMapping(col.Attributes, true)
		if err != nil {
			return nil, fmt.Errorf("failed to encode column %s: %w", col.Name, err)
		}
		entries.Content = append(entries.Content, node)
	}

	doc := &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: "schema"},
			entries,
		},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteSchemaFile persists the schema using temp + atomic rename
func WriteSchemaFile(path string, s *schema.Schema) error {
	if s == nil || path == "" {
		return fmt.Errorf("cannot save schema: nil or missing path")
	}

	raw, err := EncodeSchema(s)
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create schema directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, raw, 0644); err != nil {
		return fmt.Errorf("failed to write temp schema file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp → %s: %w", path, err)
	}

	slog.Info("Schema saved successfully",
		slog.String("path", path),
		slog.Int("columns", len(s.Columns)),
	)

	return nil
}

func encodeMapping(m map[string]interface{}, top bool) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	for _, key := range orderedKeys(m, top) {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: key}

		var valueNode *yaml.Node
		switch v := m[key].(type) {
		case map[string]interface{}:
			child, err := encodeMapping(v, false)
			if err != nil {
				return nil, err
			}
			valueNode = child
		case schema.Attributes:
			child, err := encodeMapping(v, false)
			if err != nil {
				return nil, err
			}
			valueNode = child
		default:
			valueNode = &yaml.Node{}
			if err := valueNode.Encode(v); err != nil {
				return nil, fmt.Errorf("key %s: %w", key, err)
			}
		}

		node.Content = append(node.Content, keyNode, valueNode)
	}

	return node, nil
}

func orderedKeys(m map[string]interface{}, top bool) []string {
	keys := make([]string, 0, len(m))
	used := make(map[string]bool, len(m))

	if top {
		for _, k := range leadingKeys {
			if _, ok := m[k]; ok {
				keys = append(keys, k)
				used[k] = true
			}
		}
	}

	rest := make([]string, 0, len(m))
	for k := range m {
		if !used[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)

	return append(keys, rest...)
}
