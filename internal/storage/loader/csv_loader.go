package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/leengari/metaframe/internal/domain/data"
)

// LoadCSVFile reads a CSV file whose header row names the columns
func LoadCSVFile(path string, logger *slog.Logger) (*data.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()

	frame, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if logger != nil {
		logger.Info("data loaded",
			slog.String("path", path),
			slog.Int("columns", len(frame.Columns())),
			slog.Int("rows", frame.Len()),
		)
	}

	return frame, nil
}

// ReadCSV builds a frame from CSV. Cells are inferred per value as int64,
// float64 or bool, falling back to string; empty cells become nil.
func ReadCSV(r io.Reader) (*data.Frame, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, err
	}

	values := make(map[string][]interface{}, len(header))
	for _, name := range header {
		values[name] = []interface{}{}
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		for i, cell := range record {
			values[header[i]] = append(values[header[i]], inferCell(cell))
		}
	}

	return data.NewFrame(header, values)
}

func inferCell(cell string) interface{} {
	if cell == "" {
		return nil
	}
	if i, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}
	switch strings.ToLower(cell) {
	case "true":
		return true
	case "false":
		return false
	}
	return cell
}
