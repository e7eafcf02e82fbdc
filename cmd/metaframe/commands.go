package main

import (
	"fmt"
	"os"

	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"gopkg.in/yaml.v3"

	"github.com/leengari/metaframe/internal/arrowconv"
	"github.com/leengari/metaframe/internal/metadata"
	"github.com/leengari/metaframe/internal/storage/loader"
	"github.com/leengari/metaframe/internal/storage/writer"
)

// SourceFlags locate the schema and data files
type SourceFlags struct {
	Schema string `name:"schema" short:"s" required:"" type:"existingfile" help:"YAML schema file"`
	Data   string `name:"data" short:"d" required:"" type:"existingfile" help:"CSV data file (header row = column names)"`
}

func (f SourceFlags) open(app *App) (*metadata.Metadata, error) {
	frame, err := loader.LoadCSVFile(f.Data, app.Logger)
	if err != nil {
		return nil, err
	}

	opts := []metadata.Option{metadata.WithLogger(app.Logger)}
	if app.Verbose {
		opts = append(opts, metadata.WithObserver(metadata.NewLoggingObserver(app.Logger)))
	}

	m := metadata.New(opts...)
	if err := m.Update(frame, f.Schema, metadata.UpdateOptions{Inplace: true, Verbose: app.Verbose}); err != nil {
		return nil, err
	}
	return m, nil
}

// InspectCmd prints the metadata view
type InspectCmd struct {
	SourceFlags `embed:""`
}

func (c *InspectCmd) Run(app *App) error {
	m, err := c.open(app)
	if err != nil {
		return err
	}
	fmt.Print(m.View().String())
	return nil
}

// SetCmd applies a single edit and resolves it
type SetCmd struct {
	SourceFlags `embed:""`

	Column string `name:"column" short:"c" required:"" help:"Column whose metadata to edit"`
	Path   string `name:"path" short:"p" default:"type.logical_type" help:"Dotted attribute path"`
	Value  string `name:"value" required:"" help:"New value (parsed as a YAML scalar)"`
	Revert bool   `name:"revert" help:"Revert the edit instead of upgrading it"`
	Write  string `name:"write" short:"w" type:"path" help:"Write the resulting schema to this file"`
}

func (c *SetCmd) Run(app *App) error {
	m, err := c.open(app)
	if err != nil {
		return err
	}

	value, err := parseScalar(c.Value)
	if err != nil {
		return err
	}

	if err := m.Set(c.Column, c.Path, value); err != nil {
		return err
	}

	if c.Revert {
		err = m.Revert()
	} else {
		err = m.Upgrade()
	}
	if err != nil {
		return err
	}

	fmt.Print(m.View().String())

	if c.Write == "" {
		return nil
	}
	s, err := m.Schema()
	if err != nil {
		return err
	}
	return writer.WriteSchemaFile(c.Write, s)
}

// parseScalar decodes a command-line value the way it would read in the schema file
func parseScalar(raw string) (interface{}, error) {
	var v interface{}
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("invalid value %q: %w", raw, err)
	}
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return nil, fmt.Errorf("invalid value %q: expected a scalar", raw)
	}
	return v, nil
}

// ExportCmd writes an Arrow IPC file
type ExportCmd struct {
	SourceFlags `embed:""`

	Out string `name:"out" short:"o" required:"" type:"path" help:"Output .arrow file"`
}

func (c *ExportCmd) Run(app *App) error {
	m, err := c.open(app)
	if err != nil {
		return err
	}

	s, err := m.Schema()
	if err != nil {
		return err
	}

	mem := memory.NewGoAllocator()
	rec, err := arrowconv.Record(mem, s, m.Data())
	if err != nil {
		return err
	}
	defer rec.Release()

	f, err := os.Create(c.Out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", c.Out, err)
	}
	defer f.Close()

	w, err := ipc.NewFileWriter(f, ipc.WithSchema(rec.Schema()), ipc.WithAllocator(mem))
	if err != nil {
		return fmt.Errorf("failed to open arrow writer: %w", err)
	}
	if err := w.Write(rec); err != nil {
		w.Close()
		return fmt.Errorf("failed to write record: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize arrow file: %w", err)
	}

	app.Logger.Info("arrow file written",
		"path", c.Out,
		"rows", rec.NumRows(),
		"columns", rec.NumCols(),
	)
	return nil
}
