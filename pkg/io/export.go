package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/ganttline/pkg/errors"
	"github.com/matzehuels/ganttline/pkg/task"
)

// document is the top-level shape written by every encoder.
type document struct {
	Tasks []map[string]any `json:"tasks" yaml:"tasks" toml:"tasks"`
}

// WriteJSON encodes forest as a {"tasks": [...]} JSON document.
// The output can be re-imported with [ReadJSON] using the same keys.
func WriteJSON(forest task.Forest, w io.Writer, keys Keys) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(document{Tasks: recordsFromForest(forest, keys)}); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// WriteYAML encodes forest as YAML.
func WriteYAML(forest task.Forest, w io.Writer, keys Keys) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document{Tasks: recordsFromForest(forest, keys)}); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// WriteTOML encodes forest as TOML arrays of tables.
func WriteTOML(forest task.Forest, w io.Writer, keys Keys) error {
	if err := toml.NewEncoder(w).Encode(document{Tasks: recordsFromForest(forest, keys)}); err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	return nil
}

// Write encodes forest in the given format.
func Write(forest task.Forest, w io.Writer, format Format, keys Keys) error {
	switch format {
	case FormatJSON:
		return WriteJSON(forest, w, keys)
	case FormatYAML:
		return WriteYAML(forest, w, keys)
	case FormatTOML:
		return WriteTOML(forest, w, keys)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown task format %q", format)
}

// Export writes forest to path, choosing the encoder from its extension.
func Export(forest task.Forest, path string, keys Keys) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(forest, f, format, keys); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
