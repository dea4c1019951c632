package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/ganttline/pkg/errors"
	"github.com/matzehuels/ganttline/pkg/task"
)

// Format is a task file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Extensions lists the file extensions [Import] and [Export] understand.
var Extensions = []string{".json", ".yaml", ".yml", ".toml"}

// FormatFromPath picks the task file format from the extension of path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported task file %q (want .json, .yaml or .toml)", path)
}

// ReadJSON decodes a task forest from JSON.
//
// The document is either a bare array of tasks or an object with a "tasks"
// array:
//
//	[
//	  {"id": 1, "title": "Design", "startDate": "2025-01-01", "endDate": "2025-01-03",
//	   "children": [{"id": 2, "title": "Review", "startDate": "2025-01-02", "endDate": "2025-01-05"}]}
//	]
//
// Recognized fields are the id and date fields named by keys plus title,
// progress, color, type, expanded and children. Every other field is kept
// in [task.Item.Extra]. Unparseable dates are not an error; they become
// [timeline.Invalid] and can be reported with [task.Validate].
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader, keys Keys) (task.Forest, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
	}
	return forestFromDocument(doc, keys)
}

// ReadYAML decodes a task forest from YAML. The layout matches [ReadJSON].
func ReadYAML(r io.Reader, keys Keys) (task.Forest, error) {
	var doc any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return task.Forest{}, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml")
	}
	return forestFromDocument(doc, keys)
}

// ReadTOML decodes a task forest from TOML. Tasks are an array of tables
// named "tasks"; children nest as "tasks.children":
//
//	[[tasks]]
//	id = 1
//	title = "Design"
//	startDate = 2025-01-01
//	endDate = 2025-01-03
//
//	  [[tasks.children]]
//	  id = 2
//	  startDate = "2025-01-02"
//	  endDate = "2025-01-05"
func ReadTOML(r io.Reader, keys Keys) (task.Forest, error) {
	var doc map[string]any
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml")
	}
	if len(doc) == 0 {
		return task.Forest{}, nil
	}
	return forestFromDocument(doc, keys)
}

// Read decodes a task forest in the given format.
func Read(r io.Reader, format Format, keys Keys) (task.Forest, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r, keys)
	case FormatYAML:
		return ReadYAML(r, keys)
	case FormatTOML:
		return ReadTOML(r, keys)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown task format %q", format)
}

// ReadBytes is [Read] over an in-memory document.
func ReadBytes(data []byte, format Format, keys Keys) (task.Forest, error) {
	return Read(bytes.NewReader(data), format, keys)
}

// Import reads the task file at path, choosing the decoder from its
// extension.
func Import(path string, keys Keys) (task.Forest, error) {
	if err := errors.ValidatePath(path, Extensions...); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "task file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	forest, err := Read(f, format, keys)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return forest, nil
}
