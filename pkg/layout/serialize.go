package layout

import (
	"encoding/json"
	"fmt"
	"os"
)

// SchemaVersion changes whenever the JSON shape of [Layout] does, so stored
// layouts from older builds are not read back.
const SchemaVersion = 1

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// A missing view mode defaults to day; an unknown one is rejected.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}

	if l.ViewMode == "" {
		l.ViewMode = DefaultViewMode
	}
	if !l.ViewMode.Valid() {
		return Layout{}, fmt.Errorf("unknown view mode %q", l.ViewMode)
	}
	if l.DayWidth <= 0 && len(l.Days) > 0 {
		return Layout{}, fmt.Errorf("layout has days but no day width")
	}

	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
