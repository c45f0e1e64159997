package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ToJSON serializes the report to pretty-printed JSON.
func (r Result) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// WriteToFile writes the report to the specified path, creating parent directories if needed.
func (r Result) WriteToFile(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	jsonBytes, err := r.ToJSON()
	if err != nil {
		return err
	}

	return os.WriteFile(path, append(jsonBytes, '\n'), 0644)
}

// Read loads a report written by WriteToFile.
func Read(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}

	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return Result{}, fmt.Errorf("invalid report %s: %w", path, err)
	}
	return r, nil
}
