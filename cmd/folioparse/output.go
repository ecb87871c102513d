package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type outputFormat string

const (
	formatJSON outputFormat = "json"
	formatYAML outputFormat = "yaml"
)

func formatFor(name string) (outputFormat, error) {
	switch outputFormat(name) {
	case formatJSON, formatYAML:
		return outputFormat(name), nil
	default:
		return "", fmt.Errorf("unknown output format: %s", name)
	}
}

// writeOutput writes data to w in the given format.
func writeOutput(w io.Writer, format outputFormat, data any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(data)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
