// Package output serializes extraction results for the CLI.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format represents output format types.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Writer serializes one extraction result.
type Writer interface {
	Write(data any) error
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format) (Writer, error) {
	switch format {
	case FormatJSON:
		return &jsonWriter{w: w}, nil
	case FormatYAML:
		return &yamlWriter{w: w}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

type jsonWriter struct {
	w io.Writer
}

func (jw *jsonWriter) Write(data any) error {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	if _, err := jw.w.Write(out); err != nil {
		return err
	}
	_, err = io.WriteString(jw.w, "\n")
	return err
}

type yamlWriter struct {
	w io.Writer
}

func (yw *yamlWriter) Write(data any) error {
	enc := yaml.NewEncoder(yw.w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return err
	}
	return enc.Close()
}
