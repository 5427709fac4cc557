package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

var stdout io.Writer = os.Stdout

func validateOutputFormat(format string) error {
	switch format {
	case "text", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("output format must be 'text', 'json' or 'yaml', got '%s'", format)
	}
}

// render writes v in the selected output format. text prints the
// human-readable form and is only called for the text format.
func render(v any, text func(w io.Writer)) error {
	return renderTo(stdout, outputFormat, v, text)
}

func renderTo(w io.Writer, format string, v any, text func(w io.Writer)) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		text(w)
		return nil
	}
}
