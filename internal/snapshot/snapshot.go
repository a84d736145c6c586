// Package snapshot encodes the task collection for export and decodes and
// validates untrusted import files.
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tgienger/tasks/internal/errs"
	"github.com/tgienger/tasks/internal/models"
)

// DefaultFileName is the name offered for exports.
const DefaultFileName = "tasks.json"

// Format is a serialization format for snapshots.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat returns the format named by s. An empty name means JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q (want json or yaml)", s)
}

// FormatFromPath picks a format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Encode serializes tasks in collection order.
func Encode(tasks []models.Task, format Format) ([]byte, error) {
	if tasks == nil {
		tasks = []models.Task{}
	}
	switch format {
	case FormatYAML:
		return yaml.Marshal(tasks)
	case FormatJSON, "":
		out, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

// Decode parses raw import data into untyped records. It fails with a PARSE
// error when the data is not valid in the given format and a FORMAT error
// when the top-level value is not a list.
func Decode(data []byte, format Format) ([]any, error) {
	var v any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, errs.Parse(err)
		}
	case FormatJSON, "":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			return nil, errs.Parse(err)
		}
		if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
			return nil, errs.Parse(errors.New("unexpected data after top-level value"))
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}

	records, ok := v.([]any)
	if !ok {
		return nil, errs.Format(describe(v))
	}
	return records, nil
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "nothing"
	case map[string]any:
		return "an object"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case json.Number, int, int64, uint64, float64:
		return "a number"
	}
	return fmt.Sprintf("%T", v)
}
