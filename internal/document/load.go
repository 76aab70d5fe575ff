package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of a document on disk.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension. Anything that is
// not .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and decodes a competition document from path.
func Load(path string) (*Competition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading competition document: %w", err)
	}
	return Decode(filepath.Base(path), data, FormatFromPath(path))
}

// Decode checks data against the schema and decodes it.
func Decode(filename string, data []byte, format Format) (*Competition, error) {
	if format == FormatYAML {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, err
		}
		data = converted
	}

	if err := CheckSchema(filename, data); err != nil {
		return nil, err
	}

	var c Competition
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding competition document: %w", err)
	}
	return &c, nil
}

// yamlToJSON re-encodes a YAML document as JSON so both formats pass the
// same schema gate.
func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parsing YAML document: %w", err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("converting YAML document to JSON: %w", err)
	}
	return out, nil
}

// Marshal encodes a document as indented JSON.
func Marshal(c *Competition) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encoding competition document: %w", err)
	}
	return buf.Bytes(), nil
}

// MarshalYAML encodes a document as YAML with the same field names as the
// JSON form.
func MarshalYAML(c *Competition) ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding competition document: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return yaml.Marshal(v)
}
