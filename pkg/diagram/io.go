package diagram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/matzehuels/arrange/pkg/errors"
)

// Document formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FormatFromPath picks the document format from a file extension.
// Anything other than .yaml or .yml is JSON.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// =============================================================================
// Diagram Serialization API
// =============================================================================

// Marshal encodes d in the given format.
func Marshal(d *Diagram, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(d, &buf, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes d to w in the given format.
func Write(d *Diagram, w io.Writer, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	default:
		return apperrors.ValidateFormat(format, FormatJSON, FormatYAML)
	}
	return nil
}

// WriteFile writes d to path, choosing the format from its extension.
func WriteFile(d *Diagram, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(d, f, FormatFromPath(path))
}

// Read decodes and validates a diagram. Connections without an ID are
// assigned one.
func Read(r io.Reader, format string) (*Diagram, error) {
	var d Diagram
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&d); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidDiagram, err, "decode")
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&d); err != nil && err != io.EOF {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidDiagram, err, "decode")
		}
	default:
		return nil, apperrors.ValidateFormat(format, FormatJSON, FormatYAML)
	}

	d.AssignIDs()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Unmarshal decodes a diagram from data.
func Unmarshal(data []byte, format string) (*Diagram, error) {
	return Read(bytes.NewReader(data), format)
}

// ReadFile reads a diagram from path, choosing the format from its extension.
func ReadFile(path string) (*Diagram, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, FormatFromPath(path))
}
