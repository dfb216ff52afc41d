// Package export encodes stored shortcuts as JSON, YAML or TOML documents.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/studiowebux/keycap/internal/types"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for formats other than json, yaml and toml
var ErrUnknownFormat = errors.New("unknown export format")

// DocumentVersion is written into every exported document
const DocumentVersion = "1"

// Format names an encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Document is the top-level shape of an export file
type Document struct {
	Version   string                 `json:"version" yaml:"version" toml:"version"`
	Shortcuts []types.ShortcutRecord `json:"shortcuts" yaml:"shortcuts" toml:"shortcuts"`
}

// ParseFormat accepts a format name, case-insensitively
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%q: %w", name, ErrUnknownFormat)
	}
}

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%s has no extension: %w", path, ErrUnknownFormat)
	}
	return ParseFormat(ext)
}

// Encode writes records as a document
func Encode(w io.Writer, format Format, records []types.ShortcutRecord) error {
	if records == nil {
		records = []types.ShortcutRecord{}
	}
	doc := Document{Version: DocumentVersion, Shortcuts: records}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(doc)
	default:
		return fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
}

// Decode reads a document and returns its records.
// Every record must name a field and carry a known mode (empty means code).
func Decode(r io.Reader, format Format) ([]types.ShortcutRecord, error) {
	var doc Document
	var err error

	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&doc)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&doc)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	case FormatTOML:
		err = toml.NewDecoder(r).Decode(&doc)
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s document: %w", format, err)
	}

	seen := make(map[string]bool)
	for i := range doc.Shortcuts {
		rec := &doc.Shortcuts[i]
		if rec.Field == "" {
			return nil, fmt.Errorf("shortcut %d has no field name", i+1)
		}
		if seen[rec.Field] {
			return nil, fmt.Errorf("field %q appears more than once", rec.Field)
		}
		seen[rec.Field] = true

		switch rec.Mode {
		case "":
			rec.Mode = types.ModeCode
		case types.ModeContent, types.ModeCode:
		default:
			return nil, fmt.Errorf("field %q has unknown mode %q", rec.Field, rec.Mode)
		}
	}

	return doc.Shortcuts, nil
}
