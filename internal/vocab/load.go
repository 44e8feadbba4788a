package vocab

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/wordpath/internal/errs"
)

// SupportedMajor is the catalog format major version this build reads.
const SupportedMajor = "v1"

// Format is the encoding of a catalog file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath infers the catalog format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errs.Invalid("catalog path", "unsupported extension %q (want .yaml, .yml or .json)", filepath.Ext(path))
	}
}

// Bundle is the content of a catalog file: vocabulary sets plus the symbol
// library used to resolve their symbol ids.
type Bundle struct {
	Version string   `json:"version"`
	Sets    []Set    `json:"sets"`
	Symbols []Symbol `json:"symbols"`
}

// LoadFile reads and validates a catalog file.
func LoadFile(path string) (*Bundle, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	b, err := Load(data, format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return b, nil
}

// Load decodes and validates catalog data. The document is checked against
// the catalog schema before it is decoded into a Bundle.
func Load(data []byte, format Format) (*Bundle, error) {
	raw, err := toJSON(data, format)
	if err != nil {
		return nil, err
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errs.Invalid("catalog", "malformed document: %v", err)
	}
	if err := validateDocument(doc); err != nil {
		return nil, errs.Invalid("catalog", "%v", err)
	}

	var b Bundle
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, errs.Invalid("catalog", "decode: %v", err)
	}

	if !semver.IsValid(b.Version) {
		return nil, errs.Invalid("catalog version", "%q is not a semantic version", b.Version)
	}
	if semver.Major(b.Version) != SupportedMajor {
		return nil, errs.Invalid("catalog version", "%s is not supported (want %s.x.x)", b.Version, SupportedMajor)
	}

	return &b, nil
}

// toJSON normalizes the input to JSON bytes.
func toJSON(data []byte, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return data, nil
	case FormatYAML:
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errs.Invalid("catalog", "malformed YAML: %v", err)
		}
		raw, err := json.Marshal(doc)
		if err != nil {
			return nil, errs.Invalid("catalog", "convert YAML: %v", err)
		}
		return raw, nil
	default:
		return nil, errs.Invalid("catalog format", "unknown format %q", format)
	}
}

// Catalog builds a validated catalog from the bundle's sets.
func (b *Bundle) Catalog() (*StaticCatalog, error) {
	return NewCatalog(b.Sets)
}

// SymbolIndex builds a lookup over the bundle's symbols.
func (b *Bundle) SymbolIndex() *SymbolIndex {
	return NewSymbolIndex(b.Symbols)
}
