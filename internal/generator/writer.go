package generator

import (
	"Bodi/internal/core/domain"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Output formats understood by WriteCatalog.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// WriteCatalog serialises a generated catalog.
func WriteCatalog(w io.Writer, properties []domain.Property, format string) error {
	switch format {
	case FormatJSON, "":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(properties); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(properties); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}
