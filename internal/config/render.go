package config

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by Render.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidFormats defines the allowed render formats.
var ValidFormats = []string{FormatText, FormatJSON, FormatYAML}

// documentYAML fixes field order for YAML output; maps would sort keys.
type documentYAML struct {
	Directory  string   `yaml:"directory"`
	Module     string   `yaml:"module"`
	Harness    string   `yaml:"harness"`
	Requires   []string `yaml:"requires"`
	Publishers []string `yaml:"publishers"`
	Meta       metaYAML `yaml:"meta"`
}

type metaYAML struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// Render writes the configuration in the given format. JSON output is the
// canonical form of Document plus the requires list.
func Render(w io.Writer, cfg *Configuration, format string) error {
	switch format {
	case FormatJSON:
		doc := cfg.Document()
		doc["requires"] = toAnySlice(cfg.requires)
		data, err := MarshalCanonical(doc)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(documentYAML{
			Directory:  cfg.directory,
			Module:     cfg.module,
			Harness:    cfg.harness,
			Requires:   nonNil(cfg.requires),
			Publishers: nonNil(cfg.publishers),
			Meta: metaYAML{
				Include: nonNil(cfg.include),
				Exclude: nonNil(cfg.exclude),
			},
		}); err != nil {
			return err
		}
		return enc.Close()
	case FormatText:
		var b strings.Builder
		fmt.Fprintf(&b, "directory:  %s\n", cfg.directory)
		fmt.Fprintf(&b, "module:     %s\n", cfg.module)
		fmt.Fprintf(&b, "harness:    %s\n", cfg.harness)
		fmt.Fprintf(&b, "requires:   %s\n", joinList(cfg.requires))
		fmt.Fprintf(&b, "publishers: %s\n", joinList(cfg.publishers))
		fmt.Fprintf(&b, "include:    %s\n", joinList(cfg.include))
		fmt.Fprintf(&b, "exclude:    %s\n", joinList(cfg.exclude))
		_, err := io.WriteString(w, b.String())
		return err
	default:
		return fmt.Errorf("invalid format %q: must be one of %v", format, ValidFormats)
	}
}

func joinList(vals []string) string {
	if len(vals) == 0 {
		return "(none)"
	}
	return strings.Join(vals, ", ")
}

func nonNil(vals []string) []string {
	if vals == nil {
		return []string{}
	}
	return vals
}
